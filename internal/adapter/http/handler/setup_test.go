package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	. "blogapp/pkg/test"
	"blogapp/pkg/test/factory"

	"blogapp/internal/adapter/database/sqlite"
	"blogapp/internal/adapter/database/sqlite/repository"
	"blogapp/internal/adapter/http/handler"
	"blogapp/internal/adapter/http/routes"
	"blogapp/internal/adapter/token"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/internal/core/service"
	"blogapp/pkg/config"
)

var ctx = context.Background()

type testEnv struct {
	DB         *sqlite.DB
	Users      port.UserRepository
	Categories port.CategoryRepository
	Tokens     port.TokenCodec
	Mailer     *RecordingSender
	Router     *gin.Engine
}

func newTestEnv() *testEnv {
	db := InitTestDB()

	env := &testEnv{
		DB:         db,
		Users:      repository.NewUserRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Tokens:     token.NewJWTCodec("handler-test-secret-0123456789abcdef", time.Hour),
		Mailer:     &RecordingSender{},
	}

	authSvc := service.NewAuthService(env.Users, env.Tokens, env.Mailer)
	userSvc := service.NewUserService(env.Users)
	categorySvc := service.NewCategoryService(env.Categories)

	env.Router = routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler:     handler.NewAuthHandler(authSvc),
		UserHandler:     handler.NewUserHandler(userSvc),
		CategoryHandler: handler.NewCategoryHandler(categorySvc, config.NewNopLogger()),
		HealthHandler:   handler.NewHealthHandler(db.PingContext),
		Tokens:          env.Tokens,
		Users:           env.Users,
	})

	return env
}

// createUser saves an enabled user and returns it with a bearer token.
func (e *testEnv) createUser(data ...map[string]any) (domain.User, string) {
	overrides := map[string]any{"Enabled": true}
	for _, d := range data {
		for k, v := range d {
			overrides[k] = v
		}
	}

	user, err := e.Users.Save(ctx, factory.NewUser(overrides))
	if err != nil {
		panic(err)
	}

	jwtToken, err := e.Tokens.Issue(user.Email)
	if err != nil {
		panic(err)
	}

	return user, jwtToken
}

func (e *testEnv) perform(method, path, body, jwtToken string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if jwtToken != "" {
		req.Header.Set("Authorization", "Bearer "+jwtToken)
	}

	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var data T
	body, _ := io.ReadAll(rr.Body)
	_ = json.Unmarshal(body, &data)
	return data
}

// dataOf unwraps the {"data": ...} envelope.
func dataOf[T any](rr *httptest.ResponseRecorder) T {
	return decode[struct {
		Data T `json:"data"`
	}](rr).Data
}
