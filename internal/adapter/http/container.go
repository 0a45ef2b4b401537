package http

import (
	"time"

	"blogapp/internal/adapter/http/handler"
	"blogapp/internal/adapter/http/routes"
	"blogapp/internal/core/port"
	"blogapp/internal/core/service"
	"blogapp/pkg/config"
)

// Dependencies are the adapters the container cannot build itself.
type Dependencies struct {
	Users      port.UserRepository
	Categories port.CategoryRepository
	Ping       handler.PingFunc
	Tokens     port.TokenCodec
	Mailer     port.NotificationSender
	Probe      port.Telemetry
	Logger     *config.LokiLogger
	CodeTTL    time.Duration
}

type Container struct {
	UserRepo     port.UserRepository
	CategoryRepo port.CategoryRepository
	Tokens       port.TokenCodec

	AuthUseCase     port.AuthService
	UserUseCase     port.UserService
	CategoryUseCase port.CategoryService

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	HealthHandler   *handler.HealthHandler
}

func NewContainer(deps Dependencies) *Container {
	authOpts := []service.AuthOption{}
	if deps.Probe != nil {
		authOpts = append(authOpts, service.WithTelemetry(deps.Probe))
	}
	if deps.CodeTTL > 0 {
		authOpts = append(authOpts, service.WithCodeTTL(deps.CodeTTL))
	}

	authSvc := service.NewAuthService(deps.Users, deps.Tokens, deps.Mailer, authOpts...)
	userSvc := service.NewUserService(deps.Users)
	categorySvc := service.NewCategoryService(deps.Categories)

	return &Container{
		UserRepo:     deps.Users,
		CategoryRepo: deps.Categories,
		Tokens:       deps.Tokens,

		AuthUseCase:     authSvc,
		UserUseCase:     userSvc,
		CategoryUseCase: categorySvc,

		AuthHandler:     handler.NewAuthHandler(authSvc),
		UserHandler:     handler.NewUserHandler(userSvc),
		CategoryHandler: handler.NewCategoryHandler(categorySvc, deps.Logger),
		HealthHandler:   handler.NewHealthHandler(deps.Ping),
	}
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler:     c.AuthHandler,
		UserHandler:     c.UserHandler,
		CategoryHandler: c.CategoryHandler,
		HealthHandler:   c.HealthHandler,
		Tokens:          c.Tokens,
		Users:           c.UserRepo,
	}
}
