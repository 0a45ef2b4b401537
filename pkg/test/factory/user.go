package factory

import (
	"strings"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/util"
)

const DefaultPassword = "12345678"

type userSeed struct {
	Name  string
	Email string
}

// NewUser builds an unsaved user with random name and email. Overrides are
// keyed by domain.User field name; Password is accepted as plain text.
func NewUser(customData ...map[string]any) domain.User {
	data := map[string]any{}
	for _, custom := range customData {
		for k, v := range custom {
			data[k] = v
		}
	}

	seedData := map[string]any{}
	for _, key := range []string{"Name", "Email"} {
		if v, ok := data[key]; ok {
			seedData[key] = v
		}
	}

	seed := fab.New(userSeed{}).Build(seedData)

	if !strings.Contains(seed.Email, "@") {
		seed.Email = strings.ToLower(uuid.NewString()[:8]) + "@example.com"
	}
	if len(seed.Name) < 5 {
		seed.Name = "User " + uuid.NewString()[:8]
	}

	password := DefaultPassword
	if v, ok := data["Password"].(string); ok {
		password = v
	}

	encrypted, err := util.HashPassword(password)
	if err != nil {
		panic(err)
	}

	now := time.Now()
	user := domain.User{
		UUID:              uuid.New(),
		Name:              seed.Name,
		Email:             seed.Email,
		EncryptedPassword: encrypted,
		Role:              domain.RoleUser,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if v, ok := data["Enabled"].(bool); ok {
		user.Enabled = v
	}
	if v, ok := data["Role"].(domain.UserRole); ok {
		user.Role = v
	}
	if v, ok := data["CreatedAt"].(time.Time); ok {
		user.CreatedAt = v
	}
	if v, ok := data["VerificationCode"].(string); ok {
		expiresAt := now.Add(15 * time.Minute)
		if exp, ok := data["CodeExpiresAt"].(time.Time); ok {
			expiresAt = exp
		}
		user.SetPendingCode(v, expiresAt)
	}

	return user
}
