package port

import (
	"context"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/model/response"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	VerifyAccount(ctx context.Context, req *request.VerifyRequest) (*response.AuthResponse, error)
	ResendVerification(ctx context.Context, email string) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*response.AuthResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) (*response.AuthResponse, error)
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context) (*response.AuthResponse, error)
}

// TokenCodec issues and checks signed bearer tokens whose subject is the
// user's email.
type TokenCodec interface {
	Issue(subject string) (string, error)
	Verify(token string, expectedSubject string) bool
	Subject(token string) (string, error)
}

type NotificationSender interface {
	SendVerificationEmail(ctx context.Context, user domain.User) error
	SendResetPasswordEmail(ctx context.Context, user domain.User) error
}
