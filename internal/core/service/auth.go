package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/model/response"
	"blogapp/internal/core/port"
	"blogapp/internal/core/telemetry"
	"blogapp/internal/core/util"
)

const DefaultCodeTTL = 15 * time.Minute

const (
	msgRegistered          = "User registered successfully. Please verify your email to activate your account."
	msgAlreadyVerified     = "Account already verified"
	msgVerified            = "Account verified successfully"
	msgCodeResent          = "Verification code resent successfully"
	msgLoggedIn            = "Login successful"
	msgResetCodeSent       = "Password reset code sent successfully"
	msgPasswordReset       = "Password reset successfully"
	msgTokenRefreshed      = "Token refreshed successfully"
	msgLoggedOut           = "Logout successful"
	msgBadCredentials      = "Invalid email or password"
	msgNotEnabled          = "User is not enabled. Please verify your account first."
	msgInvalidCode         = "Invalid verification code"
	msgCodeExpired         = "Verification code expired, please request a new one"
	msgInvalidResetCode    = "Invalid password reset code"
	msgResetCodeExpired    = "Password reset code expired, please request a new one"
	msgPasswordMismatch    = "Password and confirm password do not match"
	msgNewPasswordMismatch = "New password and confirm password do not match"
	msgMissingRefresh      = "Email and token must be provided"
	msgEmailSendFailed     = "Failed to send email"
)

type AuthService struct {
	repo    port.UserRepository
	tokens  port.TokenCodec
	mailer  port.NotificationSender
	probe   port.Telemetry
	codeTTL time.Duration
	now     func() time.Time
}

type AuthOption func(*AuthService)

func WithCodeTTL(ttl time.Duration) AuthOption {
	return func(as *AuthService) {
		as.codeTTL = ttl
	}
}

func WithClock(now func() time.Time) AuthOption {
	return func(as *AuthService) {
		as.now = now
	}
}

func WithTelemetry(probe port.Telemetry) AuthOption {
	return func(as *AuthService) {
		as.probe = probe
	}
}

func NewAuthService(repo port.UserRepository, tokens port.TokenCodec, mailer port.NotificationSender, opts ...AuthOption) *AuthService {
	as := &AuthService{
		repo:    repo,
		tokens:  tokens,
		mailer:  mailer,
		probe:   telemetry.NewNoOpProbe(),
		codeTTL: DefaultCodeTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(as)
	}

	return as
}

func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	return as.run(ctx, "register", req.Email, func(ctx context.Context) (*response.AuthResponse, error) {
		exists, err := as.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, domain.WrapError(domain.KindUnexpected, "could not check email", err)
		}

		if exists {
			return nil, domain.NewError(domain.KindDuplicateEmail, "Email already in use")
		}

		if req.Password != req.ConfirmPassword {
			return nil, domain.NewError(domain.KindPasswordMismatch, msgPasswordMismatch)
		}

		role := domain.RoleUser
		if strings.TrimSpace(req.Role) != "" {
			if role, err = domain.ParseUserRole(req.Role); err != nil {
				return nil, err
			}
		}

		encrypted, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, domain.WrapError(domain.KindUnexpected, "error creating encrypted password", err)
		}

		now := as.now()
		user := domain.User{
			UUID:              uuid.New(),
			Name:              req.Name,
			Email:             req.Email,
			EncryptedPassword: encrypted,
			Enabled:           false,
			Role:              role,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := as.assignCode(&user, now); err != nil {
			return nil, err
		}

		saved, err := as.repo.Save(ctx, user)
		if err != nil {
			return nil, unexpected("could not save user", err)
		}

		if err := as.mailer.SendVerificationEmail(ctx, saved); err != nil {
			// Registration is all or nothing: drop the row so the email can be
			// registered again.
			if delErr := as.repo.Delete(ctx, saved); delErr != nil {
				slog.Error("Auth#Register", "rollback", delErr)
			}
			return nil, domain.WrapError(domain.KindUnexpected, msgEmailSendFailed, err)
		}

		as.probe.RecordBusinessEvent(ctx, "user_registered", "user", saved.UUID.String(), nil)

		return &response.AuthResponse{StatusCode: http.StatusCreated, Message: msgRegistered}, nil
	})
}

func (as *AuthService) VerifyAccount(ctx context.Context, req *request.VerifyRequest) (*response.AuthResponse, error) {
	return as.run(ctx, "verify_account", req.Email, func(ctx context.Context) (*response.AuthResponse, error) {
		user, err := as.findUser(ctx, req.Email)
		if err != nil {
			return nil, err
		}

		if user.Enabled {
			return as.withToken(user, msgAlreadyVerified)
		}

		now := as.now()
		if !user.CodeMatches(req.VerificationCode) {
			return nil, domain.NewError(domain.KindInvalidCode, msgInvalidCode)
		}

		if user.CodeExpired(now) {
			return nil, domain.NewError(domain.KindCodeExpired, msgCodeExpired)
		}

		user.Enabled = true
		user.ClearPendingCode()
		user.UpdatedAt = now

		if user, err = as.repo.Save(ctx, user); err != nil {
			return nil, unexpected("could not save user", err)
		}

		as.probe.RecordBusinessEvent(ctx, "user_verified", "user", user.UUID.String(), nil)

		return as.withToken(user, msgVerified)
	})
}

func (as *AuthService) ResendVerification(ctx context.Context, email string) (*response.AuthResponse, error) {
	return as.run(ctx, "resend_verification", email, func(ctx context.Context) (*response.AuthResponse, error) {
		user, err := as.findUser(ctx, email)
		if err != nil {
			return nil, err
		}

		if user.Enabled {
			return &response.AuthResponse{StatusCode: http.StatusOK, Message: msgAlreadyVerified}, nil
		}

		if err := as.issueCode(ctx, &user, as.mailer.SendVerificationEmail); err != nil {
			return nil, err
		}

		return &response.AuthResponse{StatusCode: http.StatusOK, Message: msgCodeResent}, nil
	})
}

func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	return as.run(ctx, "login", req.Email, func(ctx context.Context) (*response.AuthResponse, error) {
		user, err := as.repo.GetByEmail(ctx, req.Email)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.KindBadCredentials, msgBadCredentials)
		}
		if err != nil {
			return nil, domain.WrapError(domain.KindUnexpected, "could not load user", err)
		}

		if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
			return nil, domain.WrapError(domain.KindBadCredentials, msgBadCredentials, err)
		}

		if !user.Enabled {
			return nil, domain.NewError(domain.KindAccountNotVerified, msgNotEnabled)
		}

		return as.withToken(user, msgLoggedIn)
	})
}

// ForgotPassword only serves verified accounts; an unverified account still
// has its verification code pending.
func (as *AuthService) ForgotPassword(ctx context.Context, email string) (*response.AuthResponse, error) {
	return as.run(ctx, "forgot_password", email, func(ctx context.Context) (*response.AuthResponse, error) {
		user, err := as.findUser(ctx, email)
		if err != nil {
			return nil, err
		}

		if !user.Enabled {
			return nil, domain.NewError(domain.KindAccountNotVerified, msgNotEnabled)
		}

		if err := as.issueCode(ctx, &user, as.mailer.SendResetPasswordEmail); err != nil {
			return nil, err
		}

		return &response.AuthResponse{StatusCode: http.StatusOK, Message: msgResetCodeSent}, nil
	})
}

func (as *AuthService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) (*response.AuthResponse, error) {
	return as.run(ctx, "reset_password", req.Email, func(ctx context.Context) (*response.AuthResponse, error) {
		user, err := as.findUser(ctx, req.Email)
		if err != nil {
			return nil, err
		}

		if !user.Enabled {
			return nil, domain.NewError(domain.KindAccountNotVerified, msgNotEnabled)
		}

		now := as.now()
		if !user.CodeMatches(req.Code) {
			return nil, domain.NewError(domain.KindInvalidCode, msgInvalidResetCode)
		}

		if user.CodeExpired(now) {
			return nil, domain.NewError(domain.KindCodeExpired, msgResetCodeExpired)
		}

		if req.NewPassword != req.ConfirmPassword {
			return nil, domain.NewError(domain.KindPasswordMismatch, msgNewPasswordMismatch)
		}

		encrypted, err := util.HashPassword(req.NewPassword)
		if err != nil {
			return nil, domain.WrapError(domain.KindUnexpected, "error creating encrypted password", err)
		}

		user.EncryptedPassword = encrypted
		user.ClearPendingCode()
		user.UpdatedAt = now

		if _, err := as.repo.Save(ctx, user); err != nil {
			return nil, unexpected("could not save user", err)
		}

		as.probe.RecordBusinessEvent(ctx, "password_reset", "user", user.UUID.String(), nil)

		return &response.AuthResponse{StatusCode: http.StatusOK, Message: msgPasswordReset}, nil
	})
}

// RefreshToken reissues a token only while the presented one is still valid.
func (as *AuthService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	return as.run(ctx, "refresh_token", req.Email, func(ctx context.Context) (*response.AuthResponse, error) {
		if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Token) == "" {
			return nil, domain.NewError(domain.KindMissingField, msgMissingRefresh)
		}

		user, err := as.findUser(ctx, req.Email)
		if err != nil {
			return nil, err
		}

		if !as.tokens.Verify(req.Token, user.Email) {
			return nil, domain.NewError(domain.KindInvalidToken, "Invalid token")
		}

		return as.withToken(user, msgTokenRefreshed)
	})
}

// Logout is stateless; clients drop their token.
func (as *AuthService) Logout(ctx context.Context) (*response.AuthResponse, error) {
	return &response.AuthResponse{StatusCode: http.StatusOK, Message: msgLoggedOut}, nil
}

func (as *AuthService) run(ctx context.Context, operation string, email string, fn func(context.Context) (*response.AuthResponse, error)) (*response.AuthResponse, error) {
	ctx, span := as.probe.StartServiceSpan(ctx, "auth", operation, map[string]interface{}{"user.email": email})
	defer span.End()

	start := time.Now()
	res, err := fn(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		slog.Warn("Auth#"+operation, "email", email, "kind", domain.KindOf(err).String(), "error", err)
	} else {
		span.SetStatus("ok", "")
	}

	as.probe.RecordServiceOperation(ctx, "auth", operation, time.Since(start), err)

	return res, err
}

func (as *AuthService) findUser(ctx context.Context, email string) (domain.User, error) {
	user, err := as.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.NewError(domain.KindUserNotFound, "User not found with email: "+email)
	}
	if err != nil {
		return domain.User{}, domain.WrapError(domain.KindUnexpected, "could not load user", err)
	}
	return user, nil
}

func (as *AuthService) assignCode(user *domain.User, now time.Time) error {
	code, err := util.GenerateVerificationCode()
	if err != nil {
		return domain.WrapError(domain.KindUnexpected, "could not generate code", err)
	}

	user.SetPendingCode(code, now.Add(as.codeTTL))
	user.UpdatedAt = now
	return nil
}

// issueCode replaces the pending code, persists it, then sends it.
func (as *AuthService) issueCode(ctx context.Context, user *domain.User, send func(context.Context, domain.User) error) error {
	if err := as.assignCode(user, as.now()); err != nil {
		return err
	}

	saved, err := as.repo.Save(ctx, *user)
	if err != nil {
		return unexpected("could not save user", err)
	}

	if err := send(ctx, saved); err != nil {
		return domain.WrapError(domain.KindUnexpected, msgEmailSendFailed, err)
	}

	return nil
}

func (as *AuthService) withToken(user domain.User, message string) (*response.AuthResponse, error) {
	token, err := as.tokens.Issue(user.Email)
	if err != nil {
		return nil, domain.WrapError(domain.KindUnexpected, "could not issue token", err)
	}

	return &response.AuthResponse{StatusCode: http.StatusOK, Message: message, Token: token}, nil
}

// unexpected keeps domain errors raised by the store (such as a duplicate
// email) and wraps everything else.
func unexpected(message string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.WrapError(domain.KindUnexpected, message, err)
}
