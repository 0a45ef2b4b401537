package request

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=5,max=50"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role,omitempty"`
}

type VerifyRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Code            string `json:"code" validate:"required,len=6,numeric"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// RefreshTokenRequest fields are checked by the service so that a missing
// value is reported as a missing field rather than a validation failure.
type RefreshTokenRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type UserRequest struct {
	Name  string `json:"name" validate:"required,min=5,max=50"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50,alpha"`
}
