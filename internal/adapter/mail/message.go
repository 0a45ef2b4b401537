package mail

import (
	"errors"
	"fmt"
	"time"

	"blogapp/internal/core/domain"
)

const (
	TemplateVerification  = "verification"
	TemplateResetPassword = "reset_password"
)

var errNoPendingCode = errors.New("user has no pending code")

type Message struct {
	Template string
	To       string
	Subject  string
	Body     string
}

func verificationMessage(user domain.User, ttl time.Duration) (Message, error) {
	if user.VerificationCode == nil {
		return Message{}, errNoPendingCode
	}

	return Message{
		Template: TemplateVerification,
		To:       user.Email,
		Subject:  "Email Verification",
		Body: fmt.Sprintf("Your verification code is: %s\nThis code will expire in %d minutes.",
			*user.VerificationCode, int(ttl.Minutes())),
	}, nil
}

func resetPasswordMessage(user domain.User, ttl time.Duration) (Message, error) {
	if user.VerificationCode == nil {
		return Message{}, errNoPendingCode
	}

	return Message{
		Template: TemplateResetPassword,
		To:       user.Email,
		Subject:  "Password Reset Request",
		Body: fmt.Sprintf("Your password reset code is: %s\nThis code will expire in %d minutes.",
			*user.VerificationCode, int(ttl.Minutes())),
	}, nil
}
