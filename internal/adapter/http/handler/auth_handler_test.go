package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"blogapp/internal/core/model/response"
)

type AuthHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *AuthHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) register(email string) {
	body := fmt.Sprintf(`{"name": "Alice Doe", "email": %q, "password": "pw123456", "confirmPassword": "pw123456"}`, email)
	rr := s.env.perform("POST", "/api/v1/auth/register", body, "")
	Expect(rr.Code).To(Equal(http.StatusCreated))
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	rr := s.env.perform("POST", "/api/v1/auth/register",
		`{"name": "Alice Doe", "email": "a@x.io", "password": "pw123456", "confirmPassword": "pw123456"}`, "")

	Expect(rr.Code).To(Equal(http.StatusCreated))
	Expect(rr.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

	data := decode[response.AuthResponse](rr)
	Expect(data.StatusCode).To(Equal(http.StatusCreated))
	Expect(data.Token).To(BeEmpty())

	sent, ok := s.env.Mailer.Last()
	Expect(ok).To(BeTrue())
	Expect(sent.Email).To(Equal("a@x.io"))
}

func (s *AuthHandlerSuite) TestRegisterValidationError() {
	rr := s.env.perform("POST", "/api/v1/auth/register",
		`{"name": "Al", "email": "invalid-email", "password": "123", "confirmPassword": "123"}`, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := decode[response.ErrorResponse](rr)
	Expect(data.Status).To(Equal(http.StatusBadRequest))
	Expect(data.Code).To(Equal("VALIDATION_ERROR"))

	fields := []string{}
	for _, fe := range data.FieldErrors {
		fields = append(fields, fe.Field)
	}
	Expect(fields).To(ConsistOf("name", "email", "password"))
	Expect(s.env.Mailer.Sent).To(BeEmpty())
}

func (s *AuthHandlerSuite) TestRegisterMalformedBody() {
	rr := s.env.perform("POST", "/api/v1/auth/register", `{"name":`, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Message).To(Equal("Invalid request parameters"))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateAndMismatch() {
	s.register("a@x.io")

	rr := s.env.perform("POST", "/api/v1/auth/register",
		`{"name": "Alice Doe", "email": "a@x.io", "password": "pw123456", "confirmPassword": "pw123456"}`, "")
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("DUPLICATE_EMAIL"))

	rr = s.env.perform("POST", "/api/v1/auth/register",
		`{"name": "Bob Smith", "email": "b@x.io", "password": "pw123456", "confirmPassword": "pw654321"}`, "")
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("PASSWORD_MISMATCH"))
}

func (s *AuthHandlerSuite) TestVerifyThenLogin() {
	s.register("a@x.io")

	rr := s.env.perform("POST", "/api/v1/auth/login", `{"email": "a@x.io", "password": "pw123456"}`, "")
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("ACCOUNT_NOT_VERIFIED"))

	sent, _ := s.env.Mailer.Last()
	rr = s.env.perform("POST", "/api/v1/auth/verify",
		fmt.Sprintf(`{"email": "a@x.io", "verificationCode": %q}`, sent.Code), "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	verified := decode[response.AuthResponse](rr)
	Expect(verified.Message).To(Equal("Account verified successfully"))
	Expect(s.env.Tokens.Verify(verified.Token, "a@x.io")).To(BeTrue())

	rr = s.env.perform("POST", "/api/v1/auth/login", `{"email": "a@x.io", "password": "pw123456"}`, "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.AuthResponse](rr).Token).NotTo(BeEmpty())
}

func (s *AuthHandlerSuite) TestVerifyRejectsMalformedCode() {
	rr := s.env.perform("POST", "/api/v1/auth/verify", `{"email": "a@x.io", "verificationCode": "12ab"}`, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).FieldErrors[0].Field).To(Equal("verificationCode"))
}

func (s *AuthHandlerSuite) TestVerifyWrongCode() {
	s.register("a@x.io")
	sent, _ := s.env.Mailer.Last()
	wrong := "100000"
	if sent.Code == wrong {
		wrong = "100001"
	}

	rr := s.env.perform("POST", "/api/v1/auth/verify",
		fmt.Sprintf(`{"email": "a@x.io", "verificationCode": %q}`, wrong), "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("INVALID_CODE"))
}

func (s *AuthHandlerSuite) TestLoginInvalidCredentials() {
	rr := s.env.perform("POST", "/api/v1/auth/login", `{"email": "ghost@x.io", "password": "wrongpassword"}`, "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	data := decode[response.ErrorResponse](rr)
	Expect(data.Code).To(Equal("BAD_CREDENTIALS"))
	Expect(data.Message).To(Equal("Invalid email or password"))
}

func (s *AuthHandlerSuite) TestResendVerification() {
	s.register("a@x.io")

	rr := s.env.perform("POST", "/api/v1/auth/resend-verification", `{"email": "a@x.io"}`, "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(s.env.Mailer.Sent).To(HaveLen(2))

	rr = s.env.perform("POST", "/api/v1/auth/resend-verification", `{"email": "ghost@x.io"}`, "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("USER_NOT_FOUND"))
}

func (s *AuthHandlerSuite) TestForgotAndResetPassword() {
	s.env.createUser(map[string]any{"Email": "a@x.io"})

	rr := s.env.perform("POST", "/api/v1/auth/forgot-password?email=a@x.io", "", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	sent, _ := s.env.Mailer.Last()
	Expect(sent.Kind).To(Equal("reset"))

	rr = s.env.perform("POST", "/api/v1/auth/reset-password",
		fmt.Sprintf(`{"email": "a@x.io", "code": %q, "newPassword": "newpass123", "confirmPassword": "newpass123"}`, sent.Code), "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.AuthResponse](rr).Message).To(Equal("Password reset successfully"))

	rr = s.env.perform("POST", "/api/v1/auth/login", `{"email": "a@x.io", "password": "newpass123"}`, "")
	Expect(rr.Code).To(Equal(http.StatusOK))
}

func (s *AuthHandlerSuite) TestForgotPasswordRequiresEmail() {
	rr := s.env.perform("POST", "/api/v1/auth/forgot-password", "", "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *AuthHandlerSuite) TestRefreshToken() {
	_, jwtToken := s.env.createUser(map[string]any{"Email": "a@x.io"})

	rr := s.env.perform("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"email": "a@x.io", "token": %q}`, jwtToken), "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.AuthResponse](rr).Token).NotTo(BeEmpty())

	rr = s.env.perform("POST", "/api/v1/auth/refresh", `{"email": "a@x.io"}`, "")
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("MISSING_FIELD"))

	rr = s.env.perform("POST", "/api/v1/auth/refresh", `{"email": "a@x.io", "token": "garbage"}`, "")
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(decode[response.ErrorResponse](rr).Code).To(Equal("INVALID_TOKEN"))
}

func (s *AuthHandlerSuite) TestLogout() {
	rr := s.env.perform("GET", "/api/v1/auth/logout", "", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.AuthResponse](rr).Message).To(Equal("Logout successful"))
}
