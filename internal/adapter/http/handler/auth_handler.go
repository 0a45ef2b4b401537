package handler

import (
	"github.com/gin-gonic/gin"

	. "blogapp/internal/adapter/http/helper"
	. "blogapp/internal/adapter/http/validation"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/model/response"
	"blogapp/internal/core/port"
	"blogapp/internal/core/util"
)

const msgInvalidBody = "Invalid request parameters"

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	params, ok := bindAndValidate[request.RegisterRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.Register(c.Request.Context(), &params))
}

func (a *AuthHandler) VerifyAccount(c *gin.Context) {
	params, ok := bindAndValidate[request.VerifyRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.VerifyAccount(c.Request.Context(), &params))
}

func (a *AuthHandler) ResendVerification(c *gin.Context) {
	params, ok := bindAndValidate[request.ResendVerificationRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.ResendVerification(c.Request.Context(), params.Email))
}

func (a *AuthHandler) Login(c *gin.Context) {
	params, ok := bindAndValidate[request.LoginRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.Login(c.Request.Context(), &params))
}

// ForgotPassword takes the email from the query string.
func (a *AuthHandler) ForgotPassword(c *gin.Context) {
	email := c.Query("email")

	if err := Validator.Var(email, "required,email"); err != nil {
		SendBadRequestError(c, "email must be a valid email address")
		return
	}

	a.reply(c)(a.svc.ForgotPassword(c.Request.Context(), email))
}

func (a *AuthHandler) ResetPassword(c *gin.Context) {
	params, ok := bindAndValidate[request.ResetPasswordRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.ResetPassword(c.Request.Context(), &params))
}

func (a *AuthHandler) RefreshToken(c *gin.Context) {
	params, ok := bindAndValidate[request.RefreshTokenRequest](c)
	if !ok {
		return
	}

	a.reply(c)(a.svc.RefreshToken(c.Request.Context(), &params))
}

func (a *AuthHandler) Logout(c *gin.Context) {
	a.reply(c)(a.svc.Logout(c.Request.Context()))
}

func (a *AuthHandler) reply(c *gin.Context) func(res *response.AuthResponse, err error) {
	return func(res *response.AuthResponse, err error) {
		if err != nil {
			SendDomainError(c, err)
			return
		}

		SendAuthResponse(c, res)
	}
}

// bindAndValidate writes the 400 response itself and reports whether the
// handler may continue.
func bindAndValidate[T any](c *gin.Context) (T, bool) {
	params, err := util.ParamsToMap[T](c)

	if err != nil {
		SendBadRequestError(c, msgInvalidBody)
		return params, false
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return params, false
	}

	return params, true
}
