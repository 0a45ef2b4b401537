package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "blogapp/internal/adapter/http/helper"
	"blogapp/internal/adapter/http/middleware"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/model/response"
	"blogapp/internal/core/port"
	"blogapp/internal/core/service"
	"blogapp/internal/core/util"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, size := service.NormalizePage(
		util.QueryInt(c, "page", 0),
		util.QueryInt(c, "size", service.DefaultPageSize),
	)

	users, total, err := h.svc.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		SendDomainError(c, err)
		return
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, response.NewUserResponse(user))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(data, page, size, total))
}

func (h *UserHandler) CountUsers(c *gin.Context) {
	count, err := h.svc.CountUsers(c.Request.Context())
	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, gin.H{"count": count})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	h.sendUser(c)(h.svc.GetUserByUUID(c.Request.Context(), c.Param("id")))
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	h.sendUser(c)(h.svc.GetUserByEmail(c.Request.Context(), c.Param("email")))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	params, ok := bindAndValidate[request.UserRequest](c)
	if !ok {
		return
	}

	h.sendUser(c)(h.svc.UpdateUser(c.Request.Context(), c.Param("id"), &params))
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	params, ok := bindAndValidate[request.RoleRequest](c)
	if !ok {
		return
	}

	h.sendUser(c)(h.svc.UpdateUserRole(c.Request.Context(), c.Param("id"), params.Role))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeleteUserByEmail(c *gin.Context) {
	if err := h.svc.DeleteUserByEmail(c.Request.Context(), c.Param("email")); err != nil {
		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) sendUser(c *gin.Context) func(user domain.User, err error) {
	return func(user domain.User, err error) {
		if err != nil {
			SendDomainError(c, err)
			return
		}

		SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
	}
}
