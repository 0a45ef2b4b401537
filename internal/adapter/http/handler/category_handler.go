package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "blogapp/internal/adapter/http/helper"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/model/response"
	"blogapp/internal/core/port"
	"blogapp/pkg/config"
	. "blogapp/pkg/tracing"
)

type CategoryHandler struct {
	svc    port.CategoryService
	Logger *config.LokiLogger
}

func NewCategoryHandler(svc port.CategoryService, logger *config.LokiLogger) *CategoryHandler {
	return &CategoryHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.category.ListCategories", []attribute.KeyValue{
		attribute.String("handler.operation", "ListCategories"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	categories, err := h.svc.ListCategories(ctx)
	if err != nil {
		AddSpanError(span, err)
		h.Logger.Error(ctx, "Failed to list categories", zap.Error(err))
		SendDomainError(c, err)
		return
	}

	data := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		data = append(data, response.NewCategoryResponse(category))
	}

	span.SetAttributes(attribute.Int("category.count", len(data)))

	SendSuccess(c, http.StatusOK, data)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	params, ok := bindAndValidate[request.CategoryRequest](c)
	if !ok {
		return
	}

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.category.CreateCategory", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateCategory"),
		attribute.String("category.name", params.Name),
	})
	defer span.End()

	category, err := h.svc.CreateCategory(ctx, params.Name)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.Logger.Info(ctx, "Category created", zap.String("category_id", category.UUID.String()), zap.String("name", category.Name))

	SendSuccess(c, http.StatusCreated, response.NewCategoryResponse(category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.category.DeleteCategory", []attribute.KeyValue{
		attribute.String("handler.operation", "DeleteCategory"),
		attribute.String("category.id", id),
	})
	defer span.End()

	if err := h.svc.DeleteCategory(ctx, id); err != nil {
		AddSpanError(span, err)

		if domain.IsKind(err, domain.KindConflict) {
			h.Logger.Warn(ctx, "Category still has posts", zap.String("category_id", id))
		}

		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
