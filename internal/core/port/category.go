package port

import (
	"context"

	"blogapp/internal/core/domain"
)

type CategoryRepository interface {
	ListWithPostCount(ctx context.Context) ([]domain.Category, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	CountPosts(ctx context.Context, categoryID int) (int64, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	DeleteCategory(ctx context.Context, uuid string) error
}
