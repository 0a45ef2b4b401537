package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

type CategoryService struct {
	repo port.CategoryRepository
}

func NewCategoryService(repo port.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (cs *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := cs.repo.ListWithPostCount(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.KindUnexpected, "could not list categories", err)
	}
	return categories, nil
}

func (cs *CategoryService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)

	exists, err := cs.repo.ExistsByName(ctx, name)
	if err != nil {
		return domain.Category{}, domain.WrapError(domain.KindUnexpected, "could not check category", err)
	}
	if exists {
		return domain.Category{}, domain.NewError(domain.KindValidation, fmt.Sprintf("Category with name %s already exists", name))
	}

	now := time.Now()
	category, err := cs.repo.Create(ctx, domain.Category{
		UUID:      uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Category{}, unexpected("could not create category", err)
	}

	return category, nil
}

// DeleteCategory is a no-op for unknown ids and refuses categories that
// still have posts of any status.
func (cs *CategoryService) DeleteCategory(ctx context.Context, uid string) error {
	category, err := cs.repo.GetByUUID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return domain.WrapError(domain.KindUnexpected, "could not load category", err)
	}

	posts, err := cs.repo.CountPosts(ctx, category.ID)
	if err != nil {
		return domain.WrapError(domain.KindUnexpected, "could not count posts", err)
	}
	if posts > 0 {
		return domain.NewError(domain.KindConflict, fmt.Sprintf("Category with id %s has posts and cannot be deleted", uid))
	}

	if err := cs.repo.DeleteByUUID(ctx, uid); err != nil {
		return domain.WrapError(domain.KindUnexpected, "could not delete category", err)
	}
	return nil
}
