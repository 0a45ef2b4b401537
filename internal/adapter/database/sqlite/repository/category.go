package repository

import (
	"context"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"blogapp/internal/adapter/database/sqlite"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

type CategoryRepository struct {
	db *sqlite.DB
}

func NewCategoryRepository(db *sqlite.DB) port.CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row sqlite.Scanner, withCount bool) (domain.Category, error) {
	var (
		category domain.Category
		uid      string
	)

	dest := []any{&category.ID, &uid, &category.Name, &category.CreatedAt, &category.UpdatedAt}
	if withCount {
		dest = append(dest, &category.PostCount)
	}

	if err := row.Scan(dest...); err != nil {
		return domain.Category{}, sqlite.NotFound(err)
	}

	parsed, err := uuid.Parse(uid)
	if err != nil {
		return domain.Category{}, err
	}
	category.UUID = parsed

	return category, nil
}

// ListWithPostCount counts only published posts.
func (cr *CategoryRepository) ListWithPostCount(ctx context.Context) ([]domain.Category, error) {
	query, args, err := cr.db.QueryBuilder.
		Select("c.id", "c.uuid", "c.name", "c.created_at", "c.updated_at", "COUNT(p.id)").
		From("categories c").
		LeftJoin("posts p ON p.category_id = c.id AND p.status = ?", string(domain.PostPublished)).
		GroupBy("c.id", "c.uuid", "c.name", "c.created_at", "c.updated_at").
		OrderBy("c.name ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := cr.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("Error listing categories", "error", err)
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows, true)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (cr *CategoryRepository) GetByUUID(ctx context.Context, uid string) (domain.Category, error) {
	query, args, err := cr.db.QueryBuilder.
		Select("id", "uuid", "name", "created_at", "updated_at").
		From("categories").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	return scanCategory(cr.db.QueryRowContext(ctx, query, args...), false)
}

func (cr *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query, args, err := cr.db.QueryBuilder.Select("COUNT(1)").
		From("categories").
		Where(sq.Eq{"lower(name)": strings.ToLower(name)}).
		ToSql()

	if err != nil {
		return false, err
	}

	var count int
	if err := cr.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (cr *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	stmt, args, err := cr.db.QueryBuilder.Insert("categories").
		Columns("uuid", "name", "created_at", "updated_at").
		Values(category.UUID.String(), category.Name, category.CreatedAt, category.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	result, err := cr.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return domain.Category{}, domain.WrapError(domain.KindValidation, "Category with name "+category.Name+" already exists", err)
		}
		slog.Error("Error creating category", "error", err)
		return domain.Category{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}

	category.ID = int(id)
	return category, nil
}

func (cr *CategoryRepository) CountPosts(ctx context.Context, categoryID int) (int64, error) {
	query, args, err := cr.db.QueryBuilder.Select("COUNT(1)").
		From("posts").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()

	if err != nil {
		return 0, err
	}

	var count int64
	err = cr.db.QueryRowContext(ctx, query, args...).Scan(&count)

	return count, err
}

func (cr *CategoryRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, args, err := cr.db.QueryBuilder.Delete("categories").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := cr.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error deleting category", "error", err)
		return err
	}

	return nil
}
