package repository

import (
	"context"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	database "blogapp/internal/adapter/database/postgres"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) port.CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row, withCount bool) (domain.Category, error) {
	var (
		category domain.Category
		uid      string
	)

	dest := []any{&category.ID, &uid, &category.Name, &category.CreatedAt, &category.UpdatedAt}
	if withCount {
		dest = append(dest, &category.PostCount)
	}

	if err := row.Scan(dest...); err != nil {
		return domain.Category{}, database.NotFound(err)
	}

	parsed, err := uuid.Parse(uid)
	if err != nil {
		return domain.Category{}, err
	}
	category.UUID = parsed

	return category, nil
}

func (cr *CategoryRepository) ListWithPostCount(ctx context.Context) ([]domain.Category, error) {
	query, args, err := cr.db.QueryBuilder.
		Select("c.id", "c.uuid::text", "c.name", "c.created_at", "c.updated_at", "COUNT(p.id)").
		From("categories c").
		LeftJoin("posts p ON p.category_id = c.id AND p.status = ?", string(domain.PostPublished)).
		GroupBy("c.id").
		OrderBy("c.name ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := cr.db.Query(ctx, query, args...)
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
	if _, err := uuid.Parse(uid); err != nil {
		return domain.Category{}, domain.ErrNotFound
	}

	query, args, err := cr.db.QueryBuilder.
		Select("id", "uuid::text", "name", "created_at", "updated_at").
		From("categories").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	return scanCategory(cr.db.QueryRow(ctx, query, args...), false)
}

func (cr *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query, args, err := cr.db.QueryBuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("categories").
		Where(sq.Eq{"lower(name)": strings.ToLower(name)}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, err
	}

	var exists bool
	err = cr.db.QueryRow(ctx, query, args...).Scan(&exists)

	return exists, err
}

func (cr *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	stmt, args, err := cr.db.QueryBuilder.Insert("categories").
		Columns("uuid", "name", "created_at", "updated_at").
		Values(category.UUID.String(), category.Name, category.CreatedAt, category.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	if err := cr.db.QueryRow(ctx, stmt, args...).Scan(&category.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Category{}, domain.WrapError(domain.KindValidation, "Category with name "+category.Name+" already exists", err)
		}
		slog.Error("Error creating category", "error", err)
		return domain.Category{}, err
	}

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
	err = cr.db.QueryRow(ctx, query, args...).Scan(&count)

	return count, err
}

func (cr *CategoryRepository) DeleteByUUID(ctx context.Context, uid string) error {
	if _, err := uuid.Parse(uid); err != nil {
		return nil
	}

	stmt, args, err := cr.db.QueryBuilder.Delete("categories").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := cr.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error deleting category", "error", err)
		return err
	}

	return nil
}
