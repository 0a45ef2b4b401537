package repository

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	database "blogapp/internal/adapter/database/postgres"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

var userColumns = []string{
	"id", "uuid::text", "name", "email", "encrypted_password", "enabled", "role",
	"verification_code", "code_expires_at", "created_at", "updated_at",
}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		user domain.User
		uid  string
		role string
	)

	err := row.Scan(
		&user.ID, &uid, &user.Name, &user.Email, &user.EncryptedPassword, &user.Enabled, &role,
		&user.VerificationCode, &user.CodeExpiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, database.NotFound(err)
	}

	user.UUID, err = uuid.Parse(uid)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.UserRole(role)

	return user, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (ur *UserRepository) getOne(ctx context.Context, q querier, where sq.Eq) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return scanUser(q.QueryRow(ctx, query, args...))
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	if _, err := uuid.Parse(uid); err != nil {
		return domain.User{}, domain.ErrNotFound
	}
	return ur.getOne(ctx, ur.db, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, ur.db, sq.Eq{"email": email})
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := ur.db.QueryBuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(sq.Eq{"email": email}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, err
	}

	var exists bool
	err = ur.db.QueryRow(ctx, query, args...).Scan(&exists)

	return exists, err
}

func (ur *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}
	defer tx.Rollback(ctx)

	var builder interface {
		ToSql() (string, []interface{}, error)
	}

	if user.ID == 0 {
		builder = ur.db.QueryBuilder.Insert("users").
			Columns("uuid", "name", "email", "encrypted_password", "enabled", "role",
				"verification_code", "code_expires_at", "created_at", "updated_at").
			Values(user.UUID.String(), user.Name, user.Email, user.EncryptedPassword, user.Enabled, string(user.Role),
				user.VerificationCode, user.CodeExpiresAt, user.CreatedAt, user.UpdatedAt)
	} else {
		builder = ur.db.QueryBuilder.Update("users").
			SetMap(map[string]interface{}{
				"name":               user.Name,
				"email":              user.Email,
				"encrypted_password": user.EncryptedPassword,
				"enabled":            user.Enabled,
				"role":               string(user.Role),
				"verification_code":  user.VerificationCode,
				"code_expires_at":    user.CodeExpiresAt,
				"updated_at":         user.UpdatedAt,
			}).
			Where(sq.Eq{"id": user.ID})
	}

	stmt, args, err := builder.ToSql()
	if err != nil {
		return domain.User{}, err
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, domain.WrapError(domain.KindDuplicateEmail, "Email already in use", err)
		}
		slog.Error("Error saving user", "error", err)
		return domain.User{}, err
	}

	saved, err := ur.getOne(ctx, tx, sq.Eq{"uuid": user.UUID.String()})
	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit(ctx)
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	if _, err := uuid.Parse(uid); err != nil {
		return domain.ErrNotFound
	}
	return ur.delete(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) Delete(ctx context.Context, user domain.User) error {
	return ur.delete(ctx, sq.Eq{"id": user.ID})
}

func (ur *UserRepository) delete(ctx context.Context, where sq.Eq) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").Where(where).ToSql()
	if err != nil {
		return err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)
	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (ur *UserRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := ur.db.QueryBuilder.Select("COUNT(1)").From("users").ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = ur.db.QueryRow(ctx, query, args...).Scan(&count)

	return count, err
}

func (ur *UserRepository) List(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
