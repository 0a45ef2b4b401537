package repository

import (
	"context"
	"database/sql"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"blogapp/internal/adapter/database/sqlite"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

var userColumns = []string{
	"id", "uuid", "name", "email", "encrypted_password", "enabled", "role",
	"verification_code", "code_expires_at", "created_at", "updated_at",
}

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row sqlite.Scanner) (domain.User, error) {
	var (
		user      domain.User
		uid       string
		role      string
		code      sql.NullString
		expiresAt sql.NullTime
	)

	err := row.Scan(
		&user.ID, &uid, &user.Name, &user.Email, &user.EncryptedPassword, &user.Enabled, &role,
		&code, &expiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, sqlite.NotFound(err)
	}

	user.UUID, err = uuid.Parse(uid)
	if err != nil {
		return domain.User{}, err
	}

	user.Role = domain.UserRole(role)
	user.VerificationCode = sqlite.StringPtr(code)
	if expiresAt.Valid {
		user.CodeExpiresAt = &expiresAt.Time
	}

	return user, nil
}

func (ur *UserRepository) getOne(ctx context.Context, q sqlite.Querier, where sq.Eq) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return scanUser(q.QueryRowContext(ctx, query, args...))
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, ur.db, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, ur.db, sq.Eq{"email": email})
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := ur.db.QueryBuilder.Select("COUNT(1)").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()

	if err != nil {
		return false, err
	}

	var count int
	if err := ur.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (ur *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}
	defer tx.Rollback()

	var builder interface {
		ToSql() (string, []interface{}, error)
	}

	if user.ID == 0 {
		builder = ur.db.QueryBuilder.Insert("users").
			Columns(userColumns[1:]...).
			Values(user.UUID.String(), user.Name, user.Email, user.EncryptedPassword, user.Enabled, string(user.Role),
				sqlite.NullString(user.VerificationCode), sqlite.NullTime(user.CodeExpiresAt), user.CreatedAt, user.UpdatedAt)
	} else {
		builder = ur.db.QueryBuilder.Update("users").
			SetMap(map[string]interface{}{
				"name":               user.Name,
				"email":              user.Email,
				"encrypted_password": user.EncryptedPassword,
				"enabled":            user.Enabled,
				"role":               string(user.Role),
				"verification_code":  sqlite.NullString(user.VerificationCode),
				"code_expires_at":    sqlite.NullTime(user.CodeExpiresAt),
				"updated_at":         user.UpdatedAt,
			}).
			Where(sq.Eq{"id": user.ID})
	}

	stmt, args, err := builder.ToSql()
	if err != nil {
		return domain.User{}, err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return domain.User{}, domain.WrapError(domain.KindDuplicateEmail, "Email already in use", err)
		}
		slog.Error("Error saving user", "error", err)
		return domain.User{}, err
	}

	saved, err := ur.getOne(ctx, tx, sq.Eq{"uuid": user.UUID.String()})
	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
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

	result, err := ur.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
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
	err = ur.db.QueryRowContext(ctx, query, args...).Scan(&count)

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

	rows, err := ur.db.QueryContext(ctx, query, args...)
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
