package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/port"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type UserService struct {
	repo port.UserRepository
	now  func() time.Time
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (us *UserService) GetUserByUUID(ctx context.Context, uid string) (domain.User, error) {
	user, err := us.repo.GetByUUID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.NewError(domain.KindUserNotFound, "User not found with id: "+uid)
	}
	if err != nil {
		return domain.User{}, domain.WrapError(domain.KindUnexpected, "could not load user", err)
	}
	return user, nil
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := us.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.NewError(domain.KindUserNotFound, "User not found with email: "+email)
	}
	if err != nil {
		return domain.User{}, domain.WrapError(domain.KindUnexpected, "could not load user", err)
	}
	return user, nil
}

// NormalizePage makes page zero based and caps size at MaxPageSize; a
// non-positive size means DefaultPageSize.
func NormalizePage(page int, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return page, min(size, MaxPageSize)
}

func (us *UserService) ListUsers(ctx context.Context, page int, size int) ([]domain.User, int64, error) {
	page, size = NormalizePage(page, size)

	total, err := us.repo.Count(ctx)
	if err != nil {
		return nil, 0, domain.WrapError(domain.KindUnexpected, "could not count users", err)
	}

	users, err := us.repo.List(ctx, size, page*size)
	if err != nil {
		return nil, 0, domain.WrapError(domain.KindUnexpected, "could not list users", err)
	}

	return users, total, nil
}

func (us *UserService) UpdateUser(ctx context.Context, uid string, req *request.UserRequest) (domain.User, error) {
	user, err := us.GetUserByUUID(ctx, uid)
	if err != nil {
		return domain.User{}, err
	}

	if req.Email != user.Email {
		exists, err := us.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return domain.User{}, domain.WrapError(domain.KindUnexpected, "could not check email", err)
		}
		if exists {
			return domain.User{}, domain.NewError(domain.KindDuplicateEmail, "Email already in use")
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.UpdatedAt = us.now()

	saved, err := us.repo.Save(ctx, user)
	if err != nil {
		slog.Error("User#UpdateUser", "error", err)
		return domain.User{}, unexpected("could not save user", err)
	}

	return saved, nil
}

func (us *UserService) UpdateUserRole(ctx context.Context, uid string, role string) (domain.User, error) {
	parsed, err := domain.ParseUserRole(role)
	if err != nil {
		return domain.User{}, err
	}

	user, err := us.GetUserByUUID(ctx, uid)
	if err != nil {
		return domain.User{}, err
	}

	user.Role = parsed
	user.UpdatedAt = us.now()

	saved, err := us.repo.Save(ctx, user)
	if err != nil {
		return domain.User{}, unexpected("could not save user", err)
	}

	return saved, nil
}

func (us *UserService) DeleteUser(ctx context.Context, uid string) error {
	err := us.repo.DeleteByUUID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewError(domain.KindUserNotFound, "User not found with id: "+uid)
	}
	if err != nil {
		return domain.WrapError(domain.KindUnexpected, "could not delete user", err)
	}
	return nil
}

func (us *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	user, err := us.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := us.repo.Delete(ctx, user); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.WrapError(domain.KindUnexpected, "could not delete user", err)
	}
	return nil
}

func (us *UserService) CountUsers(ctx context.Context) (int64, error) {
	count, err := us.repo.Count(ctx)
	if err != nil {
		return 0, domain.WrapError(domain.KindUnexpected, "could not count users", err)
	}
	return count, nil
}
