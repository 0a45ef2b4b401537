package port

import (
	"context"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
)

type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts users with a zero ID and updates the rest.
	Save(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
	Delete(ctx context.Context, user domain.User) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

type UserService interface {
	GetUserByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context, page int, size int) ([]domain.User, int64, error)
	UpdateUser(ctx context.Context, uuid string, req *request.UserRequest) (domain.User, error)
	UpdateUserRole(ctx context.Context, uuid string, role string) (domain.User, error)
	DeleteUser(ctx context.Context, uuid string) error
	DeleteUserByEmail(ctx context.Context, email string) error
	CountUsers(ctx context.Context) (int64, error)
}
