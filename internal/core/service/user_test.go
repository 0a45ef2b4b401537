package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "blogapp/pkg/test"
	"blogapp/pkg/test/factory"

	"blogapp/internal/adapter/database/sqlite/repository"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/request"
	"blogapp/internal/core/port"
	"blogapp/internal/core/service"
)

type UserServiceTestSuite struct {
	suite.Suite
	service *service.UserService
	repo    port.UserRepository
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = repository.NewUserRepository(InitTestDB())
	s.service = service.NewUserService(s.repo)
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) seed(data ...map[string]any) domain.User {
	user, err := s.repo.Save(context.Background(), factory.NewUser(data...))
	s.Require().NoError(err)
	return user
}

func (s *UserServiceTestSuite) TestGetUserByUUID() {
	user := s.seed(map[string]any{"Email": "a@x.io"})

	found, err := s.service.GetUserByUUID(context.Background(), user.UUID.String())
	Expect(err).To(BeNil())
	Expect(found.Email).To(Equal("a@x.io"))

	_, err = s.service.GetUserByUUID(context.Background(), uuid.NewString())
	Expect(domain.IsKind(err, domain.KindUserNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestGetUserByEmail_NotFound() {
	_, err := s.service.GetUserByEmail(context.Background(), "ghost@x.io")

	Expect(domain.IsKind(err, domain.KindUserNotFound)).To(BeTrue())
	Expect(err.Error()).To(ContainSubstring("User not found with email: ghost@x.io"))
}

func (s *UserServiceTestSuite) TestListUsers_PagesNewestFirst() {
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		s.seed(map[string]any{"CreatedAt": base.Add(time.Duration(i) * time.Minute)})
	}

	users, total, err := s.service.ListUsers(context.Background(), 0, 2)
	Expect(err).To(BeNil())
	Expect(total).To(Equal(int64(5)))
	Expect(users).To(HaveLen(2))
	Expect(users[0].CreatedAt.After(users[1].CreatedAt)).To(BeTrue())

	users, _, _ = s.service.ListUsers(context.Background(), 2, 2)
	Expect(users).To(HaveLen(1))

	users, _, _ = s.service.ListUsers(context.Background(), -1, 0)
	Expect(users).To(HaveLen(5))
}

func (s *UserServiceTestSuite) TestUpdateUser() {
	user := s.seed(map[string]any{"Email": "a@x.io"})
	s.seed(map[string]any{"Email": "taken@x.io"})

	updated, err := s.service.UpdateUser(context.Background(), user.UUID.String(), &request.UserRequest{
		Name: "Renamed User", Email: "new@x.io",
	})
	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Renamed User"))
	Expect(updated.Email).To(Equal("new@x.io"))
	Expect(updated.Role).To(Equal(domain.RoleUser))

	_, err = s.service.UpdateUser(context.Background(), user.UUID.String(), &request.UserRequest{
		Name: "Renamed User", Email: "taken@x.io",
	})
	Expect(domain.IsKind(err, domain.KindDuplicateEmail)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestUpdateUserRole() {
	user := s.seed()

	updated, err := s.service.UpdateUserRole(context.Background(), user.UUID.String(), "Admin")
	Expect(err).To(BeNil())
	Expect(updated.Role).To(Equal(domain.RoleAdmin))

	_, err = s.service.UpdateUserRole(context.Background(), user.UUID.String(), "")
	Expect(domain.IsKind(err, domain.KindValidation)).To(BeTrue())

	_, err = s.service.UpdateUserRole(context.Background(), uuid.NewString(), "USER")
	Expect(domain.IsKind(err, domain.KindUserNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestDeleteUser() {
	user := s.seed()

	Expect(s.service.DeleteUser(context.Background(), user.UUID.String())).To(Succeed())

	err := s.service.DeleteUser(context.Background(), user.UUID.String())
	Expect(domain.IsKind(err, domain.KindUserNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestDeleteUserByEmail() {
	s.seed(map[string]any{"Email": "a@x.io"})

	Expect(s.service.DeleteUserByEmail(context.Background(), "a@x.io")).To(Succeed())

	count, err := s.service.CountUsers(context.Background())
	Expect(err).To(BeNil())
	Expect(count).To(BeZero())

	err = s.service.DeleteUserByEmail(context.Background(), "a@x.io")
	Expect(domain.IsKind(err, domain.KindUserNotFound)).To(BeTrue())
}
