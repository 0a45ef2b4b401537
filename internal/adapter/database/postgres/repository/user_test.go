package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	database "blogapp/internal/adapter/database/postgres"
	"blogapp/internal/adapter/database/postgres/repository"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/pkg/test/factory"
)

type PostgresRepositoryTestSuite struct {
	suite.Suite
	container    testcontainers.Container
	db           *database.DB
	userRepo     port.UserRepository
	categoryRepo port.CategoryRepository
}

func (s *PostgresRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("postgres suite needs docker")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "blogapp",
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
	})
	if err != nil {
		s.T().Skipf("docker is not available: %v", err)
	}
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	mapped, err := container.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	url := fmt.Sprintf("postgres://test:test@%s:%s/blogapp?sslmode=disable", host, mapped.Port())

	s.db, err = database.NewDB(ctx, url)
	s.Require().NoError(err)

	s.userRepo = repository.NewUserRepository(s.db)
	s.categoryRepo = repository.NewCategoryRepository(s.db)
}

func (s *PostgresRepositoryTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresRepositoryTestSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(), "TRUNCATE posts, categories, users RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func TestPostgresRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(PostgresRepositoryTestSuite))
}

func (s *PostgresRepositoryTestSuite) TestUserRepository_SaveAndFind() {
	ctx := context.Background()
	user := factory.NewUser(map[string]any{"Email": "alice@example.com", "VerificationCode": "123456"})

	saved, err := s.userRepo.Save(ctx, user)
	assert.NoError(s.T(), err)
	Expect(saved.ID).To(BeNumerically(">", 0))
	Expect(*saved.VerificationCode).To(Equal("123456"))

	saved.Enabled = true
	saved.ClearPendingCode()
	updated, err := s.userRepo.Save(ctx, saved)
	assert.NoError(s.T(), err)
	Expect(updated.Enabled).To(BeTrue())
	Expect(updated.VerificationCode).To(BeNil())

	found, err := s.userRepo.GetByEmail(ctx, "alice@example.com")
	assert.NoError(s.T(), err)
	Expect(found.UUID).To(Equal(user.UUID))

	exists, err := s.userRepo.ExistsByEmail(ctx, "alice@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)

	_, err = s.userRepo.Save(ctx, factory.NewUser(map[string]any{"Email": "alice@example.com"}))
	Expect(domain.IsKind(err, domain.KindDuplicateEmail)).To(BeTrue())
}

func (s *PostgresRepositoryTestSuite) TestUserRepository_DeleteAndCount() {
	ctx := context.Background()
	saved, _ := s.userRepo.Save(ctx, factory.NewUser())
	_, _ = s.userRepo.Save(ctx, factory.NewUser())

	count, err := s.userRepo.Count(ctx)
	assert.NoError(s.T(), err)
	Expect(count).To(Equal(int64(2)))

	assert.NoError(s.T(), s.userRepo.DeleteByUUID(ctx, saved.UUID.String()))
	Expect(s.userRepo.DeleteByUUID(ctx, saved.UUID.String())).To(MatchError(domain.ErrNotFound))

	users, err := s.userRepo.List(ctx, 10, 0)
	assert.NoError(s.T(), err)
	Expect(users).To(HaveLen(1))
}

func (s *PostgresRepositoryTestSuite) TestCategoryRepository_PostCounts() {
	ctx := context.Background()
	author, _ := s.userRepo.Save(ctx, factory.NewUser())

	now := time.Now()
	golang, err := s.categoryRepo.Create(ctx, domain.Category{UUID: uuid.New(), Name: "Golang", CreatedAt: now, UpdatedAt: now})
	assert.NoError(s.T(), err)

	for _, status := range []domain.PostStatus{domain.PostPublished, domain.PostDraft} {
		_, err := s.db.Exec(ctx,
			"INSERT INTO posts (uuid, title, status, category_id, author_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $6)",
			uuid.NewString(), "A post", string(status), golang.ID, author.ID, now)
		s.Require().NoError(err)
	}

	categories, err := s.categoryRepo.ListWithPostCount(ctx)
	assert.NoError(s.T(), err)
	Expect(categories).To(HaveLen(1))
	Expect(categories[0].PostCount).To(Equal(int64(1)))

	posts, err := s.categoryRepo.CountPosts(ctx, golang.ID)
	assert.NoError(s.T(), err)
	Expect(posts).To(Equal(int64(2)))

	_, err = s.categoryRepo.Create(ctx, domain.Category{UUID: uuid.New(), Name: "GOLANG", CreatedAt: now, UpdatedAt: now})
	Expect(domain.IsKind(err, domain.KindValidation)).To(BeTrue())
}
