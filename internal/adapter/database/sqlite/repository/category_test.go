package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"blogapp/internal/adapter/database/sqlite"
	"blogapp/internal/adapter/database/sqlite/repository"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	. "blogapp/pkg/test"
	"blogapp/pkg/test/factory"
)

type CategoryRepositoryTestSuite struct {
	suite.Suite
	db       *sqlite.DB
	repo     port.CategoryRepository
	userRepo port.UserRepository
}

func (s *CategoryRepositoryTestSuite) SetupTest() {
	s.db = InitTestDB()
	s.repo = repository.NewCategoryRepository(s.db)
	s.userRepo = repository.NewUserRepository(s.db)
}

func TestCategoryRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(CategoryRepositoryTestSuite))
}

func (s *CategoryRepositoryTestSuite) newCategory(name string) domain.Category {
	now := time.Now()
	category, err := s.repo.Create(context.Background(), domain.Category{
		UUID:      uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.NoError(s.T(), err)
	return category
}

func (s *CategoryRepositoryTestSuite) TestRepository_Create() {
	category := s.newCategory("Golang")

	Expect(category.ID).To(BeNumerically(">", 0))

	found, err := s.repo.GetByUUID(context.Background(), category.UUID.String())
	assert.NoError(s.T(), err)
	Expect(found.Name).To(Equal("Golang"))
}

func (s *CategoryRepositoryTestSuite) TestRepository_Create_DuplicateNameIgnoresCase() {
	s.newCategory("Golang")

	_, err := s.repo.Create(context.Background(), domain.Category{UUID: uuid.New(), Name: "golang"})

	Expect(domain.IsKind(err, domain.KindValidation)).To(BeTrue())
}

func (s *CategoryRepositoryTestSuite) TestRepository_ExistsByName() {
	s.newCategory("Travel")

	exists, err := s.repo.ExistsByName(context.Background(), "TRAVEL")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.repo.ExistsByName(context.Background(), "Food")
	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *CategoryRepositoryTestSuite) TestRepository_ListWithPostCount_CountsPublishedOnly() {
	ctx := context.Background()
	author, _ := s.userRepo.Save(ctx, factory.NewUser())
	golang := s.newCategory("Golang")
	s.newCategory("Art")

	CreatePost(s.db, golang.ID, author.ID, domain.PostPublished)
	CreatePost(s.db, golang.ID, author.ID, domain.PostPublished)
	CreatePost(s.db, golang.ID, author.ID, domain.PostDraft)

	categories, err := s.repo.ListWithPostCount(ctx)

	assert.NoError(s.T(), err)
	Expect(categories).To(HaveLen(2))
	Expect(categories[0].Name).To(Equal("Art"))
	Expect(categories[0].PostCount).To(Equal(int64(0)))
	Expect(categories[1].Name).To(Equal("Golang"))
	Expect(categories[1].PostCount).To(Equal(int64(2)))

	posts, err := s.repo.CountPosts(ctx, golang.ID)
	assert.NoError(s.T(), err)
	Expect(posts).To(Equal(int64(3)))
}

func (s *CategoryRepositoryTestSuite) TestRepository_DeleteByUUID() {
	ctx := context.Background()
	category := s.newCategory("Music")

	assert.NoError(s.T(), s.repo.DeleteByUUID(ctx, category.UUID.String()))
	assert.NoError(s.T(), s.repo.DeleteByUUID(ctx, category.UUID.String()))

	_, err := s.repo.GetByUUID(ctx, category.UUID.String())
	Expect(err).To(MatchError(domain.ErrNotFound))
}
