package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"shopsample/internal/config"
	"shopsample/internal/entity"
	"shopsample/internal/repository"
	"shopsample/internal/service"
	"shopsample/pkg/crud"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"
	"shopsample/pkg/storage/postgres"
	"shopsample/pkg/storage/postgres/transaction"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IntegrationTestSuite struct {
	suite.Suite

	db             *postgres.Postgres
	repo           *repository.ProductRepository
	productService *service.ProductService
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.LoadEnv()
	s.Require().NoError(err, "Failed to load configuration")

	testLogger, err := logger.NewAdapter(cfg)
	s.Require().NoError(err)

	db, err := postgres.NewPostgres(ctx, &cfg.Postgres, testLogger,
		postgres.MaxConnAttempts(10),
		postgres.MaxRetryDelay(5*time.Second),
	)
	s.Require().NoError(err, "Failed to connect to postgres")
	s.db = db

	txManager, err := transaction.NewManager(db, testLogger, metric.NewFactory().Transaction())
	s.Require().NoError(err)

	s.Require().NoError(repository.Migrate(ctx, txManager, testLogger))

	s.repo = repository.NewProductRepository(db, txManager)
	s.productService = service.NewProductService(s.repo, testLogger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *IntegrationTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.Pool.Exec(ctx, "TRUNCATE TABLE product RESTART IDENTITY;")
	s.Require().NoError(err)
}

func (s *IntegrationTestSuite) TestCreateAndGetProduct() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dto := generateFakeProduct()

	created, err := s.productService.Create(ctx, dto)
	s.Require().NoError(err)
	saved, ok := created.Get()
	s.Require().True(ok)
	s.Require().NotNil(saved.ID)

	found, err := s.productService.GetByID(ctx, *saved.ID)
	s.Require().NoError(err)
	got, ok := found.Get()
	s.Require().True(ok)

	s.Require().Equal(dto.Name, got.Name)
	s.Require().Equal(dto.ImageURL, got.ImageURL)
	s.Require().True(dto.Price.Equal(got.Price))
	s.Require().Equal(*dto.Description, *got.Description)

	stored, err := s.repo.FindByID(ctx, *saved.ID)
	s.Require().NoError(err)
	product, ok := stored.Get()
	s.Require().True(ok)
	s.Require().False(product.CreatedOn.IsZero())
	s.Require().Nil(product.UpdatedOn)
}

func (s *IntegrationTestSuite) TestFindAllWithPaging() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for range 5 {
		_, err := s.productService.Create(ctx, generateFakeProduct())
		s.Require().NoError(err)
	}

	page, err := s.productService.FindAllWithPaging(ctx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 2)
	s.Require().Equal(5, page.TotalCount)
	s.Require().Equal(3, page.TotalPages)
	s.Require().True(page.HasPrevious)
	s.Require().True(page.HasNext)
	s.Require().Equal(int64(3), *page.Items[0].ID)

	last, err := s.productService.FindAllWithPaging(ctx, 3, 2)
	s.Require().NoError(err)
	s.Require().Len(last.Items, 1)
	s.Require().False(last.HasNext)

	beyond, err := s.productService.FindAllWithPaging(ctx, 9, 2)
	s.Require().NoError(err)
	s.Require().Empty(beyond.Items)
	s.Require().Equal(5, beyond.TotalCount)

	far, err := s.productService.FindAllWithPaging(ctx, 100000000000000001, 100)
	s.Require().NoError(err)
	s.Require().Empty(far.Items)
	s.Require().Equal(5, far.TotalCount)
	s.Require().True(far.HasPrevious)
	s.Require().False(far.HasNext)
}

func (s *IntegrationTestSuite) TestUpdateKeepsCreatedOn() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := s.productService.Create(ctx, generateFakeProduct())
	s.Require().NoError(err)
	saved, _ := created.Get()

	before, err := s.repo.FindByID(ctx, *saved.ID)
	s.Require().NoError(err)
	original, _ := before.Get()

	update := generateFakeProduct()
	update.ID = saved.ID
	updated, err := s.productService.Update(ctx, update)
	s.Require().NoError(err)
	got, ok := updated.Get()
	s.Require().True(ok)
	s.Require().Equal(update.Name, got.Name)

	after, err := s.repo.FindByID(ctx, *saved.ID)
	s.Require().NoError(err)
	product, _ := after.Get()
	s.Require().True(original.CreatedOn.Equal(product.CreatedOn))
	s.Require().NotNil(product.UpdatedOn)
}

func (s *IntegrationTestSuite) TestUpdateDescription() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dto := generateFakeProduct()
	created, err := s.productService.Create(ctx, dto)
	s.Require().NoError(err)
	saved, _ := created.Get()

	description := gofakeit.ProductDescription()
	updated, err := s.productService.UpdateDescription(ctx, *saved.ID, &entity.DescriptionUpdateRequest{
		Description: &description,
	})
	s.Require().NoError(err)
	got, ok := updated.Get()
	s.Require().True(ok)
	s.Require().Equal(description, *got.Description)
	s.Require().Equal(dto.Name, got.Name)
	s.Require().True(dto.Price.Equal(got.Price))

	missing, err := s.productService.UpdateDescription(ctx, *saved.ID+100, &entity.DescriptionUpdateRequest{})
	s.Require().NoError(err)
	s.Require().False(missing.IsFound())
}

func (s *IntegrationTestSuite) TestDelete() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := s.productService.Create(ctx, generateFakeProduct())
	s.Require().NoError(err)
	saved, _ := created.Get()

	s.Require().NoError(s.productService.Delete(ctx, *saved.ID))

	found, err := s.productService.GetByID(ctx, *saved.ID)
	s.Require().NoError(err)
	s.Require().False(found.IsFound())

	err = s.productService.Delete(ctx, *saved.ID)
	s.Require().ErrorIs(err, crud.ErrDoesNotExist)
}

func (s *IntegrationTestSuite) TestNegativePriceRejectedByStore() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	product := &entity.Product{
		Name:     gofakeit.ProductName(),
		Price:    decimal.NewFromInt(-1),
		ImageURL: gofakeit.URL(),
	}

	_, err := s.repo.Save(ctx, product)
	s.Require().ErrorIs(err, transaction.ErrConstraintViolation)
}

func TestIntegration(t *testing.T) {
	t.Parallel()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test; set INTEGRATION_TEST to run.")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func generateFakeProduct() *entity.ProductDto {
	description := gofakeit.ProductDescription()

	return &entity.ProductDto{
		Name:        gofakeit.ProductName(),
		Description: &description,
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
		ImageURL:    gofakeit.URL(),
	}
}
