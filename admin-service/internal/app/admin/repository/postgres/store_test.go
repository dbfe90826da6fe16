package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresBackendTestSuite проверяет SQL-бэкенд поверх sqlmock
type PostgresBackendTestSuite struct {
	suite.Suite
	db      *gorm.DB
	sqlDB   *sql.DB
	mock    sqlmock.Sqlmock
	backend *repository.Backend
}

func TestPostgresBackendSuite(t *testing.T) {
	suite.Run(t, new(PostgresBackendTestSuite))
}

func (s *PostgresBackendTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.backend = NewBackend(s.db)
}

func (s *PostgresBackendTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Read Tests =====================

func (s *PostgresBackendTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "logo_url", "created_at", "updated_at"}).
		AddRow(2, "Velvet Rose", "velvet-rose", "", now, now)
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "brands" WHERE id = $1`)).
		WillReturnRows(rows)

	// Act
	brand, err := s.backend.Brands.GetByID(ctx, 2)

	// Assert
	s.NoError(err)
	s.Equal(int64(2), brand.ID)
	s.Equal("velvet-rose", brand.Slug)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	coupon, err := s.backend.Coupons.GetByID(ctx, 42)

	// Assert
	s.Nil(coupon)
	s.ErrorIs(err, repository.ErrCouponNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestGetByID_DBError() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnError(sql.ErrConnDone)

	// Act
	product, err := s.backend.Products.GetByID(ctx, 1)

	// Assert
	s.Nil(product)
	s.Error(err)
	s.Contains(err.Error(), "failed to get product")
	s.NotErrorIs(err, repository.ErrNotFound)
}

func (s *PostgresBackendTestSuite) TestGetByCode_NormalizesInput() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "code", "is_active", "created_at", "updated_at"}).
		AddRow(1, "Card", "CARD", true, now, now)
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_methods" WHERE UPPER(code) = UPPER($1)`)).
		WillReturnRows(rows)

	// Act
	method, err := s.backend.PaymentMethods.GetByCode(ctx, "  card ")

	// Assert
	s.NoError(err)
	s.Equal("CARD", method.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestGetAll_EmptyIsNotNil() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	reviews, err := s.backend.Reviews.GetAll(ctx)

	// Assert
	s.NoError(err)
	s.NotNil(reviews)
	s.Empty(reviews)
}

// ===================== Write Tests =====================

func (s *PostgresBackendTestSuite) TestCreate_UniqueViolation() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payment_methods"`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "idx_payment_methods_code"})
	s.mock.ExpectRollback()

	// Act
	method, err := s.backend.PaymentMethods.Create(ctx, &entity.PaymentMethod{Name: "Card", Code: "card"})

	// Assert
	s.Nil(method)
	s.ErrorIs(err, repository.ErrDuplicateKey)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestCreateVariant_SecondVariantRejected() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "product_variants"`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	s.mock.ExpectRollback()

	// Act
	_, err := s.backend.Variants.Create(ctx, &entity.ProductVariant{ProductID: 1, SKU: "X"})

	// Assert
	s.ErrorIs(err, repository.ErrVariantExists)
}

func (s *PostgresBackendTestSuite) TestCreateCoupon_InvalidWindowSkipsDatabase() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Act
	_, err := s.backend.Coupons.Create(ctx, &entity.Coupon{Code: "X", ValidFrom: from, ValidTo: from})

	// Assert
	s.ErrorIs(err, repository.ErrInvalidValidity)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestUpdate_NotFoundRollsBack() {
	ctx := context.Background()
	name := "Serums"

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectRollback()

	// Act
	_, err := s.backend.Categories.Update(ctx, 99, &entity.UpdateCategoryRequest{Name: &name})

	// Assert
	s.ErrorIs(err, repository.ErrCategoryNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *PostgresBackendTestSuite) TestDeletePaymentMethod_ActiveRejected() {
	ctx := context.Background()
	now := time.Now()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_methods" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "is_active", "created_at", "updated_at"}).
			AddRow(1, "Card", "CARD", true, now, now))
	s.mock.ExpectRollback()

	// Act
	err := s.backend.PaymentMethods.Delete(ctx, 1)

	// Assert
	s.ErrorIs(err, repository.ErrPaymentMethodActive)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestDeleteProduct_CascadesInOneTransaction() {
	ctx := context.Background()
	now := time.Now()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "status", "created_at", "updated_at"}).
			AddRow(1, "Serum", "serum", "active", now, now))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "product_variants" WHERE product_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "variant_attributes" WHERE product_variant_id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "variant_attributes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "variant_attributes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_variants"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	refs, err := s.backend.Products.Delete(ctx, 1)

	// Assert
	s.NoError(err)
	s.Equal([]entity.Ref{
		{Kind: entity.KindVariantAttribute, ID: 11},
		{Kind: entity.KindVariantAttribute, ID: 12},
		{Kind: entity.KindProductVariant, ID: 7},
	}, refs)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresBackendTestSuite) TestDeleteProduct_FailureRollsBack() {
	ctx := context.Background()
	now := time.Now()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "status", "created_at", "updated_at"}).
			AddRow(1, "Serum", "serum", "active", now, now))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "product_variants"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	refs, err := s.backend.Products.Delete(ctx, 1)

	// Assert
	s.Nil(refs)
	s.Error(err)
	s.Contains(err.Error(), "failed to delete product")
	s.NoError(s.mock.ExpectationsWereMet())
}
