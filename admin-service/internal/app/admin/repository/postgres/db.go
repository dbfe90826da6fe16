package postgres

import (
	"context"
	"fmt"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectAttempts = 10

// Connect устанавливает соединение с PostgreSQL через GORM.
// Повторяет попытки, пока БД поднимается в docker-compose
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var err error
	for i := 0; i < connectAttempts; i++ {
		var db *gorm.DB
		db, err = open(dsn, gormConfig)
		if err == nil {
			return db, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", connectAttempts, err)
}

func open(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)
	return db, nil
}

// Migrate создает таблицы всех сущностей админки с уникальными индексами на slug/code
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Brand{},
		&entity.Product{},
		&entity.ProductVariant{},
		&entity.VariantAttribute{},
		&entity.ProductImage{},
		&entity.Review{},
		&entity.ReviewImage{},
		&entity.Coupon{},
		&entity.PaymentMethod{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
