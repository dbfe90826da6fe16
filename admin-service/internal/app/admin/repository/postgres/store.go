package postgres

import (
	"context"
	"errors"
	"fmt"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	serviceName = "admin-service"
	backendName = "postgres"

	uniqueViolation = "23505"
)

// models - пустые модели по типу сущности, нужны обходу каскада
var models = map[entity.Kind]func() interface{}{
	entity.KindCategory:         func() interface{} { return &entity.Category{} },
	entity.KindBrand:            func() interface{} { return &entity.Brand{} },
	entity.KindProduct:          func() interface{} { return &entity.Product{} },
	entity.KindProductVariant:   func() interface{} { return &entity.ProductVariant{} },
	entity.KindVariantAttribute: func() interface{} { return &entity.VariantAttribute{} },
	entity.KindProductImage:     func() interface{} { return &entity.ProductImage{} },
	entity.KindReview:           func() interface{} { return &entity.Review{} },
	entity.KindReviewImage:      func() interface{} { return &entity.ReviewImage{} },
	entity.KindCoupon:           func() interface{} { return &entity.Coupon{} },
	entity.KindPaymentMethod:    func() interface{} { return &entity.PaymentMethod{} },
}

// mapError переводит ошибки GORM/pgx в ошибки репозитория; false - ошибка не доменная
func mapError(kind entity.Kind, err error) (error, bool) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.NotFound(kind), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if kind == entity.KindProductVariant {
			return repository.ErrVariantExists, true
		}
		return fmt.Errorf("%s violates %s: %w", kind, pgErr.ConstraintName, repository.ErrDuplicateKey), true
	}

	return err, false
}

func track(op metrics.StoreOperation, kind entity.Kind) func(*error) {
	timer := metrics.NewStoreTimer(serviceName, backendName, op, string(kind))
	return func(err *error) {
		timer.Done(*err)
	}
}

func findAll[T any](ctx context.Context, db *gorm.DB, kind entity.Kind, query interface{}, args ...interface{}) ([]T, error) {
	out := make([]T, 0)
	q := db.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return out, nil
}

func first[T any](ctx context.Context, db *gorm.DB, kind entity.Kind, query interface{}, args ...interface{}) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		if mapped, ok := mapError(kind, err); ok {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return &out, nil
}

func insert[T any](ctx context.Context, db *gorm.DB, kind entity.Kind, row *T) (*T, error) {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if mapped, ok := mapError(kind, err); ok {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return row, nil
}

// modify читает строку под блокировкой, применяет mutate и сохраняет целиком в одной транзакции
func modify[T any](ctx context.Context, db *gorm.DB, kind entity.Kind, id int64, mutate func(*T) error) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		if err := mutate(&row); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		if mapped, ok := mapError(kind, err); ok {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update %s: %w", kind, err)
	}
	return &row, nil
}

// destroy удаляет строку и её потомков по графу владения в одной транзакции.
// Возвращает удалённые каскадом дочерние записи
func destroy[T any](ctx context.Context, db *gorm.DB, kind entity.Kind, id int64, guard func(*T) error) ([]entity.Ref, error) {
	var cascaded []entity.Ref
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row T
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		if guard != nil {
			if err := guard(&row); err != nil {
				return err
			}
		}

		removed, err := repository.Cascade(
			repository.Ownerships,
			entity.Ref{Kind: kind, ID: id},
			func(o repository.Ownership, parentID int64) ([]int64, error) {
				var ids []int64
				err := tx.Model(models[o.Child]()).Where(o.Column+" = ?", parentID).Order("id ASC").Pluck("id", &ids).Error
				return ids, err
			},
			func(ref entity.Ref) error {
				return tx.Delete(models[ref.Kind](), ref.ID).Error
			},
		)
		if err != nil {
			return err
		}
		cascaded = removed[:len(removed)-1]
		return nil
	})
	if err != nil {
		if mapped, ok := mapError(kind, err); ok {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	for _, ref := range cascaded {
		metrics.RecordCascadeDelete(string(ref.Kind))
	}
	return cascaded, nil
}
