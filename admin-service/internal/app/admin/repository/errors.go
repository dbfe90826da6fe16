package repository

import (
	"errors"
	"fmt"

	"beautyadmin/admin-service/internal/app/admin/entity"
)

var (
	// ErrNotFound - единственный "доменный" вид ошибки исходного мок-слоя;
	// конкретные ошибки ниже оборачивают его, errors.Is(err, ErrNotFound) работает для всех
	ErrNotFound = errors.New("not found")

	ErrCategoryNotFound         = fmt.Errorf("category %w", ErrNotFound)
	ErrBrandNotFound            = fmt.Errorf("brand %w", ErrNotFound)
	ErrProductNotFound          = fmt.Errorf("product %w", ErrNotFound)
	ErrProductVariantNotFound   = fmt.Errorf("product variant %w", ErrNotFound)
	ErrVariantAttributeNotFound = fmt.Errorf("variant attribute %w", ErrNotFound)
	ErrProductImageNotFound     = fmt.Errorf("product image %w", ErrNotFound)
	ErrReviewNotFound           = fmt.Errorf("review %w", ErrNotFound)
	ErrReviewImageNotFound      = fmt.Errorf("review image %w", ErrNotFound)
	ErrCouponNotFound           = fmt.Errorf("coupon %w", ErrNotFound)
	ErrPaymentMethodNotFound    = fmt.Errorf("payment method %w", ErrNotFound)

	ErrDuplicateKey        = errors.New("duplicate key")
	ErrPaymentMethodActive = errors.New("active payment method cannot be deleted, deactivate it first")
	ErrInvalidValidity     = errors.New("coupon validTo must be after validFrom")
	ErrVariantExists       = errors.New("product already has a variant")
)

var notFoundByKind = map[entity.Kind]error{
	entity.KindCategory:         ErrCategoryNotFound,
	entity.KindBrand:            ErrBrandNotFound,
	entity.KindProduct:          ErrProductNotFound,
	entity.KindProductVariant:   ErrProductVariantNotFound,
	entity.KindVariantAttribute: ErrVariantAttributeNotFound,
	entity.KindProductImage:     ErrProductImageNotFound,
	entity.KindReview:           ErrReviewNotFound,
	entity.KindReviewImage:      ErrReviewImageNotFound,
	entity.KindCoupon:           ErrCouponNotFound,
	entity.KindPaymentMethod:    ErrPaymentMethodNotFound,
}

// NotFound возвращает sentinel-ошибку "не найдено" для типа сущности
func NotFound(kind entity.Kind) error {
	if err, ok := notFoundByKind[kind]; ok {
		return err
	}
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

// DuplicateKey уточняет, какое уникальное поле нарушено
func DuplicateKey(kind entity.Kind, field, value string) error {
	return fmt.Errorf("%s with %s %q: %w", kind, field, value, ErrDuplicateKey)
}
