package repository

import (
	"context"

	"beautyadmin/admin-service/internal/app/admin/entity"
)

// Все реализации (memory, http, postgres) отдают копии записей:
// изменение возвращённой структуры не меняет хранилище.
// Delete у владельцев (товар, вариант, отзыв) возвращает удалённые каскадом дочерние записи.

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Update(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}

type BrandRepository interface {
	GetAll(ctx context.Context) ([]entity.Brand, error)
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Brand, error)
	Create(ctx context.Context, brand *entity.Brand) (*entity.Brand, error)
	Update(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (*entity.Brand, error)
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id int64) ([]entity.Ref, error)
}

type ProductVariantRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ProductVariant, error)
	GetByProductID(ctx context.Context, productID int64) (*entity.ProductVariant, error)
	Create(ctx context.Context, variant *entity.ProductVariant) (*entity.ProductVariant, error)
	Update(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (*entity.ProductVariant, error)
	Delete(ctx context.Context, id int64) ([]entity.Ref, error)
}

type VariantAttributeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.VariantAttribute, error)
	GetByVariantID(ctx context.Context, variantID int64) ([]entity.VariantAttribute, error)
	Create(ctx context.Context, attr *entity.VariantAttribute) (*entity.VariantAttribute, error)
	Update(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (*entity.VariantAttribute, error)
	Delete(ctx context.Context, id int64) error
}

type ProductImageRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ProductImage, error)
	GetByProductID(ctx context.Context, productID int64) ([]entity.ProductImage, error)
	Create(ctx context.Context, image *entity.ProductImage) (*entity.ProductImage, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	GetAll(ctx context.Context) ([]entity.Review, error)
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	GetByProductID(ctx context.Context, productID int64) ([]entity.Review, error)
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	Update(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (*entity.Review, error)
	Delete(ctx context.Context, id int64) ([]entity.Ref, error)
}

type ReviewImageRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ReviewImage, error)
	GetByReviewID(ctx context.Context, reviewID int64) ([]entity.ReviewImage, error)
	Create(ctx context.Context, image *entity.ReviewImage) (*entity.ReviewImage, error)
	Delete(ctx context.Context, id int64) error
}

// CouponRepository: код хранится в верхнем регистре, GetByCode нечувствителен к регистру
type CouponRepository interface {
	GetAll(ctx context.Context) ([]entity.Coupon, error)
	GetByID(ctx context.Context, id int64) (*entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	Create(ctx context.Context, coupon *entity.Coupon) (*entity.Coupon, error)
	Update(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (*entity.Coupon, error)
	SetActive(ctx context.Context, id int64, active bool) (*entity.Coupon, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentMethodRepository: активный способ оплаты удалить нельзя (ErrPaymentMethodActive)
type PaymentMethodRepository interface {
	GetAll(ctx context.Context) ([]entity.PaymentMethod, error)
	GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	GetByCode(ctx context.Context, code string) (*entity.PaymentMethod, error)
	Create(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error)
	Update(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (*entity.PaymentMethod, error)
	SetActive(ctx context.Context, id int64, active bool) (*entity.PaymentMethod, error)
	Delete(ctx context.Context, id int64) error
}

// Backend - набор репозиториев одного источника данных (memory, http или postgres).
// Выбирается один раз при старте и внедряется во все сервисы
type Backend struct {
	Name           string
	Categories     CategoryRepository
	Brands         BrandRepository
	Products       ProductRepository
	Variants       ProductVariantRepository
	Attributes     VariantAttributeRepository
	ProductImages  ProductImageRepository
	Reviews        ReviewRepository
	ReviewImages   ReviewImageRepository
	Coupons        CouponRepository
	PaymentMethods PaymentMethodRepository
}
