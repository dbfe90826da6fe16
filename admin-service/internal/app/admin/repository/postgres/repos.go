package postgres

import (
	"context"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"

	"gorm.io/gorm"
)

// NewBackend отдаёт репозитории поверх PostgreSQL
func NewBackend(db *gorm.DB) *repository.Backend {
	return &repository.Backend{
		Name:           backendName,
		Categories:     &categoryRepository{db: db},
		Brands:         &brandRepository{db: db},
		Products:       &productRepository{db: db},
		Variants:       &variantRepository{db: db},
		Attributes:     &attributeRepository{db: db},
		ProductImages:  &productImageRepository{db: db},
		Reviews:        &reviewRepository{db: db},
		ReviewImages:   &reviewImageRepository{db: db},
		Coupons:        &couponRepository{db: db},
		PaymentMethods: &paymentMethodRepository{db: db},
	}
}

var (
	_ repository.CategoryRepository         = (*categoryRepository)(nil)
	_ repository.BrandRepository            = (*brandRepository)(nil)
	_ repository.ProductRepository          = (*productRepository)(nil)
	_ repository.ProductVariantRepository   = (*variantRepository)(nil)
	_ repository.VariantAttributeRepository = (*attributeRepository)(nil)
	_ repository.ProductImageRepository     = (*productImageRepository)(nil)
	_ repository.ReviewRepository           = (*reviewRepository)(nil)
	_ repository.ReviewImageRepository      = (*reviewImageRepository)(nil)
	_ repository.CouponRepository           = (*couponRepository)(nil)
	_ repository.PaymentMethodRepository    = (*paymentMethodRepository)(nil)
)

const (
	bySlug = "LOWER(slug) = LOWER(?)"
	byCode = "UPPER(code) = UPPER(?)"
)

// === CATEGORIES ===

type categoryRepository struct{ db *gorm.DB }

func (r *categoryRepository) GetAll(ctx context.Context) (_ []entity.Category, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCategory)(&err)
	return findAll[entity.Category](ctx, r.db, entity.KindCategory, nil)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return first[entity.Category](ctx, r.db, entity.KindCategory, "id = ?", id)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return first[entity.Category](ctx, r.db, entity.KindCategory, bySlug, slug)
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCategory)(&err)
	row := *category
	row.ID = 0
	return insert(ctx, r.db, entity.KindCategory, &row)
}

func (r *categoryRepository) Update(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCategory)(&err)
	return modify(ctx, r.db, entity.KindCategory, id, func(c *entity.Category) error {
		req.Apply(c)
		return nil
	})
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCategory)(&err)
	_, err = destroy[entity.Category](ctx, r.db, entity.KindCategory, id, nil)
	return err
}

// === BRANDS ===

type brandRepository struct{ db *gorm.DB }

func (r *brandRepository) GetAll(ctx context.Context) (_ []entity.Brand, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindBrand)(&err)
	return findAll[entity.Brand](ctx, r.db, entity.KindBrand, nil)
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return first[entity.Brand](ctx, r.db, entity.KindBrand, "id = ?", id)
}

func (r *brandRepository) GetBySlug(ctx context.Context, slug string) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return first[entity.Brand](ctx, r.db, entity.KindBrand, bySlug, slug)
}

func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpCreate, entity.KindBrand)(&err)
	row := *brand
	row.ID = 0
	return insert(ctx, r.db, entity.KindBrand, &row)
}

func (r *brandRepository) Update(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindBrand)(&err)
	return modify(ctx, r.db, entity.KindBrand, id, func(b *entity.Brand) error {
		req.Apply(b)
		return nil
	})
}

func (r *brandRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindBrand)(&err)
	_, err = destroy[entity.Brand](ctx, r.db, entity.KindBrand, id, nil)
	return err
}

// === PRODUCTS ===

type productRepository struct{ db *gorm.DB }

func (r *productRepository) GetAll(ctx context.Context) (_ []entity.Product, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProduct)(&err)
	return findAll[entity.Product](ctx, r.db, entity.KindProduct, nil)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return first[entity.Product](ctx, r.db, entity.KindProduct, "id = ?", id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return first[entity.Product](ctx, r.db, entity.KindProduct, bySlug, slug)
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProduct)(&err)
	row := *product
	row.ID = 0
	if row.Status == "" {
		row.Status = entity.ProductStatusDraft
	}
	return insert(ctx, r.db, entity.KindProduct, &row)
}

func (r *productRepository) Update(ctx context.Context, id int64, req *entity.UpdateProductRequest) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProduct)(&err)
	return modify(ctx, r.db, entity.KindProduct, id, func(p *entity.Product) error {
		req.Apply(p)
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProduct)(&err)
	return destroy[entity.Product](ctx, r.db, entity.KindProduct, id, nil)
}

// === VARIANTS ===

type variantRepository struct{ db *gorm.DB }

func (r *variantRepository) GetByID(ctx context.Context, id int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)
	return first[entity.ProductVariant](ctx, r.db, entity.KindProductVariant, "id = ?", id)
}

func (r *variantRepository) GetByProductID(ctx context.Context, productID int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)
	return first[entity.ProductVariant](ctx, r.db, entity.KindProductVariant, "product_id = ?", productID)
}

// Create: второй вариант для товара отсекается уникальным индексом по product_id
func (r *variantRepository) Create(ctx context.Context, variant *entity.ProductVariant) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductVariant)(&err)
	row := *variant
	row.ID = 0
	return insert(ctx, r.db, entity.KindProductVariant, &row)
}

func (r *variantRepository) Update(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProductVariant)(&err)
	return modify(ctx, r.db, entity.KindProductVariant, id, func(v *entity.ProductVariant) error {
		req.Apply(v)
		return nil
	})
}

func (r *variantRepository) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductVariant)(&err)
	return destroy[entity.ProductVariant](ctx, r.db, entity.KindProductVariant, id, nil)
}

// === ATTRIBUTES ===

type attributeRepository struct{ db *gorm.DB }

func (r *attributeRepository) GetByID(ctx context.Context, id int64) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGet, entity.KindVariantAttribute)(&err)
	return first[entity.VariantAttribute](ctx, r.db, entity.KindVariantAttribute, "id = ?", id)
}

func (r *attributeRepository) GetByVariantID(ctx context.Context, variantID int64) (_ []entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindVariantAttribute)(&err)
	return findAll[entity.VariantAttribute](ctx, r.db, entity.KindVariantAttribute, "product_variant_id = ?", variantID)
}

func (r *attributeRepository) Create(ctx context.Context, attr *entity.VariantAttribute) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpCreate, entity.KindVariantAttribute)(&err)
	row := *attr
	row.ID = 0
	return insert(ctx, r.db, entity.KindVariantAttribute, &row)
}

func (r *attributeRepository) Update(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindVariantAttribute)(&err)
	return modify(ctx, r.db, entity.KindVariantAttribute, id, func(a *entity.VariantAttribute) error {
		req.Apply(a)
		return nil
	})
}

func (r *attributeRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindVariantAttribute)(&err)
	_, err = destroy[entity.VariantAttribute](ctx, r.db, entity.KindVariantAttribute, id, nil)
	return err
}

// === PRODUCT IMAGES ===

type productImageRepository struct{ db *gorm.DB }

func (r *productImageRepository) GetByID(ctx context.Context, id int64) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductImage)(&err)
	return first[entity.ProductImage](ctx, r.db, entity.KindProductImage, "id = ?", id)
}

func (r *productImageRepository) GetByProductID(ctx context.Context, productID int64) (_ []entity.ProductImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProductImage)(&err)
	return findAll[entity.ProductImage](ctx, r.db, entity.KindProductImage, "product_id = ?", productID)
}

func (r *productImageRepository) Create(ctx context.Context, image *entity.ProductImage) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductImage)(&err)
	row := *image
	row.ID = 0
	return insert(ctx, r.db, entity.KindProductImage, &row)
}

func (r *productImageRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductImage)(&err)
	_, err = destroy[entity.ProductImage](ctx, r.db, entity.KindProductImage, id, nil)
	return err
}

// === REVIEWS ===

type reviewRepository struct{ db *gorm.DB }

func (r *reviewRepository) GetAll(ctx context.Context) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return findAll[entity.Review](ctx, r.db, entity.KindReview, nil)
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpGet, entity.KindReview)(&err)
	return first[entity.Review](ctx, r.db, entity.KindReview, "id = ?", id)
}

func (r *reviewRepository) GetByProductID(ctx context.Context, productID int64) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return findAll[entity.Review](ctx, r.db, entity.KindReview, "product_id = ?", productID)
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReview)(&err)
	row := *review
	row.ID = 0
	return insert(ctx, r.db, entity.KindReview, &row)
}

func (r *reviewRepository) Update(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindReview)(&err)
	return modify(ctx, r.db, entity.KindReview, id, func(rv *entity.Review) error {
		req.Apply(rv)
		return nil
	})
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindReview)(&err)
	return destroy[entity.Review](ctx, r.db, entity.KindReview, id, nil)
}

// === REVIEW IMAGES ===

type reviewImageRepository struct{ db *gorm.DB }

func (r *reviewImageRepository) GetByID(ctx context.Context, id int64) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindReviewImage)(&err)
	return first[entity.ReviewImage](ctx, r.db, entity.KindReviewImage, "id = ?", id)
}

func (r *reviewImageRepository) GetByReviewID(ctx context.Context, reviewID int64) (_ []entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReviewImage)(&err)
	return findAll[entity.ReviewImage](ctx, r.db, entity.KindReviewImage, "review_id = ?", reviewID)
}

func (r *reviewImageRepository) Create(ctx context.Context, image *entity.ReviewImage) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReviewImage)(&err)
	row := *image
	row.ID = 0
	return insert(ctx, r.db, entity.KindReviewImage, &row)
}

func (r *reviewImageRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindReviewImage)(&err)
	_, err = destroy[entity.ReviewImage](ctx, r.db, entity.KindReviewImage, id, nil)
	return err
}

// === COUPONS ===

type couponRepository struct{ db *gorm.DB }

func (r *couponRepository) GetAll(ctx context.Context) (_ []entity.Coupon, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCoupon)(&err)
	return findAll[entity.Coupon](ctx, r.db, entity.KindCoupon, nil)
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return first[entity.Coupon](ctx, r.db, entity.KindCoupon, "id = ?", id)
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return first[entity.Coupon](ctx, r.db, entity.KindCoupon, byCode, entity.NormalizeCode(code))
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCoupon)(&err)
	row := *coupon
	row.ID = 0
	row.Code = entity.NormalizeCode(row.Code)
	if !row.HasValidWindow() {
		return nil, repository.ErrInvalidValidity
	}
	return insert(ctx, r.db, entity.KindCoupon, &row)
}

func (r *couponRepository) Update(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	return modify(ctx, r.db, entity.KindCoupon, id, func(c *entity.Coupon) error {
		req.Apply(c)
		c.Code = entity.NormalizeCode(c.Code)
		if !c.HasValidWindow() {
			return repository.ErrInvalidValidity
		}
		return nil
	})
}

func (r *couponRepository) SetActive(ctx context.Context, id int64, active bool) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	return modify(ctx, r.db, entity.KindCoupon, id, func(c *entity.Coupon) error {
		c.IsActive = active
		return nil
	})
}

func (r *couponRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCoupon)(&err)
	_, err = destroy[entity.Coupon](ctx, r.db, entity.KindCoupon, id, nil)
	return err
}

// === PAYMENT METHODS ===

type paymentMethodRepository struct{ db *gorm.DB }

func (r *paymentMethodRepository) GetAll(ctx context.Context) (_ []entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindPaymentMethod)(&err)
	return findAll[entity.PaymentMethod](ctx, r.db, entity.KindPaymentMethod, nil)
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id int64) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return first[entity.PaymentMethod](ctx, r.db, entity.KindPaymentMethod, "id = ?", id)
}

func (r *paymentMethodRepository) GetByCode(ctx context.Context, code string) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return first[entity.PaymentMethod](ctx, r.db, entity.KindPaymentMethod, byCode, entity.NormalizeCode(code))
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpCreate, entity.KindPaymentMethod)(&err)
	row := *method
	row.ID = 0
	row.Code = entity.NormalizeCode(row.Code)
	return insert(ctx, r.db, entity.KindPaymentMethod, &row)
}

func (r *paymentMethodRepository) Update(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	return modify(ctx, r.db, entity.KindPaymentMethod, id, func(p *entity.PaymentMethod) error {
		req.Apply(p)
		p.Code = entity.NormalizeCode(p.Code)
		return nil
	})
}

func (r *paymentMethodRepository) SetActive(ctx context.Context, id int64, active bool) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	return modify(ctx, r.db, entity.KindPaymentMethod, id, func(p *entity.PaymentMethod) error {
		p.IsActive = active
		return nil
	})
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindPaymentMethod)(&err)
	_, err = destroy(ctx, r.db, entity.KindPaymentMethod, id, func(p *entity.PaymentMethod) error {
		if p.IsActive {
			return repository.ErrPaymentMethodActive
		}
		return nil
	})
	return err
}
