package memory

import (
	"context"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"
)

// NewBackend отдаёт репозитории поверх одного общего Store
func NewBackend(s *Store) *repository.Backend {
	return &repository.Backend{
		Name:           backendName,
		Categories:     &categoryRepo{s: s},
		Brands:         &brandRepo{s: s},
		Products:       &productRepo{s: s},
		Variants:       &variantRepo{s: s},
		Attributes:     &attributeRepo{s: s},
		ProductImages:  &productImageRepo{s: s},
		Reviews:        &reviewRepo{s: s},
		ReviewImages:   &reviewImageRepo{s: s},
		Coupons:        &couponRepo{s: s},
		PaymentMethods: &paymentMethodRepo{s: s},
	}
}

var (
	_ repository.CategoryRepository         = (*categoryRepo)(nil)
	_ repository.BrandRepository            = (*brandRepo)(nil)
	_ repository.ProductRepository          = (*productRepo)(nil)
	_ repository.ProductVariantRepository   = (*variantRepo)(nil)
	_ repository.VariantAttributeRepository = (*attributeRepo)(nil)
	_ repository.ProductImageRepository     = (*productImageRepo)(nil)
	_ repository.ReviewRepository           = (*reviewRepo)(nil)
	_ repository.ReviewImageRepository      = (*reviewImageRepo)(nil)
	_ repository.CouponRepository           = (*couponRepo)(nil)
	_ repository.PaymentMethodRepository    = (*paymentMethodRepo)(nil)
)

// === CATEGORIES ===

type categoryRepo struct{ s *Store }

func (r *categoryRepo) GetAll(ctx context.Context) (_ []entity.Category, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCategory)(&err)
	return list(ctx, r.s, r.s.categories)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return getByID(ctx, r.s, r.s.categories, id)
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return getByKey(ctx, r.s, r.s.categories, "slug", slug)
}

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCategory)(&err)
	return create(ctx, r.s, r.s.categories, *category, func(c *entity.Category, now time.Time) error {
		c.CreatedAt, c.UpdatedAt = now, now
		return nil
	})
}

func (r *categoryRepo) Update(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCategory)(&err)
	return update(ctx, r.s, r.s.categories, id, func(c *entity.Category) error {
		req.Apply(c)
		c.UpdatedAt = r.s.tick(c.UpdatedAt)
		return nil
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCategory)(&err)
	_, err = remove(ctx, r.s, r.s.categories, id, nil)
	return err
}

// === BRANDS ===

type brandRepo struct{ s *Store }

func (r *brandRepo) GetAll(ctx context.Context) (_ []entity.Brand, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindBrand)(&err)
	return list(ctx, r.s, r.s.brands)
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return getByID(ctx, r.s, r.s.brands, id)
}

func (r *brandRepo) GetBySlug(ctx context.Context, slug string) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return getByKey(ctx, r.s, r.s.brands, "slug", slug)
}

func (r *brandRepo) Create(ctx context.Context, brand *entity.Brand) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpCreate, entity.KindBrand)(&err)
	return create(ctx, r.s, r.s.brands, *brand, func(b *entity.Brand, now time.Time) error {
		b.CreatedAt, b.UpdatedAt = now, now
		return nil
	})
}

func (r *brandRepo) Update(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindBrand)(&err)
	return update(ctx, r.s, r.s.brands, id, func(b *entity.Brand) error {
		req.Apply(b)
		b.UpdatedAt = r.s.tick(b.UpdatedAt)
		return nil
	})
}

func (r *brandRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindBrand)(&err)
	_, err = remove(ctx, r.s, r.s.brands, id, nil)
	return err
}

// === PRODUCTS ===

type productRepo struct{ s *Store }

func (r *productRepo) GetAll(ctx context.Context) (_ []entity.Product, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProduct)(&err)
	return list(ctx, r.s, r.s.products)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return getByID(ctx, r.s, r.s.products, id)
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return getByKey(ctx, r.s, r.s.products, "slug", slug)
}

func (r *productRepo) Create(ctx context.Context, product *entity.Product) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProduct)(&err)
	return create(ctx, r.s, r.s.products, *product, func(p *entity.Product, now time.Time) error {
		if p.Status == "" {
			p.Status = entity.ProductStatusDraft
		}
		p.CreatedAt, p.UpdatedAt = now, now
		return nil
	})
}

func (r *productRepo) Update(ctx context.Context, id int64, req *entity.UpdateProductRequest) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProduct)(&err)
	return update(ctx, r.s, r.s.products, id, func(p *entity.Product) error {
		req.Apply(p)
		p.UpdatedAt = r.s.tick(p.UpdatedAt)
		return nil
	})
}

// Delete удаляет товар, его вариант и атрибуты варианта.
// Изображения и отзывы товара остаются
func (r *productRepo) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProduct)(&err)
	return remove(ctx, r.s, r.s.products, id, nil)
}

// === VARIANTS ===

type variantRepo struct{ s *Store }

func (r *variantRepo) GetByID(ctx context.Context, id int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)
	return getByID(ctx, r.s, r.s.variants, id)
}

func (r *variantRepo) GetByProductID(ctx context.Context, productID int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)

	found, err := filter(ctx, r.s, r.s.variants, func(v *entity.ProductVariant) bool {
		return v.ProductID == productID
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrProductVariantNotFound
	}
	return &found[0], nil
}

func (r *variantRepo) Create(ctx context.Context, variant *entity.ProductVariant) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductVariant)(&err)
	return create(ctx, r.s, r.s.variants, *variant, func(v *entity.ProductVariant, now time.Time) error {
		if len(r.s.variants.childIDs("productId", v.ProductID)) > 0 {
			return repository.ErrVariantExists
		}
		v.CreatedAt, v.UpdatedAt = now, now
		return nil
	})
}

func (r *variantRepo) Update(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProductVariant)(&err)
	return update(ctx, r.s, r.s.variants, id, func(v *entity.ProductVariant) error {
		req.Apply(v)
		v.UpdatedAt = r.s.tick(v.UpdatedAt)
		return nil
	})
}

func (r *variantRepo) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductVariant)(&err)
	return remove(ctx, r.s, r.s.variants, id, nil)
}

// === ATTRIBUTES ===

type attributeRepo struct{ s *Store }

func (r *attributeRepo) GetByID(ctx context.Context, id int64) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGet, entity.KindVariantAttribute)(&err)
	return getByID(ctx, r.s, r.s.attributes, id)
}

func (r *attributeRepo) GetByVariantID(ctx context.Context, variantID int64) (_ []entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindVariantAttribute)(&err)
	return filter(ctx, r.s, r.s.attributes, func(a *entity.VariantAttribute) bool {
		return a.ProductVariantID == variantID
	})
}

func (r *attributeRepo) Create(ctx context.Context, attr *entity.VariantAttribute) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpCreate, entity.KindVariantAttribute)(&err)
	return create(ctx, r.s, r.s.attributes, *attr, func(a *entity.VariantAttribute, now time.Time) error {
		a.CreatedAt, a.UpdatedAt = now, now
		return nil
	})
}

func (r *attributeRepo) Update(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindVariantAttribute)(&err)
	return update(ctx, r.s, r.s.attributes, id, func(a *entity.VariantAttribute) error {
		req.Apply(a)
		a.UpdatedAt = r.s.tick(a.UpdatedAt)
		return nil
	})
}

func (r *attributeRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindVariantAttribute)(&err)
	_, err = remove(ctx, r.s, r.s.attributes, id, nil)
	return err
}

// === PRODUCT IMAGES ===

type productImageRepo struct{ s *Store }

func (r *productImageRepo) GetByID(ctx context.Context, id int64) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductImage)(&err)
	return getByID(ctx, r.s, r.s.productImages, id)
}

func (r *productImageRepo) GetByProductID(ctx context.Context, productID int64) (_ []entity.ProductImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProductImage)(&err)
	return filter(ctx, r.s, r.s.productImages, func(i *entity.ProductImage) bool {
		return i.ProductID == productID
	})
}

func (r *productImageRepo) Create(ctx context.Context, image *entity.ProductImage) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductImage)(&err)
	return create(ctx, r.s, r.s.productImages, *image, func(i *entity.ProductImage, now time.Time) error {
		i.CreatedAt = now
		return nil
	})
}

func (r *productImageRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductImage)(&err)
	_, err = remove(ctx, r.s, r.s.productImages, id, nil)
	return err
}

// === REVIEWS ===

type reviewRepo struct{ s *Store }

func (r *reviewRepo) GetAll(ctx context.Context) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return list(ctx, r.s, r.s.reviews)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpGet, entity.KindReview)(&err)
	return getByID(ctx, r.s, r.s.reviews, id)
}

func (r *reviewRepo) GetByProductID(ctx context.Context, productID int64) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return filter(ctx, r.s, r.s.reviews, func(rv *entity.Review) bool {
		return rv.ProductID == productID
	})
}

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReview)(&err)
	return create(ctx, r.s, r.s.reviews, *review, func(rv *entity.Review, now time.Time) error {
		rv.CreatedAt, rv.UpdatedAt = now, now
		return nil
	})
}

func (r *reviewRepo) Update(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindReview)(&err)
	return update(ctx, r.s, r.s.reviews, id, func(rv *entity.Review) error {
		req.Apply(rv)
		rv.UpdatedAt = r.s.tick(rv.UpdatedAt)
		return nil
	})
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindReview)(&err)
	return remove(ctx, r.s, r.s.reviews, id, nil)
}

// === REVIEW IMAGES ===

type reviewImageRepo struct{ s *Store }

func (r *reviewImageRepo) GetByID(ctx context.Context, id int64) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindReviewImage)(&err)
	return getByID(ctx, r.s, r.s.reviewImages, id)
}

func (r *reviewImageRepo) GetByReviewID(ctx context.Context, reviewID int64) (_ []entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReviewImage)(&err)
	return filter(ctx, r.s, r.s.reviewImages, func(i *entity.ReviewImage) bool {
		return i.ReviewID == reviewID
	})
}

func (r *reviewImageRepo) Create(ctx context.Context, image *entity.ReviewImage) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReviewImage)(&err)
	return create(ctx, r.s, r.s.reviewImages, *image, func(i *entity.ReviewImage, now time.Time) error {
		i.CreatedAt = now
		return nil
	})
}

func (r *reviewImageRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindReviewImage)(&err)
	_, err = remove(ctx, r.s, r.s.reviewImages, id, nil)
	return err
}

// === COUPONS ===

type couponRepo struct{ s *Store }

func (r *couponRepo) GetAll(ctx context.Context) (_ []entity.Coupon, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCoupon)(&err)
	return list(ctx, r.s, r.s.coupons)
}

func (r *couponRepo) GetByID(ctx context.Context, id int64) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return getByID(ctx, r.s, r.s.coupons, id)
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return getByKey(ctx, r.s, r.s.coupons, "code", code)
}

func (r *couponRepo) Create(ctx context.Context, coupon *entity.Coupon) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCoupon)(&err)
	return create(ctx, r.s, r.s.coupons, *coupon, func(c *entity.Coupon, now time.Time) error {
		c.Code = entity.NormalizeCode(c.Code)
		if !c.HasValidWindow() {
			return repository.ErrInvalidValidity
		}
		c.CreatedAt, c.UpdatedAt = now, now
		return nil
	})
}

// Update проверяет окно действия уже после слияния: можно сдвинуть только validTo
func (r *couponRepo) Update(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	return update(ctx, r.s, r.s.coupons, id, func(c *entity.Coupon) error {
		req.Apply(c)
		c.Code = entity.NormalizeCode(c.Code)
		if !c.HasValidWindow() {
			return repository.ErrInvalidValidity
		}
		c.UpdatedAt = r.s.tick(c.UpdatedAt)
		return nil
	})
}

func (r *couponRepo) SetActive(ctx context.Context, id int64, active bool) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	return update(ctx, r.s, r.s.coupons, id, func(c *entity.Coupon) error {
		c.IsActive = active
		c.UpdatedAt = r.s.tick(c.UpdatedAt)
		return nil
	})
}

func (r *couponRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCoupon)(&err)
	_, err = remove(ctx, r.s, r.s.coupons, id, nil)
	return err
}

// === PAYMENT METHODS ===

type paymentMethodRepo struct{ s *Store }

func (r *paymentMethodRepo) GetAll(ctx context.Context) (_ []entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindPaymentMethod)(&err)
	return list(ctx, r.s, r.s.paymentMethods)
}

func (r *paymentMethodRepo) GetByID(ctx context.Context, id int64) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return getByID(ctx, r.s, r.s.paymentMethods, id)
}

func (r *paymentMethodRepo) GetByCode(ctx context.Context, code string) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return getByKey(ctx, r.s, r.s.paymentMethods, "code", code)
}

func (r *paymentMethodRepo) Create(ctx context.Context, method *entity.PaymentMethod) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpCreate, entity.KindPaymentMethod)(&err)
	return create(ctx, r.s, r.s.paymentMethods, *method, func(p *entity.PaymentMethod, now time.Time) error {
		p.Code = entity.NormalizeCode(p.Code)
		p.CreatedAt, p.UpdatedAt = now, now
		return nil
	})
}

func (r *paymentMethodRepo) Update(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	return update(ctx, r.s, r.s.paymentMethods, id, func(p *entity.PaymentMethod) error {
		req.Apply(p)
		p.Code = entity.NormalizeCode(p.Code)
		p.UpdatedAt = r.s.tick(p.UpdatedAt)
		return nil
	})
}

func (r *paymentMethodRepo) SetActive(ctx context.Context, id int64, active bool) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	return update(ctx, r.s, r.s.paymentMethods, id, func(p *entity.PaymentMethod) error {
		p.IsActive = active
		p.UpdatedAt = r.s.tick(p.UpdatedAt)
		return nil
	})
}

// Delete: активный способ оплаты сначала нужно деактивировать
func (r *paymentMethodRepo) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindPaymentMethod)(&err)
	_, err = remove(ctx, r.s, r.s.paymentMethods, id, func(p *entity.PaymentMethod) error {
		if p.IsActive {
			return repository.ErrPaymentMethodActive
		}
		return nil
	})
	return err
}
