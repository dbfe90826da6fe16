package http

import (
	"context"
	"net/http"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"
)

// NewBackend отдаёт репозитории поверх REST API
func NewBackend(c *Client) *repository.Backend {
	return &repository.Backend{
		Name:           backendName,
		Categories:     &categoryAPI{c: c},
		Brands:         &brandAPI{c: c},
		Products:       &productAPI{c: c},
		Variants:       &variantAPI{c: c},
		Attributes:     &attributeAPI{c: c},
		ProductImages:  &productImageAPI{c: c},
		Reviews:        &reviewAPI{c: c},
		ReviewImages:   &reviewImageAPI{c: c},
		Coupons:        &couponAPI{c: c},
		PaymentMethods: &paymentMethodAPI{c: c},
	}
}

var (
	_ repository.CategoryRepository         = (*categoryAPI)(nil)
	_ repository.BrandRepository            = (*brandAPI)(nil)
	_ repository.ProductRepository          = (*productAPI)(nil)
	_ repository.ProductVariantRepository   = (*variantAPI)(nil)
	_ repository.VariantAttributeRepository = (*attributeAPI)(nil)
	_ repository.ProductImageRepository     = (*productImageAPI)(nil)
	_ repository.ReviewRepository           = (*reviewAPI)(nil)
	_ repository.ReviewImageRepository      = (*reviewImageAPI)(nil)
	_ repository.CouponRepository           = (*couponAPI)(nil)
	_ repository.PaymentMethodRepository    = (*paymentMethodAPI)(nil)
)

// === CATEGORIES ===

type categoryAPI struct{ c *Client }

func (a *categoryAPI) GetAll(ctx context.Context) (_ []entity.Category, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCategory)(&err)
	return fetchList[entity.Category](ctx, a.c, entity.KindCategory, "/api/categories")
}

func (a *categoryAPI) GetByID(ctx context.Context, id int64) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return fetch[entity.Category](ctx, a.c, entity.KindCategory, idPath("/api/categories/%d", id))
}

func (a *categoryAPI) GetBySlug(ctx context.Context, slug string) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpGet, entity.KindCategory)(&err)
	return fetch[entity.Category](ctx, a.c, entity.KindCategory, keyPath("/api/categories/slug/%s", slug))
}

func (a *categoryAPI) Create(ctx context.Context, category *entity.Category) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCategory)(&err)
	return send[entity.Category](ctx, a.c, entity.KindCategory, http.MethodPost, "/api/categories", category)
}

func (a *categoryAPI) Update(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (_ *entity.Category, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCategory)(&err)
	return send[entity.Category](ctx, a.c, entity.KindCategory, http.MethodPut, idPath("/api/categories/%d", id), req)
}

func (a *categoryAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCategory)(&err)
	_, err = remove(ctx, a.c, entity.KindCategory, idPath("/api/categories/%d", id))
	return err
}

// === BRANDS ===

type brandAPI struct{ c *Client }

func (a *brandAPI) GetAll(ctx context.Context) (_ []entity.Brand, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindBrand)(&err)
	return fetchList[entity.Brand](ctx, a.c, entity.KindBrand, "/api/brands")
}

func (a *brandAPI) GetByID(ctx context.Context, id int64) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return fetch[entity.Brand](ctx, a.c, entity.KindBrand, idPath("/api/brands/%d", id))
}

func (a *brandAPI) GetBySlug(ctx context.Context, slug string) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpGet, entity.KindBrand)(&err)
	return fetch[entity.Brand](ctx, a.c, entity.KindBrand, keyPath("/api/brands/slug/%s", slug))
}

func (a *brandAPI) Create(ctx context.Context, brand *entity.Brand) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpCreate, entity.KindBrand)(&err)
	return send[entity.Brand](ctx, a.c, entity.KindBrand, http.MethodPost, "/api/brands", brand)
}

func (a *brandAPI) Update(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (_ *entity.Brand, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindBrand)(&err)
	return send[entity.Brand](ctx, a.c, entity.KindBrand, http.MethodPut, idPath("/api/brands/%d", id), req)
}

func (a *brandAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindBrand)(&err)
	_, err = remove(ctx, a.c, entity.KindBrand, idPath("/api/brands/%d", id))
	return err
}

// === PRODUCTS ===

type productAPI struct{ c *Client }

func (a *productAPI) GetAll(ctx context.Context) (_ []entity.Product, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProduct)(&err)
	return fetchList[entity.Product](ctx, a.c, entity.KindProduct, "/api/products")
}

// GetByID: сервер отдаёт товар с вариантом и изображениями, лишние поля отбрасываются
func (a *productAPI) GetByID(ctx context.Context, id int64) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return fetch[entity.Product](ctx, a.c, entity.KindProduct, idPath("/api/products/%d", id))
}

func (a *productAPI) GetBySlug(ctx context.Context, slug string) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpGet, entity.KindProduct)(&err)
	return fetch[entity.Product](ctx, a.c, entity.KindProduct, keyPath("/api/products/slug/%s", slug))
}

func (a *productAPI) Create(ctx context.Context, product *entity.Product) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProduct)(&err)
	return send[entity.Product](ctx, a.c, entity.KindProduct, http.MethodPost, "/api/products", product)
}

func (a *productAPI) Update(ctx context.Context, id int64, req *entity.UpdateProductRequest) (_ *entity.Product, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProduct)(&err)
	return send[entity.Product](ctx, a.c, entity.KindProduct, http.MethodPut, idPath("/api/products/%d", id), req)
}

func (a *productAPI) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProduct)(&err)
	return remove(ctx, a.c, entity.KindProduct, idPath("/api/products/%d", id))
}

// === VARIANTS ===

type variantAPI struct{ c *Client }

func (a *variantAPI) GetByID(ctx context.Context, id int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)
	return fetch[entity.ProductVariant](ctx, a.c, entity.KindProductVariant, idPath("/api/variants/%d", id))
}

func (a *variantAPI) GetByProductID(ctx context.Context, productID int64) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductVariant)(&err)
	return fetch[entity.ProductVariant](ctx, a.c, entity.KindProductVariant, idPath("/api/products/%d/variant", productID))
}

func (a *variantAPI) Create(ctx context.Context, variant *entity.ProductVariant) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductVariant)(&err)
	path := idPath("/api/products/%d/variant", variant.ProductID)
	return send[entity.ProductVariant](ctx, a.c, entity.KindProductVariant, http.MethodPost, path, variant)
}

func (a *variantAPI) Update(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (_ *entity.ProductVariant, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindProductVariant)(&err)
	return send[entity.ProductVariant](ctx, a.c, entity.KindProductVariant, http.MethodPut, idPath("/api/variants/%d", id), req)
}

func (a *variantAPI) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductVariant)(&err)
	return remove(ctx, a.c, entity.KindProductVariant, idPath("/api/variants/%d", id))
}

// === ATTRIBUTES ===

type attributeAPI struct{ c *Client }

func (a *attributeAPI) GetByID(ctx context.Context, id int64) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGet, entity.KindVariantAttribute)(&err)
	return fetch[entity.VariantAttribute](ctx, a.c, entity.KindVariantAttribute, idPath("/api/attributes/%d", id))
}

func (a *attributeAPI) GetByVariantID(ctx context.Context, variantID int64) (_ []entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindVariantAttribute)(&err)
	path := idPath("/api/variants/%d/attributes", variantID)
	return fetchList[entity.VariantAttribute](ctx, a.c, entity.KindVariantAttribute, path)
}

func (a *attributeAPI) Create(ctx context.Context, attr *entity.VariantAttribute) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpCreate, entity.KindVariantAttribute)(&err)
	path := idPath("/api/variants/%d/attributes", attr.ProductVariantID)
	return send[entity.VariantAttribute](ctx, a.c, entity.KindVariantAttribute, http.MethodPost, path, attr)
}

func (a *attributeAPI) Update(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (_ *entity.VariantAttribute, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindVariantAttribute)(&err)
	return send[entity.VariantAttribute](ctx, a.c, entity.KindVariantAttribute, http.MethodPut, idPath("/api/attributes/%d", id), req)
}

func (a *attributeAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindVariantAttribute)(&err)
	_, err = remove(ctx, a.c, entity.KindVariantAttribute, idPath("/api/attributes/%d", id))
	return err
}

// === PRODUCT IMAGES ===

type productImageAPI struct{ c *Client }

func (a *productImageAPI) GetByID(ctx context.Context, id int64) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindProductImage)(&err)
	return fetch[entity.ProductImage](ctx, a.c, entity.KindProductImage, idPath("/api/product-images/%d", id))
}

func (a *productImageAPI) GetByProductID(ctx context.Context, productID int64) (_ []entity.ProductImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindProductImage)(&err)
	return fetchList[entity.ProductImage](ctx, a.c, entity.KindProductImage, idPath("/api/products/%d/images", productID))
}

func (a *productImageAPI) Create(ctx context.Context, image *entity.ProductImage) (_ *entity.ProductImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindProductImage)(&err)
	path := idPath("/api/products/%d/images", image.ProductID)
	return send[entity.ProductImage](ctx, a.c, entity.KindProductImage, http.MethodPost, path, image)
}

func (a *productImageAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindProductImage)(&err)
	_, err = remove(ctx, a.c, entity.KindProductImage, idPath("/api/product-images/%d", id))
	return err
}

// === REVIEWS ===

type reviewAPI struct{ c *Client }

func (a *reviewAPI) GetAll(ctx context.Context) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return fetchList[entity.Review](ctx, a.c, entity.KindReview, "/api/reviews")
}

func (a *reviewAPI) GetByID(ctx context.Context, id int64) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpGet, entity.KindReview)(&err)
	return fetch[entity.Review](ctx, a.c, entity.KindReview, idPath("/api/reviews/%d", id))
}

func (a *reviewAPI) GetByProductID(ctx context.Context, productID int64) (_ []entity.Review, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReview)(&err)
	return fetchList[entity.Review](ctx, a.c, entity.KindReview, idPath("/api/products/%d/reviews", productID))
}

func (a *reviewAPI) Create(ctx context.Context, review *entity.Review) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReview)(&err)
	return send[entity.Review](ctx, a.c, entity.KindReview, http.MethodPost, "/api/reviews", review)
}

func (a *reviewAPI) Update(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (_ *entity.Review, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindReview)(&err)
	return send[entity.Review](ctx, a.c, entity.KindReview, http.MethodPut, idPath("/api/reviews/%d", id), req)
}

func (a *reviewAPI) Delete(ctx context.Context, id int64) (_ []entity.Ref, err error) {
	defer track(metrics.StoreOpDelete, entity.KindReview)(&err)
	return remove(ctx, a.c, entity.KindReview, idPath("/api/reviews/%d", id))
}

// === REVIEW IMAGES ===

type reviewImageAPI struct{ c *Client }

func (a *reviewImageAPI) GetByID(ctx context.Context, id int64) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGet, entity.KindReviewImage)(&err)
	return fetch[entity.ReviewImage](ctx, a.c, entity.KindReviewImage, idPath("/api/review-images/%d", id))
}

func (a *reviewImageAPI) GetByReviewID(ctx context.Context, reviewID int64) (_ []entity.ReviewImage, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindReviewImage)(&err)
	return fetchList[entity.ReviewImage](ctx, a.c, entity.KindReviewImage, idPath("/api/reviews/%d/images", reviewID))
}

func (a *reviewImageAPI) Create(ctx context.Context, image *entity.ReviewImage) (_ *entity.ReviewImage, err error) {
	defer track(metrics.StoreOpCreate, entity.KindReviewImage)(&err)
	path := idPath("/api/reviews/%d/images", image.ReviewID)
	return send[entity.ReviewImage](ctx, a.c, entity.KindReviewImage, http.MethodPost, path, image)
}

func (a *reviewImageAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindReviewImage)(&err)
	_, err = remove(ctx, a.c, entity.KindReviewImage, idPath("/api/review-images/%d", id))
	return err
}

// === COUPONS ===

type couponAPI struct{ c *Client }

func (a *couponAPI) GetAll(ctx context.Context) (_ []entity.Coupon, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindCoupon)(&err)
	return fetchList[entity.Coupon](ctx, a.c, entity.KindCoupon, "/api/coupons")
}

func (a *couponAPI) GetByID(ctx context.Context, id int64) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return fetch[entity.Coupon](ctx, a.c, entity.KindCoupon, idPath("/api/coupons/%d", id))
}

func (a *couponAPI) GetByCode(ctx context.Context, code string) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpGet, entity.KindCoupon)(&err)
	return fetch[entity.Coupon](ctx, a.c, entity.KindCoupon, keyPath("/api/coupons/code/%s", code))
}

func (a *couponAPI) Create(ctx context.Context, coupon *entity.Coupon) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpCreate, entity.KindCoupon)(&err)
	return send[entity.Coupon](ctx, a.c, entity.KindCoupon, http.MethodPost, "/api/coupons", coupon)
}

func (a *couponAPI) Update(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	return send[entity.Coupon](ctx, a.c, entity.KindCoupon, http.MethodPut, idPath("/api/coupons/%d", id), req)
}

func (a *couponAPI) SetActive(ctx context.Context, id int64, active bool) (_ *entity.Coupon, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindCoupon)(&err)
	path := idPath("/api/coupons/%d/deactivate", id)
	if active {
		path = idPath("/api/coupons/%d/activate", id)
	}
	return send[entity.Coupon](ctx, a.c, entity.KindCoupon, http.MethodPut, path, nil)
}

func (a *couponAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindCoupon)(&err)
	_, err = remove(ctx, a.c, entity.KindCoupon, idPath("/api/coupons/%d", id))
	return err
}

// === PAYMENT METHODS ===

type paymentMethodAPI struct{ c *Client }

func (a *paymentMethodAPI) GetAll(ctx context.Context) (_ []entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGetAll, entity.KindPaymentMethod)(&err)
	return fetchList[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, "/api/payment-methods")
}

func (a *paymentMethodAPI) GetByID(ctx context.Context, id int64) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return fetch[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, idPath("/api/payment-methods/%d", id))
}

func (a *paymentMethodAPI) GetByCode(ctx context.Context, code string) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpGet, entity.KindPaymentMethod)(&err)
	return fetch[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, keyPath("/api/payment-methods/code/%s", code))
}

func (a *paymentMethodAPI) Create(ctx context.Context, method *entity.PaymentMethod) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpCreate, entity.KindPaymentMethod)(&err)
	return send[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, http.MethodPost, "/api/payment-methods", method)
}

func (a *paymentMethodAPI) Update(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	path := idPath("/api/payment-methods/%d", id)
	return send[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, http.MethodPut, path, req)
}

func (a *paymentMethodAPI) SetActive(ctx context.Context, id int64, active bool) (_ *entity.PaymentMethod, err error) {
	defer track(metrics.StoreOpUpdate, entity.KindPaymentMethod)(&err)
	path := idPath("/api/payment-methods/%d/deactivate", id)
	if active {
		path = idPath("/api/payment-methods/%d/activate", id)
	}
	return send[entity.PaymentMethod](ctx, a.c, entity.KindPaymentMethod, http.MethodPut, path, nil)
}

func (a *paymentMethodAPI) Delete(ctx context.Context, id int64) (err error) {
	defer track(metrics.StoreOpDelete, entity.KindPaymentMethod)(&err)
	_, err = remove(ctx, a.c, entity.KindPaymentMethod, idPath("/api/payment-methods/%d", id))
	return err
}
