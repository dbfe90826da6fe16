package entity

import "strings"

// Kind - тип сущности админки; используется в графе владения, событиях, метриках
type Kind string

const (
	KindCategory         Kind = "category"
	KindBrand            Kind = "brand"
	KindProduct          Kind = "product"
	KindProductVariant   Kind = "product_variant"
	KindVariantAttribute Kind = "variant_attribute"
	KindProductImage     Kind = "product_image"
	KindReview           Kind = "review"
	KindReviewImage      Kind = "review_image"
	KindCoupon           Kind = "coupon"
	KindPaymentMethod    Kind = "payment_method"
)

// AllKinds в порядке, в котором сущности сидируются и мигрируются
var AllKinds = []Kind{
	KindCategory,
	KindBrand,
	KindProduct,
	KindProductVariant,
	KindVariantAttribute,
	KindProductImage,
	KindReview,
	KindReviewImage,
	KindCoupon,
	KindPaymentMethod,
}

// Label возвращает человекочитаемое имя: "product_variant" -> "Product variant"
func (k Kind) Label() string {
	s := strings.ReplaceAll(string(k), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EventPrefix: "product_variant" -> "PRODUCT_VARIANT"
func (k Kind) EventPrefix() string {
	return strings.ToUpper(string(k))
}

// Ref - ссылка на конкретную запись
type Ref struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
}
