package service

import "errors"

var (
	// ErrCouponNotApplicable - купон нельзя применить к заказу (неактивен, вне окна, мала сумма)
	ErrCouponNotApplicable = errors.New("coupon is not applicable")

	// ErrVariantRequired - атрибуты передали для товара без варианта
	ErrVariantRequired = errors.New("product has no variant to attach attributes to")

	// ErrInvalidVariant - вариант после слияния патча нарушает правила создания
	ErrInvalidVariant = errors.New("invalid product variant")

	// ErrInvalidSlug - из имени или slug не осталось ни одного допустимого символа
	ErrInvalidSlug = errors.New("slug must contain at least one letter or digit")

	// ErrInvalidDiscount - процентная скидка больше 100
	ErrInvalidDiscount = errors.New("percentage discount must not exceed 100")
)
