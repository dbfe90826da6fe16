package entity

// Коды ошибок в теле ответа {"error": CODE, "message": ...}.
// Одинаковы для сервера и HTTP-клиента, по ним клиент восстанавливает sentinel-ошибки
const (
	ErrCodeNotFound            = "RESOURCE_NOT_FOUND"
	ErrCodeAlreadyExists       = "RESOURCE_ALREADY_EXISTS"
	ErrCodePaymentMethodActive = "PAYMENT_METHOD_ACTIVE"
	ErrCodeVariantExists       = "VARIANT_ALREADY_EXISTS"
	ErrCodeInvalidValidity     = "COUPON_INVALID_VALIDITY"
	ErrCodeCouponNotApplicable = "COUPON_NOT_APPLICABLE"
	ErrCodeInvalidInput        = "VALIDATION_INVALID_INPUT"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
)
