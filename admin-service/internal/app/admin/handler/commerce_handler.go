package handler

import (
	"bytes"
	"context"
	"net/http"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/export"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CouponServiceInterface interface {
	GetAllCoupons(ctx context.Context) ([]entity.Coupon, error)
	GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error)
	CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.Coupon, error)
	UpdateCoupon(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (*entity.Coupon, error)
	ActivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error)
	DeactivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) error
	PreviewCoupon(ctx context.Context, req *entity.PreviewCouponRequest) (*entity.CouponPreview, error)
}

type PaymentMethodServiceInterface interface {
	GetAllPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	GetPaymentMethodByCode(ctx context.Context, code string) (*entity.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, req *entity.CreatePaymentMethodRequest) (*entity.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (*entity.PaymentMethod, error)
	ActivatePaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	DeactivatePaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id int64) error
}

// CommerceHandler - купоны и способы оплаты
type CommerceHandler struct {
	couponService        CouponServiceInterface
	paymentMethodService PaymentMethodServiceInterface
	validator            *validator.Validate
}

func NewCommerceHandler(couponService CouponServiceInterface, paymentMethodService PaymentMethodServiceInterface) *CommerceHandler {
	return &CommerceHandler{
		couponService:        couponService,
		paymentMethodService: paymentMethodService,
		validator:            validator.New(),
	}
}

// === COUPONS ===

// GetAllCoupons обрабатывает GET /api/coupons
func (h *CommerceHandler) GetAllCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, coupons)
}

// ExportCoupons обрабатывает GET /api/coupons/export
func (h *CommerceHandler) ExportCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCoupons(&buf, coupons); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="coupons.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetCoupon обрабатывает GET /api/coupons/{id}
func (h *CommerceHandler) GetCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// GetCouponByCode обрабатывает GET /api/coupons/code/{code}
// Код сравнивается без учёта регистра
func (h *CommerceHandler) GetCouponByCode(c *gin.Context) {
	coupon, err := h.couponService.GetCouponByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// CreateCoupon обрабатывает POST /api/coupons
func (h *CommerceHandler) CreateCoupon(c *gin.Context) {
	var req entity.CreateCouponRequest
	if !bind(c, h.validator, &req) {
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon обрабатывает PUT /api/coupons/{id}
func (h *CommerceHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateCouponRequest
	if !bind(c, h.validator, &req) {
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// ActivateCoupon обрабатывает PUT /api/coupons/{id}/activate
func (h *CommerceHandler) ActivateCoupon(c *gin.Context) {
	h.setCouponActive(c, true)
}

// DeactivateCoupon обрабатывает PUT /api/coupons/{id}/deactivate
func (h *CommerceHandler) DeactivateCoupon(c *gin.Context) {
	h.setCouponActive(c, false)
}

func (h *CommerceHandler) setCouponActive(c *gin.Context, active bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var (
		coupon *entity.Coupon
		err    error
	)
	if active {
		coupon, err = h.couponService.ActivateCoupon(c.Request.Context(), id)
	} else {
		coupon, err = h.couponService.DeactivateCoupon(c.Request.Context(), id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon обрабатывает DELETE /api/coupons/{id}
func (h *CommerceHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindCoupon, nil)
}

// PreviewCoupon обрабатывает POST /api/coupons/preview
// Считает скидку по купону для суммы заказа без изменения данных
func (h *CommerceHandler) PreviewCoupon(c *gin.Context) {
	var req entity.PreviewCouponRequest
	if !bind(c, h.validator, &req) {
		return
	}

	preview, err := h.couponService.PreviewCoupon(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// === PAYMENT METHODS ===

// GetAllPaymentMethods обрабатывает GET /api/payment-methods
func (h *CommerceHandler) GetAllPaymentMethods(c *gin.Context) {
	methods, err := h.paymentMethodService.GetAllPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, methods)
}

// GetPaymentMethod обрабатывает GET /api/payment-methods/{id}
func (h *CommerceHandler) GetPaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	method, err := h.paymentMethodService.GetPaymentMethod(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

// GetPaymentMethodByCode обрабатывает GET /api/payment-methods/code/{code}
func (h *CommerceHandler) GetPaymentMethodByCode(c *gin.Context) {
	method, err := h.paymentMethodService.GetPaymentMethodByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

// CreatePaymentMethod обрабатывает POST /api/payment-methods
func (h *CommerceHandler) CreatePaymentMethod(c *gin.Context) {
	var req entity.CreatePaymentMethodRequest
	if !bind(c, h.validator, &req) {
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, method)
}

// UpdatePaymentMethod обрабатывает PUT /api/payment-methods/{id}
func (h *CommerceHandler) UpdatePaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdatePaymentMethodRequest
	if !bind(c, h.validator, &req) {
		return
	}

	method, err := h.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

// ActivatePaymentMethod обрабатывает PUT /api/payment-methods/{id}/activate
func (h *CommerceHandler) ActivatePaymentMethod(c *gin.Context) {
	h.setPaymentMethodActive(c, true)
}

// DeactivatePaymentMethod обрабатывает PUT /api/payment-methods/{id}/deactivate
func (h *CommerceHandler) DeactivatePaymentMethod(c *gin.Context) {
	h.setPaymentMethodActive(c, false)
}

func (h *CommerceHandler) setPaymentMethodActive(c *gin.Context, active bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var (
		method *entity.PaymentMethod
		err    error
	)
	if active {
		method, err = h.paymentMethodService.ActivatePaymentMethod(c.Request.Context(), id)
	} else {
		method, err = h.paymentMethodService.DeactivatePaymentMethod(c.Request.Context(), id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

// DeletePaymentMethod обрабатывает DELETE /api/payment-methods/{id}
// Активный способ оплаты удалить нельзя, ответ 409
func (h *CommerceHandler) DeletePaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindPaymentMethod, nil)
}
