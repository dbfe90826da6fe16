package service

import (
	"context"
	"fmt"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/logger"

	"github.com/shopspring/decimal"
)

// CouponService - промокоды: CRUD, включение/выключение, расчёт скидки и истечение срока
type CouponService struct {
	coupons repository.CouponRepository
	events  notifier
	now     func() time.Time
}

func NewCouponService(backend *repository.Backend, publisher infrastructure.MessagePublisher) *CouponService {
	return &CouponService{
		coupons: backend.Coupons,
		events:  newNotifier(publisher),
		now:     time.Now,
	}
}

func (s *CouponService) GetAllCoupons(ctx context.Context) ([]entity.Coupon, error) {
	coupons, err := s.coupons.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}
	return coupons, nil
}

func (s *CouponService) GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	return s.coupons.GetByID(ctx, id)
}

// GetCouponByCode ищет без учёта регистра: "summer2025" и "SUMMER2025" - один купон
func (s *CouponService) GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return s.coupons.GetByCode(ctx, code)
}

func (s *CouponService) CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.Coupon, error) {
	coupon := req.ToCoupon()
	if !coupon.HasValidDiscount() {
		return nil, ErrInvalidDiscount
	}

	created, err := s.coupons.Create(ctx, coupon)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.events.created(ctx, entity.KindCoupon, created.ID)
	return created, nil
}

// UpdateCoupon: тип и размер скидки проверяются после слияния с текущей записью
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (*entity.Coupon, error) {
	if req.DiscountType != nil || req.DiscountValue != nil {
		current, err := s.coupons.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := *current
		req.Apply(&merged)
		if !merged.HasValidDiscount() {
			return nil, ErrInvalidDiscount
		}
	}

	updated, err := s.coupons.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	s.events.updated(ctx, entity.KindCoupon, id)
	return updated, nil
}

func (s *CouponService) ActivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	return s.setActive(ctx, id, true)
}

func (s *CouponService) DeactivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	return s.setActive(ctx, id, false)
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	s.events.deleted(ctx, entity.KindCoupon, id, nil)
	return nil
}

// PreviewCoupon считает скидку по купону для суммы заказа без его применения.
// PERCENTAGE ограничивается MaxUsageValue (если задан), FIXED не больше суммы заказа
func (s *CouponService) PreviewCoupon(ctx context.Context, req *entity.PreviewCouponRequest) (*entity.CouponPreview, error) {
	coupon, err := s.coupons.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch {
	case !coupon.IsActive:
		return nil, fmt.Errorf("%w: coupon %s is inactive", ErrCouponNotApplicable, coupon.Code)
	case now.Before(coupon.ValidFrom):
		return nil, fmt.Errorf("%w: coupon %s is not valid yet", ErrCouponNotApplicable, coupon.Code)
	case coupon.IsExpiredAt(now):
		return nil, fmt.Errorf("%w: coupon %s has expired", ErrCouponNotApplicable, coupon.Code)
	case req.OrderValue < coupon.MinOrderValue:
		return nil, fmt.Errorf("%w: order value is below minimum %.2f", ErrCouponNotApplicable, coupon.MinOrderValue)
	}

	order := decimal.NewFromFloat(req.OrderValue)
	discount := Discount(coupon, order)
	total := order.Sub(discount)

	return &entity.CouponPreview{
		Code:       coupon.Code,
		OrderValue: order.Round(2).InexactFloat64(),
		Discount:   discount.InexactFloat64(),
		Total:      total.Round(2).InexactFloat64(),
	}, nil
}

// Discount возвращает сумму скидки купона для заказа, округлённую до копеек
func Discount(coupon *entity.Coupon, order decimal.Decimal) decimal.Decimal {
	value := decimal.NewFromFloat(coupon.DiscountValue)

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case entity.DiscountTypePercentage:
		discount = order.Mul(value).Div(decimal.NewFromInt(100))
		if coupon.MaxUsageValue > 0 {
			discount = decimal.Min(discount, decimal.NewFromFloat(coupon.MaxUsageValue))
		}
	case entity.DiscountTypeFixed:
		discount = value
	}

	discount = decimal.Min(discount, order)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2)
}

// DeactivateExpired выключает активные купоны, у которых validTo уже прошёл.
// Возвращает число выключенных купонов; ошибка по одному купону не останавливает остальные
func (s *CouponService) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	coupons, err := s.coupons.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get coupons: %w", err)
	}

	deactivated := 0
	for _, c := range coupons {
		if !c.IsActive || !c.IsExpiredAt(now) {
			continue
		}
		if _, err := s.setActive(ctx, c.ID, false); err != nil {
			logger.Error().Err(err).Str("code", c.Code).Msg("Failed to deactivate expired coupon")
			continue
		}
		deactivated++
	}
	return deactivated, nil
}

func (s *CouponService) setActive(ctx context.Context, id int64, active bool) (*entity.Coupon, error) {
	coupon, err := s.coupons.SetActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("failed to change coupon state: %w", err)
	}

	s.events.updated(ctx, entity.KindCoupon, id)
	return coupon, nil
}
