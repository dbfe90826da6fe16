package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/repository/memory"
	"beautyadmin/admin-service/internal/app/admin/repository/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryCouponService(now time.Time) *CouponService {
	store := memory.NewStore(memory.WithFixtures(memory.DefaultFixtures()))
	svc := NewCouponService(memory.NewBackend(store), nil)
	svc.now = func() time.Time { return now }
	return svc
}

var midSummer = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

// ==================== Preview Tests ====================

func TestCouponService_PreviewCoupon(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		order    float64
		discount float64
		total    float64
	}{
		{"percentage", "summer2025", 100, 15, 85},
		{"percentage capped by max usage", "SUMMER2025", 300, 30, 270},
		{"fixed", "welcome10", 45, 10, 35},
		{"rounded to cents", "summer2025", 66.66, 10, 56.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMemoryCouponService(midSummer)

			preview, err := svc.PreviewCoupon(context.Background(), &entity.PreviewCouponRequest{Code: tt.code, OrderValue: tt.order})

			require.NoError(t, err)
			assert.Equal(t, tt.discount, preview.Discount)
			assert.Equal(t, tt.total, preview.Total)
		})
	}
}

func TestCouponService_PreviewCoupon_NotApplicable(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		order float64
		at    time.Time
	}{
		{"below minimum", "SUMMER2025", 40, midSummer},
		{"expired", "SUMMER2025", 100, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)},
		{"not started", "SUMMER2025", 100, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{"inactive", "VIP20", 500, midSummer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMemoryCouponService(tt.at)

			preview, err := svc.PreviewCoupon(context.Background(), &entity.PreviewCouponRequest{Code: tt.code, OrderValue: tt.order})

			assert.Nil(t, preview)
			assert.ErrorIs(t, err, ErrCouponNotApplicable)
		})
	}
}

func TestCouponService_PreviewCoupon_UnknownCode(t *testing.T) {
	svc := newMemoryCouponService(midSummer)

	_, err := svc.PreviewCoupon(context.Background(), &entity.PreviewCouponRequest{Code: "NOPE", OrderValue: 10})

	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
}

func TestDiscount_FixedNeverExceedsOrder(t *testing.T) {
	coupon := &entity.Coupon{DiscountType: entity.DiscountTypeFixed, DiscountValue: 25}

	discount := Discount(coupon, decimal.NewFromInt(20))

	assert.True(t, discount.Equal(decimal.NewFromInt(20)))
}

// ==================== Expiry Tests ====================

func TestCouponService_DeactivateExpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc := newMemoryCouponService(midSummer)
	autumn := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	// Act
	count, err := svc.DeactivateExpired(ctx, autumn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	summer, err := svc.GetCouponByCode(ctx, "SUMMER2025")
	require.NoError(t, err)
	assert.False(t, summer.IsActive)

	welcome, err := svc.GetCouponByCode(ctx, "WELCOME10")
	require.NoError(t, err)
	assert.True(t, welcome.IsActive)

	// Повторный запуск ничего не меняет
	count, err = svc.DeactivateExpired(ctx, autumn)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCouponService_DeactivateExpired_ContinuesAfterFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	coupons := new(mocks.MockCouponRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewCouponService(&repository.Backend{Coupons: coupons}, publisher)
	past := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	coupons.On("GetAll", ctx).Return([]entity.Coupon{
		{ID: 1, Code: "A", IsActive: true, ValidTo: past},
		{ID: 2, Code: "B", IsActive: true, ValidTo: past},
	}, nil)
	coupons.On("SetActive", ctx, int64(1), false).Return(nil, errors.New("store unavailable"))
	coupons.On("SetActive", ctx, int64(2), false).Return(&entity.Coupon{ID: 2}, nil)
	publisher.On("PublishMessage", ctx, "coupon:2", mock.Anything).Return(nil)

	// Act
	count, err := svc.DeactivateExpired(ctx, midSummer)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	coupons.AssertExpectations(t)
}

// ==================== CRUD Tests ====================

func TestCouponService_CreateCoupon_StoresUppercaseCode(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryCouponService(midSummer)

	created, err := svc.CreateCoupon(ctx, &entity.CreateCouponRequest{
		Code:          "autumn15",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 15,
		ValidFrom:     time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "AUTUMN15", created.Code)
}

func TestCouponService_UpdateCoupon_InvalidWindow(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryCouponService(midSummer)
	before := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.UpdateCoupon(ctx, 1, &entity.UpdateCouponRequest{ValidTo: &before})

	assert.ErrorIs(t, err, repository.ErrInvalidValidity)
}

func TestCouponService_ActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryCouponService(midSummer)

	activated, err := svc.ActivateCoupon(ctx, 3)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	deactivated, err := svc.DeactivateCoupon(ctx, 3)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestCouponService_CreateCoupon_PercentageAbove100(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryCouponService(midSummer)

	_, err := svc.CreateCoupon(ctx, &entity.CreateCouponRequest{
		Code:          "MEGA250",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 250,
		ValidFrom:     time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = svc.GetCouponByCode(ctx, "MEGA250")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCouponService_UpdateCoupon_DiscountCheckedAfterMerge(t *testing.T) {
	tests := []struct {
		name         string
		id           int64
		discountType *entity.DiscountType
		value        float64
		wantErr      bool
	}{
		{"percentage coupon above 100", 1, nil, 150, true},
		{"percentage coupon at 100", 1, nil, 100, false},
		{"fixed coupon above 100", 2, nil, 150, false},
		{"fixed switched to percentage", 2, discountTypePtr(entity.DiscountTypePercentage), 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newMemoryCouponService(midSummer)
			value := tt.value

			_, err := svc.UpdateCoupon(ctx, tt.id, &entity.UpdateCouponRequest{DiscountType: tt.discountType, DiscountValue: &value})

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDiscount)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func discountTypePtr(v entity.DiscountType) *entity.DiscountType { return &v }
