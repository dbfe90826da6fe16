package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryPaymentMethodService() *PaymentMethodService {
	return NewPaymentMethodService(newMemoryBackend(), nil)
}

func TestPaymentMethodService_DeleteActive_LeavesCollectionUnchanged(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc := newMemoryPaymentMethodService()
	before, err := svc.GetAllPaymentMethods(ctx)
	require.NoError(t, err)

	// Act
	err = svc.DeletePaymentMethod(ctx, 1)

	// Assert
	assert.ErrorIs(t, err, repository.ErrPaymentMethodActive)
	after, err := svc.GetAllPaymentMethods(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPaymentMethodService_DeactivateThenDelete(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryPaymentMethodService()

	method, err := svc.DeactivatePaymentMethod(ctx, 2)
	require.NoError(t, err)
	assert.False(t, method.IsActive)

	require.NoError(t, svc.DeletePaymentMethod(ctx, 2))

	_, err = svc.GetPaymentMethod(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPaymentMethodService_DeleteInactive(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryPaymentMethodService()

	require.NoError(t, svc.DeletePaymentMethod(ctx, 3))

	methods, err := svc.GetAllPaymentMethods(ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 2)
}

func TestPaymentMethodService_GetByCode_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryPaymentMethodService()

	lower, err := svc.GetPaymentMethodByCode(ctx, "cod")
	require.NoError(t, err)
	upper, err := svc.GetPaymentMethodByCode(ctx, "COD")
	require.NoError(t, err)

	assert.Equal(t, lower.ID, upper.ID)
}

func TestPaymentMethodService_CreateDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryPaymentMethodService()

	_, err := svc.CreatePaymentMethod(ctx, &entity.CreatePaymentMethodRequest{Name: "Card again", Code: "card"})

	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestPaymentMethodService_UpdatePublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	methods := new(mocks.MockPaymentMethodRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewPaymentMethodService(&repository.Backend{PaymentMethods: methods}, publisher)
	name := "Cash on delivery"
	req := &entity.UpdatePaymentMethodRequest{Name: &name}

	methods.On("Update", ctx, int64(2), req).Return(&entity.PaymentMethod{ID: 2, Name: name, Code: "COD"}, nil)

	var published entity.Event
	publisher.On("PublishMessage", ctx, "payment_method:2", mock.Anything).
		Run(func(args mock.Arguments) {
			_ = json.Unmarshal(args.Get(2).([]byte), &published)
		}).
		Return(nil)

	// Act
	updated, err := svc.UpdatePaymentMethod(ctx, 2, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "PAYMENT_METHOD_UPDATED", published.EventType)
	methods.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPaymentMethodService_DeleteFailure_NoEvent(t *testing.T) {
	ctx := context.Background()
	methods := new(mocks.MockPaymentMethodRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewPaymentMethodService(&repository.Backend{PaymentMethods: methods}, publisher)

	methods.On("Delete", ctx, int64(1)).Return(repository.ErrPaymentMethodActive)

	err := svc.DeletePaymentMethod(ctx, 1)

	assert.ErrorIs(t, err, repository.ErrPaymentMethodActive)
	publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentMethodService_PublishFailureIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	methods := new(mocks.MockPaymentMethodRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewPaymentMethodService(&repository.Backend{PaymentMethods: methods}, publisher)

	methods.On("SetActive", ctx, int64(3), true).Return(&entity.PaymentMethod{ID: 3, IsActive: true}, nil)
	publisher.On("PublishMessage", ctx, "payment_method:3", mock.Anything).Return(errors.New("kafka down"))

	// Act
	method, err := svc.ActivatePaymentMethod(ctx, 3)

	// Assert
	require.NoError(t, err)
	assert.True(t, method.IsActive)
}
