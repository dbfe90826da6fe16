package service

import (
	"context"
	"fmt"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/admin-service/internal/app/admin/repository"
)

// PaymentMethodService - способы оплаты. Активный способ удалить нельзя, сначала Deactivate
type PaymentMethodService struct {
	methods repository.PaymentMethodRepository
	events  notifier
}

func NewPaymentMethodService(backend *repository.Backend, publisher infrastructure.MessagePublisher) *PaymentMethodService {
	return &PaymentMethodService{
		methods: backend.PaymentMethods,
		events:  newNotifier(publisher),
	}
}

func (s *PaymentMethodService) GetAllPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	methods, err := s.methods.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	return methods, nil
}

func (s *PaymentMethodService) GetPaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	return s.methods.GetByID(ctx, id)
}

func (s *PaymentMethodService) GetPaymentMethodByCode(ctx context.Context, code string) (*entity.PaymentMethod, error) {
	return s.methods.GetByCode(ctx, code)
}

func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, req *entity.CreatePaymentMethodRequest) (*entity.PaymentMethod, error) {
	created, err := s.methods.Create(ctx, req.ToPaymentMethod())
	if err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	s.events.created(ctx, entity.KindPaymentMethod, created.ID)
	return created, nil
}

func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, id int64, req *entity.UpdatePaymentMethodRequest) (*entity.PaymentMethod, error) {
	updated, err := s.methods.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	s.events.updated(ctx, entity.KindPaymentMethod, id)
	return updated, nil
}

func (s *PaymentMethodService) ActivatePaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	return s.setActive(ctx, id, true)
}

func (s *PaymentMethodService) DeactivatePaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	return s.setActive(ctx, id, false)
}

func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, id int64) error {
	if err := s.methods.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	s.events.deleted(ctx, entity.KindPaymentMethod, id, nil)
	return nil
}

func (s *PaymentMethodService) setActive(ctx context.Context, id int64, active bool) (*entity.PaymentMethod, error) {
	method, err := s.methods.SetActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("failed to change payment method state: %w", err)
	}

	s.events.updated(ctx, entity.KindPaymentMethod, id)
	return method, nil
}
