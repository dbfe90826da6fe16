package service

import (
	"context"
	"fmt"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/logger"
)

// ReviewService - модерация отзывов и прикреплённых к ним изображений
type ReviewService struct {
	reviews  repository.ReviewRepository
	images   repository.ReviewImageRepository
	products repository.ProductRepository
	events   notifier
}

func NewReviewService(backend *repository.Backend, publisher infrastructure.MessagePublisher) *ReviewService {
	return &ReviewService{
		reviews:  backend.Reviews,
		images:   backend.ReviewImages,
		products: backend.Products,
		events:   newNotifier(publisher),
	}
}

func (s *ReviewService) GetAllReviews(ctx context.Context) ([]entity.Review, error) {
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

// GetReview возвращает отзыв вместе с изображениями
func (s *ReviewService) GetReview(ctx context.Context, id int64) (*entity.ReviewDetail, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, review)
}

func (s *ReviewService) GetProductReviews(ctx context.Context, productID int64) ([]entity.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.reviews.GetByProductID(ctx, productID)
}

// CreateReview создает отзыв и изображения по переданным URL.
// Если изображение сохранить не удалось, отзыв удаляется каскадом
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.ReviewDetail, error) {
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	created, err := s.reviews.Create(ctx, req.ToReview())
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	for _, url := range req.ImageURLs {
		if _, err := s.images.Create(ctx, &entity.ReviewImage{ReviewID: created.ID, ImageURL: url}); err != nil {
			if _, rbErr := s.reviews.Delete(ctx, created.ID); rbErr != nil {
				logger.Error().Err(rbErr).Int64("review_id", created.ID).Msg("Failed to roll back review")
			}
			return nil, fmt.Errorf("failed to create review image: %w", err)
		}
	}

	s.events.created(ctx, entity.KindReview, created.ID)
	return s.detail(ctx, created)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (*entity.ReviewDetail, error) {
	updated, err := s.reviews.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.events.updated(ctx, entity.KindReview, id)
	return s.detail(ctx, updated)
}

// DeleteReview удаляет отзыв и все его изображения
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) ([]entity.Ref, error) {
	cascaded, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete review: %w", err)
	}

	s.events.deleted(ctx, entity.KindReview, id, cascaded)
	return cascaded, nil
}

// === REVIEW IMAGES ===

func (s *ReviewService) GetReviewImages(ctx context.Context, reviewID int64) ([]entity.ReviewImage, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.images.GetByReviewID(ctx, reviewID)
}

func (s *ReviewService) GetReviewImage(ctx context.Context, id int64) (*entity.ReviewImage, error) {
	return s.images.GetByID(ctx, id)
}

func (s *ReviewService) AddReviewImage(ctx context.Context, reviewID int64, req *entity.CreateImageRequest) (*entity.ReviewImage, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	created, err := s.images.Create(ctx, &entity.ReviewImage{ReviewID: reviewID, ImageURL: req.ImageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create review image: %w", err)
	}

	s.events.created(ctx, entity.KindReviewImage, created.ID)
	return created, nil
}

func (s *ReviewService) DeleteReviewImage(ctx context.Context, id int64) error {
	if err := s.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review image: %w", err)
	}

	s.events.deleted(ctx, entity.KindReviewImage, id, nil)
	return nil
}

func (s *ReviewService) detail(ctx context.Context, review *entity.Review) (*entity.ReviewDetail, error) {
	images, err := s.images.GetByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review images: %w", err)
	}
	return &entity.ReviewDetail{Review: *review, Images: images}, nil
}
