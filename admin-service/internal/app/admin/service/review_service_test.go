package service

import (
	"context"
	"testing"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/repository/memory"
	"beautyadmin/admin-service/internal/app/admin/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryBackend() *repository.Backend {
	return memory.NewBackend(memory.NewStore(memory.WithFixtures(memory.DefaultFixtures())))
}

// ==================== Review Tests ====================

func TestReviewService_CreateReview_WithImages(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc := NewReviewService(newMemoryBackend(), nil)

	// Act
	detail, err := svc.CreateReview(ctx, &entity.CreateReviewRequest{
		UserID:    21,
		ProductID: 3,
		Content:   "Gentle and does not dry out my skin.",
		Rating:    5,
		ImageURLs: []string{"https://cdn.example.com/r/1.jpg", "https://cdn.example.com/r/2.jpg"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.ProductID)
	require.Len(t, detail.Images, 2)
	assert.Equal(t, detail.ID, detail.Images[0].ReviewID)
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	svc := NewReviewService(newMemoryBackend(), nil)

	_, err := svc.CreateReview(context.Background(), &entity.CreateReviewRequest{ProductID: 404, Content: "ok", Rating: 3})

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestReviewService_DeleteReview_CascadesToImages(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc := NewReviewService(newMemoryBackend(), nil)

	// Act
	refs, err := svc.DeleteReview(ctx, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []entity.Ref{
		{Kind: entity.KindReviewImage, ID: 1},
		{Kind: entity.KindReviewImage, ID: 2},
	}, refs)

	_, err = svc.GetReview(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	_, err = svc.GetReviewImage(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrReviewImageNotFound)
}

func TestReviewService_GetProductReviews(t *testing.T) {
	svc := NewReviewService(newMemoryBackend(), nil)

	reviews, err := svc.GetProductReviews(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestReviewService_UpdateReview_PublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	reviews := new(mocks.MockReviewRepository)
	images := new(mocks.MockReviewImageRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewReviewService(&repository.Backend{Reviews: reviews, ReviewImages: images}, publisher)
	rating := 2

	reviews.On("Update", ctx, int64(1), mock.Anything).Return(&entity.Review{ID: 1, Rating: 2}, nil)
	images.On("GetByReviewID", ctx, int64(1)).Return([]entity.ReviewImage{}, nil)
	publisher.On("PublishMessage", ctx, "review:1", mock.Anything).Return(nil)

	// Act
	detail, err := svc.UpdateReview(ctx, 1, &entity.UpdateReviewRequest{Rating: &rating})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Rating)
	publisher.AssertExpectations(t)
}

func TestReviewService_AddReviewImage_UnknownReview(t *testing.T) {
	svc := NewReviewService(newMemoryBackend(), nil)

	_, err := svc.AddReviewImage(context.Background(), 99, &entity.CreateImageRequest{ImageURL: "https://cdn.example.com/x.jpg"})

	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
}
