package handler

import (
	"context"
	"net/http"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	GetAllReviews(ctx context.Context) ([]entity.Review, error)
	GetReview(ctx context.Context, id int64) (*entity.ReviewDetail, error)
	GetProductReviews(ctx context.Context, productID int64) ([]entity.Review, error)
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.ReviewDetail, error)
	UpdateReview(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (*entity.ReviewDetail, error)
	DeleteReview(ctx context.Context, id int64) ([]entity.Ref, error)

	GetReviewImages(ctx context.Context, reviewID int64) ([]entity.ReviewImage, error)
	GetReviewImage(ctx context.Context, id int64) (*entity.ReviewImage, error)
	AddReviewImage(ctx context.Context, reviewID int64, req *entity.CreateImageRequest) (*entity.ReviewImage, error)
	DeleteReviewImage(ctx context.Context, id int64) error
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// GetAllReviews обрабатывает GET /api/reviews
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetAllReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews)
}

// GetReview обрабатывает GET /api/reviews/{id}
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// GetProductReviews обрабатывает GET /api/products/{id}/reviews
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews)
}

// CreateReview обрабатывает POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if !bind(c, h.validator, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// UpdateReview обрабатывает PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateReviewRequest
	if !bind(c, h.validator, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview обрабатывает DELETE /api/reviews/{id}
// Отзыв удаляется вместе с его изображениями
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	refs, err := h.reviewService.DeleteReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindReview, refs)
}

// GetReviewImages обрабатывает GET /api/reviews/{id}/images
func (h *ReviewHandler) GetReviewImages(c *gin.Context) {
	reviewID, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.reviewService.GetReviewImages(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, images)
}

// AddReviewImage обрабатывает POST /api/reviews/{id}/images
func (h *ReviewHandler) AddReviewImage(c *gin.Context) {
	reviewID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.CreateImageRequest
	if !bind(c, h.validator, &req) {
		return
	}

	image, err := h.reviewService.AddReviewImage(c.Request.Context(), reviewID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// GetReviewImage обрабатывает GET /api/review-images/{id}
func (h *ReviewHandler) GetReviewImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	image, err := h.reviewService.GetReviewImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteReviewImage обрабатывает DELETE /api/review-images/{id}
func (h *ReviewHandler) DeleteReviewImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReviewImage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindReviewImage, nil)
}
