package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/export"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/repository/memory"
	"beautyadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newHandlers(backend *repository.Backend) Handlers {
	return Handlers{
		Catalog: NewCatalogHandler(service.NewCatalogService(backend, nil, nil, time.Minute)),
		Reviews: NewReviewHandler(service.NewReviewService(backend, nil)),
		Commerce: NewCommerceHandler(
			service.NewCouponService(backend, nil),
			service.NewPaymentMethodService(backend, nil),
		),
	}
}

// setupTestRouter собирает полный роутер поверх хранилища в памяти с демо-данными
func setupTestRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	backend := memory.NewBackend(memory.NewStore(memory.WithFixtures(memory.DefaultFixtures())))
	return SetupRoutes(newHandlers(backend), NewAuthMiddleware(token), []string{"*"})
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) entity.ErrorResponse {
	t.Helper()
	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-service")
}

// ==================== Catalog Tests ====================

func TestGetProduct_ReturnsDetail(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/api/products/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var detail entity.ProductDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "hydrating-hyaluronic-serum", detail.Slug)
	require.NotNil(t, detail.Variant)
	assert.Equal(t, "GL-HS-30", detail.Variant.SKU)
	assert.Len(t, detail.Attributes, 2)
	assert.Len(t, detail.Images, 2)
}

func TestGetProduct_InvalidID(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/api/products/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.ErrCodeInvalidInput, decodeError(t, w).Error)
}

func TestGetCategory_NotFound(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/api/categories/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, entity.ErrCodeNotFound, decodeError(t, w).Error)
}

func TestCreateCategory_GeneratesSlugAndRejectsDuplicate(t *testing.T) {
	// Arrange
	router := setupTestRouter("")
	req := entity.CreateCategoryRequest{Name: "Body Care"}

	// Act
	created := doRequest(router, http.MethodPost, "/api/categories", req)
	duplicate := doRequest(router, http.MethodPost, "/api/categories", req)

	// Assert
	require.Equal(t, http.StatusCreated, created.Code)
	var category entity.Category
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &category))
	assert.Equal(t, "body-care", category.Slug)

	assert.Equal(t, http.StatusConflict, duplicate.Code)
	assert.Equal(t, entity.ErrCodeAlreadyExists, decodeError(t, duplicate).Error)
}

func TestCreateCategory_ValidationError(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodPost, "/api/categories", entity.CreateCategoryRequest{Name: "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, entity.ErrCodeInvalidInput, resp.Error)
	assert.Equal(t, "Name is min", resp.Message)
}

func TestCreateProduct_AttributesWithoutVariant(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodPost, "/api/products", entity.CreateProductRequest{
		Name: "Rose Toner", CategoryID: 1, BrandID: 3,
		Attributes: []entity.CreateAttributeRequest{{Name: "Volume", Value: "150ml"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateVariant_SecondVariantConflicts(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodPost, "/api/products/1/variant", entity.CreateVariantRequest{
		Name: "50ml", SKU: "GL-HS-50", Price: 39.9,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, entity.ErrCodeVariantExists, decodeError(t, w).Error)
}

func TestDeleteProduct_Cascades(t *testing.T) {
	// Arrange
	router := setupTestRouter("")

	// Act
	w := doRequest(router, http.MethodDelete, "/api/products/1", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Message string       `json:"message"`
		Data    []entity.Ref `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Product deleted successfully", resp.Message)
	assert.ElementsMatch(t, []entity.Ref{
		{Kind: entity.KindVariantAttribute, ID: 1},
		{Kind: entity.KindVariantAttribute, ID: 2},
		{Kind: entity.KindProductVariant, ID: 1},
	}, resp.Data)

	for _, path := range []string{"/api/products/1", "/api/variants/1", "/api/attributes/1", "/api/attributes/2"} {
		assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, path, nil).Code, path)
	}
}

func TestExportProducts(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/api/products/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.ProductsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

// ==================== Review Tests ====================

func TestDeleteReview_Cascades(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodDelete, "/api/reviews/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/review-images/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/review-images/2", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/review-images/3", nil).Code)
}

func TestGetProductReviews(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodGet, "/api/products/1/reviews", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp entity.ListResponse[entity.Review]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

// ==================== Commerce Tests ====================

func TestGetCouponByCode_CaseInsensitive(t *testing.T) {
	router := setupTestRouter("")

	lower := doRequest(router, http.MethodGet, "/api/coupons/code/summer2025", nil)
	upper := doRequest(router, http.MethodGet, "/api/coupons/code/SUMMER2025", nil)

	require.Equal(t, http.StatusOK, lower.Code)
	assert.JSONEq(t, upper.Body.String(), lower.Body.String())
}

func TestCreateCoupon_InvalidWindowRejectedByValidation(t *testing.T) {
	router := setupTestRouter("")
	from := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	w := doRequest(router, http.MethodPost, "/api/coupons", entity.CreateCouponRequest{
		Code: "BROKEN", DiscountType: entity.DiscountTypeFixed, DiscountValue: 5,
		ValidFrom: from, ValidTo: from.AddDate(0, 0, -1),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidTo is gtfield", decodeError(t, w).Message)
}

func TestUpdateCoupon_InvalidWindowRejectedByStore(t *testing.T) {
	router := setupTestRouter("")
	before := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	w := doRequest(router, http.MethodPut, "/api/coupons/1", entity.UpdateCouponRequest{ValidTo: &before})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, entity.ErrCodeInvalidValidity, decodeError(t, w).Error)
}

func TestPreviewCoupon(t *testing.T) {
	// Arrange
	router := setupTestRouter("")
	now := time.Now().UTC()
	created := doRequest(router, http.MethodPost, "/api/coupons", entity.CreateCouponRequest{
		Code: "flash5", IsActive: true, DiscountType: entity.DiscountTypeFixed, DiscountValue: 5,
		ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, created.Code)

	// Act
	w := doRequest(router, http.MethodPost, "/api/coupons/preview", entity.PreviewCouponRequest{Code: "FLASH5", OrderValue: 42})

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var preview entity.CouponPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Equal(t, 5.0, preview.Discount)
	assert.Equal(t, 37.0, preview.Total)
}

func TestPreviewCoupon_InactiveNotApplicable(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodPost, "/api/coupons/preview", entity.PreviewCouponRequest{Code: "vip20", OrderValue: 500})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, entity.ErrCodeCouponNotApplicable, decodeError(t, w).Error)
}

func TestDeletePaymentMethod_ActiveConflicts(t *testing.T) {
	// Arrange
	router := setupTestRouter("")

	// Act
	w := doRequest(router, http.MethodDelete, "/api/payment-methods/1", nil)

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, entity.ErrCodePaymentMethodActive, decodeError(t, w).Error)

	list := doRequest(router, http.MethodGet, "/api/payment-methods", nil)
	var resp entity.ListResponse[entity.PaymentMethod]
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
}

func TestDeletePaymentMethod_AfterDeactivate(t *testing.T) {
	router := setupTestRouter("")

	deactivated := doRequest(router, http.MethodPut, "/api/payment-methods/2/deactivate", nil)
	deleted := doRequest(router, http.MethodDelete, "/api/payment-methods/2", nil)

	require.Equal(t, http.StatusOK, deactivated.Code)
	assert.Equal(t, http.StatusOK, deleted.Code)
	assert.Contains(t, deleted.Body.String(), "Payment method deleted successfully")
}

// ==================== Auth Tests ====================

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer s3cret", http.StatusOK},
	}

	router := setupTestRouter("s3cret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/api/brands", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthMiddleware_HealthIsPublic(t *testing.T) {
	router := setupTestRouter("s3cret")

	w := doRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth_FailingCheckReturns503(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	backend := memory.NewBackend(memory.NewStore())
	h := newHandlers(backend)
	h.Health = NewHealthCheckHandler(map[string]Checker{
		"backend": func(ctx context.Context) error { return nil },
		"redis":   func(ctx context.Context) error { return errors.New("connection refused") },
	})
	router := SetupRoutes(h, NewAuthMiddleware(""), nil)

	// Act
	health := doRequest(router, http.MethodGet, "/health", nil)
	readiness := doRequest(router, http.MethodGet, "/health/readiness", nil)
	liveness := doRequest(router, http.MethodGet, "/health/liveness", nil)

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, health.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Checks["backend"])
	assert.Equal(t, "unhealthy: connection refused", resp.Checks["redis"])

	assert.Equal(t, http.StatusServiceUnavailable, readiness.Code)
	assert.Equal(t, "redis not ready", readiness.Body.String())
	assert.Equal(t, http.StatusOK, liveness.Code)
}

func TestUpdateProduct_PartialVariantWithoutExistingVariant(t *testing.T) {
	// Arrange
	router := setupTestRouter("")
	w := doRequest(router, http.MethodPost, "/api/products", entity.CreateProductRequest{
		Name: "Clay Mask", CategoryID: 1, BrandID: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.ProductDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/products/" + strconv.FormatInt(created.ID, 10)

	// Act
	w = doRequest(router, http.MethodPut, path, map[string]interface{}{
		"variant": map[string]interface{}{"stockQuantity": 5},
	})

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.ErrCodeInvalidInput, decodeError(t, w).Error)
	w = doRequest(router, http.MethodGet, path+"/variant", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategory_PunctuationOnlyName(t *testing.T) {
	router := setupTestRouter("")

	w := doRequest(router, http.MethodPost, "/api/categories", entity.CreateCategoryRequest{Name: "!!"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.ErrCodeInvalidInput, decodeError(t, w).Error)
}

func TestCreateCoupon_PercentageAbove100(t *testing.T) {
	router := setupTestRouter("")
	now := time.Now().UTC()

	w := doRequest(router, http.MethodPost, "/api/coupons", entity.CreateCouponRequest{
		Code:          "MEGA250",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 250,
		ValidFrom:     now,
		ValidTo:       now.Add(24 * time.Hour),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.ErrCodeInvalidInput, decodeError(t, w).Error)
}
