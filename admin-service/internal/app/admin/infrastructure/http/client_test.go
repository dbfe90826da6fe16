package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *repository.Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", 2*time.Second)
	client.SetAuthToken("secret")
	return NewBackend(client)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetCouponByCode_EscapesAndAuthenticates(t *testing.T) {
	// Arrange
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/coupons/code/summer 2025", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, entity.Coupon{ID: 1, Code: "SUMMER2025"})
	})

	// Act
	coupon, err := backend.Coupons.GetByCode(context.Background(), "summer 2025")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), coupon.ID)
}

func TestClient_GetAll_DecodesListResponse(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/brands", r.URL.Path)
		writeJSON(w, http.StatusOK, entity.NewListResponse([]entity.Brand{{ID: 1, Name: "Glow Lab"}, {ID: 2, Name: "Velvet Rose"}}))
	})

	brands, err := backend.Brands.GetAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, brands, 2)
	assert.Equal(t, "Velvet Rose", brands[1].Name)
}

func TestClient_GetAll_EmptyListIsNotNil(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"items": nil, "total": 0})
	})

	reviews, err := backend.Reviews.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestClient_NotFoundMapsToKindSentinel(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, entity.ErrorResponse{Error: entity.ErrCodeNotFound, Message: "coupon not found"})
	})

	_, err := backend.Coupons.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClient_BareNotFoundStillMapped(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := backend.Variants.GetByProductID(context.Background(), 7)

	assert.ErrorIs(t, err, repository.ErrProductVariantNotFound)
}

func TestClient_ErrorCodesMapToSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		want   error
	}{
		{"duplicate", http.StatusConflict, entity.ErrCodeAlreadyExists, repository.ErrDuplicateKey},
		{"active payment method", http.StatusConflict, entity.ErrCodePaymentMethodActive, repository.ErrPaymentMethodActive},
		{"variant exists", http.StatusConflict, entity.ErrCodeVariantExists, repository.ErrVariantExists},
		{"invalid validity", http.StatusUnprocessableEntity, entity.ErrCodeInvalidValidity, repository.ErrInvalidValidity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, entity.ErrorResponse{Error: tt.code, Message: tt.name})
			})

			err := backend.PaymentMethods.Delete(context.Background(), 1)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_UnexpectedStatus(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{Error: entity.ErrCodeInternal, Message: "boom"})
	})

	_, err := backend.Products.GetAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestClient_CreateVariant_PostsUnderProduct(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/5/variant", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "GL-HS-50", body["sku"])

		writeJSON(w, http.StatusCreated, entity.ProductVariant{ID: 9, ProductID: 5, SKU: "GL-HS-50"})
	})

	variant, err := backend.Variants.Create(context.Background(), &entity.ProductVariant{ProductID: 5, SKU: "GL-HS-50", Price: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(9), variant.ID)
}

func TestClient_UpdateSendsOnlySetFields(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/categories/3", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"name": "Serums"}, body)

		writeJSON(w, http.StatusOK, entity.Category{ID: 3, Name: "Serums"})
	})

	name := "Serums"
	category, err := backend.Categories.Update(context.Background(), 3, &entity.UpdateCategoryRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Serums", category.Name)
}

func TestClient_DeleteProduct_ReturnsCascadedRefs(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/products/1", r.URL.Path)
		writeJSON(w, http.StatusOK, entity.SuccessResponse{
			Message: "Product deleted successfully",
			Data:    []entity.Ref{{Kind: entity.KindProductVariant, ID: 1}},
		})
	})

	refs, err := backend.Products.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []entity.Ref{{Kind: entity.KindProductVariant, ID: 1}}, refs)
}

func TestClient_SetActive_UsesStateEndpoints(t *testing.T) {
	var paths []string
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, entity.PaymentMethod{ID: 2})
	})

	_, err := backend.PaymentMethods.SetActive(context.Background(), 2, false)
	require.NoError(t, err)
	_, err = backend.Coupons.SetActive(context.Background(), 3, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/payment-methods/2/deactivate", "/api/coupons/3/activate"}, paths)
}

func TestClient_HonoursContextCancel(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := backend.Categories.GetAll(ctx)

	assert.Error(t, err)
}
