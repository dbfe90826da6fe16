package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemorySeeded(t *testing.T) {
	// Arrange
	cfg := &config.Config{Backend: config.BackendConfig{Kind: config.BackendMemory, MockSeed: true}}

	// Act
	b, closer, err := New(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, "memory", b.Name)

	coupon, err := b.Coupons.GetByCode(context.Background(), "summer2025")
	require.NoError(t, err)
	assert.Equal(t, "SUMMER2025", coupon.Code)
}

func TestNew_MemoryEmpty(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Kind: config.BackendMemory}}

	b, _, err := New(context.Background(), cfg)

	require.NoError(t, err)
	products, err := b.Products.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestNew_HTTPUsesConfiguredAPI(t *testing.T) {
	// Arrange
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Card","code":"CARD","isActive":true}],"total":1}`))
	}))
	defer server.Close()

	cfg := &config.Config{
		Backend: config.BackendConfig{Kind: config.BackendHTTP},
		API:     config.APIConfig{BaseURL: server.URL, Timeout: time.Second, Token: "t0ken"},
	}

	// Act
	b, _, err := New(context.Background(), cfg)
	require.NoError(t, err)
	methods, err := b.PaymentMethods.GetAll(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http", b.Name)
	assert.Len(t, methods, 1)
	assert.Equal(t, "Bearer t0ken", gotAuth)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Kind: "mongo"}}

	b, closer, err := New(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Nil(t, closer)
}
