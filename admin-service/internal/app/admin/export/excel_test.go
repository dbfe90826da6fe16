package export

import (
	"bytes"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteProducts(t *testing.T) {
	// Arrange
	sale := 24.9
	rows := []ProductRow{
		{
			Product: entity.Product{ID: 1, Name: "Hydrating Serum", Slug: "hydrating-serum", Status: entity.ProductStatusActive, CategoryID: 3, BrandID: 1},
			Variant: &entity.ProductVariant{SKU: "GL-HS-30", Price: 29.9, SalePrice: &sale, StockQuantity: 120},
		},
		{
			Product: entity.Product{ID: 2, Name: "Clay Mask", Slug: "clay-mask", Status: entity.ProductStatusDraft},
		},
	}
	var buf bytes.Buffer

	// Act
	err := WriteProducts(&buf, rows)

	// Assert
	require.NoError(t, err)
	got := readRows(t, buf.Bytes(), ProductsSheet)
	require.Len(t, got, 3)
	assert.Equal(t, "SKU", got[0][6])
	assert.Equal(t, "Hydrating Serum", got[1][1])
	assert.Equal(t, "GL-HS-30", got[1][6])
	assert.Equal(t, "24.9", got[1][8])
	assert.Equal(t, "120", got[1][9])
	assert.Equal(t, "draft", got[2][3])
	assert.Equal(t, "", got[2][6])
}

func TestWriteCoupons(t *testing.T) {
	coupons := []entity.Coupon{{
		ID: 1, Code: "SUMMER2025", DiscountType: entity.DiscountTypePercentage, DiscountValue: 15,
		ValidFrom: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}}
	var buf bytes.Buffer

	err := WriteCoupons(&buf, coupons)

	require.NoError(t, err)
	got := readRows(t, buf.Bytes(), CouponsSheet)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1", "SUMMER2025", "PERCENTAGE", "15", "0", "0", "2025-06-01", "2025-08-31", "TRUE"}, got[1])
}

func TestWriteCoupons_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCoupons(&buf, nil))

	got := readRows(t, buf.Bytes(), CouponsSheet)
	assert.Len(t, got, 1)
}
