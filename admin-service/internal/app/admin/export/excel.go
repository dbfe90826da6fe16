package export

import (
	"fmt"
	"io"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/xuri/excelize/v2"
)

const (
	ProductsSheet = "Products"
	CouponsSheet  = "Coupons"

	// ContentType - MIME тип xlsx для ответа handler'а
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var productHeader = []interface{}{
	"ID", "Name", "Slug", "Status", "Category ID", "Brand ID", "SKU", "Price", "Sale price", "Stock", "Updated at",
}

var couponHeader = []interface{}{
	"ID", "Code", "Type", "Value", "Min order", "Max discount", "Valid from", "Valid to", "Active",
}

// ProductRow - товар вместе с его вариантом (может отсутствовать)
type ProductRow struct {
	Product entity.Product
	Variant *entity.ProductVariant
}

// WriteProducts пишет xlsx со списком товаров и цен основного варианта
func WriteProducts(w io.Writer, rows []ProductRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ProductsSheet, "A1", &productHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		p := r.Product
		values := []interface{}{
			p.ID, p.Name, p.Slug, string(p.Status), p.CategoryID, p.BrandID,
			"", nil, nil, nil, p.UpdatedAt.Format(time.RFC3339),
		}
		if v := r.Variant; v != nil {
			values[6] = v.SKU
			values[7] = v.Price
			if v.SalePrice != nil {
				values[8] = *v.SalePrice
			}
			values[9] = v.StockQuantity
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ProductsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write product %d: %w", p.ID, err)
		}
	}

	return write(f, w, ProductsSheet, len(productHeader))
}

// WriteCoupons пишет xlsx со списком купонов
func WriteCoupons(w io.Writer, coupons []entity.Coupon) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CouponsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(CouponsSheet, "A1", &couponHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, c := range coupons {
		values := []interface{}{
			c.ID, c.Code, string(c.DiscountType), c.DiscountValue, c.MinOrderValue, c.MaxUsageValue,
			c.ValidFrom.Format(time.DateOnly), c.ValidTo.Format(time.DateOnly), c.IsActive,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(CouponsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write coupon %s: %w", c.Code, err)
		}
	}

	return write(f, w, CouponsSheet, len(couponHeader))
}

// write закрепляет строку заголовка, выделяет её жирным и отдаёт книгу в w
func write(f *excelize.File, w io.Writer, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
