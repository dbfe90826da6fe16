package memory

import (
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
)

// Fixtures - начальные данные хранилища
type Fixtures struct {
	Categories     []entity.Category
	Brands         []entity.Brand
	Products       []entity.Product
	Variants       []entity.ProductVariant
	Attributes     []entity.VariantAttribute
	ProductImages  []entity.ProductImage
	Reviews        []entity.Review
	ReviewImages   []entity.ReviewImage
	Coupons        []entity.Coupon
	PaymentMethods []entity.PaymentMethod
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func cloneCategory(c entity.Category) entity.Category {
	c.ParentCategoryID = cloneInt64(c.ParentCategoryID)
	return c
}

func cloneVariant(v entity.ProductVariant) entity.ProductVariant {
	v.SalePrice = cloneFloat64(v.SalePrice)
	return v
}

// DefaultFixtures возвращает демо-каталог косметики.
// Каждый вызов создаёт новые срезы, так что тесты не влияют друг на друга
func DefaultFixtures() Fixtures {
	base := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return base.AddDate(0, 0, days) }

	return Fixtures{
		Categories: []entity.Category{
			{ID: 1, Name: "Skincare", Slug: "skincare", ImageURL: "https://cdn.example.com/categories/skincare.jpg", CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 2, Name: "Makeup", Slug: "makeup", ImageURL: "https://cdn.example.com/categories/makeup.jpg", CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 3, Name: "Face Serums", Slug: "face-serums", ParentCategoryID: int64Ptr(1), CreatedAt: at(1), UpdatedAt: at(1)},
			{ID: 4, Name: "Lipsticks", Slug: "lipsticks", ParentCategoryID: int64Ptr(2), CreatedAt: at(1), UpdatedAt: at(1)},
		},
		Brands: []entity.Brand{
			{ID: 1, Name: "Glow Lab", Slug: "glow-lab", LogoURL: "https://cdn.example.com/brands/glow-lab.png", CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 2, Name: "Velvet Rose", Slug: "velvet-rose", LogoURL: "https://cdn.example.com/brands/velvet-rose.png", CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 3, Name: "Pure Botanica", Slug: "pure-botanica", CreatedAt: at(2), UpdatedAt: at(2)},
		},
		Products: []entity.Product{
			{
				ID: 1, Name: "Hydrating Hyaluronic Serum", Slug: "hydrating-hyaluronic-serum",
				Description: "Lightweight serum with three types of hyaluronic acid.",
				CategoryID:  3, BrandID: 1, Status: entity.ProductStatusActive,
				CreatedAt: at(3), UpdatedAt: at(3),
			},
			{
				ID: 2, Name: "Matte Velvet Lipstick", Slug: "matte-velvet-lipstick",
				Description: "Long-wear matte lipstick enriched with shea butter.",
				CategoryID:  4, BrandID: 2, Status: entity.ProductStatusActive,
				CreatedAt: at(4), UpdatedAt: at(4),
			},
			{
				ID: 3, Name: "Calming Cleansing Gel", Slug: "calming-cleansing-gel",
				Description: "Soap-free gel cleanser with centella and green tea.",
				CategoryID:  1, BrandID: 3, Status: entity.ProductStatusDraft,
				CreatedAt: at(5), UpdatedAt: at(5),
			},
		},
		Variants: []entity.ProductVariant{
			{ID: 1, ProductID: 1, Name: "30ml", SKU: "GL-HS-30", Price: 29.90, SalePrice: float64Ptr(24.90), StockQuantity: 120, CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: 2, ProductID: 2, Name: "Ruby Red", SKU: "VR-MVL-RR", Price: 18.50, StockQuantity: 80, CreatedAt: at(4), UpdatedAt: at(4)},
			{ID: 3, ProductID: 3, Name: "200ml", SKU: "PB-CG-200", Price: 14.00, StockQuantity: 0, CreatedAt: at(5), UpdatedAt: at(5)},
		},
		Attributes: []entity.VariantAttribute{
			{ID: 1, ProductVariantID: 1, Name: "Volume", Value: "30ml", CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: 2, ProductVariantID: 1, Name: "Skin type", Value: "All skin types", CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: 3, ProductVariantID: 2, Name: "Shade", Value: "Ruby Red", CreatedAt: at(4), UpdatedAt: at(4)},
			{ID: 4, ProductVariantID: 2, Name: "Finish", Value: "Matte", CreatedAt: at(4), UpdatedAt: at(4)},
			{ID: 5, ProductVariantID: 3, Name: "Volume", Value: "200ml", CreatedAt: at(5), UpdatedAt: at(5)},
		},
		ProductImages: []entity.ProductImage{
			{ID: 1, ProductID: 1, ImageURL: "https://cdn.example.com/products/serum-front.jpg", CreatedAt: at(3)},
			{ID: 2, ProductID: 1, ImageURL: "https://cdn.example.com/products/serum-texture.jpg", CreatedAt: at(3)},
			{ID: 3, ProductID: 2, ImageURL: "https://cdn.example.com/products/lipstick-ruby.jpg", CreatedAt: at(4)},
		},
		Reviews: []entity.Review{
			{
				ID: 1, UserID: 11, ProductID: 1, Rating: 5, Title: "My holy grail",
				Content: "Skin feels plump all day, no stickiness.", Email: "anna@example.com",
				Nickname: "anna_k", IsRecommend: true, CreatedAt: at(10), UpdatedAt: at(10),
			},
			{
				ID: 2, UserID: 12, ProductID: 2, Rating: 4, Title: "Great color",
				Content: "Beautiful shade, slightly drying after a few hours.", Email: "mia@example.com",
				Nickname: "mia", IsRecommend: true, CreatedAt: at(12), UpdatedAt: at(12),
			},
			{
				ID: 3, UserID: 13, ProductID: 1, Rating: 3, Title: "Okay",
				Content: "Nice texture but I did not see big changes.", Nickname: "lena",
				CreatedAt: at(14), UpdatedAt: at(14),
			},
		},
		ReviewImages: []entity.ReviewImage{
			{ID: 1, ReviewID: 1, ImageURL: "https://cdn.example.com/reviews/1-before.jpg", CreatedAt: at(10)},
			{ID: 2, ReviewID: 1, ImageURL: "https://cdn.example.com/reviews/1-after.jpg", CreatedAt: at(10)},
			{ID: 3, ReviewID: 2, ImageURL: "https://cdn.example.com/reviews/2-swatch.jpg", CreatedAt: at(12)},
		},
		Coupons: []entity.Coupon{
			{
				ID: 1, Code: "SUMMER2025", Description: "Summer sale: 15% off, up to 30",
				IsActive: true, DiscountType: entity.DiscountTypePercentage, DiscountValue: 15,
				MinOrderValue: 50, MaxUsageValue: 30,
				ValidFrom:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:         time.Date(2025, time.August, 31, 23, 59, 59, 0, time.UTC),
				CreatedByUserID: 1, CreatedAt: at(20), UpdatedAt: at(20),
			},
			{
				ID: 2, Code: "WELCOME10", Description: "10 off the first order",
				IsActive: true, DiscountType: entity.DiscountTypeFixed, DiscountValue: 10,
				MinOrderValue: 40,
				ValidFrom:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:       time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
				CreatedByUserID: 1, CreatedAt: at(0), UpdatedAt: at(0),
			},
			{
				ID: 3, Code: "VIP20", Description: "Loyalty program, 20% off",
				IsActive: false, DiscountType: entity.DiscountTypePercentage, DiscountValue: 20,
				MinOrderValue: 100, MaxUsageValue: 50,
				ValidFrom:       time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:         time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
				CreatedByUserID: 2, CreatedAt: at(30), UpdatedAt: at(30),
			},
		},
		PaymentMethods: []entity.PaymentMethod{
			{ID: 1, Name: "Credit card", Code: "CARD", IsActive: true, CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 2, Name: "Cash on delivery", Code: "COD", IsActive: true, CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: 3, Name: "Bank transfer", Code: "BANK_TRANSFER", IsActive: false, CreatedAt: at(1), UpdatedAt: at(1)},
		},
	}
}
