package entity

import (
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// Category - категория товаров, допускает один уровень вложенности через ParentCategoryID
type Category struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"size:100;not null"`
	Slug             string    `json:"slug" gorm:"size:150;uniqueIndex;not null"`
	ParentCategoryID *int64    `json:"parentCategoryId" gorm:"index"`
	ImageURL         string    `json:"imageUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Brand struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Slug      string    `json:"slug" gorm:"size:150;uniqueIndex;not null"`
	LogoURL   string    `json:"logoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product владеет не более чем одним ProductVariant (основной вариант товара)
type Product struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:200;not null"`
	Slug        string        `json:"slug" gorm:"size:250;uniqueIndex;not null"`
	Description string        `json:"description" gorm:"type:text"`
	CategoryID  int64         `json:"categoryId" gorm:"index"`
	BrandID     int64         `json:"brandId" gorm:"index"`
	Status      ProductStatus `json:"status" gorm:"size:20;not null"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ProductVariant struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ProductID     int64     `json:"productId" gorm:"uniqueIndex"`
	Name          string    `json:"name" gorm:"size:200"`
	SKU           string    `json:"sku" gorm:"size:100"`
	Price         float64   `json:"price"`
	SalePrice     *float64  `json:"salePrice"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// VariantAttribute - свободная пара ключ/значение (объём, оттенок, тип кожи)
type VariantAttribute struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	ProductVariantID int64     `json:"productVariantId" gorm:"index"`
	Name             string    `json:"name" gorm:"size:100"`
	Value            string    `json:"value" gorm:"size:255"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ProductImage - порядок изображений определяется порядком добавления
type ProductImage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"productId" gorm:"index"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userId" gorm:"index"`
	ProductID   int64     `json:"productId" gorm:"index"`
	Content     string    `json:"content" gorm:"type:text"`
	Rating      int       `json:"rating"`
	Title       string    `json:"title" gorm:"size:200"`
	Email       string    `json:"email" gorm:"size:200"`
	Nickname    string    `json:"nickname" gorm:"size:100"`
	IsRecommend bool      `json:"isRecommend"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ReviewImage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ReviewID  int64     `json:"reviewId" gorm:"index"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Coupon - MaxUsageValue это потолок суммы скидки, а не счётчик использований
type Coupon struct {
	ID              int64        `json:"id" gorm:"primaryKey"`
	Code            string       `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Description     string       `json:"description"`
	IsActive        bool         `json:"isActive"`
	DiscountType    DiscountType `json:"discountType" gorm:"size:20;not null"`
	DiscountValue   float64      `json:"discountValue"`
	MinOrderValue   float64      `json:"minOrderValue"`
	MaxUsageValue   float64      `json:"maxUsageValue"`
	ValidFrom       time.Time    `json:"validFrom"`
	ValidTo         time.Time    `json:"validTo"`
	CreatedByUserID int64        `json:"createdByUserId"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type PaymentMethod struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Code      string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}


// HasValidDiscount: процент не больше 100
func (c *Coupon) HasValidDiscount() bool {
	if c.DiscountValue <= 0 {
		return false
	}
	return c.DiscountType != DiscountTypePercentage || c.DiscountValue <= 100
}

// HasValidWindow проверяет что validTo строго позже validFrom
func (c *Coupon) HasValidWindow() bool {
	return c.ValidTo.After(c.ValidFrom)
}

// IsExpiredAt - купон истёк, если момент at уже после validTo
func (c *Coupon) IsExpiredAt(at time.Time) bool {
	return at.After(c.ValidTo)
}

// NormalizeCode приводит код купона/способа оплаты к каноничному виду
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ProductDetail - товар вместе с вариантом, атрибутами и изображениями
type ProductDetail struct {
	Product
	Variant    *ProductVariant    `json:"variant"`
	Attributes []VariantAttribute `json:"attributes"`
	Images     []ProductImage     `json:"images"`
}

// ReviewDetail - отзыв вместе с прикреплёнными изображениями
type ReviewDetail struct {
	Review
	Images []ReviewImage `json:"images"`
}
