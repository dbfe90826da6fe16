package entity

import "time"

// === CATEGORIES ===

type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Slug             string `json:"slug" validate:"omitempty,max=150"`
	ParentCategoryID *int64 `json:"parentCategoryId" validate:"omitempty,gt=0"`
	ImageURL         string `json:"imageUrl" validate:"omitempty,max=500"`
}

// UpdateCategoryRequest - частичное обновление: nil означает "не менять"
type UpdateCategoryRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug             *string `json:"slug,omitempty" validate:"omitempty,min=1,max=150"`
	ParentCategoryID *int64  `json:"parentCategoryId,omitempty" validate:"omitempty,gt=0"`
	ImageURL         *string `json:"imageUrl,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateCategoryRequest) ToCategory() *Category {
	return &Category{
		Name:             r.Name,
		Slug:             r.Slug,
		ParentCategoryID: r.ParentCategoryID,
		ImageURL:         r.ImageURL,
	}
}

func (r *UpdateCategoryRequest) Apply(c *Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Slug != nil {
		c.Slug = *r.Slug
	}
	if r.ParentCategoryID != nil {
		c.ParentCategoryID = r.ParentCategoryID
	}
	if r.ImageURL != nil {
		c.ImageURL = *r.ImageURL
	}
}

// === BRANDS ===

type CreateBrandRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Slug    string `json:"slug" validate:"omitempty,max=150"`
	LogoURL string `json:"logoUrl" validate:"omitempty,max=500"`
}

type UpdateBrandRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug    *string `json:"slug,omitempty" validate:"omitempty,min=1,max=150"`
	LogoURL *string `json:"logoUrl,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateBrandRequest) ToBrand() *Brand {
	return &Brand{Name: r.Name, Slug: r.Slug, LogoURL: r.LogoURL}
}

func (r *UpdateBrandRequest) Apply(b *Brand) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Slug != nil {
		b.Slug = *r.Slug
	}
	if r.LogoURL != nil {
		b.LogoURL = *r.LogoURL
	}
}

// === PRODUCTS ===

type CreateVariantRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	SKU           string   `json:"sku" validate:"required,max=100"`
	Price         float64  `json:"price" validate:"gt=0"`
	SalePrice     *float64 `json:"salePrice" validate:"omitempty,gt=0,ltefield=Price"`
	StockQuantity int      `json:"stockQuantity" validate:"gte=0"`
}

type UpdateVariantRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	SKU           *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	SalePrice     *float64 `json:"salePrice,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
}

type CreateAttributeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=255"`
}

type UpdateAttributeRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Value *string `json:"value,omitempty" validate:"omitempty,min=1,max=255"`
}

// CreateProductRequest создаёт товар вместе с основным вариантом и его атрибутами
type CreateProductRequest struct {
	Name        string                   `json:"name" validate:"required,min=2,max=200"`
	Slug        string                   `json:"slug" validate:"omitempty,max=250"`
	Description string                   `json:"description" validate:"max=5000"`
	CategoryID  int64                    `json:"categoryId" validate:"required,gt=0"`
	BrandID     int64                    `json:"brandId" validate:"required,gt=0"`
	Status      ProductStatus            `json:"status" validate:"omitempty,oneof=draft active inactive"`
	Variant     *CreateVariantRequest    `json:"variant,omitempty" validate:"omitempty"`
	Attributes  []CreateAttributeRequest `json:"attributes,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Slug        *string        `json:"slug,omitempty" validate:"omitempty,min=1,max=250"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=5000"`
	CategoryID  *int64         `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	BrandID     *int64         `json:"brandId,omitempty" validate:"omitempty,gt=0"`
	Status      *ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
}

// UpdateProductDetailRequest - форма редактирования товара.
// Attributes: nil - не трогать, пустой список - удалить все атрибуты варианта
type UpdateProductDetailRequest struct {
	UpdateProductRequest
	Variant    *UpdateVariantRequest    `json:"variant,omitempty" validate:"omitempty"`
	Attributes []CreateAttributeRequest `json:"attributes,omitempty" validate:"omitempty,dive"`
}

func (r *CreateProductRequest) ToProduct() *Product {
	status := r.Status
	if status == "" {
		status = ProductStatusDraft
	}
	return &Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
		Status:      status,
	}
}

func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Slug != nil {
		p.Slug = *r.Slug
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	if r.BrandID != nil {
		p.BrandID = *r.BrandID
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

func (r *CreateVariantRequest) ToVariant(productID int64) *ProductVariant {
	return &ProductVariant{
		ProductID:     productID,
		Name:          r.Name,
		SKU:           r.SKU,
		Price:         r.Price,
		SalePrice:     r.SalePrice,
		StockQuantity: r.StockQuantity,
	}
}

func (r *UpdateVariantRequest) Apply(v *ProductVariant) {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.SKU != nil {
		v.SKU = *r.SKU
	}
	if r.Price != nil {
		v.Price = *r.Price
	}
	if r.SalePrice != nil {
		v.SalePrice = r.SalePrice
	}
	if r.StockQuantity != nil {
		v.StockQuantity = *r.StockQuantity
	}
}

// AsCreate превращает частичное обновление варианта в создание, когда варианта ещё нет
func (r *UpdateVariantRequest) AsCreate() CreateVariantRequest {
	var v ProductVariant
	r.Apply(&v)
	return NewCreateVariantRequest(&v)
}

// NewCreateVariantRequest собирает запрос создания из записи,
// чтобы проверить вариант после слияния патча теми же правилами
func NewCreateVariantRequest(v *ProductVariant) CreateVariantRequest {
	return CreateVariantRequest{
		Name:          v.Name,
		SKU:           v.SKU,
		Price:         v.Price,
		SalePrice:     v.SalePrice,
		StockQuantity: v.StockQuantity,
	}
}

func (r *CreateAttributeRequest) ToAttribute(variantID int64) *VariantAttribute {
	return &VariantAttribute{ProductVariantID: variantID, Name: r.Name, Value: r.Value}
}

func (r *UpdateAttributeRequest) Apply(a *VariantAttribute) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Value != nil {
		a.Value = *r.Value
	}
}

type CreateImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,max=500"`
}

// === REVIEWS ===

type CreateReviewRequest struct {
	UserID      int64    `json:"userId" validate:"gte=0"`
	ProductID   int64    `json:"productId" validate:"required,gt=0"`
	Content     string   `json:"content" validate:"required,min=2,max=2000"`
	Rating      int      `json:"rating" validate:"required,min=1,max=5"`
	Title       string   `json:"title" validate:"max=200"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Nickname    string   `json:"nickname" validate:"max=100"`
	IsRecommend bool     `json:"isRecommend"`
	ImageURLs   []string `json:"imageUrls,omitempty" validate:"omitempty,dive,required,max=500"`
}

type UpdateReviewRequest struct {
	Content     *string `json:"content,omitempty" validate:"omitempty,min=2,max=2000"`
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Nickname    *string `json:"nickname,omitempty" validate:"omitempty,max=100"`
	IsRecommend *bool   `json:"isRecommend,omitempty"`
}

func (r *CreateReviewRequest) ToReview() *Review {
	return &Review{
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		Content:     r.Content,
		Rating:      r.Rating,
		Title:       r.Title,
		Email:       r.Email,
		Nickname:    r.Nickname,
		IsRecommend: r.IsRecommend,
	}
}

func (r *UpdateReviewRequest) Apply(rv *Review) {
	if r.Content != nil {
		rv.Content = *r.Content
	}
	if r.Rating != nil {
		rv.Rating = *r.Rating
	}
	if r.Title != nil {
		rv.Title = *r.Title
	}
	if r.Email != nil {
		rv.Email = *r.Email
	}
	if r.Nickname != nil {
		rv.Nickname = *r.Nickname
	}
	if r.IsRecommend != nil {
		rv.IsRecommend = *r.IsRecommend
	}
}

// === COUPONS ===

type CreateCouponRequest struct {
	Code            string       `json:"code" validate:"required,min=3,max=50"`
	Description     string       `json:"description" validate:"max=500"`
	IsActive        bool         `json:"isActive"`
	DiscountType    DiscountType `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue   float64      `json:"discountValue" validate:"gt=0"`
	MinOrderValue   float64      `json:"minOrderValue" validate:"gte=0"`
	MaxUsageValue   float64      `json:"maxUsageValue" validate:"gte=0"`
	ValidFrom       time.Time    `json:"validFrom" validate:"required"`
	ValidTo         time.Time    `json:"validTo" validate:"required,gtfield=ValidFrom"`
	CreatedByUserID int64        `json:"createdByUserId" validate:"gte=0"`
}

// UpdateCouponRequest: окно действия после слияния проверяется хранилищем
type UpdateCouponRequest struct {
	Code          *string       `json:"code,omitempty" validate:"omitempty,min=3,max=50"`
	Description   *string       `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive      *bool         `json:"isActive,omitempty"`
	DiscountType  *DiscountType `json:"discountType,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountValue *float64      `json:"discountValue,omitempty" validate:"omitempty,gt=0"`
	MinOrderValue *float64      `json:"minOrderValue,omitempty" validate:"omitempty,gte=0"`
	MaxUsageValue *float64      `json:"maxUsageValue,omitempty" validate:"omitempty,gte=0"`
	ValidFrom     *time.Time    `json:"validFrom,omitempty"`
	ValidTo       *time.Time    `json:"validTo,omitempty"`
}

func (r *CreateCouponRequest) ToCoupon() *Coupon {
	return &Coupon{
		Code:            r.Code,
		Description:     r.Description,
		IsActive:        r.IsActive,
		DiscountType:    r.DiscountType,
		DiscountValue:   r.DiscountValue,
		MinOrderValue:   r.MinOrderValue,
		MaxUsageValue:   r.MaxUsageValue,
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
		CreatedByUserID: r.CreatedByUserID,
	}
}

func (r *UpdateCouponRequest) Apply(c *Coupon) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	if r.DiscountType != nil {
		c.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		c.DiscountValue = *r.DiscountValue
	}
	if r.MinOrderValue != nil {
		c.MinOrderValue = *r.MinOrderValue
	}
	if r.MaxUsageValue != nil {
		c.MaxUsageValue = *r.MaxUsageValue
	}
	if r.ValidFrom != nil {
		c.ValidFrom = *r.ValidFrom
	}
	if r.ValidTo != nil {
		c.ValidTo = *r.ValidTo
	}
}

type PreviewCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	OrderValue float64 `json:"orderValue" validate:"gt=0"`
}

// CouponPreview - результат применения купона к сумме заказа
type CouponPreview struct {
	Code       string  `json:"code"`
	OrderValue float64 `json:"orderValue"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
}

// === PAYMENT METHODS ===

type CreatePaymentMethodRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Code     string `json:"code" validate:"required,min=2,max=50"`
	IsActive bool   `json:"isActive"`
}

type UpdatePaymentMethodRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Code     *string `json:"code,omitempty" validate:"omitempty,min=2,max=50"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *CreatePaymentMethodRequest) ToPaymentMethod() *PaymentMethod {
	return &PaymentMethod{Name: r.Name, Code: r.Code, IsActive: r.IsActive}
}

func (r *UpdatePaymentMethodRequest) Apply(p *PaymentMethod) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// === RESPONSES ===

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
