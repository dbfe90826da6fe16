package handler

import (
	"bytes"
	"context"
	"net/http"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/export"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogServiceInterface interface {
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	GetAllBrands(ctx context.Context) ([]entity.Brand, error)
	GetBrand(ctx context.Context, id int64) (*entity.Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*entity.Brand, error)
	CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
	UpdateBrand(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (*entity.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	GetProductRows(ctx context.Context) ([]export.ProductRow, error)
	GetProduct(ctx context.Context, id int64) (*entity.ProductDetail, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.ProductDetail, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductDetail, error)
	UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductDetailRequest) (*entity.ProductDetail, error)
	DeleteProduct(ctx context.Context, id int64) ([]entity.Ref, error)

	GetVariant(ctx context.Context, id int64) (*entity.ProductVariant, error)
	GetProductVariant(ctx context.Context, productID int64) (*entity.ProductVariant, error)
	CreateVariant(ctx context.Context, productID int64, req *entity.CreateVariantRequest) (*entity.ProductVariant, error)
	UpdateVariant(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (*entity.ProductVariant, error)
	DeleteVariant(ctx context.Context, id int64) ([]entity.Ref, error)

	GetVariantAttributes(ctx context.Context, variantID int64) ([]entity.VariantAttribute, error)
	GetAttribute(ctx context.Context, id int64) (*entity.VariantAttribute, error)
	CreateAttribute(ctx context.Context, variantID int64, req *entity.CreateAttributeRequest) (*entity.VariantAttribute, error)
	UpdateAttribute(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (*entity.VariantAttribute, error)
	DeleteAttribute(ctx context.Context, id int64) error

	GetProductImages(ctx context.Context, productID int64) ([]entity.ProductImage, error)
	GetProductImage(ctx context.Context, id int64) (*entity.ProductImage, error)
	AddProductImage(ctx context.Context, productID int64, req *entity.CreateImageRequest) (*entity.ProductImage, error)
	DeleteProductImage(ctx context.Context, id int64) error
}

// CatalogHandler - категории, бренды и карточки товаров
type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === CATEGORIES ===

// GetAllCategories обрабатывает GET /api/categories
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, categories)
}

// GetCategory обрабатывает GET /api/categories/{id}
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetCategoryBySlug обрабатывает GET /api/categories/slug/{slug}
func (h *CatalogHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.catalogService.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory обрабатывает POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !bind(c, h.validator, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory обрабатывает PUT /api/categories/{id}
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateCategoryRequest
	if !bind(c, h.validator, &req) {
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory обрабатывает DELETE /api/categories/{id}
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindCategory, nil)
}

// === BRANDS ===

// GetAllBrands обрабатывает GET /api/brands
func (h *CatalogHandler) GetAllBrands(c *gin.Context) {
	brands, err := h.catalogService.GetAllBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, brands)
}

// GetBrand обрабатывает GET /api/brands/{id}
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	brand, err := h.catalogService.GetBrand(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// GetBrandBySlug обрабатывает GET /api/brands/slug/{slug}
func (h *CatalogHandler) GetBrandBySlug(c *gin.Context) {
	brand, err := h.catalogService.GetBrandBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// CreateBrand обрабатывает POST /api/brands
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req entity.CreateBrandRequest
	if !bind(c, h.validator, &req) {
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

// UpdateBrand обрабатывает PUT /api/brands/{id}
func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateBrandRequest
	if !bind(c, h.validator, &req) {
		return
	}

	brand, err := h.catalogService.UpdateBrand(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// DeleteBrand обрабатывает DELETE /api/brands/{id}
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindBrand, nil)
}

// === PRODUCTS ===

// GetAllProducts обрабатывает GET /api/products
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products)
}

// ExportProducts обрабатывает GET /api/products/export
// Товары отдаются с ценами и остатками в виде xlsx
func (h *CatalogHandler) ExportProducts(c *gin.Context) {
	rows, err := h.catalogService.GetProductRows(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteProducts(&buf, rows); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetProduct обрабатывает GET /api/products/{id}
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductBySlug обрабатывает GET /api/products/slug/{slug}
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct обрабатывает POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bind(c, h.validator, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateProductDetailRequest
	if !bind(c, h.validator, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	refs, err := h.catalogService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindProduct, refs)
}

// === VARIANTS ===

// GetProductVariant обрабатывает GET /api/products/{id}/variant
func (h *CatalogHandler) GetProductVariant(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	variant, err := h.catalogService.GetProductVariant(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// CreateVariant обрабатывает POST /api/products/{id}/variant
func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.CreateVariantRequest
	if !bind(c, h.validator, &req) {
		return
	}

	variant, err := h.catalogService.CreateVariant(c.Request.Context(), productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

// GetVariant обрабатывает GET /api/variants/{id}
func (h *CatalogHandler) GetVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	variant, err := h.catalogService.GetVariant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// UpdateVariant обрабатывает PUT /api/variants/{id}
func (h *CatalogHandler) UpdateVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateVariantRequest
	if !bind(c, h.validator, &req) {
		return
	}

	variant, err := h.catalogService.UpdateVariant(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// DeleteVariant обрабатывает DELETE /api/variants/{id}
func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	refs, err := h.catalogService.DeleteVariant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindProductVariant, refs)
}

// === ATTRIBUTES ===

// GetVariantAttributes обрабатывает GET /api/variants/{id}/attributes
func (h *CatalogHandler) GetVariantAttributes(c *gin.Context) {
	variantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	attrs, err := h.catalogService.GetVariantAttributes(c.Request.Context(), variantID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, attrs)
}

// CreateAttribute обрабатывает POST /api/variants/{id}/attributes
func (h *CatalogHandler) CreateAttribute(c *gin.Context) {
	variantID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.CreateAttributeRequest
	if !bind(c, h.validator, &req) {
		return
	}

	attr, err := h.catalogService.CreateAttribute(c.Request.Context(), variantID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attr)
}

// GetAttribute обрабатывает GET /api/attributes/{id}
func (h *CatalogHandler) GetAttribute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	attr, err := h.catalogService.GetAttribute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attr)
}

// UpdateAttribute обрабатывает PUT /api/attributes/{id}
func (h *CatalogHandler) UpdateAttribute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateAttributeRequest
	if !bind(c, h.validator, &req) {
		return
	}

	attr, err := h.catalogService.UpdateAttribute(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attr)
}

// DeleteAttribute обрабатывает DELETE /api/attributes/{id}
func (h *CatalogHandler) DeleteAttribute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteAttribute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindVariantAttribute, nil)
}

// === PRODUCT IMAGES ===

// GetProductImages обрабатывает GET /api/products/{id}/images
func (h *CatalogHandler) GetProductImages(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.catalogService.GetProductImages(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, images)
}

// AddProductImage обрабатывает POST /api/products/{id}/images
func (h *CatalogHandler) AddProductImage(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req entity.CreateImageRequest
	if !bind(c, h.validator, &req) {
		return
	}

	image, err := h.catalogService.AddProductImage(c.Request.Context(), productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// GetProductImage обрабатывает GET /api/product-images/{id}
func (h *CatalogHandler) GetProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	image, err := h.catalogService.GetProductImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteProductImage обрабатывает DELETE /api/product-images/{id}
func (h *CatalogHandler) DeleteProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProductImage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, entity.KindProductImage, nil)
}
