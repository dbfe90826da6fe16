package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/export"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/admin-service/internal/app/admin/infrastructure/cache"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

var validate = validator.New()

// CatalogService - справочники (категории, бренды) и карточки товаров:
// товар, его единственный вариант, атрибуты варианта и изображения
type CatalogService struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	products   repository.ProductRepository
	variants   repository.ProductVariantRepository
	attributes repository.VariantAttributeRepository
	images     repository.ProductImageRepository

	cache    infrastructure.Cache
	cacheTTL time.Duration
	events   notifier
}

// NewCatalogService создает сервис каталога поверх выбранного источника данных.
// cache и publisher могут быть nil - тогда кеш и события отключены
func NewCatalogService(
	backend *repository.Backend,
	listCache infrastructure.Cache,
	publisher infrastructure.MessagePublisher,
	cacheTTL time.Duration,
) *CatalogService {
	if listCache == nil {
		listCache = infrastructure.NoopCache{}
	}
	return &CatalogService{
		categories: backend.Categories,
		brands:     backend.Brands,
		products:   backend.Products,
		variants:   backend.Variants,
		attributes: backend.Attributes,
		images:     backend.ProductImages,
		cache:      listCache,
		cacheTTL:   cacheTTL,
		events:     newNotifier(publisher),
	}
}

// === CATEGORIES ===

// GetAllCategories отдаёт категории из кеша, при промахе - из хранилища с записью в кеш
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if hit, err := s.cache.GetJSON(ctx, cache.CategoriesKey, &categories); err == nil && hit {
		return categories, nil
	} else if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories cache")
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetJSON(ctx, cache.CategoriesKey, categories, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slugValue string) (*entity.Category, error) {
	return s.categories.GetBySlug(ctx, slugValue)
}

// CreateCategory: slug генерируется из имени, если не передан
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := req.ToCategory()
	slugValue, err := slugOrName(category.Slug, category.Name)
	if err != nil {
		return nil, err
	}
	category.Slug = slugValue

	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx, cache.CategoriesKey)
	s.events.created(ctx, entity.KindCategory, created.ID)
	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	normalized, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	req.Slug = normalized

	updated, err := s.categories.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidate(ctx, cache.CategoriesKey)
	s.events.updated(ctx, entity.KindCategory, id)
	return updated, nil
}

// DeleteCategory не трогает товары категории: ссылки на неё остаются висячими
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidate(ctx, cache.CategoriesKey)
	s.events.deleted(ctx, entity.KindCategory, id, nil)
	return nil
}

// === BRANDS ===

func (s *CatalogService) GetAllBrands(ctx context.Context) ([]entity.Brand, error) {
	var brands []entity.Brand
	if hit, err := s.cache.GetJSON(ctx, cache.BrandsKey, &brands); err == nil && hit {
		return brands, nil
	} else if err != nil {
		logger.Warn().Err(err).Msg("Failed to read brands cache")
	}

	brands, err := s.brands.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}

	if err := s.cache.SetJSON(ctx, cache.BrandsKey, brands, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache brands")
	}
	return brands, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id int64) (*entity.Brand, error) {
	return s.brands.GetByID(ctx, id)
}

func (s *CatalogService) GetBrandBySlug(ctx context.Context, slugValue string) (*entity.Brand, error) {
	return s.brands.GetBySlug(ctx, slugValue)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	brand := req.ToBrand()
	slugValue, err := slugOrName(brand.Slug, brand.Name)
	if err != nil {
		return nil, err
	}
	brand.Slug = slugValue

	created, err := s.brands.Create(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.invalidate(ctx, cache.BrandsKey)
	s.events.created(ctx, entity.KindBrand, created.ID)
	return created, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	normalized, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	req.Slug = normalized

	updated, err := s.brands.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	s.invalidate(ctx, cache.BrandsKey)
	s.events.updated(ctx, entity.KindBrand, id)
	return updated, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id int64) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	s.invalidate(ctx, cache.BrandsKey)
	s.events.deleted(ctx, entity.KindBrand, id, nil)
	return nil
}

// === PRODUCTS ===

func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetProductRows - товары с основным вариантом для выгрузки в xlsx
func (s *CatalogService) GetProductRows(ctx context.Context) ([]export.ProductRow, error) {
	products, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]export.ProductRow, 0, len(products))
	for _, p := range products {
		row := export.ProductRow{Product: p}
		variant, err := s.variants.GetByProductID(ctx, p.ID)
		switch {
		case err == nil:
			row.Variant = variant
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("failed to get product variant: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GetProduct собирает карточку товара: вариант, его атрибуты и изображения
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, product)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slugValue string) (*entity.ProductDetail, error) {
	product, err := s.products.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, product)
}

// CreateProduct создает товар, затем вариант и атрибуты.
// Если вариант создать не удалось, товар удаляется обратно
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductDetail, error) {
	if len(req.Attributes) > 0 && req.Variant == nil {
		return nil, ErrVariantRequired
	}
	if err := s.checkReferences(ctx, &req.CategoryID, &req.BrandID); err != nil {
		return nil, err
	}

	product := req.ToProduct()
	slugValue, err := slugOrName(product.Slug, product.Name)
	if err != nil {
		return nil, err
	}
	product.Slug = slugValue

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if req.Variant != nil {
		if err := s.createVariantWithAttributes(ctx, created.ID, req.Variant, req.Attributes); err != nil {
			if _, rbErr := s.products.Delete(ctx, created.ID); rbErr != nil {
				logger.Error().Err(rbErr).Int64("product_id", created.ID).Msg("Failed to roll back product")
			}
			return nil, err
		}
	}

	s.events.created(ctx, entity.KindProduct, created.ID)
	return s.detail(ctx, created)
}

// UpdateProduct обновляет товар и, если переданы, вариант и набор атрибутов.
// Варианта нет - он создаётся из переданных полей.
// Все проверки выполняются до первой записи
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductDetailRequest) (*entity.ProductDetail, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}
	normalized, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	req.Slug = normalized

	variant, err := s.variants.GetByProductID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		variant = nil
	case err != nil:
		return nil, fmt.Errorf("failed to get product variant: %w", err)
	}

	if req.Attributes != nil && req.Variant == nil && variant == nil {
		return nil, ErrVariantRequired
	}
	if req.Variant != nil {
		merged := entity.ProductVariant{}
		if variant != nil {
			merged = *variant
		}
		req.Variant.Apply(&merged)
		if err := validateVariant(&merged); err != nil {
			return nil, err
		}
	}

	// новый вариант создаётся до обновления товара и откатывается, если товар обновить не удалось
	createdVariant := false
	if req.Variant != nil && variant == nil {
		create := req.Variant.AsCreate()
		variant, err = s.variants.Create(ctx, create.ToVariant(id))
		if err != nil {
			return nil, fmt.Errorf("failed to create product variant: %w", err)
		}
		createdVariant = true
	}

	product, err := s.products.Update(ctx, id, &req.UpdateProductRequest)
	if err != nil {
		if createdVariant {
			if _, rbErr := s.variants.Delete(ctx, variant.ID); rbErr != nil {
				logger.Error().Err(rbErr).Int64("variant_id", variant.ID).Msg("Failed to roll back product variant")
			}
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if req.Variant != nil && !createdVariant {
		if _, err := s.variants.Update(ctx, variant.ID, req.Variant); err != nil {
			return nil, fmt.Errorf("failed to update product variant: %w", err)
		}
	}

	if req.Attributes != nil {
		if err := s.replaceAttributes(ctx, variant.ID, req.Attributes); err != nil {
			return nil, err
		}
	}

	s.events.updated(ctx, entity.KindProduct, id)
	return s.detail(ctx, product)
}

// DeleteProduct удаляет товар вместе с вариантом и атрибутами.
// Изображения и отзывы товара остаются
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) ([]entity.Ref, error) {
	cascaded, err := s.products.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	s.events.deleted(ctx, entity.KindProduct, id, cascaded)
	return cascaded, nil
}

// === VARIANTS ===

func (s *CatalogService) GetVariant(ctx context.Context, id int64) (*entity.ProductVariant, error) {
	return s.variants.GetByID(ctx, id)
}

func (s *CatalogService) GetProductVariant(ctx context.Context, productID int64) (*entity.ProductVariant, error) {
	return s.variants.GetByProductID(ctx, productID)
}

func (s *CatalogService) CreateVariant(ctx context.Context, productID int64, req *entity.CreateVariantRequest) (*entity.ProductVariant, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	created, err := s.variants.Create(ctx, req.ToVariant(productID))
	if err != nil {
		return nil, fmt.Errorf("failed to create product variant: %w", err)
	}

	s.events.created(ctx, entity.KindProductVariant, created.ID)
	return created, nil
}

// UpdateVariant проверяет вариант после слияния: цена со скидкой не выше цены
func (s *CatalogService) UpdateVariant(ctx context.Context, id int64, req *entity.UpdateVariantRequest) (*entity.ProductVariant, error) {
	current, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	req.Apply(&merged)
	if err := validateVariant(&merged); err != nil {
		return nil, err
	}

	updated, err := s.variants.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update product variant: %w", err)
	}

	s.events.updated(ctx, entity.KindProductVariant, id)
	return updated, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, id int64) ([]entity.Ref, error) {
	cascaded, err := s.variants.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product variant: %w", err)
	}

	s.events.deleted(ctx, entity.KindProductVariant, id, cascaded)
	return cascaded, nil
}

// === ATTRIBUTES ===

func (s *CatalogService) GetVariantAttributes(ctx context.Context, variantID int64) ([]entity.VariantAttribute, error) {
	if _, err := s.variants.GetByID(ctx, variantID); err != nil {
		return nil, err
	}
	return s.attributes.GetByVariantID(ctx, variantID)
}

func (s *CatalogService) GetAttribute(ctx context.Context, id int64) (*entity.VariantAttribute, error) {
	return s.attributes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAttribute(ctx context.Context, variantID int64, req *entity.CreateAttributeRequest) (*entity.VariantAttribute, error) {
	if _, err := s.variants.GetByID(ctx, variantID); err != nil {
		return nil, err
	}

	created, err := s.attributes.Create(ctx, req.ToAttribute(variantID))
	if err != nil {
		return nil, fmt.Errorf("failed to create variant attribute: %w", err)
	}

	s.events.created(ctx, entity.KindVariantAttribute, created.ID)
	return created, nil
}

func (s *CatalogService) UpdateAttribute(ctx context.Context, id int64, req *entity.UpdateAttributeRequest) (*entity.VariantAttribute, error) {
	updated, err := s.attributes.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update variant attribute: %w", err)
	}

	s.events.updated(ctx, entity.KindVariantAttribute, id)
	return updated, nil
}

func (s *CatalogService) DeleteAttribute(ctx context.Context, id int64) error {
	if err := s.attributes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete variant attribute: %w", err)
	}

	s.events.deleted(ctx, entity.KindVariantAttribute, id, nil)
	return nil
}

// === PRODUCT IMAGES ===

func (s *CatalogService) GetProductImages(ctx context.Context, productID int64) ([]entity.ProductImage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.images.GetByProductID(ctx, productID)
}

func (s *CatalogService) GetProductImage(ctx context.Context, id int64) (*entity.ProductImage, error) {
	return s.images.GetByID(ctx, id)
}

// AddProductImage добавляет изображение в конец галереи товара
func (s *CatalogService) AddProductImage(ctx context.Context, productID int64, req *entity.CreateImageRequest) (*entity.ProductImage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	created, err := s.images.Create(ctx, &entity.ProductImage{ProductID: productID, ImageURL: req.ImageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create product image: %w", err)
	}

	s.events.created(ctx, entity.KindProductImage, created.ID)
	return created, nil
}

func (s *CatalogService) DeleteProductImage(ctx context.Context, id int64) error {
	if err := s.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product image: %w", err)
	}

	s.events.deleted(ctx, entity.KindProductImage, id, nil)
	return nil
}

// === HELPERS ===

func (s *CatalogService) detail(ctx context.Context, product *entity.Product) (*entity.ProductDetail, error) {
	detail := &entity.ProductDetail{
		Product:    *product,
		Attributes: []entity.VariantAttribute{},
	}

	variant, err := s.variants.GetByProductID(ctx, product.ID)
	switch {
	case err == nil:
		detail.Variant = variant
		attrs, err := s.attributes.GetByVariantID(ctx, variant.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get variant attributes: %w", err)
		}
		detail.Attributes = attrs
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get product variant: %w", err)
	}

	images, err := s.images.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product images: %w", err)
	}
	detail.Images = images
	return detail, nil
}

func (s *CatalogService) createVariantWithAttributes(
	ctx context.Context,
	productID int64,
	req *entity.CreateVariantRequest,
	attrs []entity.CreateAttributeRequest,
) error {
	variant, err := s.variants.Create(ctx, req.ToVariant(productID))
	if err != nil {
		return fmt.Errorf("failed to create product variant: %w", err)
	}
	for i := range attrs {
		if _, err := s.attributes.Create(ctx, attrs[i].ToAttribute(variant.ID)); err != nil {
			return fmt.Errorf("failed to create variant attribute: %w", err)
		}
	}
	return nil
}

// replaceAttributes заменяет набор атрибутов варианта целиком
func (s *CatalogService) replaceAttributes(ctx context.Context, variantID int64, attrs []entity.CreateAttributeRequest) error {
	existing, err := s.attributes.GetByVariantID(ctx, variantID)
	if err != nil {
		return fmt.Errorf("failed to get variant attributes: %w", err)
	}
	for _, a := range existing {
		if err := s.attributes.Delete(ctx, a.ID); err != nil {
			return fmt.Errorf("failed to delete variant attribute: %w", err)
		}
	}
	for i := range attrs {
		if _, err := s.attributes.Create(ctx, attrs[i].ToAttribute(variantID)); err != nil {
			return fmt.Errorf("failed to create variant attribute: %w", err)
		}
	}
	return nil
}

// checkReferences проверяет, что категория и бренд товара существуют
func (s *CatalogService) checkReferences(ctx context.Context, categoryID, brandID *int64) error {
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
			return err
		}
	}
	if brandID != nil {
		if _, err := s.brands.GetByID(ctx, *brandID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache")
	}
}

// slugOrName нормализует переданный slug или строит его из имени.
// Пустой результат ("!!") не принимается: пустые slug не уникальны
func slugOrName(value, name string) (string, error) {
	if value == "" {
		value = name
	}
	normalized := slug.Make(value)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	return normalized, nil
}

func normalizeSlug(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	normalized, err := slugOrName(*value, "")
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

// validateVariant применяет к записи правила CreateVariantRequest
func validateVariant(v *entity.ProductVariant) error {
	req := entity.NewCreateVariantRequest(v)
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidVariant, err.Error())
	}
	return nil
}
