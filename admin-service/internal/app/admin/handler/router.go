package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"beautyadmin/pkg/logger"
	"beautyadmin/pkg/metrics"
)

const serviceName = "admin-service"

// Handlers - все обработчики REST API админки
type Handlers struct {
	Catalog  *CatalogHandler
	Reviews  *ReviewHandler
	Commerce *CommerceHandler
	Health   *HealthCheckHandler
}

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(corsConfig(allowedOrigins)))

	health := h.Health
	if health == nil {
		health = NewHealthCheckHandler(nil)
	}
	router.GET("/health", health.HealthCheck)
	router.GET("/health/readiness", health.Readiness)
	router.GET("/health/liveness", health.Liveness)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())

	categories := api.Group("/categories")
	{
		categories.GET("", h.Catalog.GetAllCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.GET("/slug/:slug", h.Catalog.GetCategoryBySlug)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	brands := api.Group("/brands")
	{
		brands.GET("", h.Catalog.GetAllBrands)
		brands.POST("", h.Catalog.CreateBrand)
		brands.GET("/slug/:slug", h.Catalog.GetBrandBySlug)
		brands.GET("/:id", h.Catalog.GetBrand)
		brands.PUT("/:id", h.Catalog.UpdateBrand)
		brands.DELETE("/:id", h.Catalog.DeleteBrand)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.GetAllProducts)
		products.POST("", h.Catalog.CreateProduct)
		products.GET("/export", h.Catalog.ExportProducts)
		products.GET("/slug/:slug", h.Catalog.GetProductBySlug)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
		products.DELETE("/:id", h.Catalog.DeleteProduct)

		products.GET("/:id/variant", h.Catalog.GetProductVariant)
		products.POST("/:id/variant", h.Catalog.CreateVariant)
		products.GET("/:id/images", h.Catalog.GetProductImages)
		products.POST("/:id/images", h.Catalog.AddProductImage)
		products.GET("/:id/reviews", h.Reviews.GetProductReviews)
	}

	variants := api.Group("/variants")
	{
		variants.GET("/:id", h.Catalog.GetVariant)
		variants.PUT("/:id", h.Catalog.UpdateVariant)
		variants.DELETE("/:id", h.Catalog.DeleteVariant)
		variants.GET("/:id/attributes", h.Catalog.GetVariantAttributes)
		variants.POST("/:id/attributes", h.Catalog.CreateAttribute)
	}

	attributes := api.Group("/attributes")
	{
		attributes.GET("/:id", h.Catalog.GetAttribute)
		attributes.PUT("/:id", h.Catalog.UpdateAttribute)
		attributes.DELETE("/:id", h.Catalog.DeleteAttribute)
	}

	productImages := api.Group("/product-images")
	{
		productImages.GET("/:id", h.Catalog.GetProductImage)
		productImages.DELETE("/:id", h.Catalog.DeleteProductImage)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", h.Reviews.GetAllReviews)
		reviews.POST("", h.Reviews.CreateReview)
		reviews.GET("/:id", h.Reviews.GetReview)
		reviews.PUT("/:id", h.Reviews.UpdateReview)
		reviews.DELETE("/:id", h.Reviews.DeleteReview)
		reviews.GET("/:id/images", h.Reviews.GetReviewImages)
		reviews.POST("/:id/images", h.Reviews.AddReviewImage)
	}

	reviewImages := api.Group("/review-images")
	{
		reviewImages.GET("/:id", h.Reviews.GetReviewImage)
		reviewImages.DELETE("/:id", h.Reviews.DeleteReviewImage)
	}

	coupons := api.Group("/coupons")
	{
		coupons.GET("", h.Commerce.GetAllCoupons)
		coupons.POST("", h.Commerce.CreateCoupon)
		coupons.GET("/export", h.Commerce.ExportCoupons)
		coupons.POST("/preview", h.Commerce.PreviewCoupon)
		coupons.GET("/code/:code", h.Commerce.GetCouponByCode)
		coupons.GET("/:id", h.Commerce.GetCoupon)
		coupons.PUT("/:id", h.Commerce.UpdateCoupon)
		coupons.DELETE("/:id", h.Commerce.DeleteCoupon)
		coupons.PUT("/:id/activate", h.Commerce.ActivateCoupon)
		coupons.PUT("/:id/deactivate", h.Commerce.DeactivateCoupon)
	}

	paymentMethods := api.Group("/payment-methods")
	{
		paymentMethods.GET("", h.Commerce.GetAllPaymentMethods)
		paymentMethods.POST("", h.Commerce.CreatePaymentMethod)
		paymentMethods.GET("/code/:code", h.Commerce.GetPaymentMethodByCode)
		paymentMethods.GET("/:id", h.Commerce.GetPaymentMethod)
		paymentMethods.PUT("/:id", h.Commerce.UpdatePaymentMethod)
		paymentMethods.DELETE("/:id", h.Commerce.DeletePaymentMethod)
		paymentMethods.PUT("/:id/activate", h.Commerce.ActivatePaymentMethod)
		paymentMethods.PUT("/:id/deactivate", h.Commerce.DeactivatePaymentMethod)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	// "*" несовместим с AllowCredentials
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}
