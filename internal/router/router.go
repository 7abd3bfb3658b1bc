// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/config"
	"github.com/easyfix/electrox-backend/internal/handlers"
	"github.com/easyfix/electrox-backend/internal/middleware"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, storageService)
	catalogService := services.NewCatalogService(db, storageService)
	factureService := services.NewFactureService(db)
	invoiceService := services.NewInvoiceService(db)
	cartService := services.NewCartService(db, storageService)
	wishlistService := services.NewWishlistService(db)
	checkoutService := services.NewCheckoutService(db, cfg)
	pdfService := services.NewPDFService(cfg)
	adminService := services.NewAdminService(db)
	visitService := services.NewVisitService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	factureHandler := handlers.NewFactureHandler(factureService, pdfService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, pdfService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(adminService, checkoutService)
	analyticsHandler := handlers.NewAnalyticsHandler(visitService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Storefront catalog (public)
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", catalogHandler.ListProducts)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
			catalog.GET("/deals", catalogHandler.GetDeals)
			catalog.GET("/popular", catalogHandler.GetPopular)
			catalog.GET("/categories", catalogHandler.GetCategories)
		}

		// Product management (back-office)
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/upload-slot", middleware.UploadRateLimit(), productHandler.CreateUploadSlot)
			products.POST("/upload", middleware.UploadRateLimit(), productHandler.UploadImages)
		}

		// Product likes (any shopper)
		v1.POST("/products/:id/like", middleware.OptionalAuth(), productHandler.LikeProduct)

		// Storefront visit tracking (anonymous allowed)
		v1.POST("/visits", middleware.OptionalAuth(), analyticsHandler.TrackVisit)

		// Facture routes (back-office)
		factures := v1.Group("/factures")
		factures.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			factures.POST("", factureHandler.CreateFacture)
			factures.GET("", factureHandler.ListFactures)
			factures.GET("/:id", factureHandler.GetFacture)
			factures.PUT("/:id", factureHandler.UpdateFacture)
			factures.DELETE("/:id", factureHandler.DeleteFacture)
			factures.GET("/:id/pdf", factureHandler.DownloadPDF)
		}

		// Proforma invoice routes (back-office)
		invoices := v1.Group("/invoices")
		invoices.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
			invoices.GET("/:id/pdf", invoiceHandler.DownloadPDF)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddToCart)
			cart.PUT("/items/:productId", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		}

		// Wishlist routes
		wishlist := v1.Group("/wishlist")
		wishlist.Use(middleware.AuthRequired())
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.GET("/:productId", wishlistHandler.Contains)
			wishlist.POST("/:productId", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
		}

		// Checkout and orders
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired())
		{
			checkout.POST("", checkoutHandler.Checkout)
			checkout.POST("/confirm", checkoutHandler.ConfirmPayment)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", checkoutHandler.ListOrders)
			orders.GET("/:id", checkoutHandler.GetOrder)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
				adminUsers.POST("/:id/promote", adminHandler.PromoteUser)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", adminHandler.GetOrders)
				adminOrders.POST("/refund", adminHandler.RefundOrder)
			}

			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("/:category/:key", adminHandler.UpdateSetting)
			}

			adminVisits := admin.Group("/visits")
			{
				adminVisits.GET("", analyticsHandler.GetVisits)
				adminVisits.DELETE("/:id", analyticsHandler.DeleteVisit)
			}

			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
