package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbilling "github.com/retailpos/backend/internal/application/billing"
	appcatalog "github.com/retailpos/backend/internal/application/catalog"
	appfinance "github.com/retailpos/backend/internal/application/finance"
	appidentity "github.com/retailpos/backend/internal/application/identity"
	apppartner "github.com/retailpos/backend/internal/application/partner"
	apppos "github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// Services bundles the application services the router exposes.
type Services struct {
	Auth     *appidentity.AuthService
	User     *appidentity.UserService
	Invoice  *appbilling.InvoiceService
	Debt     *appfinance.DebtService
	Ledger   *appfinance.SupplierLedgerService
	Payment  *appfinance.PaymentService
	Session  *apppos.SessionService
	Product  *appcatalog.ProductService
	Category *appcatalog.CategoryService
	Customer *apppartner.CustomerService
	Supplier *apppartner.SupplierService
}

// Options configures router construction.
type Options struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Services       Services
}

// New builds the gin engine with all middleware and routes registered.
func New(opts Options) *gin.Engine {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.Recovery(opts.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(opts.Logger))
	engine.Use(middleware.CORS(opts.Config.HTTP))

	if len(opts.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(opts.Config.HTTP.TrustedProxies)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": opts.Config.App.Name})
	})

	jwtCfg := middleware.DefaultJWTConfig(opts.JWTService)
	jwtCfg.TokenBlacklist = opts.TokenBlacklist
	jwtCfg.Logger = opts.Logger

	authHandler := handler.NewAuthHandler(opts.Services.Auth, opts.Services.User)
	userHandler := handler.NewUserHandler(opts.Services.User)
	invoiceHandler := handler.NewInvoiceHandler(opts.Services.Invoice)
	debtHandler := handler.NewDebtHandler(opts.Services.Debt)
	paymentHandler := handler.NewPaymentHandler(opts.Services.Payment)
	supplierHandler := handler.NewSupplierHandler(opts.Services.Supplier, opts.Services.Ledger)
	customerHandler := handler.NewCustomerHandler(opts.Services.Customer)
	productHandler := handler.NewProductHandler(opts.Services.Product)
	categoryHandler := handler.NewCategoryHandler(opts.Services.Category)
	sessionHandler := handler.NewSessionHandler(opts.Services.Session)

	v1 := engine.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtCfg))

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
	}

	users := v1.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.POST("/me/password", userHandler.ChangePassword)
		users.GET("/:id", userHandler.Get)
		users.POST("/:id/activate", userHandler.Activate)
		users.POST("/:id/deactivate", userHandler.Deactivate)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.POST("", invoiceHandler.Create)
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.PUT("/:id", invoiceHandler.UpdateQuotation)
		invoices.GET("/:id/stock-check", invoiceHandler.CheckStock)
		invoices.PATCH("/:id/status", invoiceHandler.UpdateStatus)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	debts := v1.Group("/debts")
	{
		debts.POST("", debtHandler.Create)
		debts.GET("", debtHandler.List)
		debts.GET("/overdue", debtHandler.ListOverdue)
		debts.GET("/stats", debtHandler.Stats)
		debts.GET("/:id", debtHandler.Get)
		debts.POST("/:id/payments", debtHandler.AddPayment)
		debts.DELETE("/:id", debtHandler.Delete)
	}

	payments := v1.Group("/payments")
	{
		payments.POST("", paymentHandler.Record)
		payments.GET("", paymentHandler.List)
		payments.GET("/:id", paymentHandler.Get)
		payments.DELETE("/:id", paymentHandler.Delete)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.POST("", supplierHandler.Create)
		suppliers.GET("", supplierHandler.List)
		suppliers.GET("/with-debt", supplierHandler.ListWithDebt)
		suppliers.GET("/:id", supplierHandler.Get)
		suppliers.POST("/:id/debts", supplierHandler.AddDebt)
		suppliers.POST("/:id/payments", supplierHandler.PayDebt)
		suppliers.GET("/:id/ledger", supplierHandler.History)
		suppliers.DELETE("/:id", supplierHandler.Delete)
	}

	customers := v1.Group("/customers")
	{
		customers.POST("", customerHandler.Create)
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id", customerHandler.Update)
		customers.GET("/:id/debt-summary", debtHandler.CustomerSummary)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	products := v1.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.POST("/:id/adjust-stock", productHandler.AdjustStock)
		products.POST("/:id/receive-stock", productHandler.ReceiveStock)
		products.DELETE("/:id", productHandler.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.POST("", categoryHandler.Create)
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	sessions := v1.Group("/pos/sessions")
	{
		sessions.POST("", sessionHandler.Open)
		sessions.GET("", sessionHandler.List)
		sessions.GET("/current", sessionHandler.Current)
		sessions.GET("/:id", sessionHandler.Get)
		sessions.POST("/:id/close", sessionHandler.Close)
	}

	return engine
}
