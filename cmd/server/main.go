package main

import (
	"log"
	"net/http"

	_ "freightdesk/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"freightdesk/internal/auth"
	"freightdesk/internal/cache"
	"freightdesk/internal/config"
	"freightdesk/internal/db"
	"freightdesk/internal/handler"
	"freightdesk/internal/mail"
	"freightdesk/internal/model"
	"freightdesk/internal/observability"
	"freightdesk/internal/ratelimit"
	"freightdesk/internal/repository"
	"freightdesk/internal/router"
	"freightdesk/internal/service"
)

// @title FreightDesk API
// @version 1.0
// @description Freight forwarding backend: public quote intake, customer order tracking, and the admin CRM.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. Browsers use the session cookie instead.
func main() {
	cfg := config.Load()
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	logger := observability.NewLogger(cfg.LogLevel)
	defer observability.Sync(logger)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Quote{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusHistory{},
		&model.Payment{},
		&model.Product{},
		&model.Document{},
		&model.Setting{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var limiter ratelimit.Limiter
	switch cfg.RateLimiter {
	case "redis":
		limiter = ratelimit.NewRedisLimiter(cacheClient, cfg.QuoteRateLimit, cfg.QuoteRateWindow, logger)
	default:
		limiter = ratelimit.NewFixedWindow(cfg.QuoteRateLimit, cfg.QuoteRateWindow)
	}

	codec := auth.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	mailer := mail.NewLogMailer(logger)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	quoteRepo := repository.NewQuoteRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)

	// Services
	authService := service.NewAuthService(userRepo, quoteRepo, orderRepo, codec, cfg.SessionCookieName, mailer, logger)
	orderService := service.NewOrderService(orderRepo, mailer, logger)
	quoteService := service.NewQuoteService(quoteRepo, orderService, mailer, logger)
	customerService := service.NewCustomerService(userRepo, quoteRepo, orderRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	productService := service.NewProductService(productRepo)
	documentService := service.NewDocumentService(documentRepo)
	settingService := service.NewSettingService(settingRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, codec, logger, router.Handlers{
		Auth:           handler.NewAuthHandler(authService, cfg.SessionCookieName, cfg.SessionTTL),
		Quote:          handler.NewQuoteHandler(quoteService, authService, limiter),
		Account:        handler.NewAccountHandler(authService, orderService, quoteService),
		AdminOrders:    handler.NewAdminOrdersHandler(authService, orderService),
		AdminQuotes:    handler.NewAdminQuotesHandler(authService, quoteService),
		AdminCustomers: handler.NewAdminCustomersHandler(authService, customerService),
		AdminProducts:  handler.NewAdminProductsHandler(authService, productService),
		AdminPayments:  handler.NewAdminPaymentsHandler(authService, paymentService),
		AdminSettings:  handler.NewAdminSettingsHandler(authService, settingService),
		AdminDocuments: handler.NewAdminDocumentsHandler(authService, documentService),
	})

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
