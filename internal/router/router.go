package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"freightdesk/internal/auth"
	"freightdesk/internal/config"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/guard"
	"freightdesk/internal/handler"
	"freightdesk/internal/observability"
)

// Handlers bundles everything Register wires up.
type Handlers struct {
	Auth           *handler.AuthHandler
	Quote          *handler.QuoteHandler
	Account        *handler.AccountHandler
	AdminOrders    *handler.AdminOrdersHandler
	AdminQuotes    *handler.AdminQuotesHandler
	AdminCustomers *handler.AdminCustomersHandler
	AdminProducts  *handler.AdminProductsHandler
	AdminPayments  *handler.AdminPaymentsHandler
	AdminSettings  *handler.AdminSettingsHandler
	AdminDocuments *handler.AdminDocumentsHandler
}

// Register wires routes and middleware. The edge guard runs before routing
// so page and API prefixes are gated even for paths with no registered
// route; the JWT middleware on the secured groups then extracts and
// verifies the token, and handlers do the authoritative session check.
func Register(e *echo.Echo, cfg *config.Config, codec *auth.Codec, logger *zap.Logger, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(observability.RequestLogger(logger))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Pre(guard.Edge(codec, cfg.SessionCookieName))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)
	api.POST("/quotes", h.Quote.Submit)

	jwtConfig := echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + cfg.SessionCookieName + ",header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthorized.Error(),
				Code:  "UNAUTHORIZED",
			})
		},
	}

	// Customer account routes (require a valid session)
	account := api.Group("/account", echojwt.WithConfig(jwtConfig))
	account.GET("/profile", h.Account.Profile)
	account.GET("/orders", h.Account.ListOrders)
	account.GET("/orders/:id", h.Account.GetOrder)
	account.GET("/quotes", h.Account.ListQuotes)

	// Admin routes (require a valid session; handlers enforce the role)
	admin := api.Group("/admin", echojwt.WithConfig(jwtConfig))

	admin.GET("/orders", h.AdminOrders.List)
	admin.POST("/orders", h.AdminOrders.Create)
	// Registered before /orders/:id so "bulk" is not parsed as an id.
	admin.PATCH("/orders/bulk", h.AdminOrders.BulkChangeStatus)
	admin.GET("/orders/:id", h.AdminOrders.Get)
	admin.PUT("/orders/:id", h.AdminOrders.Update)
	admin.DELETE("/orders/:id", h.AdminOrders.Delete)
	admin.PATCH("/orders/:id/status", h.AdminOrders.ChangeStatus)
	admin.POST("/orders/:id/payments", h.AdminOrders.RecordPayment)

	admin.GET("/quotes", h.AdminQuotes.List)
	admin.POST("/quotes", h.AdminQuotes.Create)
	admin.GET("/quotes/:id", h.AdminQuotes.Get)
	admin.PUT("/quotes/:id", h.AdminQuotes.Update)
	admin.DELETE("/quotes/:id", h.AdminQuotes.Delete)
	admin.POST("/quotes/:id/convert", h.AdminQuotes.Convert)

	admin.GET("/customers", h.AdminCustomers.List)
	admin.GET("/customers/:id", h.AdminCustomers.Get)
	admin.PUT("/customers/:id", h.AdminCustomers.Update)

	admin.GET("/products", h.AdminProducts.List)
	admin.POST("/products", h.AdminProducts.Create)
	admin.GET("/products/:id", h.AdminProducts.Get)
	admin.PUT("/products/:id", h.AdminProducts.Update)
	admin.DELETE("/products/:id", h.AdminProducts.Delete)

	admin.GET("/payments", h.AdminPayments.List)
	admin.GET("/payments/:id", h.AdminPayments.Get)

	admin.GET("/settings", h.AdminSettings.List)
	admin.GET("/settings/:key", h.AdminSettings.Get)
	admin.PUT("/settings/:key", h.AdminSettings.Put)

	admin.GET("/documents", h.AdminDocuments.List)
	admin.POST("/documents", h.AdminDocuments.Create)
	admin.GET("/documents/:id", h.AdminDocuments.Get)
	admin.DELETE("/documents/:id", h.AdminDocuments.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
