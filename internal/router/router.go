package router

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"webshop/internal/handler"
	authmw "webshop/internal/middleware"
	"webshop/internal/model"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Basket  *handler.BasketHandler
}

// New creates the echo instance with the validator, error handler and
// request middleware installed.
func New(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	return e
}

// Register wires routes and middleware.
func Register(e *echo.Echo, auth *authmw.AuthMiddleware, h Handlers) {
	e.GET("/healthz", handler.HealthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	authenticated := auth.Authenticate()
	admin := auth.RequireRole(model.RoleAdmin)

	// Session routes
	api.POST("/login", h.Auth.Login)
	api.POST("/token", h.Auth.Refresh)
	api.DELETE("/logout", h.Auth.Logout)

	users := api.Group("/users")
	users.GET("", h.User.ListUsers)
	users.POST("", h.User.CreateUser)
	users.POST("/resetPassword", h.User.ResetPassword)
	users.GET("/:id", h.User.GetUser)
	users.PUT("/:id", h.User.UpdateUser, authenticated)
	users.DELETE("/:id", h.User.DeleteUser, authenticated, admin)

	products := api.Group("/products")
	products.GET("", h.Product.ListProducts)
	products.GET("/:id", h.Product.GetProduct)
	products.POST("", h.Product.CreateProduct, authenticated)
	products.PUT("/:id", h.Product.UpdateProduct, authenticated)
	products.DELETE("/:id", h.Product.DeleteProduct, authenticated, admin)

	baskets := api.Group("/baskets")
	baskets.GET("", h.Basket.ListBaskets, authenticated, admin)
	baskets.GET("/:id", h.Basket.GetBasket)
	baskets.POST("", h.Basket.CreateBasket, authenticated)
	baskets.PUT("/:id", h.Basket.UpdateBasket, authenticated)
	baskets.DELETE("/:id", h.Basket.DeleteBasket, authenticated)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
