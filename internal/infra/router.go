package infra

import (
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/customer-registry/docs" // swagger spec registration
	"github.com/umalmyha/customer-registry/internal/auth"
	"github.com/umalmyha/customer-registry/internal/handlers"
	"github.com/umalmyha/customer-registry/internal/middleware"
)

// HTTPHandlers holds handlers served by router
type HTTPHandlers struct {
	Auth        *handlers.AuthHTTPHandler
	CustomersV1 *handlers.CustomerHTTPHandler
	CustomersV2 *handlers.CustomerHTTPHandler
}

// Router builds echo with all API routes registered
func Router(validator echo.Validator, jwtValidator *auth.JwtValidator, h HTTPHandlers, logger logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(e)

	e.Use(echoMw.Recover())
	e.Use(middleware.Logger(logger))

	// Middleware
	authorizeMw := middleware.Authorize(jwtValidator)

	// Ops routes
	e.GET("/health", handlers.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	api := e.Group("/api")

	// auth
	authAPI := api.Group("/auth")
	authAPI.POST("/signup", h.Auth.Signup)
	authAPI.POST("/login", h.Auth.Login)

	// customers v1
	customers(api.Group("/v1/customers", authorizeMw), h.CustomersV1)

	// customers v2
	customers(api.Group("/v2/customers", authorizeMw), h.CustomersV2)

	return e
}

func customers(g *echo.Group, h *handlers.CustomerHTTPHandler) {
	g.GET("", h.GetAll)
	g.GET("/:id", h.Get)
	g.GET("/country/:code", h.GetByCountry)
	g.POST("", h.Post)
	g.PUT("/:id", h.Put)
	g.DELETE("/:id", h.DeleteByID)
}
