package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/credential-service/docs"
	"github.com/99minutos/credential-service/internal/api/handler"
	"github.com/99minutos/credential-service/internal/api/middleware"
	"github.com/99minutos/credential-service/internal/core/ports"
)

// Deps holds everything the HTTP layer needs.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenVerifier
	Store       handler.Pinger
	Log         zerolog.Logger

	// TokenHeader defaults to x-auth-token.
	TokenHeader  string
	AllowOrigins []string
	// Registry receives the HTTP metrics. Nil means the default registerer.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			d.Log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Bytes("stack", stack).
				Msg("panic recovered")
			return err
		},
	}))
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(d.AllowOrigins, d.TokenHeader)))
	e.Use(echomiddleware.BodyLimit("64K"))

	promCfg := echoprometheus.MiddlewareConfig{
		Namespace: "credentials",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, d.Registry}
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	userHandler := handler.NewUserHandler(d.UserService)
	healthHandler := handler.NewHealthHandler(d.Store)
	authMiddleware := middleware.Auth(d.Tokens, d.TokenHeader)

	// --- Health probes (no auth required) ---
	e.GET("/", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Account routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/users", userHandler.List, authMiddleware)

	return e
}

func corsConfig(origins []string, tokenHeader string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	if tokenHeader == "" {
		tokenHeader = middleware.DefaultTokenHeader
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, tokenHeader},
	}
}
