package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/RAGUL-MADHAVAN/AbstractSummarizer/docs"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/handler"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

func NewRouter(
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	summarizeHandler *handler.SummarizeHandler,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterRoutes(protected)

	summarizerGroup := e.Group("/summarizer")
	summarizerGroup.Use(JWTAuthMiddleware(authService))
	summarizeHandler.RegisterRoutes(summarizerGroup)

	return e, nil
}
