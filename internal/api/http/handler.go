package apiHttp

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aetherdigital/backend/docs"
	"github.com/aetherdigital/backend/pkg/limiter"
	"github.com/aetherdigital/backend/pkg/logger"
	"github.com/aetherdigital/backend/pkg/validator"
	"github.com/aetherdigital/backend/templates"

	internalV1 "github.com/aetherdigital/backend/internal/api/http/internal/v1"
	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services   *service.Services
	config     *config.Config
	statusPage *template.Template
}

func NewHandlers(services *service.Services, cfg *config.Config) (*Handler, error) {
	statusPage, err := template.ParseFS(templates.FS, templates.Status)
	if err != nil {
		return nil, fmt.Errorf("parse status page failed: %w", err)
	}

	return &Handler{
		services:   services,
		config:     cfg,
		statusPage: statusPage,
	}, nil
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.CORS.AllowedOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.config, h.statusPage)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
