package v1

import (
	"html/template"

	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Aether Digital API
// @version 1.0
// @description Signup, login and email verification

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name X-Admin-Key

type Handler struct {
	services   *service.Services
	config     *config.Config
	statusPage *template.Template
}

func NewHandler(services *service.Services, config *config.Config, statusPage *template.Template) *Handler {
	return &Handler{
		services:   services,
		config:     config,
		statusPage: statusPage,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initUsersRoutes(v1)
	h.initVerificationRoutes(v1)
	h.initListingRoutes(v1)
	h.initNotificationRoutes(v1)
}
