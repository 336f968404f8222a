package v1

import (
	"errors"
	"net/http"

	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications", h.adminMiddleware)
	{
		notifications.POST("/send-all", h.notificationSendAll)
		notifications.POST("/send-one", h.notificationSendOne)
		notifications.POST("/send-newest", h.notificationSendNewest)
	}
}

type notificationResponse struct {
	OK bool `json:"ok"`
	*service.DispatchReport
}

func (h *Handler) dispatchResponse(c *gin.Context, report *service.DispatchReport, err error) {
	if err != nil {
		logger.Error("notification dispatch failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	c.JSON(http.StatusOK, notificationResponse{OK: true, DispatchReport: report})
}

// @Summary Send to all pending
// @Tags Notifications
// @Description Sends a fresh confirmation email to every unverified user
// @ModuleID notificationSendAll
// @Produce  json
// @Success 200 {object} notificationResponse
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /notifications/send-all [post]
func (h *Handler) notificationSendAll(c *gin.Context) {
	report, err := h.services.Notifications.SendAll(c.Request.Context())
	h.dispatchResponse(c, report, err)
}

type notificationSendOneInput struct {
	Username string `json:"username"`
	Email1   string `json:"email1"`
}

// @Summary Send to one pending user
// @Tags Notifications
// @Description Selects by username, or by email1 when username is empty
// @ModuleID notificationSendOne
// @Accept  json
// @Produce  json
// @Param input body notificationSendOneInput true "selector"
// @Success 200 {object} notificationResponse
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /notifications/send-one [post]
func (h *Handler) notificationSendOne(c *gin.Context) {
	var input notificationSendOneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	report, err := h.services.Notifications.SendOne(c.Request.Context(), input.Username, input.Email1)
	if errors.Is(err, service.ErrMissingSelector) {
		errorResponse(c, http.StatusBadRequest, SelectorRequiredCode)
		return
	}

	h.dispatchResponse(c, report, err)
}

// @Summary Send to newest pending user
// @Tags Notifications
// @Description Sends to the most recently added unverified user
// @ModuleID notificationSendNewest
// @Produce  json
// @Success 200 {object} notificationResponse
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /notifications/send-newest [post]
func (h *Handler) notificationSendNewest(c *gin.Context) {
	report, err := h.services.Notifications.SendNewest(c.Request.Context())
	h.dispatchResponse(c, report, err)
}
