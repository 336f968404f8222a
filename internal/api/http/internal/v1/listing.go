package v1

import (
	"net/http"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initListingRoutes(api *gin.RouterGroup) {
	listing := api.Group("/listing", h.adminMiddleware)
	{
		listing.GET("", h.listingGet)
		listing.POST("/sync", h.listingSync)
	}
}

// @Summary Verification listing
// @Tags Listing
// @Description Current verification projection rows
// @ModuleID listingGet
// @Produce  json
// @Success 200 {array} domain.VerificationEntry
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /listing [get]
func (h *Handler) listingGet(c *gin.Context) {
	entries, err := h.services.Verifications.List(c.Request.Context())
	if err != nil {
		logger.Error("list verifications failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	if entries == nil {
		entries = []domain.VerificationEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

type listingSyncResponse struct {
	OK      bool                       `json:"ok"`
	Count   int                        `json:"count"`
	Listing []domain.VerificationEntry `json:"listing"`
}

// @Summary Resync verification listing
// @Tags Listing
// @Description Rebuilds the projection from the signup records, keeping confirmations
// @ModuleID listingSync
// @Produce  json
// @Success 200 {object} listingSyncResponse
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /listing/sync [post]
func (h *Handler) listingSync(c *gin.Context) {
	entries, err := h.services.Verifications.Resync(c.Request.Context())
	if err != nil {
		logger.Error("resync verifications failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	if entries == nil {
		entries = []domain.VerificationEntry{}
	}

	c.JSON(http.StatusOK, listingSyncResponse{OK: true, Count: len(entries), Listing: entries})
}
