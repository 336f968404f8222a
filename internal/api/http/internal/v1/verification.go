package v1

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initVerificationRoutes(api *gin.RouterGroup) {
	verif := api.Group("/verif")
	{
		verif.GET("/confirm", h.verificationConfirm)
		verif.POST("/confirm", h.adminMiddleware, h.verificationConfirmByUsername)
		verif.GET("/debug", h.adminMiddleware, h.verificationDebug)
	}
}

var confirmPages = map[service.ConfirmReason]struct {
	status  int
	message string
}{
	service.ReasonTokenAbsent:      {http.StatusBadRequest, "Token ausente."},
	service.ReasonTokenExpired:     {http.StatusBadRequest, "Token expirado. Solicite novo e-mail."},
	service.ReasonTokenInvalid:     {http.StatusBadRequest, "Token inválido."},
	service.ReasonTokenMalformed:   {http.StatusBadRequest, "Token malformado."},
	service.ReasonTokenAlreadyUsed: {http.StatusBadRequest, "Este link de verificação já foi usado."},
	service.ReasonUserNotFound:     {http.StatusNotFound, "Usuário não encontrado."},
}

type statusPageData struct {
	Message  string
	Username string
}

// @Summary Confirm email
// @Tags Verification
// @Description Consumes the token from the confirmation email. Redirects to the configured
// @Description success or failure page, otherwise renders a status page.
// @ModuleID verificationConfirm
// @Produce  html
// @Param token query string true "confirmation token"
// @Success 200
// @Success 302
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /verif/confirm [get]
func (h *Handler) verificationConfirm(c *gin.Context) {
	username, err := h.services.Verifications.Confirm(c.Request.Context(), c.Query("token"))
	if err == nil {
		if target := h.config.Verification.SuccessURL; target != "" {
			h.redirect(c, target, url.Values{"ok": {"1"}, "u": {username}})
			return
		}
		h.renderStatus(c, http.StatusOK, statusPageData{Message: "E-mail verificado para", Username: username})
		return
	}

	var cerr *service.ConfirmError
	if !errors.As(err, &cerr) {
		h.renderStatus(c, http.StatusInternalServerError, statusPageData{Message: "Não foi possível confirmar agora. Tente novamente mais tarde."})
		return
	}

	if target := h.config.Verification.FailURL; target != "" {
		h.redirect(c, target, url.Values{"error": {string(cerr.Reason)}})
		return
	}

	page, ok := confirmPages[cerr.Reason]
	if !ok {
		page.status, page.message = http.StatusBadRequest, string(cerr.Reason)
	}
	h.renderStatus(c, page.status, statusPageData{Message: page.message})
}

func (h *Handler) redirect(c *gin.Context, target string, params url.Values) {
	u, err := url.Parse(target)
	if err != nil {
		logger.Error("invalid redirect url", zap.Error(err), zap.String("url", target))
		h.renderStatus(c, http.StatusInternalServerError, statusPageData{Message: "Redirecionamento mal configurado."})
		return
	}

	query := u.Query()
	for key, values := range params {
		query[key] = values
	}
	u.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, u.String())
}

func (h *Handler) renderStatus(c *gin.Context, status int, data statusPageData) {
	buf := new(bytes.Buffer)
	if err := h.statusPage.Execute(buf, data); err != nil {
		logger.Error("render status page failed", zap.Error(err))
		c.String(http.StatusInternalServerError, data.Message)
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

type verificationConfirmByUsernameInput struct {
	Username string `json:"username" binding:"required"`
}

type verificationConfirmByUsernameResponse struct {
	OK         bool   `json:"ok"`
	Username   string `json:"username"`
	Verified   bool   `json:"verified"`
	VerifiedAt string `json:"verified_at,omitempty"`
}

// @Summary Confirm email without token
// @Tags Verification
// @Description Operator path, marks the user verified without consuming any token
// @ModuleID verificationConfirmByUsername
// @Accept  json
// @Produce  json
// @Param input body verificationConfirmByUsernameInput true "user"
// @Success 200 {object} verificationConfirmByUsernameResponse
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /verif/confirm [post]
func (h *Handler) verificationConfirmByUsername(c *gin.Context) {
	var input verificationConfirmByUsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	entry, err := h.services.Verifications.ConfirmByUsername(c.Request.Context(), input.Username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
			return
		}
		logger.Error("confirm by username failed", zap.Error(err), zap.String("username", input.Username))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	c.JSON(http.StatusOK, newConfirmByUsernameResponse(entry))
}

func newConfirmByUsernameResponse(entry *domain.VerificationEntry) verificationConfirmByUsernameResponse {
	response := verificationConfirmByUsernameResponse{
		OK:       true,
		Username: entry.Username,
		Verified: entry.Verified,
	}
	if entry.VerifiedAt != nil {
		response.VerifiedAt = entry.VerifiedAt.Format(time.RFC3339)
	}

	return response
}

type verificationDebugResponse struct {
	HasSecret  bool   `json:"has_secret"`
	SuccessURL string `json:"success_url"`
	FailURL    string `json:"fail_url"`
	UsedCount  int    `json:"used_count"`
}

// @Summary Verification debug
// @Tags Verification
// @Description Reports configuration presence and the number of consumed tokens
// @ModuleID verificationDebug
// @Produce  json
// @Success 200 {object} verificationDebugResponse
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /verif/debug [get]
func (h *Handler) verificationDebug(c *gin.Context) {
	used, err := h.services.Verifications.UsedCount(c.Request.Context())
	if err != nil {
		logger.Error("count used tokens failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	c.JSON(http.StatusOK, verificationDebugResponse{
		HasSecret:  h.config.Verification.SigningKey != "",
		SuccessURL: h.config.Verification.SuccessURL,
		FailURL:    h.config.Verification.FailURL,
		UsedCount:  used,
	})
}
