package v1

import (
	"errors"
	"net/http"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	api.POST("/sign", h.userSignUp)
	api.POST("/login", h.userLogin)
}

type userSignUpInput struct {
	Username  string `json:"username" binding:"required,max=64"`
	Password  string `json:"password" binding:"required,max=72"`
	Email1    string `json:"email1" binding:"required,email"`
	Email2    string `json:"email2" binding:"required"`
	Birthdate string `json:"birthdate" binding:"required"`
	TaxID     string `json:"tax_id" binding:"required,taxid"`
}

type userSignUpResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Username string              `json:"username"`
	Queued   bool                `json:"queued"`
	Email    *signUpEmailSummary `json:"email,omitempty"`
}

// signUpEmailSummary is what the public signup reply may say about the confirmation
// email. The link and nonce only ever travel in the email itself.
type signUpEmailSummary struct {
	Sent     int      `json:"sent"`
	Failures []string `json:"failures,omitempty"`
	Message  string   `json:"message,omitempty"`
}

func summarizeDispatch(report *service.DispatchReport) *signUpEmailSummary {
	if report == nil {
		return nil
	}

	summary := &signUpEmailSummary{Sent: report.Sent, Message: report.Message}
	for _, failure := range report.Errors {
		summary.Failures = append(summary.Failures, failure.Reason)
	}

	return summary
}

// @Summary User SignUp
// @Tags Users
// @Description Creates the account and sends the confirmation email
// @ModuleID userSignUp
// @Accept  json
// @Produce  json
// @Param input body userSignUpInput true "sign up info"
// @Success 201 {object} userSignUpResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /sign [post]
func (h *Handler) userSignUp(c *gin.Context) {
	var input userSignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	result, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Username:  input.Username,
		Password:  input.Password,
		Email1:    input.Email1,
		Email2:    input.Email2,
		Birthdate: input.Birthdate,
		TaxID:     input.TaxID,
	})
	if err != nil {
		var dup *domain.DuplicateFieldError
		switch {
		case errors.Is(err, service.ErrEmailMismatch):
			fieldErrorResponse(c, http.StatusBadRequest, EmailMismatchCode, "email2")
		case errors.As(err, &dup):
			fieldErrorResponse(c, http.StatusBadRequest, UserAlreadyExistsCode, dup.Field)
		case errors.Is(err, domain.ErrInvalidRecord):
			validationErrorResponse(c, err)
		default:
			logger.Error("user sign up failed", zap.Error(err), zap.String("username", input.Username))
			errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		}
		return
	}

	c.JSON(http.StatusCreated, userSignUpResponse{
		Success:  true,
		Message:  "Cadastro realizado!",
		Username: result.Username,
		Queued:   result.Queued,
		Email:    summarizeDispatch(result.Dispatch),
	})
}

type userLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// @Summary User Login
// @Tags Users
// @Description Checks credentials, the email must be confirmed
// @ModuleID userLogin
// @Accept  json
// @Produce  json
// @Param input body userLoginInput true "credentials"
// @Success 200 {object} userLoginResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /login [post]
func (h *Handler) userLogin(c *gin.Context) {
	var input userLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Users.Login(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
		return
	case errors.Is(err, service.ErrEmailNotVerified):
		errorResponse(c, http.StatusForbidden, EmailNotVerifiedCode)
		return
	case err != nil:
		logger.Error("user login failed", zap.Error(err), zap.String("username", input.Username))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
		return
	}

	c.JSON(http.StatusOK, userLoginResponse{Success: true, Message: "Login realizado com sucesso!"})
}
