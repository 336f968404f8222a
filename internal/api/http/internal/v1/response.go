package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func fieldErrorResponse(c *gin.Context, status int, code ErrorCode, field string) {
	response := getErrorStruct(code)
	response.Field = field
	c.AbortWithStatusJSON(status, response)
}

func reasonErrorResponse(c *gin.Context, status int, code ErrorCode, reason string) {
	response := getErrorStruct(code)
	response.Reason = reason
	c.AbortWithStatusJSON(status, response)
}

func validationErrorResponse(c *gin.Context, err error) {
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
		Errors:       []ValidationError{},
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		for _, ferr := range verr {
			response.Errors = append(response.Errors, ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())})
		}
	} else {
		response.Errors = append(response.Errors, ValidationError{"body", "JSON inválido"})
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Formato de e-mail inválido"
	case "eqfield":
		return fmt.Sprintf("Deve ser igual ao campo %v", value)
	case "min":
		return fmt.Sprintf("Mínimo de %v caracteres", value)
	case "max":
		return fmt.Sprintf("Máximo de %v caracteres", value)
	case "taxid":
		return "CPF deve conter apenas dígitos e pontuação"
	}
	return tag
}
