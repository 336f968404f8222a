package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode     = 1001
	UserAlreadyExistsMessage  = "user already exists"
	UserNotFoundCode          = 1002
	UserNotFoundMessage       = "user not found"
	InvalidCredentialsCode    = 1003
	InvalidCredentialsMessage = "invalid username or password"
	EmailNotVerifiedCode      = 1004
	EmailNotVerifiedMessage   = "email_not_verified"
	EmailMismatchCode         = 1005
	EmailMismatchMessage      = "emails do not match"
	TokenRejectedCode         = 2001
	TokenRejectedMessage      = "token rejected"
	SelectorRequiredCode      = 3001
	SelectorRequiredMessage   = "username or email1 required"
	AdminKeyInvalidCode       = 4001
	AdminKeyInvalidMessage    = "admin key missing or invalid"
	InternalErrorCode         = 5000
	InternalErrorMessage      = "internal error"
	ValidationErrorCode       = 6000
	ValidationErrorMessage    = "validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
	Field        string `json:"field,omitempty"`
	Reason       string `json:"reason,omitempty"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case UserAlreadyExistsCode:
		errorStruct.ErrorCode = UserAlreadyExistsCode
		errorStruct.ErrorMessage = UserAlreadyExistsMessage
	case UserNotFoundCode:
		errorStruct.ErrorCode = UserNotFoundCode
		errorStruct.ErrorMessage = UserNotFoundMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case EmailNotVerifiedCode:
		errorStruct.ErrorCode = EmailNotVerifiedCode
		errorStruct.ErrorMessage = EmailNotVerifiedMessage
	case EmailMismatchCode:
		errorStruct.ErrorCode = EmailMismatchCode
		errorStruct.ErrorMessage = EmailMismatchMessage
	case TokenRejectedCode:
		errorStruct.ErrorCode = TokenRejectedCode
		errorStruct.ErrorMessage = TokenRejectedMessage
	case SelectorRequiredCode:
		errorStruct.ErrorCode = SelectorRequiredCode
		errorStruct.ErrorMessage = SelectorRequiredMessage
	case AdminKeyInvalidCode:
		errorStruct.ErrorCode = AdminKeyInvalidCode
		errorStruct.ErrorMessage = AdminKeyInvalidMessage
	case InternalErrorCode:
		errorStruct.ErrorCode = InternalErrorCode
		errorStruct.ErrorMessage = InternalErrorMessage
	}

	return errorStruct
}
