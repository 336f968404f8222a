package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailMismatch      = errors.New("emails do not match")

	ErrMissingContact   = errors.New("username or email missing")
	ErrMissingSelector  = errors.New("username or email required")
	ErrTransportFailure = errors.New("mail transport failed")
)

// ConfirmReason is the machine-readable outcome of a confirmation attempt. The values
// are part of the public redirect contract (?error=<reason>) and must not change.
type ConfirmReason string

const (
	ReasonConfirmed        ConfirmReason = "Confirmado"
	ReasonTokenAbsent      ConfirmReason = "TokenAusente"
	ReasonTokenExpired     ConfirmReason = "TokenExpirado"
	ReasonTokenInvalid     ConfirmReason = "TokenInvalido"
	ReasonTokenMalformed   ConfirmReason = "TokenMalformado"
	ReasonTokenAlreadyUsed ConfirmReason = "TokenJaUsado"
	ReasonUserNotFound     ConfirmReason = "UsuarioNaoEncontrado"
)

// ConfirmError is a rejected confirmation. Err carries the underlying cause when any.
type ConfirmError struct {
	Reason ConfirmReason
	Err    error
}

func (e *ConfirmError) Error() string {
	if e.Err != nil {
		return string(e.Reason) + ": " + e.Err.Error()
	}
	return string(e.Reason)
}

func (e *ConfirmError) Unwrap() error {
	return e.Err
}

func rejected(reason ConfirmReason, err error) *ConfirmError {
	return &ConfirmError{Reason: reason, Err: err}
}
