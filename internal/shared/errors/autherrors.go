package errors

import "net/http"

const ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"

// NewInvalidCredentialsError is the single answer to a failed admin login.
// Unknown email, a non-admin identity and a wrong password all map to it.
func NewInvalidCredentialsError() *AppError {
	return build(ErrorTypeInvalidCredentials, http.StatusBadRequest, "Invalid credentials", nil)
}

func IsInvalidCredentialsError(err error) bool {
	return HasType(err, ErrorTypeInvalidCredentials)
}
