package api

import (
	"errors"
	"net/http"

	"github.com/nerrad567/shiperd/internal/auth"
	"github.com/nerrad567/shiperd/internal/fleet"
)

// Common error codes carried in the envelope's code field.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeUnauthorized   = "unauthorised"
	ErrCodeConflict       = "conflict"
	ErrCodeInternal       = "internal_error"
	ErrCodeValidation     = "validation_error"
	ErrCodeMethodNotAllow = "method_not_allowed"
)

// Client-facing messages shared across handlers.
const (
	msgRouteNotFound     = "Resource not found"
	msgMethodNotAllowed  = "Method not allowed"
	msgInvalidReference  = "Referenced record does not exist"
	msgRecordInUse       = "Record is still referenced by other records"
	msgShipWeaponExists  = "Ship weapon already exists"
	msgInvalidLogin      = "Invalid username or password"
	msgUsernameTaken     = "Username already exists"
	msgEmailTaken        = "Email already exists"
	msgTokenMissing      = "Authentication token is missing"
	msgTokenHeaderFormat = "Invalid Authorization header format. Use: Bearer <token>"
	msgTokenInvalid      = "Invalid or expired token"
)

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeResponse(w, r, status, envelope{
		"status":  statusError,
		"code":    code,
		"message": message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeValidationError writes a 400 error response for a rejected payload.
func writeValidationError(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, ErrCodeValidation, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeConflict writes a 409 error response.
func writeConflict(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusConflict, ErrCodeConflict, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeStoreError maps a repository error onto the envelope. Not-found
// sentinels are handled by the caller, which knows the entity name.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *fleet.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, r, verr.Message)
	case errors.Is(err, fleet.ErrInvalidReference):
		writeBadRequest(w, r, msgInvalidReference)
	case errors.Is(err, fleet.ErrShipWeaponExists):
		writeConflict(w, r, msgShipWeaponExists)
	case errors.Is(err, fleet.ErrInUse):
		writeConflict(w, r, msgRecordInUse)
	case errors.Is(err, auth.ErrUsernameExists):
		writeConflict(w, r, msgUsernameTaken)
	case errors.Is(err, auth.ErrEmailExists):
		writeConflict(w, r, msgEmailTaken)
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		writeInternalError(w, r, err.Error())
	}
}
