package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/shiperd/internal/auth"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeJSONBody decodes a JSON object body into v, writing a 400 on failure.
// A field of the wrong JSON type is reported by name.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		writeValidationError(w, r, fmt.Sprintf("Field '%s' must be a %s", typeErr.Field, typeErr.Type.Kind()))
		return false
	}
	writeBadRequest(w, r, "Request body must be a JSON object")
	return false
}

// tokenTTL returns the configured access token lifetime.
func (s *Server) tokenTTL() time.Duration {
	return time.Duration(s.secCfg.JWT.TokenTTL) * time.Hour
}

// handleRegister creates an account and returns an access token for it.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if !decodeJSONBody(w, r, &reg) {
		return
	}

	var regErr *auth.RegistrationError
	if err := s.registration.Validate(&reg); err != nil {
		if errors.As(err, &regErr) {
			writeValidationError(w, r, regErr.Message)
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	user := &auth.User{Username: reg.Username, Email: reg.Email, PasswordHash: hash}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(user, s.secCfg.JWT.Secret, s.tokenTTL())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
		"request_id", requestID(r.Context()),
	)
	writeResponse(w, r, http.StatusCreated,
		success("User registered successfully").
			with("token", token).
			with("user", user))
}

// handleLogin verifies credentials and returns an access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeValidationError(w, r, "Username and password are required")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, r, msgInvalidLogin)
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		s.logger.Info("login failed",
			"username", req.Username,
			"request_id", requestID(r.Context()),
		)
		writeUnauthorized(w, r, msgInvalidLogin)
		return
	}

	token, err := auth.GenerateToken(user, s.secCfg.JWT.Secret, s.tokenTTL())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK,
		success("Login successful").
			with("token", token).
			with("user", user))
}

// handleMe returns the account behind the bearer token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, r, msgTokenMissing)
		return
	}

	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, r, msgTokenInvalid)
			return
		}
		s.writeStoreError(w, r, err)
		return
	}
	writeResponse(w, r, http.StatusOK, success("User retrieved successfully").with("user", user))
}
