package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Registration holds the fields of a sign-up request.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationPolicy sets the minimum lengths enforced at sign-up.
type RegistrationPolicy struct {
	MinUsernameLength int
	MinPasswordLength int
}

// DefaultRegistrationPolicy requires 3-character usernames and
// 6-character passwords.
var DefaultRegistrationPolicy = RegistrationPolicy{MinUsernameLength: 3, MinPasswordLength: 6}

// Validate checks reg against the policy. Username and email are trimmed
// in place. Failures wrap ErrInvalidRegistration and carry a message
// suitable for the client.
func (p RegistrationPolicy) Validate(reg *Registration) error {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)

	switch {
	case reg.Username == "":
		return invalidRegistration("Missing required field: username")
	case reg.Email == "":
		return invalidRegistration("Missing required field: email")
	case reg.Password == "":
		return invalidRegistration("Missing required field: password")
	}

	n := utf8.RuneCountInString(reg.Username)
	if n < p.MinUsernameLength {
		return invalidRegistration("Username must be at least %d characters", p.MinUsernameLength)
	}
	if n > maxUsernameLength {
		return invalidRegistration("Username cannot exceed %d characters", maxUsernameLength)
	}

	if len(reg.Email) > maxEmailLength {
		return invalidRegistration("Email cannot exceed %d characters", maxEmailLength)
	}
	if addr, err := mail.ParseAddress(reg.Email); err != nil || addr.Address != reg.Email {
		return invalidRegistration("Invalid email address")
	}

	if utf8.RuneCountInString(reg.Password) < p.MinPasswordLength {
		return invalidRegistration("Password must be at least %d characters", p.MinPasswordLength)
	}
	if len(reg.Password) > maxPasswordLength {
		return invalidRegistration("Password cannot exceed %d bytes", maxPasswordLength)
	}
	return nil
}

// RegistrationError is a client-facing registration failure.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

func (e *RegistrationError) Unwrap() error { return ErrInvalidRegistration }

func invalidRegistration(format string, args ...any) error {
	return &RegistrationError{Message: fmt.Sprintf(format, args...)}
}
