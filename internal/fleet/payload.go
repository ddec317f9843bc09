package fleet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Payload is the raw field set of a JSON request object. Keys that were
// absent from the request are absent from the map; JSON null is kept as
// the literal "null".
type Payload map[string]json.RawMessage

const msgNotObject = "Request body must be a JSON object"

// ParsePayload reads a single JSON object from r.
func ParsePayload(r io.Reader) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("", "Request body is required")
		}
		return nil, invalid("", msgNotObject)
	}
	if p == nil {
		return nil, invalid("", msgNotObject)
	}
	if dec.More() {
		return nil, invalid("", msgNotObject)
	}
	return p, nil
}

// Has reports whether key was present in the request.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsNull reports whether key was present with a JSON null value.
func (p Payload) IsNull(key string) bool {
	raw, ok := p[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String returns the value of key if it is a JSON string.
func (p Payload) String(key string) (string, bool) {
	raw := bytes.TrimSpace(p[key])
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Int returns the value of key if it is a JSON integer literal.
// Numeric strings, fractions, exponents and booleans are rejected.
func (p Payload) Int(key string) (int64, bool) {
	raw := bytes.TrimSpace(p[key])
	if len(raw) == 0 {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

func (p Payload) stringField(key string) Field[string] {
	if !p.Has(key) {
		return Field[string]{}
	}
	if p.IsNull(key) {
		return Null[string]()
	}
	s, _ := p.String(key)
	return Present(s)
}

func (p Payload) intField(key string) Field[int64] {
	if !p.Has(key) {
		return Field[int64]{}
	}
	i, _ := p.Int(key)
	return Present(i)
}

// ValidationError describes the first field of a payload that failed
// validation. It matches ErrInvalidPayload with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
