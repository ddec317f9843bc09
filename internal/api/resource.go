package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/shiperd/internal/fleet"
)

// idPattern constrains surrogate id URL parameters.
const idPattern = "{id:[0-9]+}"

// resource wires the CRUD handlers of one surrogate-keyed entity.
// T is the entity type and P its patch type.
type resource[T any, P any] struct {
	s *Server

	title    string // "Pilot", used in messages
	plural   string // "Pilots"
	key      string // "pilot", the single-item envelope key
	listKey  string // "pilots"
	notFound error

	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, v *T) (int64, error)
	update func(ctx context.Context, id int64, patch P) (int64, error)
	delete func(ctx context.Context, id int64) (int64, error)
	decode func(p fleet.Payload, isUpdate bool) (P, error)
	build  func(patch P) *T
}

// mount registers list, get and the token-gated mutations on r.
func (rs *resource[T, P]) mount(r chi.Router, list http.HandlerFunc) {
	r.Get("/", list)
	r.Get("/"+idPattern, rs.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(rs.s.requireAuth)
		r.Post("/", rs.handleCreate)
		r.Put("/"+idPattern, rs.handleUpdate)
		r.Delete("/"+idPattern, rs.handleDelete)
	})
}

// writeList writes a list envelope with a count.
func (rs *resource[T, P]) writeList(w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}
	writeResponse(w, r, http.StatusOK,
		success(rs.plural+" retrieved successfully").
			with("count", len(items)).
			with(rs.listKey, items))
}

func (rs *resource[T, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	v, ok := rs.load(w, r, id)
	if !ok {
		return
	}
	writeResponse(w, r, http.StatusOK, success(rs.title+" retrieved successfully").with(rs.key, v))
}

func (rs *resource[T, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, ok := rs.s.readPayload(w, r)
	if !ok {
		return
	}
	patch, err := rs.decode(payload, false)
	if err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}

	id, err := rs.create(r.Context(), rs.build(patch))
	if err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}
	rs.s.logMutation(r, rs.key+" created", "id", id)

	v, ok := rs.load(w, r, id)
	if !ok {
		return
	}
	writeResponse(w, r, http.StatusCreated, success(rs.title+" created successfully").with(rs.key, v))
}

func (rs *resource[T, P]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	payload, ok := rs.s.readPayload(w, r)
	if !ok {
		return
	}
	patch, err := rs.decode(payload, true)
	if err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}
	if _, ok := rs.load(w, r, id); !ok {
		return
	}

	if _, err := rs.update(r.Context(), id, patch); err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}
	rs.s.logMutation(r, rs.key+" updated", "id", id)

	v, ok := rs.load(w, r, id)
	if !ok {
		return
	}
	writeResponse(w, r, http.StatusOK, success(rs.title+" updated successfully").with(rs.key, v))
}

func (rs *resource[T, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := rs.load(w, r, id); !ok {
		return
	}

	n, err := rs.delete(r.Context(), id)
	if err != nil {
		rs.s.writeStoreError(w, r, err)
		return
	}
	if n == 0 {
		writeNotFound(w, r, rs.title+" not found")
		return
	}
	rs.s.logMutation(r, rs.key+" deleted", "id", id)

	writeResponse(w, r, http.StatusOK, success(rs.title+" deleted successfully"))
}

// load fetches id, writing a 404 or 500 response on failure.
func (rs *resource[T, P]) load(w http.ResponseWriter, r *http.Request, id int64) (*T, bool) {
	v, err := rs.get(r.Context(), id)
	if err != nil {
		if errors.Is(err, rs.notFound) {
			writeNotFound(w, r, rs.title+" not found")
		} else {
			rs.s.writeStoreError(w, r, err)
		}
		return nil, false
	}
	return v, true
}

// readPayload parses the request body as a JSON object.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request) (fleet.Payload, bool) {
	p, err := fleet.ParsePayload(r.Body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return nil, false
	}
	return p, true
}

// logMutation records a successful write with the caller's identity.
func (s *Server) logMutation(r *http.Request, msg string, args ...any) {
	if claims := claimsFromContext(r.Context()); claims != nil {
		args = append(args, "user_id", claims.UserID)
	}
	args = append(args, "request_id", requestID(r.Context()))
	s.logger.Info(msg, args...)
}

// urlID parses an integer URL parameter, writing a 400 response on failure.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeBadRequest(w, r, fmt.Sprintf("Parameter '%s' must be an integer", name))
		return 0, false
	}
	return id, true
}

// queryParams reads optional search criteria from a query string.
// The message for the first malformed integer is kept in invalid.
type queryParams struct {
	values  url.Values
	invalid string
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

// str returns the parameter, or nil when absent or empty.
func (q *queryParams) str(name string) *string {
	v := q.values.Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// integer returns the parameter as an integer, or nil when absent or empty.
func (q *queryParams) integer(name string) *int64 {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if q.invalid == "" {
			q.invalid = fmt.Sprintf("Parameter '%s' must be an integer", name)
		}
		return nil
	}
	return &n
}
