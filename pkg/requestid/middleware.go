package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Middleware assigns a request ID to every request. Client supplied IDs are
// kept only when they pass validation.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = New()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Propagate sets the request ID header on an outbound request. The ID comes
// from the request's context; a fresh one is generated when it has none.
// The chosen ID is returned.
func Propagate(r *http.Request) string {
	id := FromContext(r.Context())
	if !Valid(id) {
		id = New()
	}
	r.Header.Set(Header, id)
	return id
}

// New generates a request ID.
func New() string {
	return uuid.New().String()
}

// Valid reports whether id is non-empty, at most 128 bytes and limited to
// letters, digits, dashes and underscores.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
