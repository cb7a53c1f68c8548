package org

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultHeader is the request header carrying the organization id.
const DefaultHeader = "X-Org-ID"

// RootKeyword is the header value selecting the root context explicitly.
const RootKeyword = "root"

// Middleware resolves the org context from the request header and stores it
// in the request context. An absent header or the "root" keyword selects the
// root context; a malformed org id is rejected with 400.
//
// Authenticating that the caller may act within the resolved org is the host
// application's concern.
func Middleware(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(header)

			oc := RootContext()
			if raw != "" && raw != RootKeyword {
				id, err := uuid.Parse(raw)
				if err != nil {
					http.Error(w, ErrInvalidOrgID.Error(), http.StatusBadRequest)
					return
				}
				oc = Of(id)
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), oc)))
		})
	}
}
