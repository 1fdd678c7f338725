// internal/adapters/in/http/handlers/portal_handler.go
package handlers

import (
	"net/http"
	"strings"

	"revendo/internal/application/query"
)

// PortalHandler serves /portal/lookup: the unauthenticated self-service
// surface where a customer checks their own services by phone number.
// Mounted outside the auth chain.
type PortalHandler struct {
	portal *query.PortalQuery
}

func NewPortalHandler(portal *query.PortalQuery) http.Handler {
	return &PortalHandler{portal: portal}
}

func (h *PortalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/portal/"))

	if rest != "lookup" || r.Method != http.MethodGet {
		notFound(w)
		return
	}

	phone := r.URL.Query().Get("phone")
	services, err := h.portal.Lookup(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}
