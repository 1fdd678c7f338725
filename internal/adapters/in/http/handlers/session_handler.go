// internal/adapters/in/http/handlers/session_handler.go
package handlers

import (
	"net/http"
	"strings"

	"revendo/internal/application/livecache"
)

// SessionHandler serves /session: console sign-out tears down the vendor's
// live snapshot listeners so idle accounts hold no Firestore streams.
type SessionHandler struct {
	hub *livecache.Hub
}

func NewSessionHandler(hub *livecache.Hub) http.Handler {
	return &SessionHandler{hub: hub}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/session/")
	if rest != "logout" {
		notFound(w)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if h.hub != nil {
		h.hub.Drop(vid)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
