// internal/adapters/in/http/handlers/confirm_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
)

// ConfirmHandler resolves pending intents:
//
//	POST /confirm/{id}        -> execute the deferred action
//	POST /confirm/{id}/cancel -> drop it (no-op)
type ConfirmHandler struct {
	confirms *ConfirmRegistry
}

func NewConfirmHandler(confirms *ConfirmRegistry) http.Handler {
	return &ConfirmHandler{confirms: confirms}
}

func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/confirm/")
	parts := strings.SplitN(rest, "/", 2)
	id := strings.TrimSpace(parts[0])
	if id == "" {
		notFound(w)
		return
	}

	if len(parts) == 2 && strings.TrimSpace(parts[1]) == "cancel" {
		if _, err := h.confirms.Cancel(vid, id); err != nil {
			h.writeIntentErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
		return
	}

	result, err := h.confirms.Confirm(r.Context(), vid, id)
	if err != nil {
		h.writeIntentErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "confirmed", "result": result})
}

func (h *ConfirmHandler) writeIntentErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrIntentExpired) {
		writeJSON(w, http.StatusGone, map[string]string{"error": err.Error()})
		return
	}
	writeError(w, err)
}
