// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"revendo/internal/adapters/in/http/middleware"
	"revendo/internal/application/query"
	brdom "revendo/internal/domain/branding"
	catdom "revendo/internal/domain/catalog"
	clidom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

// statusFor maps domain errors onto HTTP codes. Validation failures are
// 4xx so the console shows them as transient notices, everything else is
// a generic 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, saledom.ErrNotFound),
		errors.Is(err, catdom.ErrNotFound),
		errors.Is(err, clidom.ErrNotFound),
		errors.Is(err, brdom.ErrNotConfigured),
		errors.Is(err, query.ErrPortalNotFound):
		return http.StatusNotFound
	case errors.Is(err, catdom.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, saledom.ErrInvalidID),
		errors.Is(err, saledom.ErrInvalidCredentials),
		errors.Is(err, saledom.ErrNotAccount),
		errors.Is(err, saledom.ErrCapacityExceeded),
		errors.Is(err, saledom.ErrInsufficientFreeSlots),
		errors.Is(err, saledom.ErrNoEndDate),
		errors.Is(err, catdom.ErrInvalidName),
		errors.Is(err, catdom.ErrInvalidCost),
		errors.Is(err, catdom.ErrInvalidType),
		errors.Is(err, catdom.ErrInvalidSlots),
		errors.Is(err, clidom.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// vendorID pulls the namespace injected by the auth middleware; a missing
// value means the route was mounted outside the auth chain by mistake.
func vendorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.VendorID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing vendor identity"})
		return "", false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
