// internal/adapters/in/http/handlers/alert_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"revendo/internal/adapters/out/mail"
	"revendo/internal/application/livecache"
	"revendo/internal/application/query"
	saledom "revendo/internal/domain/sale"
)

// AlertHandler serves /alerts: expiry cohorts, the grouped problem view,
// and the on-demand expiry digest mail.
type AlertHandler struct {
	hub    *livecache.Hub
	sales  saledom.Repository
	mailer mail.ReminderMailerPort // nil when mail is not configured
}

func NewAlertHandler(hub *livecache.Hub, sales saledom.Repository, mailer mail.ReminderMailerPort) http.Handler {
	return &AlertHandler{hub: hub, sales: sales, mailer: mailer}
}

func (h *AlertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/alerts/"))

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.cohorts(w, r, vid)
	case rest == "problems" && r.Method == http.MethodGet:
		h.problems(w, r, vid)
	case rest == "digest" && r.Method == http.MethodPost:
		h.digest(w, r, vid)
	default:
		notFound(w)
	}
}

func (h *AlertHandler) inventory(r *http.Request, vid string) ([]saledom.Record, error) {
	if h.hub != nil {
		store := h.hub.Ensure(r.Context(), vid)
		if !store.UpdatedAt().IsZero() {
			return store.Sales(), nil
		}
	}
	return h.sales.ListRecent(r.Context(), vid)
}

// GET /alerts/
func (h *AlertHandler) cohorts(w http.ResponseWriter, r *http.Request, vid string) {
	records, err := h.inventory(r, vid)
	if err != nil {
		writeError(w, err)
		return
	}

	c := query.ExpirationCohorts(records, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"overdue":     saleViews(c.Overdue),
		"dueToday":    saleViews(c.DueToday),
		"dueTomorrow": saleViews(c.DueTomorrow),
		"total":       c.Total(),
	})
}

// GET /alerts/problems
func (h *AlertHandler) problems(w http.ResponseWriter, r *http.Request, vid string) {
	records, err := h.inventory(r, vid)
	if err != nil {
		writeError(w, err)
		return
	}

	groups := query.WarrantyGroups(records)
	out := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		out = append(out, map[string]any{
			"email":      g.Email,
			"records":    saleViews(g.Records),
			"inWarranty": g.InWarranty,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type digestRequest struct {
	To string `json:"to"`
}

// POST /alerts/digest
func (h *AlertHandler) digest(w http.ResponseWriter, r *http.Request, vid string) {
	if h.mailer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "mail is not configured"})
		return
	}

	var req digestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.To) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to address required"})
		return
	}

	records, err := h.inventory(r, vid)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	cohorts := query.ExpirationCohorts(records, now)
	if err := h.mailer.SendExpiryDigest(r.Context(), req.To, cohorts, now); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "sent", "total": cohorts.Total()})
}
