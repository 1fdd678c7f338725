// internal/adapters/in/http/handlers/sale_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"revendo/internal/adapters/out/notify"
	"revendo/internal/application/livecache"
	"revendo/internal/application/query"
	"revendo/internal/application/usecase"
	"revendo/internal/domain/confirm"
	saledom "revendo/internal/domain/sale"
)

// SaleHandler serves the /sales endpoints: inventory listing, the single
// sale form, and the per-record operations (liberate, renew, unify,
// migrate, fragment, WhatsApp link).
type SaleHandler struct {
	hub      *livecache.Hub
	sales    saledom.Repository
	assign   *usecase.AssignmentUsecase
	fragment *usecase.FragmentationUsecase
	renew    *usecase.RenewalUsecase
	confirms *ConfirmRegistry
}

func NewSaleHandler(
	hub *livecache.Hub,
	sales saledom.Repository,
	assign *usecase.AssignmentUsecase,
	fragment *usecase.FragmentationUsecase,
	renew *usecase.RenewalUsecase,
	confirms *ConfirmRegistry,
) http.Handler {
	return &SaleHandler{
		hub:      hub,
		sales:    sales,
		assign:   assign,
		fragment: fragment,
		renew:    renew,
		confirms: confirms,
	}
}

func (h *SaleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/sales/")
	parts := strings.SplitN(rest, "/", 2)
	id := strings.TrimSpace(parts[0])
	action := ""
	if len(parts) == 2 {
		action = strings.TrimSpace(parts[1])
	}

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r, vid)
	case id != "" && action == "" && r.Method == http.MethodGet:
		h.get(w, r, vid, id)
	case action == "group" && r.Method == http.MethodGet:
		h.group(w, r, vid, id)
	case action == "apply" && r.Method == http.MethodPost:
		h.apply(w, r, vid, id)
	case action == "liberate" && r.Method == http.MethodPost:
		h.liberate(w, r, vid, id)
	case action == "renew" && r.Method == http.MethodPost:
		h.renewQuick(w, r, vid, id)
	case action == "unify" && r.Method == http.MethodPost:
		h.unify(w, r, vid, id)
	case action == "migrate" && r.Method == http.MethodPost:
		h.migrate(w, r, vid, id)
	case action == "whatsapp" && r.Method == http.MethodGet:
		h.whatsapp(w, r, vid, id)
	case id != "" && action == "":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

// GET /sales/?text=&service=&status=&from=&to=
func (h *SaleHandler) list(w http.ResponseWriter, r *http.Request, vid string) {
	records, err := h.inventory(r.Context(), vid)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	filter := query.InventoryFilter{
		Text:     q.Get("text"),
		Service:  q.Get("service"),
		Status:   q.Get("status"),
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
	filtered := query.FilterInventory(records, filter, time.Now())

	if limit := parseIntDefault(q.Get("limit"), 0); limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}

	views := make([]saleView, 0, len(filtered))
	for _, rec := range filtered {
		views = append(views, toSaleView(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": views,
		"total": len(views),
	})
}

// inventory prefers the live snapshot; a cold store falls back to one
// repository read so the first request after boot is never empty.
func (h *SaleHandler) inventory(ctx context.Context, vid string) ([]saledom.Record, error) {
	if h.hub != nil {
		store := h.hub.Ensure(ctx, vid)
		if !store.UpdatedAt().IsZero() {
			return store.Sales(), nil
		}
	}
	return h.sales.ListRecent(ctx, vid)
}

// GET /sales/{id}
func (h *SaleHandler) get(w http.ResponseWriter, r *http.Request, vid, id string) {
	rec, err := h.sales.GetByID(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleView(rec))
}

// GET /sales/{id}/group
func (h *SaleHandler) group(w http.ResponseWriter, r *http.Request, vid, id string) {
	rec, err := h.sales.GetByID(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	siblings, err := h.sales.ListGroup(r.Context(), vid, rec.GroupKey())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]saleView, 0, len(siblings))
	for _, s := range siblings {
		views = append(views, toSaleView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

type applyRequest struct {
	Client      string                   `json:"client"`
	Phone       string                   `json:"phone"`
	Service     string                   `json:"service"`
	Cost        float64                  `json:"cost"`
	EndDate     string                   `json:"endDate"`
	Quantity    int                      `json:"quantity"`
	Profile     string                   `json:"profile"`
	PIN         string                   `json:"pin"`
	Assignments []usecase.SlotAssignment `json:"assignments"`
}

// POST /sales/{id}/apply
//
// Classifies and applies one sale submission. When the target is a whole
// account a fragment intent comes back instead of a mutation; confirming
// it runs the fragmentation with the same form.
func (h *SaleHandler) apply(w http.ResponseWriter, r *http.Request, vid, id string) {
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	form := usecase.AssignmentForm{
		ID:          id,
		Client:      req.Client,
		Phone:       req.Phone,
		Service:     req.Service,
		Cost:        decimal.NewFromFloat(req.Cost),
		EndDate:     req.EndDate,
		Quantity:    req.Quantity,
		Profile:     req.Profile,
		PIN:         req.PIN,
		Assignments: req.Assignments,
	}

	result, err := h.assign.Apply(r.Context(), vid, form)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Kind == usecase.ApplyNeedsFragment && result.Intent != nil {
		cmd := usecase.FragmentCommand{
			AccountID:      id,
			TargetProfiles: form.Quantity,
			Assignments:    form.Assignments,
			Client:         form.Client,
			Phone:          form.Phone,
			TotalCost:      form.Cost,
			EndDate:        form.EndDate,
		}
		if cmd.TargetProfiles < 1 {
			cmd.TargetProfiles = 1
		}
		intent := h.confirms.Register(vid, *result.Intent, func(ctx context.Context) (any, error) {
			records, err := h.fragment.FragmentAccount(ctx, vid, cmd)
			if err != nil {
				return nil, err
			}
			return saleViews(records), nil
		})
		writeJSON(w, http.StatusAccepted, map[string]any{"intent": intent})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":    result.Kind,
		"records": saleViews(result.Records),
	})
}

// POST /sales/{id}/liberate
//
// Confirmation-gated: responds with the intent, the actual liberation
// happens on /confirm/{intentId}.
func (h *SaleHandler) liberate(w http.ResponseWriter, r *http.Request, vid, id string) {
	rec, err := h.sales.GetByID(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}

	prompt := "¿Liberar el perfil de " + rec.Occupancy.DisplayName() + " en " + rec.Service + "?"
	if rec.Occupancy.Kind == saledom.Free {
		prompt = "¿Liberar este espacio de " + rec.Service + "?"
	}
	intent := h.confirms.Register(vid, confirm.NewIntent(confirm.KindLiberate, prompt, id),
		func(ctx context.Context) (any, error) {
			freed, err := h.fragment.LiberateSlot(ctx, vid, id)
			if err != nil {
				return nil, err
			}
			return toSaleView(freed), nil
		})
	writeJSON(w, http.StatusAccepted, map[string]any{"intent": intent})
}

// POST /sales/{id}/renew
func (h *SaleHandler) renewQuick(w http.ResponseWriter, r *http.Request, vid, id string) {
	rec, err := h.renew.QuickRenew(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleView(rec))
}

type unifyRequest struct {
	Service string  `json:"service"`
	Client  string  `json:"client"`
	Phone   string  `json:"phone"`
	Cost    float64 `json:"cost"`
	EndDate string  `json:"endDate"`
	PIN     string  `json:"pin"`
}

// POST /sales/{id}/unify
func (h *SaleHandler) unify(w http.ResponseWriter, r *http.Request, vid, id string) {
	var req unifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	rec, err := h.fragment.UnifyIntoAccount(r.Context(), vid, id, usecase.UnifyForm{
		Service: req.Service,
		Client:  req.Client,
		Phone:   req.Phone,
		Cost:    decimal.NewFromFloat(req.Cost),
		EndDate: req.EndDate,
		PIN:     req.PIN,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleView(rec))
}

type migrateRequest struct {
	ToID         string `json:"toId"`
	SourceStatus string `json:"sourceStatus"`
}

// POST /sales/{id}/migrate
func (h *SaleHandler) migrate(w http.ResponseWriter, r *http.Request, vid, id string) {
	var req migrateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	if err := h.renew.MigrateCredentials(r.Context(), vid, id, req.ToID, req.SourceStatus); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "migrated"})
}

// GET /sales/{id}/whatsapp?kind=today|tomorrow|overdue|data|reminder
func (h *SaleHandler) whatsapp(w http.ResponseWriter, r *http.Request, vid, id string) {
	rec, err := h.sales.GetByID(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}

	kind := notify.MessageKind(strings.TrimSpace(r.URL.Query().Get("kind")))
	if kind == "" {
		kind = notify.KindData
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"link":    notify.BuildLink(rec, kind, r.UserAgent()),
		"message": notify.BuildMessage(rec, kind),
	})
}

// ============================================================
// Views
// ============================================================

type saleView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Pass      string     `json:"pass"`
	Service   string     `json:"service"`
	Type      string     `json:"type"`
	Profile   string     `json:"profile"`
	PIN       string     `json:"pin"`
	Client    string     `json:"client"`
	Phone     string     `json:"phone"`
	Cost      float64    `json:"cost"`
	EndDate   string     `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toSaleView(r saledom.Record) saleView {
	cost, _ := r.Cost.Float64()
	return saleView{
		ID:        r.ID,
		Email:     r.Email,
		Pass:      r.Pass,
		Service:   r.Service,
		Type:      string(r.Type),
		Profile:   r.Profile,
		PIN:       r.PIN,
		Client:    r.Occupancy.Encode(),
		Phone:     r.Phone,
		Cost:      cost,
		EndDate:   r.EndDate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func saleViews(records []saledom.Record) []saleView {
	out := make([]saleView, 0, len(records))
	for _, r := range records {
		out = append(out, toSaleView(r))
	}
	return out
}
