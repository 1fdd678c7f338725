// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"revendo/internal/application/usecase"
	catdom "revendo/internal/domain/catalog"
)

// CatalogHandler serves /catalog: the vendor's offering templates.
// Deleting an entry also removes its matching inventory, so that path is
// confirmation-gated.
type CatalogHandler struct {
	catalog  *usecase.CatalogUsecase
	confirms *ConfirmRegistry
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, confirms *ConfirmRegistry) http.Handler {
	return &CatalogHandler{catalog: catalog, confirms: confirms}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/catalog/"))

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r, vid)
	case id == "" && r.Method == http.MethodPost:
		h.create(w, r, vid)
	case id != "" && r.Method == http.MethodPatch:
		h.update(w, r, vid, id)
	case id != "" && r.Method == http.MethodDelete:
		h.deleteIntent(w, r, vid, id)
	default:
		methodNotAllowed(w)
	}
}

// GET /catalog/
func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, vid string) {
	entries, err := h.catalog.List(r.Context(), vid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogViews(entries))
}

type catalogCreateRequest struct {
	Name         string `json:"name"`
	Cost         string `json:"cost"`
	Type         string `json:"type"`
	DefaultSlots int    `json:"defaultSlots"`
}

// POST /catalog/
func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request, vid string) {
	var req catalogCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	entry, err := h.catalog.Create(r.Context(), vid, catdom.CreateInput{
		Name:         req.Name,
		Cost:         req.Cost,
		Type:         catdom.Type(req.Type),
		DefaultSlots: req.DefaultSlots,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCatalogView(entry))
}

type catalogUpdateRequest struct {
	Name         *string `json:"name"`
	Cost         *string `json:"cost"`
	Type         *string `json:"type"`
	DefaultSlots *int    `json:"defaultSlots"`
}

// PATCH /catalog/{id}
func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, vid, id string) {
	var req catalogUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	in := catdom.UpdateInput{
		Name:         req.Name,
		Cost:         req.Cost,
		DefaultSlots: req.DefaultSlots,
	}
	if req.Type != nil {
		t := catdom.Type(*req.Type)
		in.Type = &t
	}

	entry, err := h.catalog.Update(r.Context(), vid, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogView(entry))
}

// DELETE /catalog/{id}
func (h *CatalogHandler) deleteIntent(w http.ResponseWriter, r *http.Request, vid, id string) {
	intent, err := h.catalog.DeleteIntent(r.Context(), vid, id)
	if err != nil {
		writeError(w, err)
		return
	}

	intent = h.confirms.Register(vid, intent, func(ctx context.Context) (any, error) {
		if err := h.catalog.Delete(ctx, vid, id); err != nil {
			return nil, err
		}
		return map[string]string{"status": "deleted"}, nil
	})
	writeJSON(w, http.StatusAccepted, map[string]any{"intent": intent})
}

// ============================================================
// Views
// ============================================================

type catalogView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Cost         float64    `json:"cost"`
	Type         string     `json:"type"`
	DefaultSlots int        `json:"defaultSlots"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func toCatalogView(e catdom.Entry) catalogView {
	cost, _ := e.Cost.Float64()
	return catalogView{
		ID:           e.ID,
		Name:         e.Name,
		Cost:         cost,
		Type:         string(e.Type),
		DefaultSlots: e.DefaultSlots,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func catalogViews(entries []catdom.Entry) []catalogView {
	out := make([]catalogView, 0, len(entries))
	for _, e := range entries {
		out = append(out, toCatalogView(e))
	}
	return out
}
