// internal/adapters/in/http/handlers/stock_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"

	"revendo/internal/application/usecase"
	"revendo/internal/domain/confirm"
	saledom "revendo/internal/domain/sale"
)

// StockHandler serves /stock: free inventory generation and the two bulk
// deletions (whole credential group, free pool per platform). Deletions
// are confirmation-gated.
type StockHandler struct {
	stock    *usecase.StockUsecase
	confirms *ConfirmRegistry
}

func NewStockHandler(stock *usecase.StockUsecase, confirms *ConfirmRegistry) http.Handler {
	return &StockHandler{stock: stock, confirms: confirms}
}

func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/stock/")
	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.generate(w, r, vid)
	case rest == "group" && r.Method == http.MethodDelete:
		h.deleteGroup(w, r, vid)
	case rest == "free" && r.Method == http.MethodDelete:
		h.deleteFree(w, r, vid)
	default:
		notFound(w)
	}
}

type generateRequest struct {
	Service string `json:"service"`
	Email   string `json:"email"`
	Pass    string `json:"pass"`
	Slots   int    `json:"slots"`
}

// POST /stock/
func (h *StockHandler) generate(w http.ResponseWriter, r *http.Request, vid string) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	records, err := h.stock.Generate(r.Context(), vid, usecase.GenerateStockCommand{
		Service: req.Service,
		Email:   req.Email,
		Pass:    req.Pass,
		Slots:   req.Slots,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saleViews(records))
}

type groupRequest struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// DELETE /stock/group
func (h *StockHandler) deleteGroup(w http.ResponseWriter, r *http.Request, vid string) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	key := saledom.GroupKey{Email: req.Email, Pass: req.Pass}
	intent, err := h.stock.DeleteGroupIntent(r.Context(), vid, key)
	if err != nil {
		writeError(w, err)
		return
	}

	intent = h.confirms.Register(vid, intent, func(ctx context.Context) (any, error) {
		if err := h.stock.DeleteGroup(ctx, vid, key); err != nil {
			return nil, err
		}
		return map[string]string{"status": "deleted"}, nil
	})
	writeJSON(w, http.StatusAccepted, map[string]any{"intent": intent})
}

// DELETE /stock/free?service=Netflix
func (h *StockHandler) deleteFree(w http.ResponseWriter, r *http.Request, vid string) {
	service := strings.TrimSpace(r.URL.Query().Get("service"))
	if service == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "service query param required"})
		return
	}

	prompt := "¿Eliminar todo el stock libre de " + service + "?"
	intent := h.confirms.Register(vid, confirm.NewIntent(confirm.KindDeleteFreeStock, prompt),
		func(ctx context.Context) (any, error) {
			n, err := h.stock.DeleteFreeStock(ctx, vid, service)
			if err != nil {
				return nil, err
			}
			return map[string]any{"deleted": n}, nil
		})
	writeJSON(w, http.StatusAccepted, map[string]any{"intent": intent})
}
