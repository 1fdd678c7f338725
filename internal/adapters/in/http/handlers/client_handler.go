// internal/adapters/in/http/handlers/client_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"revendo/internal/application/livecache"
	"revendo/internal/application/usecase"
	clidom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

// ClientHandler serves /clients: the merged directory view (explicit
// entries plus distinct occupants found in inventory) and entry removal.
type ClientHandler struct {
	hub     *livecache.Hub
	sales   saledom.Repository
	clients *usecase.ClientDirectoryUsecase
}

func NewClientHandler(hub *livecache.Hub, sales saledom.Repository, clients *usecase.ClientDirectoryUsecase) http.Handler {
	return &ClientHandler{hub: hub, sales: sales, clients: clients}
}

func (h *ClientHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/clients/"))

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r, vid)
	case id != "" && r.Method == http.MethodDelete:
		h.delete(w, r, vid, id)
	default:
		methodNotAllowed(w)
	}
}

// GET /clients/
func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request, vid string) {
	var (
		sales []saledom.Record
		err   error
	)
	if h.hub != nil {
		store := h.hub.Ensure(r.Context(), vid)
		if !store.UpdatedAt().IsZero() {
			sales = store.Sales()
		}
	}
	if sales == nil {
		sales, err = h.sales.ListRecent(r.Context(), vid)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	entries, err := h.clients.List(r.Context(), vid, sales)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientViews(entries))
}

// DELETE /clients/{id}
func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request, vid, id string) {
	if err := h.clients.Delete(r.Context(), vid, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type clientView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func clientViews(entries []clidom.Entry) []clientView {
	out := make([]clientView, 0, len(entries))
	for _, e := range entries {
		out = append(out, clientView{
			ID:        e.ID,
			Name:      e.Name,
			Phone:     e.Phone,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
