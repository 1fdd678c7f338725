// internal/adapters/in/http/handlers/import_handler.go
package handlers

import (
	"net/http"

	"revendo/internal/application/usecase"
)

// ImportHandler declares the bulk CSV import contract. The actual import
// runs in an external batch producer; this endpoint only validates the
// shape and reports 501.
type ImportHandler struct {
	imports *usecase.ImportUsecase
}

func NewImportHandler(imports *usecase.ImportUsecase) http.Handler {
	return &ImportHandler{imports: imports}
}

func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var rows []usecase.ImportRow
	if err := decodeJSON(r, &rows); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	if err := h.imports.Run(r.Context(), vid, rows); err != nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
