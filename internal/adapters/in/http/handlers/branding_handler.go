// internal/adapters/in/http/handlers/branding_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"revendo/internal/application/usecase"
	brdom "revendo/internal/domain/branding"
)

// maxLogoBytes caps logo uploads.
const maxLogoBytes = 5 << 20

// BrandingHandler serves /branding: the vendor display name and logo.
type BrandingHandler struct {
	branding *usecase.BrandingUsecase
}

func NewBrandingHandler(branding *usecase.BrandingUsecase) http.Handler {
	return &BrandingHandler{branding: branding}
}

func (h *BrandingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vid, ok := vendorID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/branding/"))

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.get(w, r, vid)
	case rest == "" && r.Method == http.MethodPut:
		h.save(w, r, vid)
	case rest == "logo" && r.Method == http.MethodPost:
		h.uploadLogo(w, r, vid)
	default:
		notFound(w)
	}
}

type brandingView struct {
	DisplayName string `json:"displayName"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// GET /branding/
func (h *BrandingHandler) get(w http.ResponseWriter, r *http.Request, vid string) {
	cfg, err := h.branding.Get(r.Context(), vid)
	if errors.Is(err, brdom.ErrNotConfigured) {
		writeJSON(w, http.StatusOK, brandingView{})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brandingView{DisplayName: cfg.DisplayName, LogoURL: cfg.LogoURL})
}

type brandingSaveRequest struct {
	DisplayName string `json:"displayName"`
}

// PUT /branding/
func (h *BrandingHandler) save(w http.ResponseWriter, r *http.Request, vid string) {
	var req brandingSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	cfg, err := h.branding.Get(r.Context(), vid)
	if err != nil && !errors.Is(err, brdom.ErrNotConfigured) {
		writeError(w, err)
		return
	}
	cfg.DisplayName = req.DisplayName

	if err := h.branding.Save(r.Context(), vid, cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brandingView{DisplayName: cfg.DisplayName, LogoURL: cfg.LogoURL})
}

// POST /branding/logo (multipart form, field "logo")
func (h *BrandingHandler) uploadLogo(w http.ResponseWriter, r *http.Request, vid string) {
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "logo file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoBytes+1))
	if err != nil {
		writeError(w, err)
		return
	}
	if len(data) > maxLogoBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "logo exceeds 5MB"})
		return
	}

	cfg, err := h.branding.UploadLogo(r.Context(), vid, header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brandingView{DisplayName: cfg.DisplayName, LogoURL: cfg.LogoURL})
}
