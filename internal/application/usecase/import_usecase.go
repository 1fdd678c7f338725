// internal/application/usecase/import_usecase.go
package usecase

import (
	"context"
	"errors"
)

// ImportRow is the declared CSV column contract for bulk sale creation.
// The importer itself is an external batch producer; this usecase only
// fixes the interface so the columns cannot drift.
type ImportRow struct {
	Service        string `json:"service"`
	Client         string `json:"client"`
	Platform       string `json:"platform"`
	ExpirationDate string `json:"expirationDate"` // YYYY-MM-DD
	Email          string `json:"email"`
	Pass           string `json:"pass"`
	Profile        string `json:"profile"`
	PIN            string `json:"pin"`
	Cost           string `json:"cost"`
	Phone          string `json:"phone"`
}

// ErrImportNotImplemented: the import pipeline lives outside this service.
var ErrImportNotImplemented = errors.New("import: bulk CSV import is handled by an external producer")

// ImportUsecase is the declared entry point for bulk imports.
type ImportUsecase struct{}

func NewImportUsecase() *ImportUsecase { return &ImportUsecase{} }

func (uc *ImportUsecase) Run(ctx context.Context, vendorID string, rows []ImportRow) error {
	return ErrImportNotImplemented
}
