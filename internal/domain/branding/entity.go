// internal/domain/branding/entity.go
package branding

import (
	"context"
	"errors"
	"strings"
)

// Config is the vendor's branding document: a display name and an optional
// logo object reference (GCS object path, resolved to a URL by the adapter).
type Config struct {
	DisplayName string
	LogoObject  string
	LogoURL     string // derived, not stored
}

var ErrNotConfigured = errors.New("branding: not configured")

func (c Config) Validate() error {
	if strings.TrimSpace(c.DisplayName) == "" {
		return errors.New("branding: displayName is empty")
	}
	return nil
}

type Repository interface {
	Get(ctx context.Context, vendorID string) (Config, error)
	Save(ctx context.Context, vendorID string, c Config) error
}

// LogoStore keeps the logo binary. Implemented by the GCS adapter.
type LogoStore interface {
	Upload(ctx context.Context, vendorID, fileName string, data []byte, contentType string) (objectPath string, err error)
	PublicURL(objectPath string) string
}
