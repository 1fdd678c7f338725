// internal/adapters/out/gcs/branding_logo_repository_gcs.go
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"

	brandingdom "revendo/internal/domain/branding"
)

// =====================================================
// GCS-based Object Storage for Branding Logos
// =====================================================

// BrandingLogoRepositoryGCS stores each vendor's logo under
// "{vendorID}/{fileName}" in the branding bucket.
type BrandingLogoRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewBrandingLogoRepositoryGCS(client *storage.Client, bucket string) *BrandingLogoRepositoryGCS {
	return &BrandingLogoRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

var _ brandingdom.LogoStore = (*BrandingLogoRepositoryGCS)(nil)

func (r *BrandingLogoRepositoryGCS) effectiveBucket() (string, error) {
	if r.Client == nil {
		return "", errors.New("BrandingLogoRepositoryGCS: nil storage client")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("BrandingLogoRepositoryGCS: bucket is empty")
	}
	return b, nil
}

// Upload writes the logo object and returns its path within the bucket.
func (r *BrandingLogoRepositoryGCS) Upload(ctx context.Context, vendorID, fileName string, data []byte, contentType string) (string, error) {
	bucketName, err := r.effectiveBucket()
	if err != nil {
		return "", err
	}

	vendorID = strings.TrimSpace(vendorID)
	fileName = strings.TrimLeft(strings.TrimSpace(fileName), "/")
	if vendorID == "" || fileName == "" {
		return "", fmt.Errorf("branding logo: invalid vendorID or fileName: %q, %q", vendorID, fileName)
	}
	if len(data) == 0 {
		return "", errors.New("branding logo: empty payload")
	}

	objectPath := vendorID + "/" + fileName

	w := r.Client.Bucket(bucketName).Object(objectPath).NewWriter(ctx)
	w.ContentType = strings.TrimSpace(contentType)
	if w.ContentType == "" {
		w.ContentType = "application/octet-stream"
	}

	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("branding logo: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("branding logo: close: %w", err)
	}
	return objectPath, nil
}

// PublicURL builds the canonical public object URL.
func (r *BrandingLogoRepositoryGCS) PublicURL(objectPath string) string {
	op := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	b := strings.TrimSpace(r.Bucket)
	if op == "" || b == "" {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b, op)
}
