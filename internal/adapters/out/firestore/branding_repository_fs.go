// internal/adapters/out/firestore/branding_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	brandingdom "revendo/internal/domain/branding"
)

// ============================================================
// Firestore-based Branding Repository (single config document)
// ============================================================

type BrandingRepositoryFS struct {
	Client *firestore.Client
}

func NewBrandingRepositoryFS(client *firestore.Client) *BrandingRepositoryFS {
	return &BrandingRepositoryFS{Client: client}
}

var _ brandingdom.Repository = (*BrandingRepositoryFS)(nil)

func (r *BrandingRepositoryFS) Get(ctx context.Context, vendorID string) (brandingdom.Config, error) {
	if r.Client == nil {
		return brandingdom.Config{}, errors.New("firestore client is nil")
	}

	snap, err := brandingDoc(r.Client, vendorID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return brandingdom.Config{}, brandingdom.ErrNotConfigured
	}
	if err != nil {
		return brandingdom.Config{}, err
	}

	var raw struct {
		DisplayName string `firestore:"displayName"`
		LogoObject  string `firestore:"logoObject"`
	}
	if err := snap.DataTo(&raw); err != nil {
		return brandingdom.Config{}, err
	}

	return brandingdom.Config{
		DisplayName: strings.TrimSpace(raw.DisplayName),
		LogoObject:  strings.TrimSpace(raw.LogoObject),
	}, nil
}

func (r *BrandingRepositoryFS) Save(ctx context.Context, vendorID string, c brandingdom.Config) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	data := map[string]any{
		"displayName": strings.TrimSpace(c.DisplayName),
		"logoObject":  strings.TrimSpace(c.LogoObject),
	}
	_, err := brandingDoc(r.Client, vendorID).Set(ctx, data)
	return err
}
