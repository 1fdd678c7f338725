// internal/adapters/out/firestore/portal_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"revendo/internal/application/query"
)

// ============================================================
// Firestore-based Portal Reader (collection-group lookup)
// ============================================================

// PortalReaderFS answers the unauthenticated customer lookup. It runs a
// collection-group query over every vendor's client_portal mirror, so one
// phone number can surface services bought from several resellers.
type PortalReaderFS struct {
	Client *firestore.Client
}

func NewPortalReaderFS(client *firestore.Client) *PortalReaderFS {
	return &PortalReaderFS{Client: client}
}

var _ query.PortalReader = (*PortalReaderFS)(nil)

func (r *PortalReaderFS) ServicesByPhone(ctx context.Context, phone string) ([]query.PortalService, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return []query.PortalService{}, nil
	}

	it := r.Client.CollectionGroup(colPortal).
		Where("phone", "==", phone).
		Documents(ctx)
	defer it.Stop()

	out := make([]query.PortalService, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var raw struct {
			Service  string `firestore:"service"`
			Type     string `firestore:"type"`
			Email    string `firestore:"email"`
			Pass     string `firestore:"pass"`
			Profile  string `firestore:"profile"`
			PIN      string `firestore:"pin"`
			EndDate  string `firestore:"endDate"`
			LastCode string `firestore:"lastCode"`
		}
		if err := doc.DataTo(&raw); err != nil {
			return nil, err
		}
		out = append(out, query.PortalService{
			Service:  raw.Service,
			Type:     raw.Type,
			Email:    raw.Email,
			Pass:     raw.Pass,
			Profile:  raw.Profile,
			PIN:      raw.PIN,
			EndDate:  raw.EndDate,
			LastCode: raw.LastCode,
		})
	}
	return out, nil
}
