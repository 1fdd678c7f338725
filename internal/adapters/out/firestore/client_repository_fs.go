// internal/adapters/out/firestore/client_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	clientdom "revendo/internal/domain/client"
)

// ============================================================
// Firestore-based Client Directory Repository
// ============================================================

type ClientRepositoryFS struct {
	Client *firestore.Client
}

func NewClientRepositoryFS(client *firestore.Client) *ClientRepositoryFS {
	return &ClientRepositoryFS{Client: client}
}

var _ clientdom.Repository = (*ClientRepositoryFS)(nil)

func (r *ClientRepositoryFS) List(ctx context.Context, vendorID string) ([]clientdom.Entry, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := clientsCol(r.Client, vendorID).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := make([]clientdom.Entry, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var raw struct {
			Name      string    `firestore:"name"`
			Phone     string    `firestore:"phone"`
			CreatedAt time.Time `firestore:"createdAt"`
		}
		if err := doc.DataTo(&raw); err != nil {
			return nil, err
		}
		out = append(out, clientdom.Entry{
			ID:        doc.Ref.ID,
			Name:      strings.TrimSpace(raw.Name),
			Phone:     strings.TrimSpace(raw.Phone),
			CreatedAt: raw.CreatedAt,
		})
	}
	return out, nil
}

func (r *ClientRepositoryFS) Create(ctx context.Context, vendorID string, e clientdom.Entry) (clientdom.Entry, error) {
	if r.Client == nil {
		return clientdom.Entry{}, errors.New("firestore client is nil")
	}

	ref := clientsCol(r.Client, vendorID).Doc(strings.TrimSpace(e.ID))
	data := map[string]any{
		"name":      strings.TrimSpace(e.Name),
		"phone":     strings.TrimSpace(e.Phone),
		"createdAt": e.CreatedAt,
	}
	if _, err := ref.Set(ctx, data); err != nil {
		return clientdom.Entry{}, err
	}
	return e, nil
}

func (r *ClientRepositoryFS) Delete(ctx context.Context, vendorID, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return clientdom.ErrNotFound
	}

	ref := clientsCol(r.Client, vendorID).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return clientdom.ErrNotFound
	} else if err != nil {
		return err
	}

	_, err := ref.Delete(ctx)
	return err
}
