// internal/adapters/out/firestore/sale_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	saledom "revendo/internal/domain/sale"
)

// ============================================================
// Firestore-based Sale Repository
// ============================================================

type SaleRepositoryFS struct {
	Client *firestore.Client
}

func NewSaleRepositoryFS(client *firestore.Client) *SaleRepositoryFS {
	return &SaleRepositoryFS{Client: client}
}

var _ saledom.Repository = (*SaleRepositoryFS)(nil)

// ============================================================
// Reads
// ============================================================

// GetByID returns a sale record by document ID (value, not pointer).
func (r *SaleRepositoryFS) GetByID(ctx context.Context, vendorID, id string) (saledom.Record, error) {
	if r.Client == nil {
		return saledom.Record{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return saledom.Record{}, saledom.ErrNotFound
	}

	snap, err := salesCol(r.Client, vendorID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return saledom.Record{}, saledom.ErrNotFound
	}
	if err != nil {
		return saledom.Record{}, err
	}

	return docToSaleRecord(snap)
}

// ListRecent returns up to MaxRecentRecords records, newest first.
func (r *SaleRepositoryFS) ListRecent(ctx context.Context, vendorID string) ([]saledom.Record, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := salesCol(r.Client, vendorID).
		OrderBy("createdAt", firestore.Desc).
		Limit(saledom.MaxRecentRecords)

	return collectSaleRecords(q.Documents(ctx))
}

// ListGroup returns all siblings sharing a credential pair.
func (r *SaleRepositoryFS) ListGroup(ctx context.Context, vendorID string, key saledom.GroupKey) ([]saledom.Record, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := salesCol(r.Client, vendorID).
		Where("email", "==", strings.TrimSpace(key.Email)).
		Where("pass", "==", key.Pass)

	return collectSaleRecords(q.Documents(ctx))
}

func collectSaleRecords(it *firestore.DocumentIterator) ([]saledom.Record, error) {
	defer it.Stop()

	out := make([]saledom.Record, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := docToSaleRecord(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ============================================================
// Writes
// ============================================================

// ApplyBatch commits all mutations in one Firestore WriteBatch, so a
// fragmentation or multi-slot sale either lands completely or not at all.
// The client_portal mirror is maintained in the same batch: each billable
// record yields a portal document keyed by sale ID, anything else is
// removed from the mirror.
func (r *SaleRepositoryFS) ApplyBatch(ctx context.Context, vendorID string, muts []saledom.Mutation) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	if len(muts) == 0 {
		return nil
	}

	col := salesCol(r.Client, vendorID)
	portal := portalCol(r.Client, vendorID)
	batch := r.Client.Batch()

	for _, m := range muts {
		id := strings.TrimSpace(m.Record.ID)
		if id == "" {
			return saledom.ErrInvalidID
		}
		ref := col.Doc(id)

		switch m.Kind {
		case saledom.MutPut:
			batch.Set(ref, saleRecordToDocData(m.Record))
			if m.Record.Occupancy.Billable() && digitsOnly(m.Record.Phone) != "" {
				// MergeAll keeps fields written by other producers
				// (e.g. lastCode from the code forwarder).
				batch.Set(portal.Doc(id), portalDocData(m.Record), firestore.MergeAll)
			} else {
				batch.Delete(portal.Doc(id))
			}
		case saledom.MutDelete:
			batch.Delete(ref)
			batch.Delete(portal.Doc(id))
		default:
			return errors.New("firestore: unknown mutation kind")
		}
	}

	_, err := batch.Commit(ctx)
	return err
}

// ============================================================
// Mapping Helpers
// ============================================================

type saleDoc struct {
	Email     string     `firestore:"email"`
	Pass      string     `firestore:"pass"`
	Service   string     `firestore:"service"`
	Type      string     `firestore:"type"`
	Profile   string     `firestore:"profile"`
	PIN       string     `firestore:"pin"`
	Client    string     `firestore:"client"`
	Phone     string     `firestore:"phone"`
	Cost      float64    `firestore:"cost"`
	EndDate   string     `firestore:"endDate"`
	CreatedAt time.Time  `firestore:"createdAt"`
	UpdatedAt *time.Time `firestore:"updatedAt"`
}

func docToSaleRecord(doc *firestore.DocumentSnapshot) (saledom.Record, error) {
	var raw saleDoc
	if err := doc.DataTo(&raw); err != nil {
		return saledom.Record{}, err
	}

	rec := saledom.Record{
		ID:        strings.TrimSpace(doc.Ref.ID),
		Email:     strings.TrimSpace(raw.Email),
		Pass:      raw.Pass,
		Service:   strings.TrimSpace(raw.Service),
		Type:      saledom.Type(raw.Type),
		Profile:   raw.Profile,
		PIN:       raw.PIN,
		Occupancy: saledom.ParseOccupancy(raw.Client),
		Phone:     strings.TrimSpace(raw.Phone),
		Cost:      decimal.NewFromFloat(raw.Cost),
		EndDate:   strings.TrimSpace(raw.EndDate),
	}
	rec.CreatedAt = raw.CreatedAt
	rec.UpdatedAt = raw.UpdatedAt
	return rec, nil
}

func saleRecordToDocData(v saledom.Record) map[string]any {
	cost, _ := v.Cost.Float64()

	data := map[string]any{
		"email":     strings.TrimSpace(v.Email),
		"pass":      v.Pass,
		"service":   strings.TrimSpace(v.Service),
		"type":      string(v.Type),
		"profile":   v.Profile,
		"pin":       v.PIN,
		"client":    v.Occupancy.Encode(),
		"phone":     strings.TrimSpace(v.Phone),
		"cost":      cost,
		"endDate":   strings.TrimSpace(v.EndDate),
		"createdAt": v.CreatedAt,
	}
	if v.UpdatedAt != nil {
		data["updatedAt"] = *v.UpdatedAt
	}
	return data
}

func portalDocData(v saledom.Record) map[string]any {
	return map[string]any{
		"phone":   digitsOnly(v.Phone),
		"service": strings.TrimSpace(v.Service),
		"type":    string(v.Type),
		"email":   strings.TrimSpace(v.Email),
		"pass":    v.Pass,
		"profile": v.Profile,
		"pin":     v.PIN,
		"endDate": strings.TrimSpace(v.EndDate),
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
