// internal/application/query/portal_query.go
package query

import (
	"context"
	"errors"
	"strings"
)

// PortalService is one row of the unauthenticated self-service lookup: a
// denormalized, read-only projection of sale record data.
type PortalService struct {
	Service  string `json:"service"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	Pass     string `json:"pass"`
	Profile  string `json:"profile"`
	PIN      string `json:"pin"`
	EndDate  string `json:"endDate"`
	LastCode string `json:"lastCode"`
}

var ErrPortalNotFound = errors.New("portal: no services for that phone")

// PortalReader searches client_portal documents across every vendor
// namespace by phone number. Implemented by the Firestore adapter with a
// collection-group query.
type PortalReader interface {
	ServicesByPhone(ctx context.Context, phone string) ([]PortalService, error)
}

// PortalQuery is the read-side for the customer lookup surface.
type PortalQuery struct {
	reader PortalReader
}

func NewPortalQuery(reader PortalReader) *PortalQuery {
	return &PortalQuery{reader: reader}
}

func (q *PortalQuery) Lookup(ctx context.Context, phone string) ([]PortalService, error) {
	phone = digitsOnly(phone)
	if phone == "" {
		return nil, ErrPortalNotFound
	}
	services, err := q.reader.ServicesByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrPortalNotFound
	}
	return services, nil
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
