// internal/adapters/out/mail/reminder_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"revendo/internal/application/query"
	saledom "revendo/internal/domain/sale"
)

// ReminderMailerPort is the outbound port for the expiry digest.
type ReminderMailerPort interface {
	SendExpiryDigest(ctx context.Context, toEmail string, cohorts query.Cohorts, ref time.Time) error
}

// ReminderMailer renders the daily expiry digest and delivers it through an
// EmailClient. The digest mirrors the alerts view: overdue, due today, due
// tomorrow.
type ReminderMailer struct {
	client      EmailClient
	fromAddress string
}

func NewReminderMailer(client EmailClient, fromAddress string) *ReminderMailer {
	return &ReminderMailer{
		client:      client,
		fromAddress: fromAddress,
	}
}

var _ ReminderMailerPort = (*ReminderMailer)(nil)

func (m *ReminderMailer) SendExpiryDigest(ctx context.Context, toEmail string, cohorts query.Cohorts, ref time.Time) error {
	if cohorts.Total() == 0 {
		return nil
	}

	subject := fmt.Sprintf("Resumen de vencimientos (%d) - %s",
		cohorts.Total(), ref.Format("2006-01-02"))

	var b strings.Builder
	fmt.Fprintf(&b, "Tienes %d servicios que requieren atención.\n", cohorts.Total())

	writeSection(&b, "VENCIDOS", cohorts.Overdue)
	writeSection(&b, "VENCEN HOY", cohorts.DueToday)
	writeSection(&b, "VENCEN MAÑANA", cohorts.DueTomorrow)

	b.WriteString("\n-- \nRevendo Console")

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(toEmail), subject, b.String())
}

func writeSection(b *strings.Builder, title string, records []saledom.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(b, "\n[%s]\n", title)
	for _, r := range records {
		fmt.Fprintf(b, "  - %s | %s | %s | vence %s\n",
			r.Occupancy.DisplayName(), r.Service, r.Phone, r.EndDate)
	}
}
