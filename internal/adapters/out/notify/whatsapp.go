// internal/adapters/out/notify/whatsapp.go
package notify

import (
	"fmt"
	"net/url"
	"strings"

	saledom "revendo/internal/domain/sale"
)

// ============================================================
// WhatsApp deep-link builder (pure, no network)
// ============================================================

// MessageKind selects the outbound message template.
type MessageKind string

const (
	KindToday    MessageKind = "today"
	KindTomorrow MessageKind = "tomorrow"
	KindOverdue  MessageKind = "overdue"
	KindData     MessageKind = "data"
	KindReminder MessageKind = "reminder"
)

const (
	mobileEndpoint  = "https://wa.me/"
	desktopEndpoint = "https://web.whatsapp.com/send"
)

// BuildLink returns the deep link that opens a chat with the record's phone
// and the templated message pre-filled. Mobile user agents get wa.me,
// everything else the web client.
func BuildLink(rec saledom.Record, kind MessageKind, userAgent string) string {
	phone := digitsOnly(rec.Phone)
	text := BuildMessage(rec, kind)

	if isMobileUA(userAgent) {
		return mobileEndpoint + phone + "?text=" + url.QueryEscape(text)
	}
	return desktopEndpoint + "?phone=" + phone + "&text=" + url.QueryEscape(text)
}

// BuildMessage renders the Spanish template for the given action kind.
// Whole-account records get a credentials-only body: there is no profile or
// PIN to communicate for them.
func BuildMessage(rec saledom.Record, kind MessageKind) string {
	name := rec.Occupancy.DisplayName()
	if name == "" {
		name = "cliente"
	}

	switch kind {
	case KindToday:
		return fmt.Sprintf("Hola %s, tu servicio de %s vence HOY (%s). ¿Deseas renovarlo?",
			name, rec.Service, rec.EndDate)
	case KindTomorrow:
		return fmt.Sprintf("Hola %s, tu servicio de %s vence MAÑANA (%s). Avísame si quieres renovarlo.",
			name, rec.Service, rec.EndDate)
	case KindOverdue:
		return fmt.Sprintf("Hola %s, tu servicio de %s venció el %s. ¿Quieres renovarlo para no perder tu perfil?",
			name, rec.Service, rec.EndDate)
	case KindReminder:
		return fmt.Sprintf("Hola %s, te recuerdo que tu servicio de %s vence el %s.",
			name, rec.Service, rec.EndDate)
	case KindData:
		return credentialsMessage(rec, name)
	default:
		return credentialsMessage(rec, name)
	}
}

func credentialsMessage(rec saledom.Record, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s, estos son los datos de tu servicio de %s:\n", name, rec.Service)
	fmt.Fprintf(&b, "Correo: %s\n", rec.Email)
	fmt.Fprintf(&b, "Contraseña: %s\n", rec.Pass)

	if rec.Type != saledom.TypeAccount {
		fmt.Fprintf(&b, "Perfil: %s\n", rec.Profile)
		if rec.PIN != "" {
			fmt.Fprintf(&b, "PIN: %s\n", rec.PIN)
		}
	}
	if rec.EndDate != "" {
		fmt.Fprintf(&b, "Vence: %s", rec.EndDate)
	}
	return strings.TrimRight(b.String(), "\n")
}

func isMobileUA(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"android", "iphone", "ipad", "ipod", "mobile"} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
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
