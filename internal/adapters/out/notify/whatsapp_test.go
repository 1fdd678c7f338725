// internal/adapters/out/notify/whatsapp_test.go
package notify

import (
	"strings"
	"testing"

	saledom "revendo/internal/domain/sale"
)

func profileRecord() saledom.Record {
	return saledom.Record{
		ID:        "s1",
		Email:     "acc@mail.com",
		Pass:      "secret",
		Service:   "Netflix",
		Type:      saledom.TypeProfile,
		Profile:   "Perfil 2",
		PIN:       "1234",
		Occupancy: saledom.OccupiedBy("Ana"),
		Phone:     "+57 300-123-4567",
		EndDate:   "2025-06-03",
	}
}

func TestBuildLinkEndpointByUserAgent(t *testing.T) {
	rec := profileRecord()

	mobile := BuildLink(rec, KindToday, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
	if !strings.HasPrefix(mobile, "https://wa.me/573001234567?text=") {
		t.Errorf("mobile link = %s", mobile)
	}

	desktop := BuildLink(rec, KindToday, "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	if !strings.HasPrefix(desktop, "https://web.whatsapp.com/send?phone=573001234567&text=") {
		t.Errorf("desktop link = %s", desktop)
	}
}

func TestBuildMessageKinds(t *testing.T) {
	rec := profileRecord()

	tests := []struct {
		kind MessageKind
		want string
	}{
		{KindToday, "vence HOY"},
		{KindTomorrow, "vence MAÑANA"},
		{KindOverdue, "venció el 2025-06-03"},
		{KindReminder, "vence el 2025-06-03"},
		{KindData, "Perfil: Perfil 2"},
	}
	for _, tt := range tests {
		got := BuildMessage(rec, tt.kind)
		if !strings.Contains(got, tt.want) {
			t.Errorf("kind %s: message %q missing %q", tt.kind, got, tt.want)
		}
		if !strings.Contains(got, "Ana") {
			t.Errorf("kind %s: message must greet the client: %q", tt.kind, got)
		}
	}
}

func TestDataMessageOmitsProfileForWholeAccount(t *testing.T) {
	rec := profileRecord()
	rec.Type = saledom.TypeAccount
	rec.Profile = saledom.ProfileWholeAccount

	got := BuildMessage(rec, KindData)
	if strings.Contains(got, "Perfil:") || strings.Contains(got, "PIN:") {
		t.Errorf("whole-account message must be credentials only: %q", got)
	}
	if !strings.Contains(got, "Correo: acc@mail.com") || !strings.Contains(got, "Contraseña: secret") {
		t.Errorf("credentials missing: %q", got)
	}
}
