// internal/domain/platforms/platforms_test.go
package platforms

import "testing"

func TestBaseWithPolicy(t *testing.T) {
	tests := []struct {
		label  string
		policy DisneyPolicy
		want   string
	}{
		{"Netflix 1 Perfil", DisneyCollapse, "Netflix"},
		{"NETFLIX 4 Perfiles", DisneyCollapse, "Netflix"},
		{"Disney+ Premium En Vivo", DisneySplitEnVivo, "Disney+ En Vivo"},
		{"Disney+ Premium En Vivo", DisneyCollapse, "Disney+"},
		{"disney basico", DisneySplitEnVivo, "Disney+ Básico"},
		{"Amazon Prime 1 Pantalla", DisneyCollapse, "Prime Video"},
		{"HBO Max", DisneyCollapse, "Max"},
		{"Magis TV", DisneyCollapse, "IPTV"},
		{"Crunchyroll Mega Fan", DisneyCollapse, "Crunchyroll"},
		{"Servicio Raro", DisneyCollapse, "Servicio Raro"},
		{"", DisneyCollapse, ""},
	}
	for _, tt := range tests {
		if got := BaseWithPolicy(tt.label, tt.policy); got != tt.want {
			t.Errorf("BaseWithPolicy(%q, %v) = %q, want %q", tt.label, tt.policy, got, tt.want)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("Netflix Premium") {
		t.Error("Netflix Premium should be a known platform")
	}
	if Known("Servicio Raro") {
		t.Error("unknown labels must not report as known")
	}
}
