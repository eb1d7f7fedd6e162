package core

import (
	"testing"

	"faco-weekly/internal/domain"
)

func registroDoble(t *testing.T) (Registry, map[int64]map[string]bool) {
	t.Helper()
	reg, err := LoadCalendar([]domain.Campania{
		campania(t, "CARTERA_Temprana_1", "2025-05-20", "2025-06-15"),
		campania(t, "CARTERA_AN_1", "2025-06-02", "2025-06-30"),
	})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	membership := map[int64]map[string]bool{
		// X: only Temprana. Y: both campaigns, overlapping windows.
		1: {"CARTERA_Temprana_1": true},
		2: {"CARTERA_Temprana_1": true, "CARTERA_AN_1": true},
	}
	return reg, membership
}

func TestResolverCampaniaSingleCampaign(t *testing.T) {
	reg, membership := registroDoble(t)

	m := ResolverCampania(1, "", fecha(t, "2025-05-25"), membership, reg)
	if m.Kind != SingleMatch || m.Archivos[0] != "CARTERA_Temprana_1" {
		t.Fatalf("event inside Temprana window should resolve to it, got %+v", m)
	}

	m = ResolverCampania(1, "", fecha(t, "2025-06-20"), membership, reg)
	if m.Kind != NoMatch {
		t.Fatalf("event after the close must be out of window, got %+v", m)
	}
}

func TestResolverCampaniaWindowEndpointsInclusive(t *testing.T) {
	reg, membership := registroDoble(t)

	for _, d := range []string{"2025-05-20", "2025-06-15"} {
		if m := ResolverCampania(1, "", fecha(t, d), membership, reg); m.Kind != SingleMatch {
			t.Fatalf("window endpoints are inclusive, %s rejected: %+v", d, m)
		}
	}
}

func TestResolverCampaniaMultiMembership(t *testing.T) {
	reg, membership := registroDoble(t)

	// inside the overlap of both windows: valid against both.
	m := ResolverCampania(2, "", fecha(t, "2025-06-05"), membership, reg)
	if m.Kind != MultiMatch {
		t.Fatalf("overlap event should be MultiMatch, got %+v", m)
	}
	if len(m.Archivos) != 2 {
		t.Fatalf("expected both campaigns, got %v", m.Archivos)
	}
	if m.Archivos[0] != "CARTERA_AN_1" || m.Archivos[1] != "CARTERA_Temprana_1" {
		t.Fatalf("archivos must be sorted for determinism, got %v", m.Archivos)
	}

	// after Temprana closes: only AN remains.
	m = ResolverCampania(2, "", fecha(t, "2025-06-20"), membership, reg)
	if m.Kind != SingleMatch || m.Archivos[0] != "CARTERA_AN_1" {
		t.Fatalf("expected single match against AN, got %+v", m)
	}
}

func TestResolverCampaniaExplicitClaim(t *testing.T) {
	reg, membership := registroDoble(t)

	m := ResolverCampania(2, "CARTERA_AN_1", fecha(t, "2025-06-05"), membership, reg)
	if m.Kind != SingleMatch || m.Archivos[0] != "CARTERA_AN_1" {
		t.Fatalf("explicit claim restricts the match, got %+v", m)
	}

	// claim on a campaign the account is not assigned to
	if m := ResolverCampania(1, "CARTERA_AN_1", fecha(t, "2025-06-05"), membership, reg); m.Kind != NoMatch {
		t.Fatalf("claim without assignment must be rejected, got %+v", m)
	}

	// claim with a timestamp outside the claimed window
	if m := ResolverCampania(2, "CARTERA_Temprana_1", fecha(t, "2025-06-20"), membership, reg); m.Kind != NoMatch {
		t.Fatalf("claim outside its window must be rejected, got %+v", m)
	}

	// claim on a campaign unknown to the calendar
	if m := ResolverCampania(2, "NO_EXISTE", fecha(t, "2025-06-05"), membership, reg); m.Kind != NoMatch {
		t.Fatalf("unknown claim must be rejected, got %+v", m)
	}
}

func TestEsVigenteUnassignedAccount(t *testing.T) {
	reg, membership := registroDoble(t)
	if EsVigente(99, "", fecha(t, "2025-06-05"), membership, reg) {
		t.Fatal("account without membership has no valid campaign")
	}
}
