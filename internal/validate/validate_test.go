package validate

import (
	"strings"
	"testing"

	"github.com/openlegis/legis-gateway/internal/domain"
)

func TestCongressBounds(t *testing.T) {
	cases := []struct {
		n  int
		ok bool
	}{
		{92, false},
		{93, true},
		{105, true},
		{118, true},
		{119, false},
		{50, false},
	}

	for _, tc := range cases {
		got, err := Congress(tc.n)
		if tc.ok {
			if err != nil {
				t.Fatalf("congress %d: unexpected error: %v", tc.n, err)
			}
			if got != tc.n {
				t.Fatalf("congress %d: value changed to %d", tc.n, got)
			}
			continue
		}
		if err == nil {
			t.Fatalf("congress %d: expected error", tc.n)
		}
		if !domain.IsKind(err, domain.ErrorKindInvalidParameter) {
			t.Fatalf("congress %d: wrong kind: %v", tc.n, err)
		}
	}
}

func TestCongressErrorNamesBounds(t *testing.T) {
	_, err := Congress(50)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "50") || !strings.Contains(msg, "93 and 118") {
		t.Fatalf("message should name the value and the bounds: %s", msg)
	}
}

func TestStateCode(t *testing.T) {
	for _, raw := range []string{"ca", "CA", "Ca", "pr", "dc", "gu"} {
		got, err := StateCode(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != strings.ToUpper(raw) {
			t.Fatalf("%q: expected uppercase normalization, got %q", raw, got)
		}
	}

	for _, raw := range []string{"XX", "ZZ", "C", "CAL", ""} {
		if _, err := StateCode(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		} else if !strings.Contains(err.Error(), "state code") {
			t.Fatalf("%q: message should reference state code: %v", raw, err)
		}
	}
}

func TestStateCodeCountsFiftySix(t *testing.T) {
	if len(stateCodes) != 56 {
		t.Fatalf("expected 56 recognized codes, have %d", len(stateCodes))
	}
}

func TestDistrict(t *testing.T) {
	for _, n := range []int{0, 1, 53} {
		if _, err := District(n); err != nil {
			t.Fatalf("district %d: unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{-1, 54, 60} {
		if _, err := District(n); err == nil {
			t.Fatalf("district %d: expected error", n)
		}
	}
}

func TestBioguide(t *testing.T) {
	got, err := Bioguide("p000197")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "P000197" {
		t.Fatalf("expected uppercase normalization, got %q", got)
	}

	for _, raw := range []string{"P0001977", "PP000197", "P00019", "1000197", "P00019A", ""} {
		if _, err := Bioguide(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		}
	}
}

func TestChamber(t *testing.T) {
	for raw, want := range map[string]string{"house": "house", "Senate": "senate", "HOUSE": "house"} {
		got, err := Chamber(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: got %q", raw, got)
		}
	}
	if _, err := Chamber("joint"); err == nil {
		t.Fatal("expected error for joint")
	}
}

func TestBillType(t *testing.T) {
	for _, raw := range []string{"hr", "s", "hjres", "sjres", "hconres", "sconres", "hres", "sres", "HR"} {
		if _, err := BillType(raw); err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
	}
	for _, raw := range []string{"hb", "sb", ""} {
		if _, err := BillType(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		}
	}
}

func TestAmendmentType(t *testing.T) {
	cases := map[string]string{
		"hamdt":            "hamdt",
		"samdt":            "samdt",
		"house-amendment":  "hamdt",
		"senate-amendment": "samdt",
		"SAMDT":            "samdt",
	}
	for raw, want := range cases {
		got, err := AmendmentType(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: got %q, want %q", raw, got, want)
		}
	}
	if _, err := AmendmentType("amdt"); err == nil {
		t.Fatal("expected error for amdt")
	}
}

func TestLawType(t *testing.T) {
	cases := map[string]string{"public": "pub", "pub": "pub", "private": "priv", "priv": "priv"}
	for raw, want := range cases {
		got, err := LawType(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: got %q, want %q", raw, got, want)
		}
	}
	if _, err := LawType("statute"); err == nil {
		t.Fatal("expected error for statute")
	}
}

func TestCommunicationType(t *testing.T) {
	for _, ct := range []string{"ec", "ml", "pm", "pt"} {
		if _, err := CommunicationType("house", ct); err != nil {
			t.Fatalf("house %q: unexpected error: %v", ct, err)
		}
	}
	for _, ct := range []string{"ec", "pm", "pom"} {
		if _, err := CommunicationType("senate", ct); err != nil {
			t.Fatalf("senate %q: unexpected error: %v", ct, err)
		}
	}

	// Codes valid for one chamber only.
	if _, err := CommunicationType("senate", "ml"); err == nil {
		t.Fatal("ml is not a senate communication type")
	}
	if _, err := CommunicationType("house", "pom"); err == nil {
		t.Fatal("pom is not a house communication type")
	}
}

func TestCommitteeCode(t *testing.T) {
	for _, raw := range []string{"hsju00", "ssfr00", "HSJU00", "ag00"} {
		got, err := CommitteeCode(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != strings.ToLower(raw) {
			t.Fatalf("%q: expected lowercase normalization, got %q", raw, got)
		}
	}
	for _, raw := range []string{"h00", "hsjud00", "hsju0", "hs0000", "123400"} {
		if _, err := CommitteeCode(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		}
	}
}

func TestDate(t *testing.T) {
	if _, err := Date(2023, 2, 28); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Date(2024, 2, 29); err != nil {
		t.Fatalf("leap day should validate: %v", err)
	}

	cases := []struct {
		y, m, d int
		field   string
	}{
		{1899, 1, 1, "year"},
		{2101, 1, 1, "year"},
		{2023, 13, 1, "month"},
		{2023, 0, 1, "month"},
		{2023, 1, 32, "day"},
		{2023, 1, 0, "day"},
		{2023, 2, 30, "date"},
		{2023, 4, 31, "date"},
	}
	for _, tc := range cases {
		_, err := Date(tc.y, tc.m, tc.d)
		if err == nil {
			t.Fatalf("%04d-%02d-%02d: expected error", tc.y, tc.m, tc.d)
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Fatalf("%04d-%02d-%02d: message should name %s: %v", tc.y, tc.m, tc.d, tc.field, err)
		}
	}
}

func TestPositiveNumber(t *testing.T) {
	if _, err := PositiveNumber("vote number", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, n := range []int{0, -5} {
		_, err := PositiveNumber("vote number", n)
		if err == nil {
			t.Fatalf("%d: expected error", n)
		}
		if !strings.Contains(err.Error(), "vote number") {
			t.Fatalf("message should name the field: %v", err)
		}
	}
}
