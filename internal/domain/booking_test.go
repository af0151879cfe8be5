package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedRef() string { return "EK-20250314-0042" }

func TestNewRefFormat(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`^EK-\d{8}-\d{4}$`)
	for i := 0; i < 200; i++ {
		ref := NewRef()
		if !re.MatchString(ref) {
			t.Fatalf("NewRef() = %q, want EK-YYYYMMDD-NNNN", ref)
		}
	}
}

func TestNormalizeEmptyPayload(t *testing.T) {
	t.Parallel()
	b := Normalize(map[string]any{}, fixedNow, fixedRef)

	if b.Ref != "EK-20250314-0042" {
		t.Errorf("Ref = %q, want generated reference", b.Ref)
	}
	if b.CreatedAt != "2025-03-14T15:09:26Z" {
		t.Errorf("CreatedAt = %q", b.CreatedAt)
	}
	if b.Party != 2 {
		t.Errorf("Party = %d, want default 2", b.Party)
	}
	if b.BaseTotal != 0 || b.Total != 0 {
		t.Errorf("totals = %v/%v, want 0/0", b.BaseTotal, b.Total)
	}
	if b.Status != StatusReservedUnpaid {
		t.Errorf("Status = %q, want %q", b.Status, StatusReservedUnpaid)
	}
	if b.Catering != nil {
		t.Errorf("Catering = %+v, want nil", b.Catering)
	}
}

func TestNormalizeStatusDerivation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"request mode", map[string]any{"mode": "request"}, StatusRequestReceived},
		{"other mode", map[string]any{"mode": "book"}, StatusReservedUnpaid},
		{"absent mode", map[string]any{}, StatusReservedUnpaid},
		{"explicit status wins", map[string]any{"mode": "request", "status": "cancelled"}, "cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, fixedNow, fixedRef).Status; got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeKeepsSuppliedRef(t *testing.T) {
	t.Parallel()
	b := Normalize(map[string]any{"ref": "EK-20250101-9999"}, fixedNow, func() string {
		t.Fatal("newRef called although payload carried a ref")
		return ""
	})
	if b.Ref != "EK-20250101-9999" {
		t.Errorf("Ref = %q, want supplied reference", b.Ref)
	}
}

func TestNormalizeNumericCoercion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		raw       map[string]any
		wantParty int
		wantBase  float64
	}{
		{"json numbers", map[string]any{"party": float64(4), "baseTotal": 19.5}, 4, 19.5},
		{"numeric strings", map[string]any{"party": "6", "baseTotal": "12.25"}, 6, 12.25},
		{"garbage strings", map[string]any{"party": "lots", "baseTotal": "free"}, 2, 0},
		{"wrong types", map[string]any{"party": []any{1}, "baseTotal": map[string]any{}}, 2, 0},
		{"zero party invalid", map[string]any{"party": float64(0)}, 2, 0},
		{"negative money invalid", map[string]any{"baseTotal": -4.0}, 2, 0},
		{"infinite string", map[string]any{"baseTotal": "+Inf"}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Normalize(tt.raw, fixedNow, fixedRef)
			if b.Party != tt.wantParty {
				t.Errorf("Party = %d, want %d", b.Party, tt.wantParty)
			}
			if b.BaseTotal != tt.wantBase {
				t.Errorf("BaseTotal = %v, want %v", b.BaseTotal, tt.wantBase)
			}
		})
	}
}

func TestNormalizeAllNumericsFinite(t *testing.T) {
	t.Parallel()
	raw := map[string]any{
		"party":     "NaN",
		"baseTotal": "Inf",
		"total":     math.Inf(1),
		"catering":  map[string]any{"pricePerPerson": "NaN", "subtotal": math.NaN()},
	}
	b := Normalize(raw, fixedNow, fixedRef)
	for name, v := range map[string]float64{
		"baseTotal":               b.BaseTotal,
		"total":                   b.Total,
		"catering.pricePerPerson": b.Catering.PricePerPerson,
		"catering.subtotal":       b.Catering.Subtotal,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
	if b.Party < 1 {
		t.Errorf("Party = %d, want >= 1", b.Party)
	}
}

func TestNormalizeCatering(t *testing.T) {
	t.Parallel()
	raw := map[string]any{
		"catering": map[string]any{
			"id":             "afternoon-tea",
			"name":           "Afternoon Tea",
			"pricePerPerson": 14.5,
			"subtotal":       58.0,
		},
	}
	b := Normalize(raw, fixedNow, fixedRef)
	if b.Catering == nil {
		t.Fatal("Catering = nil, want populated block")
	}
	if b.Catering.ID != "afternoon-tea" || b.Catering.Name != "Afternoon Tea" {
		t.Errorf("Catering identity = %+v", b.Catering)
	}
	if b.Catering.PricePerPerson != 14.5 || b.Catering.Subtotal != 58.0 {
		t.Errorf("Catering amounts = %+v", b.Catering)
	}

	// a non-object catering field is ignored entirely
	b = Normalize(map[string]any{"catering": "yes please"}, fixedNow, fixedRef)
	if b.Catering != nil {
		t.Errorf("Catering = %+v, want nil for non-object input", b.Catering)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()
	raw := map[string]any{
		"name":       "Alice",
		"email":      "a@x.com",
		"party":      float64(4),
		"mode":       "request",
		"eventTitle": "Tea Tasting",
		"catering":   map[string]any{"id": "c1", "pricePerPerson": 10.0, "subtotal": 40.0},
	}
	first, err := json.Marshal(Normalize(raw, fixedNow, fixedRef))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Normalize(raw, fixedNow, fixedRef))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("normalize not deterministic:\n%s\n%s", first, second)
	}
}
