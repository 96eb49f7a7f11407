package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		unit string
		want string
	}{
		{"material gets markup", KindMaterial, "45.00", "67.5"},
		{"service unchanged", KindService, "350", "350"},
		{"zero material", KindMaterial, "0", "0"},
		{"fractional material", KindMaterial, "180.50", "270.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveUnitPrice(LineItem{Kind: tt.kind, UnitPrice: dec(tt.unit)})
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLineTotalMaterial(t *testing.T) {
	it := LineItem{Kind: KindMaterial, Quantity: dec("10"), UnitPrice: dec("45.00")}
	if got := LineTotal(it); !got.Equal(dec("675.00")) {
		t.Fatalf("expected 675.00, got %s", got)
	}
}

func TestSummarize(t *testing.T) {
	items := []LineItem{
		{ID: "1", Kind: KindService, Quantity: dec("1"), UnitPrice: dec("350")},
		{ID: "2", Kind: KindMaterial, Quantity: dec("10"), UnitPrice: dec("45")},
	}
	got := Summarize(items, dec("50"))
	checks := map[string][2]decimal.Decimal{
		"services":  {got.Services, dec("350")},
		"materials": {got.Materials, dec("675")},
		"subtotal":  {got.SubTotal, dec("1025")},
		"final":     {got.Final, dec("975")},
	}
	for name, c := range checks {
		if !c[0].Equal(c[1]) {
			t.Errorf("%s: expected %s, got %s", name, c[1], c[0])
		}
	}
}

func TestSummarizeDiscountAboveSubtotalGoesNegative(t *testing.T) {
	items := []LineItem{{Kind: KindService, Quantity: dec("2"), UnitPrice: dec("10")}}
	got := Summarize(items, dec("100"))
	if !got.Final.Equal(dec("-80")) {
		t.Fatalf("expected -80, got %s", got.Final)
	}
	if !got.SubTotal.Sub(got.Discount).Equal(got.Final) {
		t.Fatalf("final total does not equal subtotal minus discount")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, decimal.Zero)
	if !got.SubTotal.IsZero() || !got.Final.IsZero() {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestSummarizeIdentityHolds(t *testing.T) {
	items := []LineItem{
		{Kind: KindService, Quantity: dec("3.3"), UnitPrice: dec("0.1")},
		{Kind: KindMaterial, Quantity: dec("7"), UnitPrice: dec("0.07")},
		{Kind: KindMaterial, Quantity: dec("1.25"), UnitPrice: dec("180.50")},
	}
	got := Summarize(items, dec("0.3"))
	if !got.Services.Add(got.Materials).Equal(got.SubTotal) {
		t.Fatalf("subtotal %s != services %s + materials %s", got.SubTotal, got.Services, got.Materials)
	}
	if !got.SubTotal.Sub(dec("0.3")).Equal(got.Final) {
		t.Fatalf("final %s != subtotal %s - 0.3", got.Final, got.SubTotal)
	}
}

func TestExpirationDate(t *testing.T) {
	now := time.Date(2024, 1, 1, 18, 30, 0, 0, time.Local)
	got := ExpirationDate(now, 15)
	if y, m, d := got.Date(); y != 2024 || m != time.January || d != 16 {
		t.Fatalf("expected 2024-01-16, got %s", got)
	}
	if s := FormatDate(got); s != "16/01/2024" {
		t.Fatalf("expected 16/01/2024, got %s", s)
	}
}

func TestExpirationDateCrossesMonth(t *testing.T) {
	now := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	if s := FormatDate(ExpirationDate(now, 15)); s != "06/03/2024" {
		t.Fatalf("expected 06/03/2024, got %s", s)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"1234.5":     "R$ 1.234,50",
		"-80":        "-R$ 80,00",
		"0":          "R$ 0,00",
		"5":          "R$ 5,00",
		"1025":       "R$ 1.025,00",
		"1234567.89": "R$ 1.234.567,89",
	}
	for in, want := range cases {
		if got := FormatCurrency(dec(in)); got != want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", in, got, want)
		}
	}
}
