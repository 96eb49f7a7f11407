package quote

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaterialMarkup is applied to material unit prices only.
var MaterialMarkup = decimal.RequireFromString("1.5")

type Totals struct {
	Services  decimal.Decimal `json:"total_services"`
	Materials decimal.Decimal `json:"total_materials"`
	SubTotal  decimal.Decimal `json:"sub_total"`
	Discount  decimal.Decimal `json:"discount"`
	Final     decimal.Decimal `json:"final_total"`
}

func EffectiveUnitPrice(it LineItem) decimal.Decimal {
	if it.Kind == KindMaterial {
		return it.UnitPrice.Mul(MaterialMarkup)
	}
	return it.UnitPrice
}

func LineTotal(it LineItem) decimal.Decimal {
	return it.Quantity.Mul(EffectiveUnitPrice(it))
}

// Summarize recomputes every aggregate from items. The final total is not
// clamped: a discount larger than the subtotal yields a negative total.
func Summarize(items []LineItem, discount decimal.Decimal) Totals {
	t := Totals{
		Services:  decimal.Zero,
		Materials: decimal.Zero,
		Discount:  discount,
	}
	for _, it := range items {
		switch it.Kind {
		case KindMaterial:
			t.Materials = t.Materials.Add(LineTotal(it))
		default:
			t.Services = t.Services.Add(LineTotal(it))
		}
	}
	t.SubTotal = t.Services.Add(t.Materials)
	t.Final = t.SubTotal.Sub(discount)
	return t
}

// ExpirationDate is the local calendar day of now plus validityDays, at midnight.
func ExpirationDate(now time.Time, validityDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+validityDays, 0, 0, 0, 0, now.Location())
}

const DateLayout = "02/01/2006"

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders d as Brazilian reais, e.g. "R$ 1.234,50".
func FormatCurrency(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()
	if v < 0 {
		return "-R$ " + brl.Sprintf("%.2f", -v)
	}
	return "R$ " + brl.Sprintf("%.2f", v)
}
