package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/18981850753/shopList-App/internal/models"
)

// ParsePrice strips the currency glyph and parses the rest.
func ParsePrice(price string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(price, models.CurrencyPrefix, ""), 64)
}

// ParseWeight strips the unit and parses the rest.
func ParseWeight(weight string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(weight, models.WeightUnit, ""), 64)
}

// PriceValue is the numeric price, or 0 when it does not parse.
func PriceValue(r models.Record) float64 {
	price, err := ParsePrice(r.Price)
	if err != nil {
		return 0
	}
	return price
}

// UnitPrice is price per kg, or 0 when either side does not parse or the
// weight is not positive.
func UnitPrice(r models.Record) float64 {
	unit, ok := unitPrice(r)
	if !ok {
		return 0
	}
	return unit
}

func unitPrice(r models.Record) (float64, bool) {
	price, err := ParsePrice(r.Price)
	if err != nil {
		return 0, false
	}
	weight, err := ParseWeight(r.Weight)
	if err != nil || weight <= 0 {
		return 0, false
	}
	return price / weight, true
}

// CreatedAt parses the creation time, falling back to the Unix epoch.
func CreatedAt(r models.Record) time.Time {
	t, err := time.ParseInLocation(models.TimeLayout, r.CreateTime, time.Local)
	if err != nil {
		return time.Unix(0, 0)
	}
	return t
}

func FormatTime(t time.Time) string {
	return t.Format(models.TimeLayout)
}

func FormatPrice(price string) string {
	if strings.HasPrefix(price, models.CurrencyPrefix) {
		return price
	}
	return models.CurrencyPrefix + price
}

func FormatWeight(weight string) string {
	if weight == "" {
		return models.DefaultWeight
	}
	if strings.HasSuffix(weight, models.WeightUnit) {
		return weight
	}
	return weight + models.WeightUnit
}

func orDefault(s string) string {
	if s == "" {
		return models.DefaultText
	}
	return s
}

// FormatUnitPrice renders a unit price for tables, "N/A" when there is none.
func FormatUnitPrice(r models.Record) string {
	unit := UnitPrice(r)
	if unit <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s%.2f", models.CurrencyPrefix, unit)
}
