package ledger

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/models"
)

// PriceInfo holds unit price statistics for one product.
type PriceInfo struct {
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Samples int     `json:"samples"`
}

// Summarize computes unit price statistics over the records named name.
// Records whose price or weight does not parse are left out; with nothing
// left every statistic is zero.
func Summarize(records []models.Record, name string) PriceInfo {
	var info PriceInfo
	var sum float64

	for _, r := range records {
		if r.Name != name {
			continue
		}
		unit, ok := unitPrice(r)
		if !ok {
			continue
		}
		if info.Samples == 0 || unit > info.Max {
			info.Max = unit
		}
		if info.Samples == 0 || unit < info.Min {
			info.Min = unit
		}
		sum += unit
		info.Samples++
	}

	if info.Samples > 0 {
		info.Average = sum / float64(info.Samples)
	}
	return info
}

func (p PriceInfo) String() string {
	return fmt.Sprintf("avg %s%.2f/kg  max %s%.2f/kg  min %s%.2f/kg",
		models.CurrencyPrefix, p.Average,
		models.CurrencyPrefix, p.Max,
		models.CurrencyPrefix, p.Min)
}
