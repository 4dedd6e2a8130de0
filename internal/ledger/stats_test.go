package ledger

import (
	"testing"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, price, weight, created string) models.Record {
	return models.Record{
		Name:       name,
		Price:      price,
		Weight:     weight,
		Brand:      models.DefaultText,
		Remark:     models.DefaultText,
		CreateTime: created,
		UpdateTime: created,
	}
}

func TestSummarize(t *testing.T) {
	records := []models.Record{
		rec("apple", "¥10", "2kg", ""),
		rec("apple", "¥9", "3kg", ""),
		rec("pear", "¥100", "1kg", ""),
	}

	info := Summarize(records, "apple")
	assert.InDelta(t, 4.0, info.Average, 1e-9)
	assert.InDelta(t, 5.0, info.Max, 1e-9)
	assert.InDelta(t, 3.0, info.Min, 1e-9)
	assert.Equal(t, 2, info.Samples)
}

func TestSummarizeEmptyAndUnparseable(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
	}{
		{"no records", nil},
		{"no match", []models.Record{rec("pear", "¥1", "1kg", "")}},
		{"all unparseable", []models.Record{
			rec("apple", "free", "1kg", ""),
			rec("apple", "¥3", "some", ""),
			rec("apple", "¥3", "0kg", ""),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PriceInfo{}, Summarize(tt.records, "apple"))
		})
	}
}

func TestSummarizeSkipsUnparseable(t *testing.T) {
	records := []models.Record{
		rec("apple", "¥10", "2kg", ""),
		rec("apple", "free", "2kg", ""),
	}
	info := Summarize(records, "apple")
	assert.Equal(t, 1, info.Samples)
	assert.InDelta(t, 5.0, info.Average, 1e-9)
}

func TestSummarizeIsCaseSensitive(t *testing.T) {
	records := []models.Record{
		rec("apple", "¥10", "2kg", ""),
		rec("Apple", "¥90", "1kg", ""),
	}
	info := Summarize(records, "apple")
	assert.InDelta(t, 5.0, info.Max, 1e-9)
}

func TestUnitPriceAndParsing(t *testing.T) {
	assert.InDelta(t, 5.0, UnitPrice(rec("a", "¥10", "2kg", "")), 1e-9)
	assert.Zero(t, UnitPrice(rec("a", "free", "2kg", "")))
	assert.Zero(t, UnitPrice(rec("a", "¥10", "0kg", "")))
	assert.Zero(t, PriceValue(rec("a", "free", "2kg", "")))
	assert.Equal(t, "N/A", FormatUnitPrice(rec("a", "free", "2kg", "")))
	assert.Equal(t, "¥5.00", FormatUnitPrice(rec("a", "¥10", "2kg", "")))

	price, err := ParsePrice("¥12.5")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, price, 1e-9)

	_, err = ParseWeight("heavy")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "¥10", FormatPrice("10"))
	assert.Equal(t, "¥10", FormatPrice("¥10"))
	assert.Equal(t, "2kg", FormatWeight("2"))
	assert.Equal(t, "2kg", FormatWeight("2kg"))
	assert.Equal(t, models.DefaultWeight, FormatWeight(""))
}
