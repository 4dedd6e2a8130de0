package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/18981850753/shopList-App/internal/models"
)

type SortKey int

const (
	SortByPrice SortKey = iota
	SortByUnitPrice
	SortByTime
)

func (k SortKey) String() string {
	switch k {
	case SortByPrice:
		return "price"
	case SortByUnitPrice:
		return "unit"
	case SortByTime:
		return "time"
	}
	return "unknown"
}

// ParseSortKey accepts the names printed by SortKey.String.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return SortByPrice, nil
	case "unit", "unit-price", "unitprice":
		return SortByUnitPrice, nil
	case "time", "created", "create-time":
		return SortByTime, nil
	}
	return 0, fmt.Errorf("invalid sort key: %s. Use 'price', 'unit' or 'time'", s)
}

type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) Flip() Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Table is the record list of one product with three sort toggles. Each
// toggle starts ascending and flips after every use.
type Table struct {
	name    string
	records []models.Record
	next    [3]Order
}

func NewTable(name string, records []models.Record) *Table {
	owned := make([]models.Record, len(records))
	copy(owned, records)
	return &Table{name: name, records: owned}
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) At(i int) models.Record {
	return t.records[i]
}

func (t *Table) Records() []models.Record {
	out := make([]models.Record, len(t.records))
	copy(out, t.records)
	return out
}

// NextOrder is the direction the next toggle of key will sort in.
func (t *Table) NextOrder(key SortKey) Order {
	return t.next[key]
}

func (t *Table) TogglePrice()     { t.Toggle(SortByPrice) }
func (t *Table) ToggleUnitPrice() { t.Toggle(SortByUnitPrice) }
func (t *Table) ToggleTime()      { t.Toggle(SortByTime) }

// Toggle sorts by key in its pending direction and flips that direction.
func (t *Table) Toggle(key SortKey) Order {
	order := t.next[key]
	t.Sort(key, order)
	t.next[key] = order.Flip()
	return order
}

// Sort orders the records by key. Ties keep their relative order.
func (t *Table) Sort(key SortKey, order Order) {
	less := func(i, j int) bool {
		a, b := t.records[i], t.records[j]
		switch key {
		case SortByPrice:
			return PriceValue(a) < PriceValue(b)
		case SortByUnitPrice:
			return UnitPrice(a) < UnitPrice(b)
		default:
			return CreatedAt(a).Before(CreatedAt(b))
		}
	}
	if order == Descending {
		sort.SliceStable(t.records, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(t.records, less)
}
