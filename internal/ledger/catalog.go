package ledger

import (
	"github.com/18981850753/shopList-App/internal/models"
)

// RecordSource is anything that can list the current records, normally a
// *store.Store.
type RecordSource interface {
	Records() ([]models.Record, error)
}

// Catalog is a read-only snapshot of the store taken when a screen is
// entered. Reload by calling LoadCatalog again.
type Catalog struct {
	records []models.Record
	names   []string
}

// Product is one row of the product list.
type Product struct {
	Name  string
	Count int
	Info  PriceInfo
}

func LoadCatalog(src RecordSource) (Catalog, error) {
	records, err := src.Records()
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(records), nil
}

func NewCatalog(records []models.Record) Catalog {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}

	owned := make([]models.Record, len(records))
	copy(owned, records)
	return Catalog{records: owned, names: names}
}

// Names returns the distinct product names in first-seen order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c Catalog) Records() []models.Record {
	out := make([]models.Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c Catalog) Len() int {
	return len(c.records)
}

func (c Catalog) Has(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

func (c Catalog) Summary(name string) PriceInfo {
	return Summarize(c.records, name)
}

func (c Catalog) Products() []Product {
	products := make([]Product, 0, len(c.names))
	for _, name := range c.names {
		products = append(products, Product{
			Name:  name,
			Count: len(c.Filter(name)),
			Info:  c.Summary(name),
		})
	}
	return products
}

// Filter returns the records whose name matches exactly, in file order.
func (c Catalog) Filter(name string) []models.Record {
	var out []models.Record
	for _, r := range c.records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// Record looks up the record read at the given store index.
func (c Catalog) Record(index int) (models.Record, bool) {
	for _, r := range c.records {
		if r.Index == index {
			return r, true
		}
	}
	return models.Record{}, false
}

func (c Catalog) Table(name string) *Table {
	return NewTable(name, c.Filter(name))
}
