package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/18981850753/shopList-App/internal/models"
	"github.com/18981850753/shopList-App/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestService(t *testing.T) (*Service, *store.Store, *fixedClock) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "shop.txt"))
	svc := NewService(st)
	clock := &fixedClock{now: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)}
	svc.SetClock(clock.Now)
	return svc, st, clock
}

func TestAddNormalizesInput(t *testing.T) {
	svc, st, _ := newTestService(t)

	added, err := svc.Add(Input{Name: " apple ", Price: "10", Weight: "2"})
	require.NoError(t, err)

	assert.Equal(t, "apple", added.Name)
	assert.Equal(t, "¥10", added.Price)
	assert.Equal(t, "2kg", added.Weight)
	assert.Equal(t, models.DefaultText, added.Brand)
	assert.Equal(t, models.DefaultText, added.Remark)
	assert.Equal(t, "2024-05-01 09:30:00", added.CreateTime)
	assert.Equal(t, added.CreateTime, added.UpdateTime)

	records, err := st.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].SameContent(added))
}

func TestAddRequiresFields(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.Add(Input{Brand: "Fuji"})
	require.Error(t, err)

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "product name is required", fe["name"])
	assert.Equal(t, "price is required", fe["price"])
	assert.Equal(t, "weight is required", fe["weight"])

	_, err = svc.Add(Input{Name: "apple", Price: "  ", Weight: "1"})
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe, 1)
	assert.Contains(t, fe, "price")

	records, err := st.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdateKeepsCreateTime(t *testing.T) {
	svc, _, clock := newTestService(t)

	_, err := svc.Add(Input{Name: "apple", Price: "10", Weight: "2"})
	require.NoError(t, err)
	_, err = svc.Add(Input{Name: "pear", Price: "9", Weight: "3"})
	require.NoError(t, err)

	catalog, err := svc.Catalog()
	require.NoError(t, err)
	original, ok := catalog.Record(0)
	require.True(t, ok)

	clock.now = clock.now.Add(time.Hour)
	in := InputFrom(original)
	in.Price = "12"
	in.Weight = ""
	in.Brand = "Fuji"
	updated, err := svc.Update(original, in)
	require.NoError(t, err)

	assert.Equal(t, "¥12", updated.Price)
	assert.Equal(t, models.DefaultWeight, updated.Weight)
	assert.Equal(t, "Fuji", updated.Brand)
	assert.Equal(t, "2024-05-01 09:30:00", updated.CreateTime)
	assert.Equal(t, "2024-05-01 10:30:00", updated.UpdateTime)

	catalog, err = svc.Catalog()
	require.NoError(t, err)
	records := catalog.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].SameContent(updated))
	assert.Equal(t, "pear", records[1].Name)
}

func TestUpdateRequiresNameAndPrice(t *testing.T) {
	svc, _, _ := newTestService(t)
	added, err := svc.Add(Input{Name: "apple", Price: "10", Weight: "2"})
	require.NoError(t, err)

	_, err = svc.Update(added, Input{Name: "apple"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldErrors{"price": "price is required"}, fe)
}

func TestStaleRecordIsRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	for _, name := range []string{"apple", "pear"} {
		_, err := svc.Add(Input{Name: name, Price: "1", Weight: "1"})
		require.NoError(t, err)
	}

	catalog, err := svc.Catalog()
	require.NoError(t, err)
	apple, _ := catalog.Record(0)
	pear, _ := catalog.Record(1)

	require.NoError(t, svc.Delete(apple))

	_, err = svc.Update(pear, InputFrom(pear))
	assert.ErrorIs(t, err, ErrStaleRecord)
	assert.ErrorIs(t, svc.Delete(pear), ErrStaleRecord)

	catalog, err = svc.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"pear"}, catalog.Names())
}

func TestRenameAndRemoveProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	for _, name := range []string{"apple", "pear", "apple"} {
		_, err := svc.Add(Input{Name: name, Price: "1", Weight: "1"})
		require.NoError(t, err)
	}

	changed, err := svc.RenameProduct("apple", "  ")
	require.NoError(t, err)
	assert.Zero(t, changed)

	changed, err = svc.RenameProduct("apple", "apple")
	require.NoError(t, err)
	assert.Zero(t, changed)

	changed, err = svc.RenameProduct("apple", "fuji")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	removed, err := svc.RemoveProduct("pear")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	catalog, err := svc.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"fuji"}, catalog.Names())
	assert.Len(t, catalog.Filter("fuji"), 2)
}

func TestMultiLineFieldsAreRejected(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.Add(Input{Name: "apple", Price: "10", Weight: "2", Remark: "5kg\nbox"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldErrors{"remark": "remark must be a single line"}, fe)

	added, err := svc.Add(Input{Name: "apple", Price: "10", Weight: "2"})
	require.NoError(t, err)

	_, err = svc.Update(added, Input{Name: "apple", Price: "10", Weight: "2\r\n3"})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldErrors{"weight": "weight must be a single line"}, fe)

	_, err = svc.Update(added, Input{Name: "ap\nple", Price: "10"})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldErrors{"name": "name must be a single line"}, fe)

	records, err := st.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].SameContent(added))
}
