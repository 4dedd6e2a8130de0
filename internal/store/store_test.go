package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "shop.txt"))
}

func record(name, price, weight string) models.Record {
	return models.Record{
		Name:       name,
		Price:      price,
		Weight:     weight,
		Brand:      "无",
		Remark:     "无",
		CreateTime: "2024-05-01 10:00:00",
		UpdateTime: "2024-05-01 10:00:00",
	}
}

func seed(t *testing.T, s *Store, records ...models.Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, s.Append(r))
	}
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)

	records, err := s.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInitCreatesEmptyFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "data", "shop.txt"))
	require.NoError(t, s.Init())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	seed(t, s, record("apple", "¥10", "2kg"))
	require.NoError(t, s.Init())
	records, err := s.Records()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAppendReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	inputs := []models.Record{
		record("apple", "¥10", "2kg"),
		record("pear", "¥9", "3kg"),
		record("苹果", "¥12.5", "1.5kg"),
	}
	seed(t, s, inputs...)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, len(inputs))
	for i, r := range records {
		assert.Equal(t, i, r.Index)
		assert.True(t, r.SameContent(inputs[i]), "record %d: %+v", i, r)
	}
}

func TestAppendWritesLegacyLineFormat(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, record("apple", "¥10", "2kg"))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "apple,¥10,2kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n", string(data))
}

func TestCommaInsideFieldSurvives(t *testing.T) {
	s := newTestStore(t)
	r := record("apple", "¥10", "2kg")
	r.Remark = "sweet, crunchy"
	seed(t, s, r, record("pear", "¥9", "3kg"))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sweet, crunchy", records[0].Remark)
	assert.Equal(t, "pear", records[1].Name)
}

func TestLegacyFileWithShortRows(t *testing.T) {
	s := newTestStore(t)
	legacy := "apple,¥10,2kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n" +
		"broken,line\n" +
		"pear,¥9,3kg,无,a \"quoted\" note,2024-05-02 10:00:00,2024-05-02 10:00:00\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0644))

	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, 2, records[1].Index)
	assert.Equal(t, `a "quoted" note`, records[1].Remark)
}

func TestRemoveAt(t *testing.T) {
	s := newTestStore(t)
	a, b, c := record("a", "¥1", "1kg"), record("b", "¥2", "1kg"), record("c", "¥3", "1kg")
	seed(t, s, a, b, c)

	removed, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Name)
	assert.Equal(t, "c", records[1].Name)
	assert.Equal(t, 1, records[1].Index)
}

func TestReplaceAt(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, record("a", "¥1", "1kg"), record("b", "¥2", "1kg"), record("c", "¥3", "1kg"))

	replaced, err := s.ReplaceAt(1, record("b", "¥20", "4kg"))
	require.NoError(t, err)
	assert.True(t, replaced)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].Name)
	assert.Equal(t, "¥20", records[1].Price)
	assert.Equal(t, "4kg", records[1].Weight)
	assert.Equal(t, "c", records[2].Name)
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, record("a", "¥1", "1kg"))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 42} {
		replaced, err := s.ReplaceAt(index, record("x", "¥1", "1kg"))
		require.NoError(t, err)
		assert.False(t, replaced)

		removed, err := s.RemoveAt(index)
		require.NoError(t, err)
		assert.False(t, removed)
	}

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReplaceIfUnchangedDetectsStaleIndex(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, record("a", "¥1", "1kg"), record("b", "¥2", "1kg"))

	records, err := s.Records()
	require.NoError(t, err)
	stale := records[1]

	removed, err := s.RemoveAt(0)
	require.NoError(t, err)
	require.True(t, removed)

	replaced, err := s.ReplaceIfUnchanged(stale.Index, stale, record("b", "¥5", "1kg"))
	require.NoError(t, err)
	assert.False(t, replaced)

	removed, err = s.RemoveIfUnchanged(stale.Index, stale)
	require.NoError(t, err)
	assert.False(t, removed)

	fresh, err := s.Records()
	require.NoError(t, err)
	require.Len(t, fresh, 1)

	replaced, err = s.ReplaceIfUnchanged(fresh[0].Index, fresh[0], record("b", "¥5", "1kg"))
	require.NoError(t, err)
	assert.True(t, replaced)
}

func TestRenameAndRemoveProduct(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		record("apple", "¥1", "1kg"),
		record("Apple", "¥2", "1kg"),
		record("apple", "¥3", "1kg"),
		record("pear", "¥4", "1kg"),
	)

	changed, err := s.RenameProduct("apple", "green apple")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	records, err := s.Records()
	require.NoError(t, err)
	names := []string{}
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"green apple", "Apple", "green apple", "pear"}, names)

	removed, err := s.RemoveProduct("green apple")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	records, err = s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Apple", records[0].Name)
	assert.Equal(t, "pear", records[1].Name)

	removed, err = s.RemoveProduct("missing")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStrayQuoteDoesNotSwallowLaterLines(t *testing.T) {
	s := newTestStore(t)
	legacy := "apple,¥10,2kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n" +
		"pear,¥9,3kg,无,\"5kg box,2024-05-02 10:00:00,2024-05-02 10:00:00\n" +
		"plum,¥7,1kg,无,无,2024-05-03 10:00:00,2024-05-03 10:00:00\n" +
		"kiwi,¥8,2kg,无,无,2024-05-04 10:00:00,2024-05-04 10:00:00\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0644))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, `"5kg box`, records[1].Remark)
	assert.Equal(t, "plum", records[2].Name)
	assert.Equal(t, 3, records[3].Index)

	removed, err := s.RemoveAt(0)
	require.NoError(t, err)
	require.True(t, removed)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, legacy[strings.Index(legacy, "pear"):], string(data))
}

func TestBlankLinesKeepTheirIndex(t *testing.T) {
	s := newTestStore(t)
	a := "a,¥1,1kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n"
	b := "b,¥2,1kg,无,a \"quoted\" note,2024-05-01 10:00:00,2024-05-01 10:00:00\n"
	c := "c,¥3,1kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(a+"\n"+b+c), 0644))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{records[0].Index, records[1].Index, records[2].Index})

	removed, err := s.RemoveAt(3)
	require.NoError(t, err)
	require.True(t, removed)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, a+"\n"+b, string(data))

	replaced, err := s.ReplaceAt(0, record("a", "¥5", "1kg"))
	require.NoError(t, err)
	require.True(t, replaced)

	data, err = os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "a,¥5,1kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00\n\n"+b, string(data))
}

func TestAppendAfterMissingTrailingNewline(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(),
		[]byte("a,¥1,1kg,无,无,2024-05-01 10:00:00,2024-05-01 10:00:00"), 0644))

	seed(t, s, record("b", "¥2", "1kg"))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1].Name)
}
