package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/18981850753/shopList-App/internal/models"
	"github.com/18981850753/shopList-App/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryMirror struct {
	records map[string][]models.Record
}

func (m *memoryMirror) MirrorRecords(_ context.Context, collection string, records []models.Record) (string, error) {
	if m.records == nil {
		m.records = map[string][]models.Record{}
	}
	m.records[collection] = append([]models.Record(nil), records...)
	return "batch", nil
}

func (m *memoryMirror) FetchRecords(_ context.Context, collection string) ([]models.Record, error) {
	return m.records[collection], nil
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "shop.txt"))
	svc := NewService(st)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local) }
	return svc, st
}

func sample() []models.Record {
	return []models.Record{
		{Name: "apple", Price: "¥10", Weight: "2kg", Brand: "无", Remark: "sweet, crunchy", CreateTime: "2024-05-01 08:00:00", UpdateTime: "2024-05-01 08:00:00"},
		{Name: "pear", Price: "¥9", Weight: "3kg", Brand: "Ya", Remark: "无", CreateTime: "2024-05-02 08:00:00", UpdateTime: "2024-05-03 08:00:00"},
	}
}

func contents(t *testing.T, st *store.Store) []models.Record {
	t.Helper()
	records, err := st.Records()
	require.NoError(t, err)
	return records
}

func assertSameRecords(t *testing.T, want, got []models.Record) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].SameContent(got[i]), "record %d: want %+v, got %+v", i, want[i], got[i])
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	for _, format := range []string{FormatCSV, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			svc, st := newTestService(t)
			require.NoError(t, st.WriteRecords(sample()))

			dir := t.TempDir()
			path, count, err := svc.BackupStore(dir, format)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
			assert.Equal(t, filepath.Join(dir, "backup_shop_20240501_093000."+format), path)
			require.NoError(t, svc.ValidateBackupFile(path, format))

			restoredSvc, restored := newTestService(t)
			n, err := restoredSvc.RestoreStore(path, format, false)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assertSameRecords(t, sample(), contents(t, restored))

			_, err = restoredSvc.RestoreStore(path, format, false)
			require.NoError(t, err)
			assert.Len(t, contents(t, restored), 4)

			n, err = restoredSvc.RestoreStore(path, format, true)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assertSameRecords(t, sample(), contents(t, restored))
		})
	}
}

func TestBackupRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.BackupStore(t.TempDir(), "bson")
	assert.Error(t, err)
}

func TestValidateBackupFile(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.Error(t, svc.ValidateBackupFile(empty, FormatCSV))

	jsonFile := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte("{}\n"), 0644))
	assert.Error(t, svc.ValidateBackupFile(jsonFile, FormatCSV))
	assert.NoError(t, svc.ValidateBackupFile(jsonFile, FormatJSON))

	assert.Error(t, svc.ValidateBackupFile(filepath.Join(dir, "missing.csv"), FormatCSV))
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("backup_shop_20240501_093000.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = DetectFormat("dump.jsonl")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = DetectFormat("dump.bson")
	assert.Error(t, err)
}

func TestImportCSV(t *testing.T) {
	svc, st := newTestService(t)
	input := filepath.Join(t.TempDir(), "fruit.csv")
	data := "name,price,weight,brand,remark\n" +
		"apple,10,2,,\n" +
		",5,1,,\n" +
		"pear,¥9,3kg,Ya,\"ripe, soft\"\n" +
		"plum,4,,,\n"
	require.NoError(t, os.WriteFile(input, []byte(data), 0644))

	result, err := svc.ImportCSV(input)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{TotalRecords: 4, ImportedRecords: 2, SkippedRecords: 2}, result)

	records := contents(t, st)
	require.Len(t, records, 2)
	assert.Equal(t, models.Record{
		Name: "apple", Price: "¥10", Weight: "2kg", Brand: "无", Remark: "无",
		CreateTime: "2024-05-01 09:30:00", UpdateTime: "2024-05-01 09:30:00",
	}, records[0])
	assert.Equal(t, "ripe, soft", records[1].Remark)
	assert.Equal(t, 1, records[1].Index)
}

func TestMirrorPushPull(t *testing.T) {
	svc, st := newTestService(t)
	require.NoError(t, st.WriteRecords(sample()))
	mirror := &memoryMirror{}
	ctx := context.Background()

	n, err := svc.PushMirror(ctx, mirror, "records")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	other, otherStore := newTestService(t)
	n, err = other.PullMirror(ctx, mirror, "records", true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assertSameRecords(t, sample(), contents(t, otherStore))
}
