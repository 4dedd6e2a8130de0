package backup

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"
	"github.com/18981850753/shopList-App/internal/store"

	"github.com/jszwec/csvutil"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Mirror is a remote copy of the store, implemented by *database.MongoDB.
type Mirror interface {
	MirrorRecords(ctx context.Context, collectionName string, records []models.Record) (string, error)
	FetchRecords(ctx context.Context, collectionName string) ([]models.Record, error)
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// DetectFormat picks the backup format from the file extension.
func DetectFormat(filename string) (string, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json", ".jsonl":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("cannot auto-detect format from extension '%s'. Please specify --format", ext)
	}
}

func checkFormat(format string) error {
	if format != FormatCSV && format != FormatJSON {
		return fmt.Errorf("invalid format: %s. Use 'csv' or 'json'", format)
	}
	return nil
}

// BackupStore writes a timestamped snapshot of the store into outputDir and
// returns its path and the number of records written.
func (s *Service) BackupStore(outputDir, format string) (string, int, error) {
	if err := checkFormat(format); err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	records, err := s.store.Records()
	if err != nil {
		return "", 0, fmt.Errorf("failed to read store: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("backup_shop_%s.%s", timestamp, format)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	if err := writeRecords(file, records, format); err != nil {
		file.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("backup failed: %w", err)
	}

	log.Printf("Backup completed: %d records written to %s", len(records), path)
	return path, len(records), file.Close()
}

func writeRecords(w io.Writer, records []models.Record, format string) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		for _, record := range records {
			if err := encoder.Encode(record); err != nil {
				return fmt.Errorf("failed to marshal to JSON: %w", err)
			}
		}
		return nil
	}

	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)
	encoder.AutoHeader = false
	if err := writer.Write(models.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func readRecords(r io.Reader, format string) ([]models.Record, error) {
	var records []models.Record

	if format == FormatJSON {
		decoder := json.NewDecoder(r)
		for {
			var record models.Record
			if err := decoder.Decode(&record); err == io.EOF {
				break
			} else if err != nil {
				return nil, fmt.Errorf("failed to decode JSON: %w", err)
			}
			records = append(records, record)
		}
		return records, nil
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}
	return records, nil
}

// RestoreStore loads a backup file into the store. With replace the store
// is overwritten, otherwise the records are appended.
func (s *Service) RestoreStore(inputFile, format string, replace bool) (int, error) {
	if err := checkFormat(format); err != nil {
		return 0, err
	}

	file, err := os.Open(inputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file, format)
	if err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}

	if err := s.load(records, replace); err != nil {
		return 0, err
	}
	log.Printf("Restore completed: %d records loaded from %s", len(records), inputFile)
	return len(records), nil
}

func (s *Service) load(records []models.Record, replace bool) error {
	if replace {
		if err := s.store.WriteRecords(records); err != nil {
			return fmt.Errorf("failed to replace store: %w", err)
		}
		return nil
	}
	for i, record := range records {
		if err := s.store.Append(record); err != nil {
			return fmt.Errorf("failed to append record %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateBackupFile checks that filename exists, is not empty and carries
// the extension of expectedFormat.
func (s *Service) ValidateBackupFile(filename, expectedFormat string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("cannot get file info: %w", err)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}

	detected, err := DetectFormat(filename)
	if err != nil {
		return err
	}
	if detected != expectedFormat {
		return fmt.Errorf("expected %s file but got %s", strings.ToUpper(expectedFormat), filepath.Ext(filename))
	}
	return nil
}

// ImportResult summarizes an ImportCSV run.
type ImportResult struct {
	TotalRecords    int
	ImportedRecords int
	SkippedRecords  int
}

// ImportCSV appends the rows of a headered CSV file (name, price, weight,
// brand, remark and optionally create_time, update_time). Rows without a
// name, price or weight are skipped.
func (s *Service) ImportCSV(filename string) (ImportResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file, FormatCSV)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to parse CSV: %w", err)
	}

	result := ImportResult{TotalRecords: len(records)}
	stamp := ledger.FormatTime(s.now())
	for i, record := range records {
		record, ok := normalize(record, stamp)
		if !ok {
			log.Printf("Skipping record %d: name, price and weight are required", i+1)
			log.Printf("  Raw data: Name='%s', Price='%s', Weight='%s'", record.Name, record.Price, record.Weight)
			result.SkippedRecords++
			continue
		}
		if err := s.store.Append(record); err != nil {
			return result, fmt.Errorf("failed to import record %d (%s): %w", i+1, record.Name, err)
		}
		result.ImportedRecords++
	}

	if result.SkippedRecords > 0 {
		log.Printf("WARNING: Skipped %d records due to empty fields", result.SkippedRecords)
		log.Printf("Check that your CSV column headers match: %s", strings.Join(models.Header, ", "))
	}
	log.Printf("Imported %d/%d records from %s", result.ImportedRecords, result.TotalRecords, filename)
	return result, nil
}

func normalize(r models.Record, stamp string) (models.Record, bool) {
	r.Name = strings.TrimSpace(r.Name)
	r.Price = strings.TrimSpace(r.Price)
	r.Weight = strings.TrimSpace(r.Weight)
	if r.Name == "" || r.Price == "" || r.Weight == "" {
		return r, false
	}

	r.Price = ledger.FormatPrice(r.Price)
	r.Weight = ledger.FormatWeight(r.Weight)
	if r.Brand = strings.TrimSpace(r.Brand); r.Brand == "" {
		r.Brand = models.DefaultText
	}
	if r.Remark = strings.TrimSpace(r.Remark); r.Remark == "" {
		r.Remark = models.DefaultText
	}
	if r.CreateTime == "" {
		r.CreateTime = stamp
	}
	if r.UpdateTime == "" {
		r.UpdateTime = r.CreateTime
	}
	return r, true
}

// PushMirror copies the whole store to the mirror collection.
func (s *Service) PushMirror(ctx context.Context, mirror Mirror, collection string) (int, error) {
	records, err := s.store.Records()
	if err != nil {
		return 0, fmt.Errorf("failed to read store: %w", err)
	}
	if _, err := mirror.MirrorRecords(ctx, collection, records); err != nil {
		return 0, fmt.Errorf("mirror failed: %w", err)
	}
	return len(records), nil
}

// PullMirror loads the latest mirrored snapshot into the store.
func (s *Service) PullMirror(ctx context.Context, mirror Mirror, collection string, replace bool) (int, error) {
	records, err := mirror.FetchRecords(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch mirror: %w", err)
	}
	if err := s.load(records, replace); err != nil {
		return 0, err
	}
	return len(records), nil
}
