package store

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/jszwec/csvutil"
)

// Store is the flat file holding every record of every product, one row per
// record. It is meant for a single sequential caller and does no locking.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Init creates an empty store file if none exists yet.
func (s *Store) Init() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create store file: %w", err)
	}
	return file.Close()
}

// Append writes one record at the end of the file, creating it if needed.
func (s *Store) Append(record models.Record) error {
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer file.Close()

	if err := terminateLastLine(file); err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	encoder := csvutil.NewEncoder(writer)
	encoder.AutoHeader = false

	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return file.Close()
}

// terminateLastLine adds the missing newline of a hand edited file so the
// appended record starts on a line of its own.
func terminateLastLine(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat store file: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := file.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

// line is one line of the store file. raw is kept so that lines nobody
// edits are written back exactly as they were read.
type line struct {
	raw    string
	fields []string
}

func newLine(fields []string) line {
	return line{raw: encodeRow(fields), fields: fields}
}

// ReadAll returns the fields of every line in file order, blank and
// malformed lines included. A missing file is an empty store.
func (s *Store) ReadAll() ([][]string, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, l.fields)
	}
	return rows, nil
}

func (s *Store) readLines() ([]line, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer file.Close()

	return readLines(file)
}

func readLines(r io.Reader) ([]line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []line
	for scanner.Scan() {
		raw := scanner.Text()
		lines = append(lines, line{raw: raw, fields: parseLine(strings.TrimSuffix(raw, "\r"))})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store lines: %w", err)
	}
	return lines, nil
}

// parseLine splits one line into fields. Lines this package wrote may quote
// fields holding commas or quotes. Anything that is not such a line, like a
// legacy remark with a stray quote, is split on commas as it always was.
func parseLine(text string) []string {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	fields, err := reader.Read()
	if err != nil || encodeRow(fields) != text {
		return strings.Split(text, ",")
	}
	return fields
}

func encodeRow(fields []string) string {
	var b strings.Builder
	writer := csv.NewWriter(&b)
	writer.Write(fields)
	writer.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// Records decodes every well-formed row. Malformed and blank lines are
// skipped but still count towards the index of the lines after them.
func (s *Store) Records() ([]models.Record, error) {
	rows, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		if record, ok := models.FromFields(row, i); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// ReplaceAt swaps the row at index for record. An out of range index leaves
// the file untouched and reports false.
func (s *Store) ReplaceAt(index int, record models.Record) (bool, error) {
	return s.rewriteAt(index, func(lines []line) []line {
		lines[index] = newLine(record.Fields())
		return lines
	}, nil)
}

// RemoveAt drops the row at index. An out of range index leaves the file
// untouched and reports false.
func (s *Store) RemoveAt(index int) (bool, error) {
	return s.rewriteAt(index, func(lines []line) []line {
		return append(lines[:index], lines[index+1:]...)
	}, nil)
}

// ReplaceIfUnchanged behaves like ReplaceAt but only when the row at index
// still holds the same content as expected.
func (s *Store) ReplaceIfUnchanged(index int, expected, record models.Record) (bool, error) {
	return s.rewriteAt(index, func(lines []line) []line {
		lines[index] = newLine(record.Fields())
		return lines
	}, &expected)
}

// RemoveIfUnchanged behaves like RemoveAt but only when the row at index
// still holds the same content as expected.
func (s *Store) RemoveIfUnchanged(index int, expected models.Record) (bool, error) {
	return s.rewriteAt(index, func(lines []line) []line {
		return append(lines[:index], lines[index+1:]...)
	}, &expected)
}

func (s *Store) rewriteAt(index int, edit func([]line) []line, expected *models.Record) (bool, error) {
	lines, err := s.readLines()
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(lines) {
		return false, nil
	}
	if expected != nil {
		current, ok := models.FromFields(lines[index].fields, index)
		if !ok || !current.SameContent(*expected) {
			return false, nil
		}
	}
	return true, s.writeLines(edit(lines))
}

// RenameProduct sets the name of every record called oldName to newName and
// returns how many rows changed.
func (s *Store) RenameProduct(oldName, newName string) (int, error) {
	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}

	changed := 0
	for i, l := range lines {
		if len(l.fields) >= models.FieldCount && l.fields[0] == oldName {
			fields := append([]string{newName}, l.fields[1:]...)
			lines[i] = newLine(fields)
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.writeLines(lines)
}

// RemoveProduct drops every record called name and returns how many rows
// were removed.
func (s *Store) RemoveProduct(name string) (int, error) {
	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}

	kept := lines[:0]
	removed := 0
	for _, l := range lines {
		if len(l.fields) >= models.FieldCount && l.fields[0] == name {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.writeLines(kept)
}

// WriteAll replaces the whole file with rows.
func (s *Store) WriteAll(rows [][]string) error {
	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, newLine(row))
	}
	return s.writeLines(lines)
}

// writeLines goes through a temporary file in the same directory which is
// then renamed over the store.
func (s *Store) writeLines(lines []line) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	for _, l := range lines {
		writer.WriteString(l.raw)
		writer.WriteByte('\n')
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set store permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// WriteRecords replaces the whole file with records.
func (s *Store) WriteRecords(records []models.Record) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Fields())
	}
	return s.WriteAll(rows)
}
