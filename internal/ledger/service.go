package ledger

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrStaleRecord means the row a record was read from no longer holds that
// record, usually because the file was written in between.
var ErrStaleRecord = errors.New("record changed since it was read, reload and try again")

// Store is the subset of *store.Store the service needs.
type Store interface {
	RecordSource
	Append(record models.Record) error
	ReplaceIfUnchanged(index int, expected, record models.Record) (bool, error)
	RemoveIfUnchanged(index int, expected models.Record) (bool, error)
	RenameProduct(oldName, newName string) (int, error)
	RemoveProduct(name string) (int, error)
}

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: newValidator(),
		now:      time.Now,
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Catalog reloads the store into a fresh snapshot.
func (s *Service) Catalog() (Catalog, error) {
	catalog, err := LoadCatalog(s.store)
	if err != nil {
		log.Printf("Failed to load records: %v", err)
		return Catalog{}, fmt.Errorf("failed to load records: %w", err)
	}
	return catalog, nil
}

// Add validates the form and appends a new record stamped with the current
// time.
func (s *Service) Add(in Input) (models.Record, error) {
	in = in.trimmed()
	if err := toFieldErrors(s.validate.Struct(in)); err != nil {
		return models.Record{}, err
	}

	stamp := FormatTime(s.now())
	record := models.Record{
		Name:       in.Name,
		Price:      FormatPrice(in.Price),
		Weight:     FormatWeight(in.Weight),
		Brand:      orDefault(in.Brand),
		Remark:     orDefault(in.Remark),
		CreateTime: stamp,
		UpdateTime: stamp,
	}

	if err := s.store.Append(record); err != nil {
		log.Printf("Failed to save record for %s: %v", record.Name, err)
		return models.Record{}, fmt.Errorf("failed to save record: %w", err)
	}
	log.Printf("Added record for %s (%s, %s)", record.Name, record.Price, record.Weight)
	return record, nil
}

// Update rewrites original with the form values. The weight may be left
// empty on edit and the creation time is carried over.
func (s *Service) Update(original models.Record, in Input) (models.Record, error) {
	in = in.trimmed()
	if err := toFieldErrors(s.validate.StructExcept(in, "Weight")); err != nil {
		return models.Record{}, err
	}
	if err := s.validate.Var(in.Weight, "singleline"); err != nil {
		return models.Record{}, FieldErrors{"weight": singleLineMessage("weight")}
	}

	now := FormatTime(s.now())
	createTime := original.CreateTime
	if createTime == "" {
		createTime = now
	}
	updated := models.Record{
		Name:       in.Name,
		Price:      FormatPrice(in.Price),
		Weight:     FormatWeight(in.Weight),
		Brand:      orDefault(in.Brand),
		Remark:     orDefault(in.Remark),
		CreateTime: createTime,
		UpdateTime: now,
		Index:      original.Index,
	}

	replaced, err := s.store.ReplaceIfUnchanged(original.Index, original, updated)
	if err != nil {
		log.Printf("Failed to update record %d: %v", original.Index, err)
		return models.Record{}, fmt.Errorf("failed to update record: %w", err)
	}
	if !replaced {
		log.Printf("Skipped update of record %d: row no longer matches", original.Index)
		return models.Record{}, ErrStaleRecord
	}
	log.Printf("Updated record %d (%s)", original.Index, updated.Name)
	return updated, nil
}

// Delete removes original from the store.
func (s *Service) Delete(original models.Record) error {
	removed, err := s.store.RemoveIfUnchanged(original.Index, original)
	if err != nil {
		log.Printf("Failed to delete record %d: %v", original.Index, err)
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if !removed {
		log.Printf("Skipped delete of record %d: row no longer matches", original.Index)
		return ErrStaleRecord
	}
	log.Printf("Deleted record %d (%s)", original.Index, original.Name)
	return nil
}

// RenameProduct renames every record of a product. An empty or unchanged
// new name does nothing.
func (s *Service) RenameProduct(oldName, newName string) (int, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return 0, nil
	}

	changed, err := s.store.RenameProduct(oldName, newName)
	if err != nil {
		log.Printf("Failed to rename %s to %s: %v", oldName, newName, err)
		return 0, fmt.Errorf("failed to rename product: %w", err)
	}
	log.Printf("Renamed %s to %s (%d records)", oldName, newName, changed)
	return changed, nil
}

// RemoveProduct deletes a product together with all of its records.
func (s *Service) RemoveProduct(name string) (int, error) {
	removed, err := s.store.RemoveProduct(name)
	if err != nil {
		log.Printf("Failed to delete product %s: %v", name, err)
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	log.Printf("Deleted product %s (%d records)", name, removed)
	return removed, nil
}
