// ABOUTME: Generic ordered collection behind every proposal section
// ABOUTME: Mutations, totals, reordering and the per-section save policy

package section

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/validate"
)

var (
	ErrUnknownField   = validate.ErrUnknownField
	ErrInvalidValue   = validate.ErrInvalidValue
	ErrDuplicate      = errors.New("duplicate record")
	ErrInvalidIndex   = errors.New("index out of range")
	ErrNotReorderable = errors.New("section cannot be reordered")
	ErrNameRequired   = errors.New("name is required")
	ErrCancelled      = errors.New("cancelled")
)

const (
	msgSaved     = "저장되었습니다."
	msgNoData    = "저장된 데이터가 없습니다."
	msgLoaded    = "불러오기 완료"
	msgLoadError = "불러오기 실패: 형식 오류 또는 저장 내용이 잘못되었습니다."
)

// Schema describes one section: where it lives, how its records are made,
// edited, decoded and displayed.
type Schema[T models.Record] struct {
	Name string
	Key  string
	// FallbackKeys are read, in order, when Key holds nothing. They are never written.
	FallbackKeys []string

	// New returns a record with default fields, a fresh id, and the current
	// items for sections whose default depends on them.
	New    func(existing []T) T
	WithID func(rec T, id string) T
	Set    func(rec *T, field, value string) error
	Decode func(raw interface{}) (T, error)

	// Fields lists the editable fields in display order.
	Fields  []string
	// Columns names the Row cells when they differ from Fields.
	Columns []string
	Row     func(rec T) []string

	// Amount is summed by Total; nil means the section has no total.
	Amount func(rec T) float64
	// Same reports a uniqueness conflict; nil means duplicates are allowed.
	Same func(a, b T) bool

	Reorderable bool
	Autosave    bool
	Policy      persist.Policy
	// Seed is the initial content before anything is loaded.
	Seed func() []T
}

// Store holds one section's records. Safe for concurrent use; overlapping
// writers are last-writer-wins.
type Store[T models.Record] struct {
	schema  Schema[T]
	adapter *persist.Adapter

	mu    sync.Mutex
	items []T

	// save and load replace key-based persistence for collections embedded
	// in a larger document.
	save func(items []T) error
	load func() ([]T, persist.LoadReport, error)
}

func NewStore[T models.Record](schema Schema[T], adapter *persist.Adapter) *Store[T] {
	s := &Store[T]{schema: schema, adapter: adapter}
	if schema.Seed != nil {
		s.items = schema.Seed()
	}
	return s
}

func (s *Store[T]) Name() string { return s.schema.Name }
func (s *Store[T]) Key() string  { return s.schema.Key }

// Fields returns the editable field names in display order.
func (s *Store[T]) Fields() []string {
	return append([]string(nil), s.schema.Fields...)
}

// Columns names the cells of each row after the id.
func (s *Store[T]) Columns() []string {
	if s.schema.Columns != nil {
		return append([]string(nil), s.schema.Columns...)
	}
	return s.Fields()
}

func (s *Store[T]) Autosave() bool    { return s.schema.Autosave }
func (s *Store[T]) Reorderable() bool { return s.schema.Reorderable }
func (s *Store[T]) HasTotal() bool    { return s.schema.Amount != nil }

// Items returns a copy of the records in display order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// IDAt returns the id of the record shown at position index.
func (s *Store[T]) IDAt(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return "", false
	}
	return s.items[index].RecordID(), true
}

// Rows renders every record as display cells, id first.
func (s *Store[T]) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]string, 0, len(s.items))
	for _, rec := range s.items {
		rows = append(rows, append([]string{rec.RecordID()}, s.schema.Row(rec)...))
	}
	return rows
}

func (s *Store[T]) indexOf(id string) int {
	for i, rec := range s.items {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) conflicts(rec T, skip int) bool {
	if s.schema.Same == nil {
		return false
	}
	for i, other := range s.items {
		if i != skip && s.schema.Same(rec, other) {
			return true
		}
	}
	return false
}

// Add appends a record with default fields and a fresh id.
func (s *Store[T]) Add() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(s.schema.New(s.items))
}

// Insert appends a prepared record under a fresh id.
func (s *Store[T]) Insert(rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(s.schema.WithID(rec, models.NewID()))
}

func (s *Store[T]) insert(rec T) (T, error) {
	if s.conflicts(rec, -1) {
		var zero T
		return zero, ErrDuplicate
	}
	s.items = append(s.items, rec)
	return rec, s.autosave()
}

// AddDefault is Add for callers that only need the new id.
func (s *Store[T]) AddDefault() (string, error) {
	rec, err := s.Add()
	return rec.RecordID(), err
}

// Update sets one field of the record with id. A stale id is a silent no-op.
func (s *Store[T]) Update(id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := s.items[i]
	if err := s.schema.Set(&next, field, value); err != nil {
		return err
	}
	if s.conflicts(next, i) {
		return ErrDuplicate
	}
	s.items[i] = next
	return s.autosave()
}

// Remove deletes the record with id and reports whether it existed. The
// record stays removed in memory when the autosave fails.
func (s *Store[T]) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true, s.autosave()
}

// Reorder moves the record at from to position to.
func (s *Store[T]) Reorder(from, to int) error {
	if !s.schema.Reorderable {
		return ErrNotReorderable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d items", ErrInvalidIndex, from, to, n)
	}
	if from == to {
		return nil
	}
	moved := s.items[from]
	rest := append(s.items[:from:from], s.items[from+1:]...)
	out := make([]T, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	s.items = out
	return s.autosave()
}

// Total sums the section's numeric field. Non-finite amounts count as 0.
func (s *Store[T]) Total() float64 {
	if s.schema.Amount == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, rec := range s.items {
		total += validate.Finite(s.schema.Amount(rec))
	}
	return total
}

// Replace swaps the whole collection, as a bulk import does.
func (s *Store[T]) Replace(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), items...)
	return s.autosave()
}

// Append adds records after the existing ones.
func (s *Store[T]) Append(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	return s.autosave()
}

func (s *Store[T]) autosave() error {
	if !s.schema.Autosave {
		return nil
	}
	return s.persist()
}

func (s *Store[T]) persist() error {
	snapshot := append([]T{}, s.items...)
	if s.save != nil {
		return s.save(snapshot)
	}
	return s.adapter.Save(s.schema.Key, snapshot)
}

// Save writes the collection. In-memory state is kept on failure.
func (s *Store[T]) Save() error {
	s.mu.Lock()
	err := s.persist()
	s.mu.Unlock()
	if err == nil {
		s.adapter.Notifier().Info(msgSaved)
	}
	return err
}

func (s *Store[T]) read() ([]T, persist.LoadReport, error) {
	if s.load != nil {
		return s.load()
	}
	keys := append([]string{s.schema.Key}, s.schema.FallbackKeys...)
	var (
		items  []T
		report persist.LoadReport
		err    error
	)
	for _, key := range keys {
		items, report, err = persist.LoadList(s.adapter, key, s.schema.Decode, s.schema.Policy)
		if !errors.Is(err, persist.ErrNoData) {
			break
		}
	}
	return items, report, err
}

// Load replaces the collection with the persisted one and tells the user how
// it went. On any error the collection is unchanged.
func (s *Store[T]) Load() (persist.LoadReport, error) {
	report, err := s.Open()
	notify := s.adapter.Notifier()
	switch {
	case err == nil:
		notify.Info(msgLoaded)
	case errors.Is(err, persist.ErrNoData):
		notify.Info(msgNoData)
	case errors.Is(err, persist.ErrCorrupt):
		notify.Warn(msgLoadError)
	}
	return report, err
}

// Open is Load without user notifications, for restoring state at startup.
func (s *Store[T]) Open() (persist.LoadReport, error) {
	items, report, err := s.read()
	if err != nil {
		return report, err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	if report.Dropped > 0 {
		s.adapter.Logger().Warn("dropped invalid records", "section", s.schema.Name, "key", report.Key, "dropped", report.Dropped)
	}
	return report, nil
}
