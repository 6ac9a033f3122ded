// ABOUTME: Singleton store for the project summary
// ABOUTME: Fields are only edited or cleared; the record itself is never removed

package section

import (
	"errors"
	"sync"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/validate"
)

// SummaryFields lists the summary fields in display order.
var SummaryFields = []string{"background", "objective", "strategy", "expectedEffect"}

type SummaryStore struct {
	adapter *persist.Adapter

	mu      sync.Mutex
	summary models.Summary
}

func NewSummaryStore(adapter *persist.Adapter) *SummaryStore {
	return &SummaryStore{adapter: adapter}
}

func (s *SummaryStore) Get() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *SummaryStore) Set(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.summary
	if err := validate.SetSummaryField(&next, field, value); err != nil {
		return err
	}
	s.summary = next
	return nil
}

func (s *SummaryStore) Save() error {
	s.mu.Lock()
	err := s.adapter.Save(models.KeySummary, s.summary)
	s.mu.Unlock()
	if err == nil {
		s.adapter.Notifier().Info("요약 내용이 저장되었습니다.")
	}
	return err
}

func (s *SummaryStore) Load() error {
	err := s.Open()
	switch {
	case err == nil:
		s.adapter.Notifier().Info("저장된 요약 내용을 불러왔습니다.")
	case errors.Is(err, persist.ErrNoData):
		s.adapter.Notifier().Info("저장된 요약 내용이 없습니다.")
	case errors.Is(err, persist.ErrCorrupt):
		s.adapter.Notifier().Warn(msgLoadError)
	}
	return err
}

// Open restores the persisted summary without notifying.
func (s *SummaryStore) Open() error {
	raw, err := s.adapter.Read(models.KeySummary)
	if err != nil {
		return err
	}
	summary, err := validate.Summary(raw)
	if err != nil {
		return errors.Join(persist.ErrCorrupt, err)
	}
	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
	return nil
}

// Clear empties every field after confirmation and persists the empty
// record. It reports whether anything was cleared.
func (s *SummaryStore) Clear(confirm prompt.Confirmer) (bool, error) {
	if !confirm.Confirm("정말 요약 내용을 모두 삭제하시겠습니까?") {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = models.Summary{}
	return true, s.adapter.Save(models.KeySummary, s.summary)
}
