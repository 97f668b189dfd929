package history

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// MemoryStore keeps history in a slice, most recent first. Used when the
// database is unavailable and by ephemeral sessions.
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	records []domain.HistoryRecord
}

// NewMemoryStore builds a store bounded at limit entries.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &MemoryStore{limit: limit}
}

// Record implements ports.HistoryRepository.
func (s *MemoryStore) Record(rec domain.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Move an exact duplicate to the front instead of repeating it.
	for i, existing := range s.records {
		if existing.Input == rec.Input {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.records = append([]domain.HistoryRecord{rec}, s.records...)
	if len(s.records) > s.limit {
		s.records = s.records[:s.limit]
	}
	return nil
}

// Inputs implements ports.HistoryRepository.
func (s *MemoryStore) Inputs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inputs := make([]string, len(s.records))
	for i, rec := range s.records {
		inputs[i] = rec.Input
	}
	return inputs, nil
}

// Records implements ports.HistoryRepository.
func (s *MemoryStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.HistoryRecord
	for _, rec := range s.records {
		if search != "" && !strings.Contains(rec.Input, search) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Clear implements ports.HistoryRepository.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

var _ ports.HistoryRepository = (*MemoryStore)(nil)
