package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dlifeofjay/payslip/internal/entity"
)

// Session owns the working batch for one operator: the ordered set of
// extracted records pending review and confirmation. It is the only
// mutable working set; confirmed records live in the ledgers.
type Session struct {
	ID uuid.UUID

	mu    sync.Mutex
	batch []entity.ExtractedRecord
}

func New() *Session {
	return &Session{ID: uuid.New()}
}

// Append adds newly extracted records to the end of the batch.
func (s *Session) Append(records ...entity.ExtractedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = append(s.batch, records...)
}

// Replace swaps the whole batch for the reviewer's edited table. Row
// insertion and deletion on the review surface land here as a wholesale
// replacement.
func (s *Session) Replace(records []entity.ExtractedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = append([]entity.ExtractedRecord(nil), records...)
}

// Snapshot returns a copy of the batch in extraction order.
func (s *Session) Snapshot() []entity.ExtractedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ExtractedRecord(nil), s.batch...)
}

// Clear empties the batch. Only session termination does this; a confirm
// leaves the batch in place, as the operator may keep uploading.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = nil
}

// Len reports the number of records in the batch.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batch)
}
