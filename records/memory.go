package records

import (
	"context"
	"sync"
)

// MemoryStore keeps rows in process memory. A non-nil Err makes every
// Append fail with it.
type MemoryStore struct {
	mu     sync.Mutex
	header []string
	rows   [][]string
	Err    error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{header: append([]string(nil), Header...)}
}

func (s *MemoryStore) Append(ctx context.Context, row []string) error {
	if s.Err != nil {
		return s.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

func (s *MemoryStore) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, 0, len(s.rows)+1)
	out = append(out, append([]string(nil), s.header...))
	for _, row := range s.rows {
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
