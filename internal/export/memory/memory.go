// Package memory provides an in-memory SheetWriter for tests and local runs
// without a Google Sheets backend.
package memory

import (
	"context"
	"sync"

	"infogastos/internal/export"
)

type Store struct {
	mu       sync.Mutex
	writes   int
	lastName string
	sheets   map[string][]export.Sheet
}

var _ export.SheetWriter = (*Store)(nil)

func New() *Store {
	return &Store{sheets: make(map[string][]export.Sheet)}
}

// WriteSheets records the export under its title.
func (s *Store) WriteSheets(_ context.Context, title string, sheets []export.Sheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]export.Sheet, len(sheets))
	copy(copied, sheets)
	s.sheets[title] = copied
	s.lastName = title
	s.writes++
	return nil
}

// Sheets returns the last sheets written under a title.
func (s *Store) Sheets(title string) []export.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheets[title]
}

// LastTitle returns the title of the most recent export.
func (s *Store) LastTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastName
}

// Writes returns how many exports were recorded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
