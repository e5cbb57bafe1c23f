package facility

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyID is returned when a record has a blank id.
	ErrEmptyID = errors.New("facility: empty id")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("facility: duplicate id")
	// ErrNegativeViews is returned when a record carries a negative view count.
	ErrNegativeViews = errors.New("facility: negative views")
)

// Store is the immutable, ordered set of facility records and the selectable category
// labels. It is built once at startup and only read afterwards, so it is safe for
// concurrent use without locking.
type Store struct {
	records    []Record
	categories []string
	index      map[string]int
}

// NewStore validates records and labels and returns a read-only Store. The "all"
// sentinel is always placed first in Categories; duplicate or blank labels are dropped.
func NewStore(records []Record, categories []string) (*Store, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrEmptyID)
		}
		if prev, ok := index[id]; ok {
			return nil, fmt.Errorf("record %d %q (first at %d): %w", i, id, prev, ErrDuplicateID)
		}
		if r.Views < 0 {
			return nil, fmt.Errorf("record %q: %w", id, ErrNegativeViews)
		}
		index[id] = i
	}

	labels := []string{All}
	seen := map[string]struct{}{All: {}}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		labels = append(labels, c)
	}

	return &Store{
		records:    cloneRecords(records),
		categories: labels,
		index:      index,
	}, nil
}

// AllRecords returns every record in construction order. Callers receive a copy.
func (s *Store) AllRecords() []Record {
	if s == nil {
		return []Record{}
	}
	return cloneRecords(s.records)
}

// Categories returns the selectable labels, "all" first.
func (s *Store) Categories() []string {
	if s == nil {
		return []string{All}
	}
	return append([]string(nil), s.categories...)
}

// Find returns the record with the given id.
func (s *Store) Find(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	i, ok := s.index[strings.TrimSpace(id)]
	if !ok {
		return Record{}, false
	}
	return cloneRecord(s.records[i]), true
}

// Len reports the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
