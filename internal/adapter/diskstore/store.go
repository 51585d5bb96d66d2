// Package diskstore persists the daily usage counter with diskv.
package diskstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/couchcryptid/radiooperator-site/internal/usage"
)

const counterKey = "api_counter"

// Store implements usage.Store. The counter is kept as "date,count".
type Store struct {
	d *diskv.Diskv
}

// New opens a store rooted at basePath.
func New(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 4 * 1024,
	})}
}

// Load returns the zero Counter when nothing has been saved yet.
func (s *Store) Load() (usage.Counter, error) {
	if !s.d.Has(counterKey) {
		return usage.Counter{}, nil
	}
	raw, err := s.d.Read(counterKey)
	if err != nil {
		return usage.Counter{}, fmt.Errorf("read %s: %w", counterKey, err)
	}
	return parseCounter(string(raw))
}

// Save overwrites the stored counter.
func (s *Store) Save(c usage.Counter) error {
	if err := s.d.Write(counterKey, []byte(formatCounter(c))); err != nil {
		return fmt.Errorf("write %s: %w", counterKey, err)
	}
	return nil
}

func formatCounter(c usage.Counter) string {
	return c.Date + "," + strconv.Itoa(c.Count)
}

func parseCounter(s string) (usage.Counter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return usage.Counter{}, nil
	}
	date, count, ok := strings.Cut(s, ",")
	if !ok {
		return usage.Counter{}, fmt.Errorf("malformed counter %q", s)
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return usage.Counter{}, fmt.Errorf("malformed counter %q", s)
	}
	return usage.Counter{Date: date, Count: n}, nil
}
