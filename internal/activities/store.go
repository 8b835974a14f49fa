// Package activities records the category lists submitted for itineraries in
// a JSON file.
package activities

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFilePath is where activity records are stored.
const DefaultFilePath = "data/activities.json"

// File represents the on-disk format.
type File struct {
	Records []Record `json:"records"`
}

// Record is one accepted submission of categories for an itinerary.
type Record struct {
	ID          string    `json:"id"`
	ItineraryID string    `json:"itineraryId"`
	Categories  []string  `json:"categories"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Store persists records to a single JSON file.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// Option customises a Store.
type Option func(*Store)

// WithNow injects the clock used for SubmittedAt.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a store backed by path, or DefaultFilePath when empty.
func NewStore(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultFilePath
	}
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append stores a record, generating its ID and timestamp when unset.
func (s *Store) Append(record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return Record{}, err
	}
	saved := record
	saved.Categories = append([]string{}, record.Categories...)
	if saved.ID == "" {
		saved.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if saved.SubmittedAt.IsZero() {
		saved.SubmittedAt = s.now().UTC()
	}
	file.Records = append(file.Records, saved)
	if err := s.write(file); err != nil {
		return Record{}, err
	}
	return saved, nil
}

// List returns every record in submission order.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}
	return cloneRecords(file.Records), nil
}

// ListByItinerary returns the records for a single itinerary.
func (s *Store) ListByItinerary(itineraryID string) ([]Record, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if r.ItineraryID == itineraryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		r.Categories = append([]string{}, r.Categories...)
		out[i] = r
	}
	return out
}

func (s *Store) read() (File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{Records: []Record{}}, nil
		}
		return File{}, err
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("decode activities file: %w", err)
	}
	if file.Records == nil {
		file.Records = []Record{}
	}
	return file, nil
}

func (s *Store) write(file File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create activities dir: %w", err)
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode activities file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write activities file: %w", err)
	}
	return nil
}
