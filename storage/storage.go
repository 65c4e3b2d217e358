// File: storage/storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// BestTimesStore persists per-level best completion times. Both operations
// are best-effort: failures are reported to the log and otherwise swallowed,
// because losing best-time history must never disturb the simulation.
type BestTimesStore interface {
	Load() map[int]time.Duration
	Save(times map[int]time.Duration)
}

// FileStore keeps best times in a JSON file. Safe for use by multiple game
// rooms concurrently.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the best-times file. A missing or corrupt file yields an empty
// map, treated as "no best time recorded".
func (s *FileStore) Load() map[int]time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	times := make(map[int]time.Duration)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("storage: could not read best times from %s: %v\n", s.path, err)
		}
		return times
	}
	if err := json.Unmarshal(data, &times); err != nil {
		fmt.Printf("storage: corrupt best times file %s: %v\n", s.path, err)
		return make(map[int]time.Duration)
	}
	return times
}

// Save writes the best-times file, replacing previous contents.
func (s *FileStore) Save(times map[int]time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(times)
	if err != nil {
		fmt.Printf("storage: could not marshal best times: %v\n", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		fmt.Printf("storage: could not write best times to %s: %v\n", s.path, err)
	}
}

// NoopStore discards everything. Used when persistence is disabled and as a
// stand-in for unsupported platforms.
type NoopStore struct{}

func (NoopStore) Load() map[int]time.Duration { return make(map[int]time.Duration) }
func (NoopStore) Save(map[int]time.Duration)  {}
