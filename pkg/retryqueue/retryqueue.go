// Package retryqueue maintains the durable set of keyword IDs awaiting a
// re-attempt after a failed, retry-enabled refresh. The backing store is a
// single JSON array file; one Store instance owns the file and serializes
// every read-modify-write cycle behind its mutex so concurrent
// normalizations cannot clobber each other.
package retryqueue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultPath is where the pending-retry queue is persisted.
const DefaultPath = "data/failed_queue.json"

// Store is the durable retry queue. All operations are safe for concurrent
// use as long as every caller shares the same instance.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *logrus.Logger
}

// NewStore creates a retry queue backed by the file at path (DefaultPath
// when empty).
func NewStore(path string, logger *logrus.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, logger: logger}
}

// List returns the queued keyword IDs. A missing queue file is the expected
// cold-start state and yields an empty queue without error.
func (s *Store) List() ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add ensures the given keyword ID is queued, avoiding duplicates. A read
// failure other than "file missing" aborts without writing so a corrupt
// queue is never silently replaced.
func (s *Store) Add(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, err := s.read()
	if err != nil {
		s.logger.WithError(err).Error("Failed to read retry queue")
		return err
	}

	for _, queued := range queue {
		if queued == id {
			return nil
		}
	}

	queue = append(queue, id)
	if err := s.write(queue); err != nil {
		s.logger.WithError(err).WithField("keyword_id", id).Error("Failed to update retry queue")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"keyword_id": id,
		"queued":     len(queue),
	}).Debug("Keyword queued for retry")
	return nil
}

// Remove drops a single keyword ID from the queue; absent IDs are a no-op.
func (s *Store) Remove(id uint) error {
	return s.RemoveMany([]uint{id})
}

// RemoveMany drops the given keyword IDs from the queue in one
// read-modify-write cycle. The file is written back only when the filtered
// queue actually shrank; read failures other than "file missing" are logged
// and the operation aborts without writing.
func (s *Store) RemoveMany(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queue, err := s.read()
	if err != nil {
		s.logger.WithError(err).Error("Failed to update retry queue")
		return nil
	}
	if len(queue) == 0 {
		return nil
	}

	toRemove := make(map[uint]bool, len(ids))
	for _, id := range ids {
		toRemove[id] = true
	}

	filtered := queue[:0]
	for _, queued := range queue {
		if !toRemove[queued] {
			filtered = append(filtered, queued)
		}
	}

	if len(filtered) == len(queue) {
		return nil
	}

	if err := s.write(filtered); err != nil {
		s.logger.WithError(err).Error("Failed to update retry queue")
		return err
	}
	return nil
}

func (s *Store) read() ([]uint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []uint{}, nil
		}
		return nil, err
	}

	var queue []uint
	if err := json.Unmarshal(data, &queue); err != nil {
		return nil, err
	}
	if queue == nil {
		queue = []uint{}
	}
	return queue, nil
}

func (s *Store) write(queue []uint) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(queue)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
