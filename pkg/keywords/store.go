package keywords

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rankwatch/rankwatch/pkg/db/models"
)

// RefreshUpdate is the persisted outcome of one refresh attempt. JSON-typed
// columns carry their already-serialized value; LastUpdated is only written
// when non-nil so failed attempts keep the previous success timestamp.
type RefreshUpdate struct {
	Position        int
	URL             *string
	LastResult      string
	History         string
	LastUpdated     *string
	LastUpdateError string
	MapPackTop3     bool
}

// Store is the gorm-backed keyword store.
type Store struct {
	mu     sync.RWMutex
	logger *logrus.Logger
	db     *gorm.DB
}

// NewStore creates a keyword store on the given database handle.
func NewStore(logger *logrus.Logger, db *gorm.DB) *Store {
	return &Store{logger: logger, db: db}
}

// FindByIDs loads the keywords with the given IDs as normalized domain
// values.
func (s *Store) FindByIDs(ctx context.Context, ids []uint) ([]Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		return []Keyword{}, nil
	}

	var rows []models.Keyword
	if err := s.db.WithContext(ctx).Where(`"ID" IN ?`, ids).Find(&rows).Error; err != nil {
		s.logger.WithError(err).Error("Failed to load keywords by ID")
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	return ParseKeywords(rows), nil
}

// FindByDomain loads every keyword tracked for the given domain.
func (s *Store) FindByDomain(ctx context.Context, domain string) ([]Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []models.Keyword
	if err := s.db.WithContext(ctx).Where("domain = ?", domain).Find(&rows).Error; err != nil {
		s.logger.WithError(err).WithField("domain", domain).Error("Failed to load keywords for domain")
		return nil, fmt.Errorf("failed to load keywords for domain %s: %w", domain, err)
	}
	return ParseKeywords(rows), nil
}

// FindAll loads every tracked keyword.
func (s *Store) FindAll(ctx context.Context) ([]Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []models.Keyword
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		s.logger.WithError(err).Error("Failed to load keywords")
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	return ParseKeywords(rows), nil
}

// MarkUpdating flags the given keywords as having a refresh in flight, in one
// batched update.
func (s *Store) MarkUpdating(ctx context.Context, ids []uint) error {
	return s.setUpdating(ctx, ids, true)
}

// ClearUpdating resets the in-flight flag for the given keywords in one
// batched update.
func (s *Store) ClearUpdating(ctx context.Context, ids []uint) error {
	return s.setUpdating(ctx, ids, false)
}

func (s *Store) setUpdating(ctx context.Context, ids []uint, updating bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&models.Keyword{}).
		Where(`"ID" IN ?`, ids).
		Update("updating", updating).Error
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"keywords": len(ids),
			"updating": updating,
		}).Error("Failed to update keyword updating flag")
		return fmt.Errorf("failed to update keyword updating flag: %w", err)
	}
	return nil
}

// ClearUpdatingWithError resets the in-flight flag for one keyword and, when
// errRecord is non-empty, stores it as the last update error in the same
// write.
func (s *Store) ClearUpdatingWithError(ctx context.Context, id uint, errRecord string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{"updating": false}
	if errRecord != "" {
		fields["lastUpdateError"] = errRecord
	}

	err := s.db.WithContext(ctx).
		Model(&models.Keyword{}).
		Where(`"ID" = ?`, id).
		Updates(fields).Error
	if err != nil {
		s.logger.WithError(err).WithField("keyword_id", id).Error("Failed to clear keyword updating flag")
		return fmt.Errorf("failed to clear updating flag for keyword %d: %w", id, err)
	}
	return nil
}

// SaveRefresh persists the outcome of one refresh attempt and always clears
// the in-flight flag alongside it.
func (s *Store) SaveRefresh(ctx context.Context, id uint, update RefreshUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{
		"position":        update.Position,
		"updating":        false,
		"url":             update.URL,
		"lastResult":      update.LastResult,
		"history":         update.History,
		"lastUpdateError": update.LastUpdateError,
		"mapPackTop3":     update.MapPackTop3,
	}
	if update.LastUpdated != nil {
		fields["lastUpdated"] = *update.LastUpdated
	}

	err := s.db.WithContext(ctx).
		Model(&models.Keyword{}).
		Where(`"ID" = ?`, id).
		Updates(fields).Error
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"keyword_id": id,
			"position":   update.Position,
		}).Error("Failed to save keyword refresh")
		return fmt.Errorf("failed to save refresh for keyword %d: %w", id, err)
	}

	s.logger.WithFields(logrus.Fields{
		"keyword_id": id,
		"position":   update.Position,
	}).Debug("Keyword refresh saved")
	return nil
}
