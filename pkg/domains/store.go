// Package domains exposes the tracked-domain store. The refresh engine only
// needs it to answer one question: which domains still allow scraping.
package domains

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rankwatch/rankwatch/pkg/db/models"
)

// Store is the gorm-backed domain store.
type Store struct {
	mu     sync.RWMutex
	logger *logrus.Logger
	db     *gorm.DB
}

// NewStore creates a domain store on the given database handle.
func NewStore(logger *logrus.Logger, db *gorm.DB) *Store {
	return &Store{logger: logger, db: db}
}

// ScrapePermissions resolves the scrape-enabled flag for the given domain
// names in one query. Names with no matching row are absent from the result;
// the caller decides how to treat unknown domains.
func (s *Store) ScrapePermissions(ctx context.Context, names []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	permissions := make(map[string]bool, len(names))
	if len(names) == 0 {
		return permissions, nil
	}

	var rows []models.Domain
	err := s.db.WithContext(ctx).
		Select("domain", `"scrapeEnabled"`).
		Where("domain IN ?", names).
		Find(&rows).Error
	if err != nil {
		s.logger.WithError(err).Error("Failed to load domain scrape permissions")
		return nil, fmt.Errorf("failed to load domain scrape permissions: %w", err)
	}

	for _, row := range rows {
		permissions[row.Domain] = row.ScrapeEnabled
	}
	return permissions, nil
}

// FindAll loads every tracked domain.
func (s *Store) FindAll(ctx context.Context) ([]models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []models.Domain
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		s.logger.WithError(err).Error("Failed to load domains")
		return nil, fmt.Errorf("failed to load domains: %w", err)
	}
	return rows, nil
}
