package models

import (
	"github.com/lib/pq"
)

// Keyword represents the database row for a tracked keyword. JSON-shaped
// fields (history, lastResult, lastUpdateError) are stored as text and
// normalized by the keywords package when loaded; legacy rows may carry
// array-shaped history or stringified booleans from older installations.
type Keyword struct {
	ID      uint   `gorm:"primaryKey;column:ID;autoIncrement"`
	Keyword string `gorm:"column:keyword;not null"`
	Device  string `gorm:"column:device;not null;default:desktop"`
	Country string `gorm:"column:country;not null;default:US"`
	// Location is a free-text "city,state,countryCode" triple, empty when the
	// keyword targets a whole country.
	Location string `gorm:"column:location;default:''"`
	Domain   string `gorm:"column:domain;not null;index"`

	// Ranking state
	Position int     `gorm:"column:position;default:0"`
	URL      *string `gorm:"column:url"`
	History  string  `gorm:"column:history;type:text;default:'{}'"`

	// Last provider response, serialized list of organic results
	LastResult string `gorm:"column:lastResult;type:text;default:'[]'"`

	// Operational fields
	Tags            pq.StringArray `gorm:"column:tags;type:text[]"`
	Volume          int            `gorm:"column:volume;default:0"`
	Sticky          bool           `gorm:"column:sticky;default:false"`
	Updating        bool           `gorm:"column:updating;default:false"`
	Added           string         `gorm:"column:added"`
	LastUpdated     string         `gorm:"column:lastUpdated"`
	LastUpdateError string         `gorm:"column:lastUpdateError;default:'false'"`
	MapPackTop3     bool           `gorm:"column:mapPackTop3;not null;default:false"`
}

// TableName specifies the table name for the Keyword model
func (Keyword) TableName() string {
	return "keyword"
}
