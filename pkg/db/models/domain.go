package models

// Domain represents a tracked website. When ScrapeEnabled is false every
// keyword belonging to the domain is skipped by the refresh engine and purged
// from the retry queue.
type Domain struct {
	ID            uint   `gorm:"primaryKey;column:ID;autoIncrement"`
	Domain        string `gorm:"column:domain;uniqueIndex;not null"`
	Slug          string `gorm:"column:slug"`
	Added         string `gorm:"column:added"`
	KeywordCount  int    `gorm:"column:keywordCount;default:0"`
	LastUpdated   string `gorm:"column:lastUpdated"`
	ScrapeEnabled bool   `gorm:"column:scrapeEnabled;not null;default:true"`
}

// TableName specifies the table name for the Domain model
func (Domain) TableName() string {
	return "domain"
}
