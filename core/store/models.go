package store

import (
	"time"

	"feedme/core/feed"
	"feedme/core/reconcile"
)

// EntryRecord is the row backing one entry.
type EntryRecord struct {
	ID        uint        `gorm:"primaryKey"`
	Grid      string      `gorm:"column:grid;size:255;not null;uniqueIndex"`
	Source    string      `gorm:"size:255"`
	Published time.Time   `gorm:"index"`
	Title     string      `gorm:"size:1024"`
	Summary   string      `gorm:"type:text"`
	URL       string      `gorm:"size:2048"`
	Status    feed.Status `gorm:"not null;default:1;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the GORM default.
func (EntryRecord) TableName() string {
	return "entries"
}

// Continuation is the stored pagination cursor of one account.
type Continuation struct {
	Account   string `gorm:"primaryKey;size:191"`
	Token     string `gorm:"size:1024;not null"`
	UpdatedAt time.Time
}

// TableName overrides the GORM default.
func (Continuation) TableName() string {
	return "continuations"
}

func recordFromEntry(e feed.Entry) EntryRecord {
	return EntryRecord{
		Grid:      e.ExternalID,
		Source:    e.Source,
		Published: e.PublishedAt.UTC(),
		Title:     e.Title,
		Summary:   e.Summary,
		URL:       e.URL,
		Status:    e.Status,
	}
}

// entryColumns is the full overwrite applied by an update action.
func entryColumns(e feed.Entry) map[string]any {
	return map[string]any{
		"grid":      e.ExternalID,
		"source":    e.Source,
		"published": e.PublishedAt.UTC(),
		"title":     e.Title,
		"summary":   e.Summary,
		"url":       e.URL,
		"status":    e.Status,
	}
}

func (r EntryRecord) stored() reconcile.StoredRecord {
	return reconcile.StoredRecord{
		LocalID: r.ID,
		Entry: feed.Entry{
			ExternalID:  r.Grid,
			Source:      r.Source,
			PublishedAt: r.Published.UTC(),
			Title:       r.Title,
			Summary:     r.Summary,
			URL:         r.URL,
			Status:      r.Status,
		},
	}
}
