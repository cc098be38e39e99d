package core

import "time"

// Snapshot is one saved revision of an owner's crontab.
type Snapshot struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Owner     string    `gorm:"index;size:255;not null"`
	Content   string    `gorm:"type:text"`
	Jobs      int       `gorm:"default:0"` // valid jobs in Content
	Lines     int       `gorm:"default:0"` // rendered lines in Content
	Source    string    `gorm:"size:20"`   // "load", "commit" or "restore"
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
}

// Snapshot sources
const (
	SourceLoad    = "load"
	SourceCommit  = "commit"
	SourceRestore = "restore"
)
