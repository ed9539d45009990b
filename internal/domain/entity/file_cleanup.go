package entity

import "time"

// FileCleanup records an attachment file whose removal failed and must be retried.
type FileCleanup struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Path      string    `gorm:"not null" json:"path"`
	Attempts  int       `gorm:"not null" json:"attempts"`
	LastError string    `json:"lastError"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
