package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Announcement' is an admin broadcast shown to every campaign.
 */
type Announcement struct {
	ID          string    `gorm:"primaryKey;size:36;not null"`
	Message     string    `gorm:"type:text;not null"`
	PublishedBy string    `gorm:"size:100"`
	PublishedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
