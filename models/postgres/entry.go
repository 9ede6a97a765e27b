package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Entry' records one win: which player won which game on which date.
 * The *ByName audit columns store display names at write time so the
 * audit trail survives account renames and deletions.
 */
type Entry struct {
	ID            string    `gorm:"primaryKey;size:36;not null"`
	PlaygroupID   string    `gorm:"size:36;not null;index:idx_entries_playgroup"`
	GameID        string    `gorm:"size:36;not null;index"`
	PlayerID      string    `gorm:"size:36;not null;index"`
	Date          time.Time `gorm:"not null;index:idx_entries_date"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time
	CreatedByName string `gorm:"size:100"`
	UpdatedByName string `gorm:"size:100"`

	// Relationships
	Playgroup Playgroup `gorm:"foreignKey:PlaygroupID"`
	Game      Game      `gorm:"foreignKey:GameID"`
	Player    Player    `gorm:"foreignKey:PlayerID"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
