package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Game' is a board game registered inside one playgroup.
 */
type Game struct {
	ID          string `gorm:"primaryKey;size:36;not null"`
	PlaygroupID string `gorm:"size:36;not null;index:idx_games_playgroup"`
	Name        string `gorm:"size:100;not null"`

	// Relationships
	Playgroup Playgroup     `gorm:"foreignKey:PlaygroupID"`
	Metadata  *GameMetadata `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Entries   []Entry       `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
