package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Player' is a meeple: a player record within one playgroup. A player may
 * be claimed by a user account, which links win history across campaigns.
 * The unique index enforces at most one claimed player per user per
 * playgroup; the partial NULL semantics of PostgreSQL leave unclaimed
 * players unconstrained.
 */
type Player struct {
	ID          string  `gorm:"primaryKey;size:36;not null"`
	PlaygroupID string  `gorm:"size:36;not null;index:idx_players_playgroup;uniqueIndex:idx_players_claim"`
	Name        string  `gorm:"size:100;not null"`
	ClaimedBy   *string `gorm:"size:36;uniqueIndex:idx_players_claim"`

	// Relationships
	Playgroup Playgroup       `gorm:"foreignKey:PlaygroupID"`
	Metadata  *PlayerMetadata `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Entries   []Entry         `gorm:"foreignKey:PlayerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
