package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Playgroup' is an isolated campaign scope containing its own players,
 * games and win entries. It is referenced by PlaygroupMember, Player,
 * Game, Entry and InviteToken.
 */
type Playgroup struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null;index:idx_playgroups_name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Members []PlaygroupMember `gorm:"foreignKey:PlaygroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Players []Player          `gorm:"foreignKey:PlaygroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Games   []Game            `gorm:"foreignKey:PlaygroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Entries []Entry           `gorm:"foreignKey:PlaygroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (p *Playgroup) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
