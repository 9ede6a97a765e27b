package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Membership roles. Admin impersonation is not a role, it is a
// session-scoped flag resolved at request time.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

/*
 * 'PlaygroupMember' links a User to a Playgroup with a role.
 */
type PlaygroupMember struct {
	// NOTE: composite primary key definition
	PlaygroupID string    `gorm:"primaryKey;size:36;not null"`
	UserID      string    `gorm:"primaryKey;size:36;not null;index"`
	Role        string    `gorm:"size:10;not null;default:'member'"`
	JoinedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Playgroup Playgroup `gorm:"foreignKey:PlaygroupID"`
	User      User      `gorm:"foreignKey:UserID"`
}

// GORM hook to reject unknown roles before they reach the database
func (m *PlaygroupMember) BeforeSave(tx *gorm.DB) error {
	if m.Role != RoleOwner && m.Role != RoleMember {
		return errors.New("invalid membership role: " + m.Role)
	}
	return nil
}
