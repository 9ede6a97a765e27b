package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'User' contains the blueprint definition of an account. Identities are
 * referenced everywhere else by their opaque ID, never by email.
 */
type User struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:100"`
	// Favourite game shown on the user's leaderboard card; empty when unset.
	FavouriteGame string    `gorm:"size:100"`
	MemberSince   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Memberships []PlaygroupMember `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
