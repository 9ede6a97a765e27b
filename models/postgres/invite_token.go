package postgres

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

/*
 * 'InviteToken' is an opaque join link bound to exactly one playgroup.
 * Resolving a token (reading the campaign name and validity) requires no
 * authentication; redeeming it creates a PlaygroupMember row and bumps
 * the use count.
 */
type InviteToken struct {
	Token       string    `gorm:"primaryKey;size:50;not null"`
	PlaygroupID string    `gorm:"size:36;not null;index:idx_invite_tokens_playgroup"`
	CreatedBy   string    `gorm:"size:36;not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	MaxUses     int       `gorm:"default:10"`
	UseCount    int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Playgroup Playgroup `gorm:"foreignKey:PlaygroupID;constraint:OnDelete:CASCADE"`
	Creator   User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
}

// Random token generation
const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const tokenLength = 20

func generateToken(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenCharset[rand.Intn(len(tokenCharset))]
	}
	return string(b)
}

// Ensure the token is truly unique before insert
func (t *InviteToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.Token != "" {
		return nil
	}
	for {
		newToken := generateToken(tokenLength)
		var existing InviteToken
		if err := tx.Where("token = ?", newToken).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				t.Token = newToken
				return nil
			}
			return err
		}
		// Collision, loop again with a fresh token
	}
}

// Expired reports whether the token is past its expiry timestamp.
func (t *InviteToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Exhausted reports whether a capped token has no uses left.
// MaxUses <= 0 means uncapped.
func (t *InviteToken) Exhausted() bool {
	return t.MaxUses > 0 && t.UseCount >= t.MaxUses
}
