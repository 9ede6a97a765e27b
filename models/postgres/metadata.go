package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameMetadata' holds presentation extras for a game. Images are stored
 * inline as data URLs, matching what the web client uploads.
 */
type GameMetadata struct {
	GameID string         `gorm:"primaryKey;size:36;not null"`
	Image  string         `gorm:"type:text"`
	Extra  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

/*
 * 'PlayerMetadata' holds presentation extras for a meeple.
 */
type PlayerMetadata struct {
	PlayerID string         `gorm:"primaryKey;size:36;not null"`
	Image    string         `gorm:"type:text"`
	Color    string         `gorm:"size:9;default:'#6366f1'"`
	Extra    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
