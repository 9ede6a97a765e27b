package postgres

/*
 * 'AppConfig' is a single-row table of admin-tunable settings.
 */
type AppConfig struct {
	ID int `gorm:"primaryKey"`
	// How many campaigns one account may own. Admin mode bypasses this.
	MaxCampaignsPerOwner int `gorm:"default:2"`
}

// DefaultMaxCampaigns is used when the config row has not been created yet.
const DefaultMaxCampaigns = 2
