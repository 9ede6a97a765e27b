package utils

import (
	"fmt"

	models "Scorekeeper/models/postgres"

	"gorm.io/gorm"
)

// FindUserByID loads a user row or returns the gorm error.
func FindUserByID(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPlaygroupExists loads a playgroup or fails with a friendly error.
func CheckPlaygroupExists(db *gorm.DB, playgroupID string) (*models.Playgroup, error) {
	var playgroup models.Playgroup
	result := db.Where("id = ?", playgroupID).First(&playgroup)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("playgroup not found")
		}
		return nil, result.Error
	}

	return &playgroup, nil
}

// GetMembership returns the membership row linking a user to a playgroup,
// or nil when the user is not a member.
func GetMembership(db *gorm.DB, playgroupID, userID string) (*models.PlaygroupMember, error) {
	var member models.PlaygroupMember
	err := db.Where("playgroup_id = ? AND user_id = ?", playgroupID, userID).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// IsMember reports whether the user belongs to the playgroup.
func IsMember(db *gorm.DB, playgroupID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.PlaygroupMember{}).
		Where("playgroup_id = ? AND user_id = ?", playgroupID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// IsOwner reports whether the user owns the playgroup.
func IsOwner(db *gorm.DB, playgroupID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.PlaygroupMember{}).
		Where("playgroup_id = ? AND user_id = ? AND role = ?", playgroupID, userID, models.RoleOwner).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// OwnedPlaygroupCount counts how many playgroups the user owns, used to
// enforce the per-plan campaign limit.
func OwnedPlaygroupCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.PlaygroupMember{}).
		Where("user_id = ? AND role = ?", userID, models.RoleOwner).
		Count(&count).Error
	return count, err
}

// MaxCampaignsPerOwner reads the configured ownership limit, falling back
// to the default when the config row does not exist yet.
func MaxCampaignsPerOwner(db *gorm.DB) int {
	var cfg models.AppConfig
	if err := db.First(&cfg, 1).Error; err != nil {
		return models.DefaultMaxCampaigns
	}
	if cfg.MaxCampaignsPerOwner <= 0 {
		return models.DefaultMaxCampaigns
	}
	return cfg.MaxCampaignsPerOwner
}
