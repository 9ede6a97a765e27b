package controllers

import (
	"Scorekeeper/config"
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"Scorekeeper/services/redis"
	"Scorekeeper/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Enter admin mode
// @Description Elevates the current session after checking the allow-list and passphrase. The flag lives in Redis keyed by session id, so it dies with the session and never survives a logout.
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param passphrase formData string true "Admin passphrase"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/enter [post]
// @Security ApiKeyAuth
func EnterAdminMode(cfg *config.Config, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.SessionEmail(c)

		allowed := false
		for _, e := range cfg.AdminEmails {
			if e == email {
				allowed = true
				break
			}
		}
		// Same response for wrong email and wrong passphrase
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access denied"})
			return
		}
		err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassphraseHash), []byte(c.PostForm("passphrase")))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access denied"})
			return
		}

		if err := redisClient.SaveAdminSession(middleware.SessionID(c), email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error enabling admin mode"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Admin mode enabled"})
	}
}

// @Summary Exit admin mode
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/exit [post]
// @Security ApiKeyAuth
func ExitAdminMode(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := redisClient.DeleteAdminSession(middleware.SessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error disabling admin mode"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Admin mode disabled"})
	}
}

// @Summary Admin mode status
// @Description Reports whether the current session is elevated. Clients re-check this after every sign-in; elevation never carries across sessions.
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{admin=boolean}
// @Router /auth/admin/status [get]
// @Security ApiKeyAuth
func GetAdminStatus(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := redisClient.IsAdminSession(middleware.SessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking admin mode"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": admin})
	}
}

// @Summary List every campaign
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{playgroups=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/playgroups [get]
// @Security ApiKeyAuth
func AdminListPlaygroups(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var playgroups []models.Playgroup
		if err := db.Order("created_at DESC").Find(&playgroups).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching campaigns"})
			return
		}

		out := make([]gin.H, 0, len(playgroups))
		for _, pg := range playgroups {
			var members, entries int64
			db.Model(&models.PlaygroupMember{}).Where("playgroup_id = ?", pg.ID).Count(&members)
			db.Model(&models.Entry{}).Where("playgroup_id = ?", pg.ID).Count(&entries)
			out = append(out, gin.H{
				"id":         pg.ID,
				"name":       pg.Name,
				"created_at": pg.CreatedAt,
				"members":    members,
				"entries":    entries,
			})
		}
		c.JSON(http.StatusOK, gin.H{"playgroups": out})
	}
}

// @Summary List every account
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{users=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/users [get]
// @Security ApiKeyAuth
func AdminListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("member_since DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
			return
		}

		out := make([]gin.H, 0, len(users))
		for _, u := range users {
			out = append(out, gin.H{
				"id":           u.ID,
				"email":        u.Email,
				"display_name": u.DisplayName,
				"member_since": u.MemberSince,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}

// @Summary List recent win entries across all campaigns
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{entries=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/entries [get]
// @Security ApiKeyAuth
func AdminListEntries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.Entry
		err := db.Preload("Playgroup").Preload("Game").Preload("Player").
			Order("created_at DESC").Limit(200).Find(&entries).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
			return
		}

		out := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			out = append(out, gin.H{
				"id":              e.ID,
				"playgroup_id":    e.PlaygroupID,
				"playgroup_name":  e.Playgroup.Name,
				"game":            e.Game.Name,
				"player":          e.Player.Name,
				"date":            utils.FormatDate(e.Date),
				"created_by_name": e.CreatedByName,
			})
		}
		c.JSON(http.StatusOK, gin.H{"entries": out})
	}
}

// @Summary Delete an account
// @Description Removes the user; memberships cascade. Claimed players are unclaimed, not deleted, so win history survives.
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param user_id path string true "User id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/users/{user_id} [delete]
// @Security ApiKeyAuth
func AdminDeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Player{}).
				Where("claimed_by = ?", userID).
				Update("claimed_by", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).
				Delete(&models.PlaygroupMember{}).Error; err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// @Summary List every invite token
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{invites=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/invites [get]
// @Security ApiKeyAuth
func AdminListInvites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invites []models.InviteToken
		if err := db.Preload("Playgroup").Order("created_at DESC").Find(&invites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invites"})
			return
		}

		out := make([]gin.H, 0, len(invites))
		for _, inv := range invites {
			out = append(out, gin.H{
				"token":          inv.Token,
				"playgroup_id":   inv.PlaygroupID,
				"playgroup_name": inv.Playgroup.Name,
				"expires_at":     inv.ExpiresAt,
				"max_uses":       inv.MaxUses,
				"use_count":      inv.UseCount,
				"expired":        inv.Expired(),
				"exhausted":      inv.Exhausted(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"invites": out})
	}
}

// @Summary Delete any campaign
// @Description Admin override of the owner-only delete; ownership is not checked.
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/playgroups/{playgroup_id} [delete]
// @Security ApiKeyAuth
func AdminDeletePlaygroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playgroup, err := utils.CheckPlaygroupExists(db, c.Param("playgroup_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if err := db.Delete(playgroup).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting campaign"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
	}
}

// @Summary Revoke an invite token
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param token path string true "Invite token"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/invites/{token} [delete]
// @Security ApiKeyAuth
func AdminRevokeInvite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("token = ?", c.Param("token")).Delete(&models.InviteToken{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error revoking invite"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invite revoked"})
	}
}

// @Summary Read tunable settings
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{max_campaigns_per_owner=int}
// @Router /auth/admin/config [get]
// @Security ApiKeyAuth
func GetAppConfig(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"max_campaigns_per_owner": utils.MaxCampaignsPerOwner(db),
		})
	}
}

// @Summary Update tunable settings
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param max_campaigns_per_owner formData int true "Campaign ownership cap"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/config [put]
// @Security ApiKeyAuth
func UpdateAppConfig(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.PostForm("max_campaigns_per_owner"))
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_campaigns_per_owner must be a positive integer"})
			return
		}

		cfg := models.AppConfig{ID: 1, MaxCampaignsPerOwner: limit}
		if err := db.Save(&cfg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving config"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Config updated"})
	}
}

// @Summary Publish an announcement
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param message formData string true "Announcement text"
// @Success 201 {object} object{announcement=object{id=string}}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/announcements [post]
// @Security ApiKeyAuth
func PublishAnnouncement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		message := c.PostForm("message")
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		announcement := models.Announcement{
			Message:     message,
			PublishedBy: middleware.SessionEmail(c),
		}
		if err := db.Create(&announcement).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error publishing announcement"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"announcement": gin.H{"id": announcement.ID}})
	}
}

// @Summary Clear all announcements
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/announcements [delete]
// @Security ApiKeyAuth
func ClearAnnouncements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Where("1 = 1").Delete(&models.Announcement{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing announcements"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Announcements cleared"})
	}
}

// @Summary Active announcements
// @Description Public feed shown above every scoreboard
// @Tags announcement
// @Produce json
// @Success 200 {object} object{announcements=array}
// @Failure 500 {object} object{error=string}
// @Router /announcements [get]
func GetAnnouncements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var announcements []models.Announcement
		if err := db.Order("published_at DESC").Find(&announcements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching announcements"})
			return
		}

		out := make([]gin.H, 0, len(announcements))
		for _, a := range announcements {
			out = append(out, gin.H{
				"id":           a.ID,
				"message":      a.Message,
				"published_at": a.PublishedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"announcements": out})
	}
}
