package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"Scorekeeper/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Create a playgroup
// @Description Creates a campaign and adds the creator as owner. Owner-limit enforced unless the session is in admin mode.
// @Tags playgroup
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param name formData string true "Campaign name"
// @Success 201 {object} object{playgroup=object{id=string,name=string,role=string}}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups [post]
// @Security ApiKeyAuth
func CreatePlaygroup(db *gorm.DB, isAdminSession func(sessionID string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign name is required"})
			return
		}

		// Duplicate check is scoped to the creator's own campaigns
		var dup int64
		err := db.Model(&models.Playgroup{}).
			Joins("JOIN playgroup_members ON playgroup_members.playgroup_id = playgroups.id").
			Where("playgroup_members.user_id = ? AND LOWER(playgroups.name) = LOWER(?)", userID, name).
			Count(&dup).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking campaign name"})
			return
		}
		if dup > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a campaign with that name"})
			return
		}

		if !isAdminSession(middleware.SessionID(c)) {
			owned, err := utils.OwnedPlaygroupCount(db, userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting campaigns"})
				return
			}
			if owned >= int64(utils.MaxCampaignsPerOwner(db)) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Campaign limit reached on the current plan"})
				return
			}
		}

		playgroup := models.Playgroup{Name: name}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&playgroup).Error; err != nil {
				return err
			}
			member := models.PlaygroupMember{
				PlaygroupID: playgroup.ID,
				UserID:      userID,
				Role:        models.RoleOwner,
			}
			return tx.Create(&member).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating campaign"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"playgroup": gin.H{
			"id":   playgroup.ID,
			"name": playgroup.Name,
			"role": models.RoleOwner,
		}})
	}
}

// @Summary List the user's playgroups
// @Description Returns every campaign the user belongs to, with role, newest first
// @Tags playgroup
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{playgroups=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups [get]
// @Security ApiKeyAuth
func ListPlaygroups(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var memberships []models.PlaygroupMember
		if err := db.Preload("Playgroup").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching campaigns"})
			return
		}

		playgroups := make([]gin.H, 0, len(memberships))
		for _, m := range memberships {
			playgroups = append(playgroups, gin.H{
				"id":         m.Playgroup.ID,
				"name":       m.Playgroup.Name,
				"role":       m.Role,
				"created_at": m.Playgroup.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"playgroups": playgroups})
	}
}

// @Summary Leave a playgroup
// @Description Removes the authenticated user's membership. The last owner cannot leave without deleting the campaign.
// @Tags playgroup
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id}/membership [delete]
// @Security ApiKeyAuth
func LeavePlaygroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.Param("playgroup_id")

		member, err := utils.GetMembership(db, playgroupID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching membership"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "You are not a member of this campaign"})
			return
		}

		if member.Role == models.RoleOwner {
			var owners int64
			err := db.Model(&models.PlaygroupMember{}).
				Where("playgroup_id = ? AND role = ?", playgroupID, models.RoleOwner).
				Count(&owners).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting owners"})
				return
			}
			if owners <= 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "The last owner cannot leave; delete the campaign instead"})
				return
			}
		}

		if err := db.Delete(member).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leaving campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Left campaign successfully"})
	}
}

// @Summary Delete a playgroup
// @Description Owner-only. Cascades to members, players, games and entries.
// @Tags playgroup
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id} [delete]
// @Security ApiKeyAuth
func DeletePlaygroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.Param("playgroup_id")

		if _, err := utils.CheckPlaygroupExists(db, playgroupID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}

		owner, err := utils.IsOwner(db, playgroupID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking ownership"})
			return
		}
		if !owner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a campaign"})
			return
		}

		if err := db.Delete(&models.Playgroup{}, "id = ?", playgroupID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
	}
}

// @Summary Get a playgroup's name
// @Description Public lookup used by the guest/share banner; no auth required
// @Tags playgroup
// @Produce json
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{id=string,name=string}
// @Failure 404 {object} object{error=string}
// @Router /playgroups/{playgroup_id}/name [get]
func GetPlaygroupName(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playgroup, err := utils.CheckPlaygroupExists(db, c.Param("playgroup_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": playgroup.ID, "name": playgroup.Name})
	}
}
