package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Add a meeple
// @Description Registers a player record in the campaign
// @Tags player
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Param name formData string true "Player name"
// @Success 201 {object} object{player=object{id=string,name=string}}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id}/players [post]
// @Security ApiKeyAuth
func AddPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.Param("playgroup_id")
		name := strings.TrimSpace(c.PostForm("name"))

		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required"})
			return
		}
		if !requireMember(c, db, playgroupID, userID) {
			return
		}

		var dup int64
		err := db.Model(&models.Player{}).
			Where("playgroup_id = ? AND LOWER(name) = LOWER(?)", playgroupID, name).
			Count(&dup).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking player name"})
			return
		}
		if dup > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "A player with that name already exists"})
			return
		}

		player := models.Player{PlaygroupID: playgroupID, Name: name}
		if err := db.Create(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding player"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"player": gin.H{"id": player.ID, "name": player.Name}})
	}
}

// @Summary Remove a meeple
// @Description Deletes the player and, by cascade, their win entries
// @Tags player
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param player_id path string true "Player id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/players/{player_id} [delete]
// @Security ApiKeyAuth
func DeletePlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var player models.Player
		if err := db.Where("id = ?", c.Param("player_id")).First(&player).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		if !requireMember(c, db, player.PlaygroupID, userID) {
			return
		}

		if err := db.Delete(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting player"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Player removed successfully"})
	}
}

// @Summary Upsert meeple metadata
// @Description Sets the player's image and card color
// @Tags player
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param player_id path string true "Player id"
// @Param image formData string false "Image data URL"
// @Param color formData string false "Hex color"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/players/{player_id}/metadata [put]
// @Security ApiKeyAuth
func UpsertPlayerMetadata(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var player models.Player
		if err := db.Where("id = ?", c.Param("player_id")).First(&player).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		if !requireMember(c, db, player.PlaygroupID, userID) {
			return
		}

		color := c.PostForm("color")
		if color == "" {
			color = "#6366f1"
		}
		meta := models.PlayerMetadata{
			PlayerID: player.ID,
			Image:    c.PostForm("image"),
			Color:    color,
		}
		if err := db.Save(&meta).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving metadata"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Metadata saved"})
	}
}

// @Summary Claim a meeple
// @Description Links an unclaimed player record to the authenticated account. Races are resolved by a conditional update: the loser gets 409 and should re-fetch, never assume.
// @Tags player
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param player_id path string true "Player id"
// @Success 200 {object} object{message=string,player=object{id=string,name=string}}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/players/{player_id}/claim [post]
// @Security ApiKeyAuth
func ClaimPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var player models.Player
		if err := db.Where("id = ?", c.Param("player_id")).First(&player).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		if !requireMember(c, db, player.PlaygroupID, userID) {
			return
		}

		result := db.Model(&models.Player{}).
			Where("id = ? AND claimed_by IS NULL", player.ID).
			Update("claimed_by", userID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error claiming player"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "This player has already been claimed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Player claimed successfully",
			"player":  gin.H{"id": player.ID, "name": player.Name},
		})
	}
}

// @Summary Unclaim a meeple
// @Description Unlinks a player record; only the claiming account can do this
// @Tags player
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param player_id path string true "Player id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/players/{player_id}/claim [delete]
// @Security ApiKeyAuth
func UnclaimPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		result := db.Model(&models.Player{}).
			Where("id = ? AND claimed_by = ?", c.Param("player_id"), userID).
			Update("claimed_by", nil)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unclaiming player"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Player is not claimed by you"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Player unclaimed successfully"})
	}
}

// @Summary Cross-campaign stats
// @Description Per-campaign win summary for every player record claimed by the authenticated user
// @Tags player
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{campaigns=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/me/stats [get]
// @Security ApiKeyAuth
func GetCrossCampaignStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var players []models.Player
		if err := db.Preload("Playgroup").Where("claimed_by = ?", userID).Find(&players).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching claimed players"})
			return
		}

		campaigns := make([]gin.H, 0, len(players))
		for _, p := range players {
			var wins int64
			if err := db.Model(&models.Entry{}).Where("player_id = ?", p.ID).Count(&wins).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting wins"})
				return
			}
			var lastWin models.Entry
			lastDate := ""
			if err := db.Where("player_id = ?", p.ID).Order("date DESC").First(&lastWin).Error; err == nil {
				lastDate = lastWin.Date.Format("2006-01-02")
			}
			campaigns = append(campaigns, gin.H{
				"playgroup_id":   p.PlaygroupID,
				"playgroup_name": p.Playgroup.Name,
				"player_id":      p.ID,
				"player_name":    p.Name,
				"wins":           wins,
				"last_win":       lastDate,
			})
		}

		c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
	}
}
