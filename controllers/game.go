package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Register a game
// @Description Adds a board game to the campaign
// @Tags game
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Param name formData string true "Game name"
// @Success 201 {object} object{game=object{id=string,name=string}}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id}/games [post]
// @Security ApiKeyAuth
func AddGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.Param("playgroup_id")
		name := strings.TrimSpace(c.PostForm("name"))

		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game name is required"})
			return
		}
		if !requireMember(c, db, playgroupID, userID) {
			return
		}

		var dup int64
		err := db.Model(&models.Game{}).
			Where("playgroup_id = ? AND LOWER(name) = LOWER(?)", playgroupID, name).
			Count(&dup).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking game name"})
			return
		}
		if dup > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "A game with that name already exists"})
			return
		}

		game := models.Game{PlaygroupID: playgroupID, Name: name}
		if err := db.Create(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding game"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"game": gin.H{"id": game.ID, "name": game.Name}})
	}
}

// @Summary Remove a game
// @Description Deletes the game and, by cascade, its win entries and metadata
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Game id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/games/{game_id} [delete]
// @Security ApiKeyAuth
func DeleteGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var game models.Game
		if err := db.Where("id = ?", c.Param("game_id")).First(&game).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		if !requireMember(c, db, game.PlaygroupID, userID) {
			return
		}

		if err := db.Delete(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting game"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game removed successfully"})
	}
}

// @Summary Upsert game metadata
// @Description Sets the game's image
// @Tags game
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Game id"
// @Param image formData string false "Image data URL"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/games/{game_id}/metadata [put]
// @Security ApiKeyAuth
func UpsertGameMetadata(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var game models.Game
		if err := db.Where("id = ?", c.Param("game_id")).First(&game).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		if !requireMember(c, db, game.PlaygroupID, userID) {
			return
		}

		meta := models.GameMetadata{
			GameID: game.ID,
			Image:  c.PostForm("image"),
		}
		if err := db.Save(&meta).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving metadata"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Metadata saved"})
	}
}
