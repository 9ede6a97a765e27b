package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"Scorekeeper/utils"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Record a win
// @Description Inserts a win entry for a game and player of the campaign. The writer's display name is stored for the audit trail.
// @Tags entry
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Param game_id formData string true "Game id"
// @Param player_id formData string true "Player id"
// @Param date formData string true "Win date (YYYY-MM-DD)"
// @Success 201 {object} object{entry=object{id=string}}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id}/entries [post]
// @Security ApiKeyAuth
func AddEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.Param("playgroup_id")

		if !requireMember(c, db, playgroupID, userID) {
			return
		}

		gameID := c.PostForm("game_id")
		playerID := c.PostForm("player_id")
		date, err := utils.ParseDate(c.PostForm("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}

		// Both references must live inside this campaign, never a sibling's
		var gameCount, playerCount int64
		db.Model(&models.Game{}).Where("id = ? AND playgroup_id = ?", gameID, playgroupID).Count(&gameCount)
		db.Model(&models.Player{}).Where("id = ? AND playgroup_id = ?", playerID, playgroupID).Count(&playerCount)
		if gameCount == 0 || playerCount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game or player does not belong to this campaign"})
			return
		}

		user, err := utils.FindUserByID(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
			return
		}

		entry := models.Entry{
			PlaygroupID:   playgroupID,
			GameID:        gameID,
			PlayerID:      playerID,
			Date:          date,
			CreatedByName: user.DisplayName,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording win"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"entry": gin.H{"id": entry.ID}})
	}
}

// @Summary Edit a win
// @Description Updates game, player and/or date of an entry. The editor's display name is stored in the audit trail.
// @Tags entry
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param entry_id path string true "Entry id"
// @Param game_id formData string false "Game id"
// @Param player_id formData string false "Player id"
// @Param date formData string false "Win date (YYYY-MM-DD)"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/entries/{entry_id} [patch]
// @Security ApiKeyAuth
func UpdateEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var entry models.Entry
		if err := db.Where("id = ?", c.Param("entry_id")).First(&entry).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		if !requireMember(c, db, entry.PlaygroupID, userID) {
			return
		}

		updates := map[string]interface{}{}
		if v, ok := c.GetPostForm("game_id"); ok {
			var count int64
			db.Model(&models.Game{}).Where("id = ? AND playgroup_id = ?", v, entry.PlaygroupID).Count(&count)
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Game does not belong to this campaign"})
				return
			}
			updates["game_id"] = v
		}
		if v, ok := c.GetPostForm("player_id"); ok {
			var count int64
			db.Model(&models.Player{}).Where("id = ? AND playgroup_id = ?", v, entry.PlaygroupID).Count(&count)
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Player does not belong to this campaign"})
				return
			}
			updates["player_id"] = v
		}
		if v, ok := c.GetPostForm("date"); ok {
			date, err := utils.ParseDate(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
				return
			}
			updates["date"] = date
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		user, err := utils.FindUserByID(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
			return
		}
		updates["updated_by_name"] = user.DisplayName
		updates["updated_at"] = time.Now()

		if err := db.Model(&entry).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry updated successfully"})
	}
}

// @Summary Delete a win
// @Tags entry
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param entry_id path string true "Entry id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/entries/{entry_id} [delete]
// @Security ApiKeyAuth
func DeleteEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		var entry models.Entry
		if err := db.Where("id = ?", c.Param("entry_id")).First(&entry).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		if !requireMember(c, db, entry.PlaygroupID, userID) {
			return
		}

		if err := db.Delete(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
	}
}

// @Summary Campaign leaderboard
// @Description Win totals per player plus a consolidated per-game breakdown. Game names are case-folded so spelling variants count as one game. Public: share links read exactly this.
// @Tags entry
// @Produce json
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{players=array,games=array}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /playgroups/{playgroup_id}/leaderboard [get]
func GetLeaderboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playgroupID := c.Param("playgroup_id")
		if _, err := utils.CheckPlaygroupExists(db, playgroupID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}

		var entries []models.Entry
		if err := db.Preload("Game").Preload("Player").
			Where("playgroup_id = ?", playgroupID).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
			return
		}

		type playerRow struct {
			Name string `json:"name"`
			Wins int    `json:"wins"`
		}
		type gameRow struct {
			Name string `json:"name"`
			Wins int    `json:"wins"`
		}

		playerWins := map[string]*playerRow{}
		gameWins := map[string]*gameRow{}
		for _, e := range entries {
			if row, ok := playerWins[e.PlayerID]; ok {
				row.Wins++
			} else {
				playerWins[e.PlayerID] = &playerRow{Name: e.Player.Name, Wins: 1}
			}
			// Consolidate spelling variants of the same game
			key := utils.NormalizeName(e.Game.Name)
			if row, ok := gameWins[key]; ok {
				row.Wins++
			} else {
				gameWins[key] = &gameRow{Name: utils.DisplayName(e.Game.Name), Wins: 1}
			}
		}

		players := make([]playerRow, 0, len(playerWins))
		for _, row := range playerWins {
			players = append(players, *row)
		}
		games := make([]gameRow, 0, len(gameWins))
		for _, row := range gameWins {
			games = append(games, *row)
		}
		sort.Slice(players, func(i, j int) bool {
			if players[i].Wins != players[j].Wins {
				return players[i].Wins > players[j].Wins
			}
			return players[i].Name < players[j].Name
		})
		sort.Slice(games, func(i, j int) bool {
			if games[i].Wins != games[j].Wins {
				return games[i].Wins > games[j].Wins
			}
			return games[i].Name < games[j].Name
		})

		c.JSON(http.StatusOK, gin.H{"players": players, "games": games})
	}
}
