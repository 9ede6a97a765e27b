package controllers

import (
	models "Scorekeeper/models/postgres"
	"Scorekeeper/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Batched campaign snapshot
// @Description One read returning players, games and entries (with metadata and audit fields) so clients can swap their whole cache atomically. Public: share links grant read-only access to exactly this campaign.
// @Tags playgroup
// @Produce json
// @Param playgroup_id path string true "Campaign id"
// @Success 200 {object} object{playgroup_id=string,players=array,games=array,entries=array}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /playgroups/{playgroup_id}/data [get]
func GetPlaygroupData(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playgroupID := c.Param("playgroup_id")
		if _, err := utils.CheckPlaygroupExists(db, playgroupID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}

		var players []models.Player
		if err := db.Preload("Metadata").Where("playgroup_id = ?", playgroupID).
			Order("name").Find(&players).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching players"})
			return
		}

		var games []models.Game
		if err := db.Preload("Metadata").Where("playgroup_id = ?", playgroupID).
			Order("name").Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching games"})
			return
		}

		var entries []models.Entry
		if err := db.Preload("Game").Preload("Player").
			Where("playgroup_id = ?", playgroupID).
			Order("date DESC").Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
			return
		}

		playerOut := make([]gin.H, 0, len(players))
		for _, p := range players {
			item := gin.H{"id": p.ID, "name": p.Name, "claimed_by": p.ClaimedBy}
			if p.Metadata != nil {
				item["image"] = p.Metadata.Image
				item["color"] = p.Metadata.Color
			}
			playerOut = append(playerOut, item)
		}

		gameOut := make([]gin.H, 0, len(games))
		for _, g := range games {
			item := gin.H{"id": g.ID, "name": g.Name}
			if g.Metadata != nil {
				item["image"] = g.Metadata.Image
			}
			gameOut = append(gameOut, item)
		}

		entryOut := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			entryOut = append(entryOut, gin.H{
				"id":              e.ID,
				"date":            utils.FormatDate(e.Date),
				"game_id":         e.GameID,
				"game":            e.Game.Name,
				"player_id":       e.PlayerID,
				"player":          e.Player.Name,
				"created_at":      e.CreatedAt,
				"updated_at":      e.UpdatedAt,
				"created_by_name": e.CreatedByName,
				"updated_by_name": e.UpdatedByName,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"playgroup_id": playgroupID,
			"players":      playerOut,
			"games":        gameOut,
			"entries":      entryOut,
		})
	}
}
