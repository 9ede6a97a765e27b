package controllers

import (
	"Scorekeeper/middleware"
	"Scorekeeper/services/redis"
	"Scorekeeper/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get the persisted campaign selection
// @Description Returns the last campaign the user picked. A stored id the user is no longer a member of is discarded, not returned.
// @Tags selection
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{playgroup_id=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/me/selection [get]
// @Security ApiKeyAuth
func GetActiveSelection(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		playgroupID, err := redisClient.GetActiveSelection(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading selection"})
			return
		}
		if playgroupID == "" {
			c.JSON(http.StatusOK, gin.H{"playgroup_id": ""})
			return
		}

		member, err := utils.IsMember(db, playgroupID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating selection"})
			return
		}
		if !member {
			// Membership gone (left, removed, campaign merged away):
			// the stale selection is discarded.
			if err := redisClient.DeleteActiveSelection(userID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing selection"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"playgroup_id": ""})
			return
		}

		c.JSON(http.StatusOK, gin.H{"playgroup_id": playgroupID})
	}
}

// @Summary Persist the campaign selection
// @Description Stores the active campaign id for this user; survives reloads
// @Tags selection
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id formData string true "Campaign id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/me/selection [put]
// @Security ApiKeyAuth
func SetActiveSelection(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		playgroupID := c.PostForm("playgroup_id")
		if playgroupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playgroup_id is required"})
			return
		}

		member, err := utils.IsMember(db, playgroupID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating membership"})
			return
		}
		if !member {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this campaign"})
			return
		}

		if err := redisClient.SaveActiveSelection(userID, playgroupID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving selection"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Selection saved"})
	}
}

// @Summary Clear the persisted campaign selection
// @Tags selection
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/me/selection [delete]
// @Security ApiKeyAuth
func ClearActiveSelection(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := redisClient.DeleteActiveSelection(middleware.SessionUserID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing selection"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Selection cleared"})
	}
}
