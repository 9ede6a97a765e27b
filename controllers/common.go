package controllers

import (
	"Scorekeeper/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// requireMember answers 403/500 and returns false unless the user belongs
// to the playgroup. Every mutating campaign operation goes through this.
func requireMember(c *gin.Context, db *gorm.DB, playgroupID, userID string) bool {
	member, err := utils.IsMember(db, playgroupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking membership"})
		return false
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this campaign"})
		return false
	}
	return true
}
