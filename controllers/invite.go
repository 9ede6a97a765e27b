package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"Scorekeeper/services/redis"
	"Scorekeeper/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultInviteHours   = 168 // one week
	defaultInviteMaxUses = 10
)

// @Summary Create an invite token
// @Description Owner-only. Returns an opaque token bound to the campaign, with expiry and a use cap.
// @Tags invite
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param playgroup_id path string true "Campaign id"
// @Param expires_hours formData int false "Hours until expiry (default 168)"
// @Param max_uses formData int false "Maximum redemptions (default 10, 0 = uncapped)"
// @Success 201 {object} object{token=string,expires_at=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/playgroups/{playgroup_id}/invites [post]
// @Security ApiKeyAuth
func CreateInviteToken(db *gorm.DB) gin.HandlerFunc {
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
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can create invites"})
			return
		}

		hours := defaultInviteHours
		if v, ok := c.GetPostForm("expires_hours"); ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				hours = parsed
			}
		}
		maxUses := defaultInviteMaxUses
		if v, ok := c.GetPostForm("max_uses"); ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				maxUses = parsed
			}
		}

		invite := models.InviteToken{
			PlaygroupID: playgroupID,
			CreatedBy:   userID,
			ExpiresAt:   time.Now().Add(time.Duration(hours) * time.Hour),
			MaxUses:     maxUses,
		}
		if err := db.Create(&invite).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating invite"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token":      invite.Token,
			"expires_at": invite.ExpiresAt,
		})
	}
}

// @Summary Resolve an invite token
// @Description Read-only: returns the campaign name and validity. Requires no authentication and never mutates membership. Expired or exhausted tokens answer 410 so clients can tell a dead link from connectivity trouble.
// @Tags invite
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} object{playgroup_id=string,playgroup_name=string,expires_at=string}
// @Failure 404 {object} object{error=string}
// @Failure 410 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /invites/{token} [get]
func ResolveInviteToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invite models.InviteToken
		err := db.Preload("Playgroup").Where("token = ?", c.Param("token")).First(&invite).Error
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite link"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving invite"})
			return
		}

		if invite.Expired() || invite.Exhausted() {
			c.JSON(http.StatusGone, gin.H{"error": "This invite link has expired"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"playgroup_id":   invite.PlaygroupID,
			"playgroup_name": invite.Playgroup.Name,
			"expires_at":     invite.ExpiresAt,
		})
	}
}

// redeemInvite performs the membership mutation shared by the direct and
// intent-driven redemption paths. Re-joining is idempotent: an existing
// membership is returned unchanged and the use count is not bumped again.
func redeemInvite(db *gorm.DB, token, userID string) (int, gin.H) {
	var invite models.InviteToken
	err := db.Preload("Playgroup").Where("token = ?", token).First(&invite).Error
	if err == gorm.ErrRecordNotFound {
		return http.StatusNotFound, gin.H{"error": "Invalid invite link"}
	}
	if err != nil {
		return http.StatusInternalServerError, gin.H{"error": "Error resolving invite"}
	}
	if invite.Expired() || invite.Exhausted() {
		return http.StatusGone, gin.H{"error": "This invite link has expired"}
	}

	existing, err := utils.GetMembership(db, invite.PlaygroupID, userID)
	if err != nil {
		return http.StatusInternalServerError, gin.H{"error": "Error checking membership"}
	}
	if existing != nil {
		return http.StatusOK, gin.H{
			"playgroup_id":   invite.PlaygroupID,
			"playgroup_name": invite.Playgroup.Name,
			"already_member": true,
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		member := models.PlaygroupMember{
			PlaygroupID: invite.PlaygroupID,
			UserID:      userID,
			Role:        models.RoleMember,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Model(&models.InviteToken{}).
			Where("token = ?", invite.Token).
			UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
	})
	if err != nil {
		return http.StatusInternalServerError, gin.H{"error": "Error joining campaign"}
	}

	return http.StatusOK, gin.H{
		"playgroup_id":   invite.PlaygroupID,
		"playgroup_name": invite.Playgroup.Name,
		"already_member": false,
	}
}

// @Summary Redeem an invite token
// @Description Joins the campaign bound to the token. Requires authentication and an explicit user action; the new campaign becomes the active selection.
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param token path string true "Invite token"
// @Success 200 {object} object{playgroup_id=string,playgroup_name=string,already_member=boolean}
// @Failure 404 {object} object{error=string}
// @Failure 410 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/invites/{token}/redeem [post]
// @Security ApiKeyAuth
func RedeemInviteToken(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		status, body := redeemInvite(db, c.Param("token"), userID)
		if status == http.StatusOK {
			// The joined campaign becomes the persisted selection.
			if err := redisClient.SaveActiveSelection(userID, body["playgroup_id"].(string)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving selection"})
				return
			}
		}
		c.JSON(status, body)
	}
}

// @Summary Record join intent for an invite token
// @Description Captures the explicit "join" action so the redemption after a login round trip is deliberate, never implicit. The intent is consumed exactly once.
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param token path string true "Invite token"
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/invites/{token}/intent [post]
// @Security ApiKeyAuth
func SetJoinIntent(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := redisClient.SaveJoinIntent(middleware.SessionID(c), c.Param("token")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving join intent"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Join intent recorded"})
	}
}

// @Summary Redeem a pending join intent
// @Description Consumes the stored intent atomically and redeems its token. Safe to call from a doubled auth callback: the second call finds no intent and joins nothing. A failed redemption still consumes the intent so a stale token cannot cause a surprise join later.
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{playgroup_id=string,playgroup_name=string,already_member=boolean}
// @Success 204 "No pending intent"
// @Failure 404 {object} object{error=string}
// @Failure 410 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/me/pending-invite/redeem [post]
// @Security ApiKeyAuth
func RedeemPendingInvite(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)

		token, err := redisClient.ConsumeJoinIntent(middleware.SessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consuming join intent"})
			return
		}
		if token == "" {
			c.Status(http.StatusNoContent)
			return
		}

		status, body := redeemInvite(db, token, userID)
		if status == http.StatusOK {
			if err := redisClient.SaveActiveSelection(userID, body["playgroup_id"].(string)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving selection"})
				return
			}
		}
		c.JSON(status, body)
	}
}
