package routes

import (
	"Scorekeeper/config"
	"Scorekeeper/controllers"
	"Scorekeeper/middleware"
	"Scorekeeper/services/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient, cfg *config.Config) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	// Public reads: share links and invite landing pages work signed out.
	api.GET("/playgroups/:playgroup_id/name", controllers.GetPlaygroupName(db))

	api.GET("/playgroups/:playgroup_id/data", controllers.GetPlaygroupData(db))

	api.GET("/playgroups/:playgroup_id/leaderboard", controllers.GetLeaderboard(db))

	api.GET("/invites/:token", controllers.ResolveInviteToken(db))

	api.GET("/announcements", controllers.GetAnnouncements(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout(redisClient))

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		authentication.GET("/me/stats", controllers.GetCrossCampaignStats(db))

		// Admin sessions bypass the campaign ownership cap
		authentication.POST("/playgroups", controllers.CreatePlaygroup(db, func(sessionID string) bool {
			admin, err := redisClient.IsAdminSession(sessionID)
			return err == nil && admin
		}))

		authentication.GET("/playgroups", controllers.ListPlaygroups(db))

		authentication.DELETE("/playgroups/:playgroup_id", controllers.DeletePlaygroup(db))

		authentication.DELETE("/playgroups/:playgroup_id/membership", controllers.LeavePlaygroup(db))

		authentication.GET("/me/selection", controllers.GetActiveSelection(db, redisClient))

		authentication.PUT("/me/selection", controllers.SetActiveSelection(db, redisClient))

		authentication.DELETE("/me/selection", controllers.ClearActiveSelection(redisClient))

		authentication.POST("/playgroups/:playgroup_id/invites", controllers.CreateInviteToken(db))

		authentication.POST("/invites/:token/redeem", controllers.RedeemInviteToken(db, redisClient))

		authentication.POST("/invites/:token/intent", controllers.SetJoinIntent(redisClient))

		authentication.POST("/me/pending-invite/redeem", controllers.RedeemPendingInvite(db, redisClient))

		authentication.POST("/playgroups/:playgroup_id/players", controllers.AddPlayer(db))

		authentication.DELETE("/players/:player_id", controllers.DeletePlayer(db))

		authentication.PUT("/players/:player_id/metadata", controllers.UpsertPlayerMetadata(db))

		authentication.POST("/players/:player_id/claim", controllers.ClaimPlayer(db))

		authentication.DELETE("/players/:player_id/claim", controllers.UnclaimPlayer(db))

		authentication.POST("/playgroups/:playgroup_id/games", controllers.AddGame(db))

		authentication.DELETE("/games/:game_id", controllers.DeleteGame(db))

		authentication.PUT("/games/:game_id/metadata", controllers.UpsertGameMetadata(db))

		authentication.POST("/playgroups/:playgroup_id/entries", controllers.AddEntry(db))

		authentication.PATCH("/entries/:entry_id", controllers.UpdateEntry(db))

		authentication.DELETE("/entries/:entry_id", controllers.DeleteEntry(db))

		// Entering admin mode only needs a valid login; everything past
		// the gate needs the elevated session flag.
		authentication.POST("/admin/enter", controllers.EnterAdminMode(cfg, redisClient))

		authentication.GET("/admin/status", controllers.GetAdminStatus(redisClient))

		admin := authentication.Group("/admin")
		admin.Use(middleware.AdminRequired(redisClient))
		{
			admin.POST("/exit", controllers.ExitAdminMode(redisClient))

			admin.GET("/playgroups", controllers.AdminListPlaygroups(db))

			admin.DELETE("/playgroups/:playgroup_id", controllers.AdminDeletePlaygroup(db))

			admin.GET("/users", controllers.AdminListUsers(db))

			admin.DELETE("/users/:user_id", controllers.AdminDeleteUser(db))

			admin.GET("/entries", controllers.AdminListEntries(db))

			admin.GET("/invites", controllers.AdminListInvites(db))

			admin.DELETE("/invites/:token", controllers.AdminRevokeInvite(db))

			admin.GET("/config", controllers.GetAppConfig(db))

			admin.PUT("/config", controllers.UpdateAppConfig(db))

			admin.POST("/announcements", controllers.PublishAnnouncement(db))

			admin.DELETE("/announcements", controllers.ClearAnnouncements(db))
		}
	}
}
