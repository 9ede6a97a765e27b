package controllers

import (
	"Scorekeeper/middleware"
	models "Scorekeeper/models/postgres"
	"Scorekeeper/services/redis"
	"Scorekeeper/utils"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Create a new account
// @Description Registers a user with email, password and display name
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param display_name formData string false "Display name"
// @Success 201 {object} object{message=string,user=object{id=string,email=string}}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
		password := c.PostForm("password")
		displayName := strings.TrimSpace(c.PostForm("display_name"))

		if email == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		if displayName == "" {
			displayName = email
		}

		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
			DisplayName:  displayName,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user":    gin.H{"id": user.ID, "email": user.Email},
		})
	}
}

// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string,user=object{id=string,email=string}}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
		password := c.PostForm("password")

		// Minimum input sanitizing
		if email == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		// A fresh session id per login; admin flags are keyed by it.
		sessionID := uuid.NewString()
		token, err := middleware.IssueToken(user.Email, user.ID, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error issuing token"})
			return
		}

		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  gin.H{"id": user.ID, "email": user.Email, "display_name": user.DisplayName},
		})
	}
}

// @Summary Log out
// @Description Drops the cookie session and revokes session-scoped state (admin mode, join intent)
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)

		// Mandatory revocation: admin mode and pending join intent die with
		// the session, never with navigation.
		if err := redisClient.DeleteAdminSession(sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error revoking admin session"})
			return
		}
		if err := redisClient.DeleteJoinIntent(sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing join intent"})
			return
		}

		session := sessions.Default(c)
		session.Delete("Email")
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
	}
}

// @Summary Get the authenticated user's profile
// @Description Returns id, email, display name and favourite game
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{id=string,email=string,display_name=string,favourite_game=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUserByID(db, middleware.SessionUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"display_name":   user.DisplayName,
			"favourite_game": user.FavouriteGame,
			"member_since":   user.MemberSince,
		})
	}
}

// @Summary Update profile
// @Description Updates display name and/or favourite game
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param display_name formData string false "New display name"
// @Param favourite_game formData string false "Favourite game (empty string clears it)"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUserByID(db, middleware.SessionUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		updates := map[string]interface{}{}
		if v, ok := c.GetPostForm("display_name"); ok && strings.TrimSpace(v) != "" {
			updates["display_name"] = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("favourite_game"); ok {
			updates["favourite_game"] = strings.TrimSpace(v)
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		if err := db.Model(user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
	}
}

// @Summary Ping
// @Description Liveness endpoint
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
