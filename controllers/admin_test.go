package controllers

import (
	"net/http"
	"testing"

	"Scorekeeper/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminTestConfig(t *testing.T, passphrase string) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		AdminEmails:         []string{"root@example.com"},
		AdminPassphraseHash: string(hash),
	}
}

func TestEnterAdminModeDeniedForUnknownEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := adminTestConfig(t, "correct horse")

	router := gin.New()
	// Redis is never reached on the denial paths
	router.POST("/auth/admin/enter", fakeAuthContext("u1"), EnterAdminMode(cfg, nil))

	w := postForm(router, "/auth/admin/enter", "passphrase=correct+horse")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access denied")
}

func TestEnterAdminModeDeniedForWrongPassphrase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := adminTestConfig(t, "correct horse")

	router := gin.New()
	router.POST("/auth/admin/enter", fakeAuthContext("root"), EnterAdminMode(cfg, nil))

	w := postForm(router, "/auth/admin/enter", "passphrase=battery+staple")

	assert.Equal(t, http.StatusForbidden, w.Code)
	// An allow-listed email with a bad passphrase gets the same answer as an
	// unknown email, so probing cannot tell the two apart.
	assert.Contains(t, w.Body.String(), "Admin access denied")
}
