package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAddEntryRejectsNonMember(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	router := gin.New()
	router.POST("/auth/playgroups/:playgroup_id/entries", fakeAuthContext("outsider"), AddEntry(db))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "playgroup_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	w := postForm(router, "/auth/playgroups/pg-1/entries", "game_id=g1&player_id=p1&date=2026-01-10")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not a member")
	assert.NoError(t, mock.ExpectationsWereMet())
}
