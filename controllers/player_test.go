package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeAuthContext stands in for the JWT middleware in handler tests.
func fakeAuthContext(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", userID+"@example.com")
		c.Set("session_id", "sess-"+userID)
		c.Next()
	}
}

func expectClaimLookups(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "players" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "playgroup_id", "name"}).
			AddRow("p1", "pg-1", "Alice"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "playgroup_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
}

func TestClaimPlayer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	router := gin.New()
	router.POST("/auth/players/:player_id/claim", fakeAuthContext("u1"), ClaimPlayer(db))

	expectClaimLookups(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "players" SET "claimed_by"=\$1 WHERE id = \$2 AND claimed_by IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/players/p1/claim", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Player claimed successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPlayerConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	router := gin.New()
	router.POST("/auth/players/:player_id/claim", fakeAuthContext("u1"), ClaimPlayer(db))

	// Someone else won the race: the conditional update matches no rows.
	expectClaimLookups(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "players" SET "claimed_by"=\$1 WHERE id = \$2 AND claimed_by IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/players/p1/claim", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already been claimed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
