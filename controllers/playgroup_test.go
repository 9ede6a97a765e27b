package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGetPlaygroupName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	router := gin.New()
	router.GET("/playgroups/:playgroup_id/name", GetPlaygroupName(db))

	mock.ExpectQuery(`SELECT \* FROM "playgroups" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("pg-1", "Friday Night"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/playgroups/pg-1/name", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Friday Night"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlaygroupNameNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	router := gin.New()
	router.GET("/playgroups/:playgroup_id/name", GetPlaygroupName(db))

	mock.ExpectQuery(`SELECT \* FROM "playgroups" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/playgroups/missing/name", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func postForm(router *gin.Engine, path, form string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePlaygroupLimitReached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	notAdmin := func(string) bool { return false }
	router := gin.New()
	router.POST("/auth/playgroups", fakeAuthContext("u1"), CreatePlaygroup(db, notAdmin))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "playgroups"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Already owns as many campaigns as the plan allows
	mock.ExpectQuery(`SELECT count\(\*\) FROM "playgroup_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "app_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "max_campaigns_per_owner"}))

	w := postForm(router, "/auth/playgroups", "name=Saturday+Crew")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Campaign limit reached")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlaygroupDuplicateName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	notAdmin := func(string) bool { return false }
	router := gin.New()
	router.POST("/auth/playgroups", fakeAuthContext("u1"), CreatePlaygroup(db, notAdmin))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "playgroups"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := postForm(router, "/auth/playgroups", "name=Friday+Night")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already have a campaign")
	assert.NoError(t, mock.ExpectationsWereMet())
}
