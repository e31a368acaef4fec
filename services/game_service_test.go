package services

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorkkoech/i-verse-hub/models"
)

func gameRows(gameID string, maxPlays int, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "thumbnail_url", "reward_per_action", "max_plays_per_day", "is_active", "created_at"}).
		AddRow(gameID, "Click Rush", "", "", "0.5", maxPlays, active, time.Now())
}

func profileRows(userID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "username", "avatar_url", "total_earnings", "created_at", "updated_at"}).
		AddRow("prof-1", userID, "alice", "", "0", time.Now(), time.Now())
}

func TestRecordSessionCreditsEarnings(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGameService(db)

	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(gameRows("game-1", 10, true))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRows("user-1"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "game_sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "profiles" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "achievements"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := newTestApp("user-1")
	app.Post("/games/:id/sessions", svc.RecordSession)

	body, _ := json.Marshal(map[string]int64{"score": 120})
	req := httptest.NewRequest("POST", "/games/game-1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var out struct {
		Session models.GameSession `json:"session"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "game-1", out.Session.GameID)
	assert.Equal(t, int64(120), out.Session.Score)
	assert.Equal(t, "0.5", out.Session.RewardEarned.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSessionDailyLimit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGameService(db)

	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(gameRows("game-1", 3, true))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRows("user-1"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	app := newTestApp("user-1")
	app.Post("/games/:id/sessions", svc.RecordSession)

	req := httptest.NewRequest("POST", "/games/game-1/sessions", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Daily play limit reached", out["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSessionInactiveGame(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGameService(db)

	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(gameRows("game-1", 10, false))

	app := newTestApp("user-1")
	app.Post("/games/:id/sessions", svc.RecordSession)

	req := httptest.NewRequest("POST", "/games/game-1/sessions", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetLeaderboard(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGameService(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "total_earnings"}).
			AddRow("p1", "user-1", "alice", "42.5").
			AddRow("p2", "user-2", "bob", "10"))

	app := newTestApp("user-1")
	app.Get("/leaderboard", svc.GetLeaderboard)

	req := httptest.NewRequest("GET", "/leaderboard?limit=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Leaderboard []models.Profile `json:"leaderboard"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Leaderboard, 2)
	assert.Equal(t, "alice", out.Leaderboard[0].Username)
}
