package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t     *testing.T
	app   *App
	token string
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Database:  config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		JWT:       config.JWTConfig{Secret: testSecret},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Analytics: config.AnalyticsConfig{TimezoneOffsetMinutes: 330},
	}
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	require.NoError(t, err)

	// 2024-01-04 10:30 IST
	clock := analytics.NewFixedClock(330, time.Date(2024, 1, 4, 5, 0, 0, 0, time.UTC))
	return New(cfg, db, nil, clock)
}

func (a *App) client(t *testing.T, userID uint) *client {
	token, err := util.GenerateJWT(userID, "", testSecret, time.Hour)
	require.NoError(t, err)
	return &client{t: t, app: a, token: token}
}

func (c *client) do(method, path string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.app.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthIsPublic(t *testing.T) {
	a := newTestApp(t)
	anon := &client{t: t, app: a}

	code, env := anon.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","components":{"database":"up","redis":"disabled"}}`, string(env.Data))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)
	anon := &client{t: t, app: a}

	for _, path := range []string{"/api/habits", "/api/analytics", "/api/challenge/current"} {
		code, _ := anon.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestHabitFlow(t *testing.T) {
	a := newTestApp(t)
	user := a.client(t, 1)

	code, env := user.do(http.MethodPost, "/api/habits", map[string]string{"title": "Read", "startDate": "2024-01-01"})
	require.Equal(t, http.StatusCreated, code)
	habit := decode[struct {
		ID        string `json:"id"`
		Frequency string `json:"frequency"`
		StartDate string `json:"startDate"`
	}](t, env.Data)
	assert.Equal(t, "daily", habit.Frequency)
	assert.Equal(t, "2024-01-01", habit.StartDate)

	for _, l := range []map[string]string{
		{"status": "done", "date": "2024-01-01"},
		{"status": "done", "date": "2024-01-02"},
		{"status": "missed", "date": "2024-01-03"},
		{"status": "done"},
	} {
		code, env = user.do(http.MethodPost, "/api/habits/"+habit.ID+"/log", l)
		require.Equal(t, http.StatusOK, code, env.Message)
	}
	logged := decode[struct {
		Habit struct {
			CurrentStreak int `json:"currentStreak"`
			LongestStreak int `json:"longestStreak"`
		} `json:"habit"`
	}](t, env.Data)
	assert.Equal(t, 1, logged.Habit.CurrentStreak)
	assert.Equal(t, 2, logged.Habit.LongestStreak)

	code, env = user.do(http.MethodGet, "/api/habits/"+habit.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[struct {
		Stats struct {
			CompletionRate int `json:"completionRate"`
			ExpectedDays   int `json:"expectedDays"`
		} `json:"stats"`
	}](t, env.Data)
	assert.Equal(t, 75, stats.Stats.CompletionRate)
	assert.Equal(t, 4, stats.Stats.ExpectedDays)

	code, env = user.do(http.MethodGet, "/api/habits/"+habit.ID+"/logs", nil)
	require.Equal(t, http.StatusOK, code)
	logs := decode[struct {
		Logs []struct {
			Date string `json:"date"`
		} `json:"logs"`
	}](t, env.Data)
	require.Len(t, logs.Logs, 4)
	assert.Equal(t, "2024-01-04", logs.Logs[0].Date)

	code, env = user.do(http.MethodGet, "/api/analytics?month=2024-01", nil)
	require.Equal(t, http.StatusOK, code)
	summary := decode[struct {
		TotalHabits      int `json:"totalHabits"`
		ConsistencyScore int `json:"consistencyScore"`
		Leaderboard      []struct {
			HabitID string `json:"habitId"`
		} `json:"leaderboard"`
	}](t, env.Data)
	assert.Equal(t, 1, summary.TotalHabits)
	assert.Equal(t, 75, summary.ConsistencyScore)
	require.Len(t, summary.Leaderboard, 1)

	code, _ = user.do(http.MethodPatch, "/api/habits/"+habit.ID, map[string]string{"frequency": "weekly"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = user.do(http.MethodDelete, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = user.do(http.MethodGet, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHabitErrorMapping(t *testing.T) {
	a := newTestApp(t)
	owner := a.client(t, 1)
	other := a.client(t, 2)

	_, env := owner.do(http.MethodPost, "/api/habits", map[string]string{"title": "Run"})
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	cases := []struct {
		name   string
		c      *client
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"missing title", owner, http.MethodPost, "/api/habits", map[string]string{}, http.StatusBadRequest},
		{"bad frequency", owner, http.MethodPost, "/api/habits", map[string]string{"title": "x", "frequency": "hourly"}, http.StatusBadRequest},
		{"bad status", owner, http.MethodPost, "/api/habits/" + id + "/log", map[string]string{"status": "skipped"}, http.StatusBadRequest},
		{"missing status", owner, http.MethodPost, "/api/habits/" + id + "/log", map[string]string{}, http.StatusBadRequest},
		{"bad date", owner, http.MethodPost, "/api/habits/" + id + "/log", map[string]string{"status": "done", "date": "yesterday"}, http.StatusBadRequest},
		{"future date", owner, http.MethodPost, "/api/habits/" + id + "/log", map[string]string{"status": "done", "date": "2024-01-05"}, http.StatusBadRequest},
		{"unknown habit", owner, http.MethodPost, "/api/habits/nope/log", map[string]string{"status": "done"}, http.StatusNotFound},
		{"other user", other, http.MethodPost, "/api/habits/" + id + "/log", map[string]string{"status": "done"}, http.StatusNotFound},
		{"bad month", owner, http.MethodGet, "/api/analytics?month=2024-1x", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		code, _ := tc.c.do(tc.method, tc.path, tc.body)
		assert.Equal(t, tc.want, code, tc.name)
	}
}

func TestChallengeFlow(t *testing.T) {
	a := newTestApp(t)
	user := a.client(t, 1)

	code, env := user.do(http.MethodGet, "/api/challenge/current", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"active":false}`, string(env.Data))

	habits := []map[string]string{
		{"title": "Wake", "startTime": "06:00 AM", "endTime": "07:00 AM"},
		{"title": "Read", "startTime": "10:00", "endTime": "11:00"},
		{"title": "Walk", "startTime": "05:00 PM", "endTime": "06:00 PM"},
		{"title": "Water", "startTime": "00:00", "endTime": "23:59"},
		{"title": "Plan", "startTime": "09:00", "endTime": "09:30"},
	}
	code, _ = user.do(http.MethodPost, "/api/challenge/start", map[string]interface{}{"habits": habits})
	assert.Equal(t, http.StatusBadRequest, code, "fewer than 6 habits")

	habits = append(habits, map[string]string{"title": "Sleep", "startTime": "10:00 PM", "endTime": "11:00 PM"})
	code, env = user.do(http.MethodPost, "/api/challenge/start", map[string]interface{}{"habits": habits})
	require.Equal(t, http.StatusCreated, code)
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	code, _ = user.do(http.MethodPost, "/api/challenge/done/"+id+"/1", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = user.do(http.MethodPost, "/api/challenge/done/"+id+"/2", nil)
	assert.Equal(t, http.StatusBadRequest, code, "too early")
	code, _ = user.do(http.MethodPost, "/api/challenge/done/"+id+"/0", nil)
	assert.Equal(t, http.StatusBadRequest, code, "window expired")
	code, _ = user.do(http.MethodPost, "/api/challenge/done/"+id+"/x", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.client(t, 2).do(http.MethodPost, "/api/challenge/done/"+id+"/1", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = user.do(http.MethodGet, "/api/challenge/heatmap", nil)
	require.Equal(t, http.StatusOK, code)
	hm := decode[struct {
		Heatmap []struct {
			Level int `json:"level"`
			Count int `json:"count"`
		} `json:"heatmap"`
		Stats struct {
			TotalCompleted int `json:"totalCompleted"`
		} `json:"stats"`
	}](t, env.Data)
	require.Len(t, hm.Heatmap, 21)
	assert.Equal(t, 1, hm.Heatmap[0].Count)
	assert.Equal(t, -1, hm.Heatmap[1].Level)
	assert.Equal(t, 1, hm.Stats.TotalCompleted)

	code, _ = user.do(http.MethodPut, "/api/challenge/update/"+id, map[string]interface{}{"habits": habits})
	assert.Equal(t, http.StatusOK, code)
	code, _ = user.do(http.MethodPut, "/api/challenge/update/missing", map[string]interface{}{"habits": habits})
	assert.Equal(t, http.StatusNotFound, code)
}
