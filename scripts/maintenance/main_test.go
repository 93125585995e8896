package main

import (
	"bytes"
	"testing"
	"time"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/pkg/database"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContext(t *testing.T) (*Context, *gorm.DB, *bytes.Buffer) {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "test")
	require.NoError(t, err)

	clock := analytics.NewFixedClock(330, time.Date(2024, 1, 4, 6, 0, 0, 0, time.UTC))
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habits := service.NewHabitService(habitRepo, logRepo, nil, clock, db)

	out := &bytes.Buffer{}
	return &Context{
		Maintenance: service.NewMaintenanceService(habitRepo, logRepo, habits, clock),
		Out:         out,
	}, db, out
}

func parse(t *testing.T, args ...string) *kong.Context {
	t.Helper()
	var cli = CLI
	parser, err := kong.New(&cli, kong.Name("maintenance"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx
}

func TestCommandsParse(t *testing.T) {
	assert.Equal(t, "recalculate", parse(t, "recalculate").Command())
	assert.Equal(t, "fix-metadata", parse(t, "fix-metadata").Command())
	assert.Equal(t, "verify-dates", parse(t, "verify-dates", "--config", "configs").Command())
}

func TestVerifyDatesFailsOnBadRows(t *testing.T) {
	ctx, db, out := newContext(t)

	require.NoError(t, (&VerifyDatesCmd{}).Run(ctx))
	assert.JSONEq(t, `[]`, out.String())

	require.NoError(t, db.Exec(
		"INSERT INTO habit_logs (id, habit_id, date, status, created_at, updated_at) VALUES ('l1', 'h1', '01/02/2024', 'done', ?, ?)",
		time.Now(), time.Now()).Error)
	out.Reset()
	err := (&VerifyDatesCmd{}).Run(ctx)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "01/02/2024")
}

func TestRecalculateReportsEmpty(t *testing.T) {
	ctx, _, out := newContext(t)
	require.NoError(t, (&RecalculateCmd{}).Run(ctx))
	assert.JSONEq(t, `{"updated":0,"failed":0,"habits":[]}`, out.String())

	out.Reset()
	require.NoError(t, (&FixMetadataCmd{}).Run(ctx))
	assert.JSONEq(t, `{"scanned":0,"fixed":[]}`, out.String())
}
