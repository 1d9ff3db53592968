package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}

	return lines
}

func TestGormSlogLogger_Classify(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.SlowQueryThreshold = 100 * time.Millisecond
	l := newGormSlogLogger(nil, cfg).(*gormSlogLogger)
	require.Equal(t, logger.Warn, l.level)

	tests := []struct {
		name    string
		err     error
		elapsed time.Duration
		level   slog.Level
		logged  bool
	}{
		{name: "not found is silent", err: gorm.ErrRecordNotFound},
		{name: "duplicate key warns", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), level: slog.LevelWarn, logged: true},
		{name: "foreign key warns", err: gorm.ErrForeignKeyViolated, level: slog.LevelWarn, logged: true},
		{name: "other errors", err: errors.New("connection reset"), level: slog.LevelError, logged: true},
		{name: "slow query", elapsed: time.Second, level: slog.LevelWarn, logged: true},
		{name: "fast query skipped", elapsed: time.Millisecond, level: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, _, logged := l.classify(tt.err, tt.elapsed)
			assert.Equal(t, tt.logged, logged)
			if tt.logged {
				assert.Equal(t, tt.level, level)
			}
		})
	}
}

func TestGormSlogLogger_DebugLogsEveryQuery(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.LogQueries = true
	l := newGormSlogLogger(nil, cfg).(*gormSlogLogger)

	level, msg, logged := l.classify(nil, time.Millisecond)
	assert.True(t, logged)
	assert.Equal(t, slog.LevelInfo, level)
	assert.Equal(t, "GORM query", msg)
}

func TestGormSlogLogger_TraceUsesRequestLogger(t *testing.T) {
	base, baseBuf := newBufferLogger()
	scoped, scopedBuf := newBufferLogger()
	l := newGormSlogLogger(base, &config.Config{})

	ctx := deliverycontext.WithLogger(context.Background(), scoped.With(slog.String("request_id", "req-9")))
	l.Trace(ctx, time.Now(), func() (string, int64) { return "INSERT INTO properties", 0 }, gorm.ErrDuplicatedKey)

	assert.Empty(t, baseBuf.String())
	lines := logLines(t, scopedBuf)
	require.Len(t, lines, 1)
	assert.Equal(t, "GORM constraint violation", lines[0]["msg"])
	assert.Equal(t, "req-9", lines[0]["request_id"])
	assert.Equal(t, "INSERT INTO properties", lines[0]["sql"])
}

func TestGormSlogLogger_Silent(t *testing.T) {
	base, buf := newBufferLogger()
	l := newGormSlogLogger(base, &config.Config{}).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	l.Error(context.Background(), "failed %s", "x")

	assert.Empty(t, buf.String())
}

type uniqueRow struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func TestConfigure_TranslatesConstraintErrors(t *testing.T) {
	raw, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := raw.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	base, buf := newBufferLogger()
	db, err := Configure(raw, base, &config.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&uniqueRow{}))

	require.NoError(t, db.Create(&uniqueRow{Code: "PLT-1"}).Error)
	err = db.Create(&uniqueRow{Code: "PLT-1"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.True(t, isUniqueConstraintViolation(err))

	lines := logLines(t, buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, "GORM constraint violation", lines[len(lines)-1]["msg"])

	_, err = Configure(nil, base, nil)
	assert.Error(t, err)
}

func TestPoolMonitor_Report(t *testing.T) {
	base, buf := newBufferLogger()
	m := &poolMonitor{logger: base}

	m.report(context.Background(), sql.DBStats{WaitCount: 3}, sql.DBStats{WaitCount: 3})
	assert.Empty(t, buf.String())

	m.report(context.Background(),
		sql.DBStats{WaitCount: 1, WaitDuration: time.Millisecond},
		sql.DBStats{WaitCount: 3, WaitDuration: 201 * time.Millisecond, MaxOpenConnections: 10})

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.EqualValues(t, 2, lines[0]["waits"])
}
