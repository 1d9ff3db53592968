package logs

import (
	"bytes"
	"encoding/json"
	"testing"

	"cadastre/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "cadastre"
	cfg.Env.Env = "test"
	cfg.Env.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, cfg)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "plate_number", "KMP-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "cadastre", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "KMP-1", record["plate_number"])
}

func TestNewWithWriter_Pretty(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Pretty = true
	cfg.Env.Log.Level = "debug"

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, cfg)
	require.NoError(t, err)

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestParseLogLevel(t *testing.T) {
	_, err := parseLogLevel("verbose")
	assert.ErrorContains(t, err, "unknown log level")

	level, err := parseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", level.String())
}
