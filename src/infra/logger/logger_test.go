package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightbnb/src/infra/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	WithComponent(log, "user_repo").Info("user registered", "user_id", 7)
	log.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "user registered", entry["msg"])
	assert.Equal(t, "user_repo", entry["component"])
	assert.EqualValues(t, 7, entry["user_id"])
}

func TestPlainHandler(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "plain"}, &buf)

	log.Info("dropped")
	WithComponent(log, "property_repo").Warn("slow query", "elapsed_ms", 250)
	log.WithGroup("db").Error("query failed", "op", "search properties")

	assert.Equal(t,
		"WARN slow query component=property_repo elapsed_ms=250\n"+
			"ERROR query failed db.op=search properties\n",
		buf.String())
}
