package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wplohrmann/sumo/pkg/config"
)

// capture returns a Logger writing JSON entries into the buffer.
func capture() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{z: zerolog.New(&buf)}, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewAppliesLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(&config.Config{Env: "test", LogLevel: tt.level, LogFormat: "json"})
			assert.Equal(t, tt.want, log.z.GetLevel())
		})
	}
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{" info ", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, level(tt.input), "level(%q)", tt.input)
	}
}

func TestWriterFor(t *testing.T) {
	_, console := writerFor("console").(zerolog.ConsoleWriter)
	assert.True(t, console)

	_, pretty := writerFor("pretty").(zerolog.ConsoleWriter)
	assert.True(t, pretty)

	assert.Equal(t, os.Stdout, writerFor("json"))
	assert.Equal(t, os.Stdout, writerFor(""))
}

func TestLevelMethods(t *testing.T) {
	log, buf := capture()

	tests := []struct {
		level string
		emit  func(string)
	}{
		{"debug", log.Debug},
		{"info", log.Info},
		{"warn", log.Warn},
		{"error", log.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.emit("the message")

			entry := lastEntry(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "the message", entry["message"])
		})
	}
}

func TestFormattedMethods(t *testing.T) {
	log, buf := capture()

	tests := []struct {
		level string
		emit  func(string, ...interface{})
	}{
		{"debug", log.Debugf},
		{"info", log.Infof},
		{"warn", log.Warnf},
		{"error", log.Errorf},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.emit("basho %s day %d", "202301", 7)

			entry := lastEntry(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "basho 202301 day 7", entry["message"])
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := &Logger{z: zerolog.New(&buf).Level(zerolog.WarnLevel)}

	log.Debug("dropped")
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithField(t *testing.T) {
	log, buf := capture()

	log.WithField("basho_id", "202301").Info("sync started")

	entry := lastEntry(t, buf)
	assert.Equal(t, "202301", entry["basho_id"])
	assert.Equal(t, "sync started", entry["message"])
}

func TestWithFields(t *testing.T) {
	log, buf := capture()

	log.WithFields(map[string]interface{}{
		"basho_id":   "202301",
		"division":   "Makuuchi",
		"rikishi_id": 45,
	}).Info("banzuke stored")

	entry := lastEntry(t, buf)
	assert.Equal(t, "202301", entry["basho_id"])
	assert.Equal(t, "Makuuchi", entry["division"])
	assert.Equal(t, float64(45), entry["rikishi_id"])
}

func TestWithFieldLeavesParent(t *testing.T) {
	log, buf := capture()

	_ = log.WithField("day", 3)
	log.Info("plain")

	entry := lastEntry(t, buf)
	_, ok := entry["day"]
	assert.False(t, ok)
}

func TestWithError(t *testing.T) {
	log, buf := capture()

	log.WithError(errors.New("connection refused")).Error("fetch failed")

	entry := lastEntry(t, buf)
	assert.Equal(t, "connection refused", entry["error"])
	assert.Equal(t, "fetch failed", entry["message"])
}
