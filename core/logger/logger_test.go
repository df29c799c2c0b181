package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrinjs/Kyrin/core/logger"
)

func TestNewWithWriterText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Level: "info", Format: "text"}, &buf)

	log.Info("hello", "key", "value")
	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "key=value")
}

func TestNewWithWriterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Level: "info", Format: "json"}, &buf)

	log.Info("hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		debugIn bool
		warnIn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"unknown-defaults-to-info", false, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.NewWithWriter(logger.Config{Level: tc.level}, &buf)

			log.Debug("debug msg")
			log.Warn("warn msg")

			assert.Equal(t, tc.debugIn, bytes.Contains(buf.Bytes(), []byte("debug msg")))
			assert.Equal(t, tc.warnIn, bytes.Contains(buf.Bytes(), []byte("warn msg")))
		})
	}
}

func TestNewDiscard(t *testing.T) {
	t.Parallel()

	log := logger.NewDiscard()
	assert.NotPanics(t, func() {
		log.Info("dropped", "key", "value")
	})
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{}, &buf)

	log.Info("request",
		logger.Method("GET"),
		logger.Path("/users"),
		logger.Status(200),
		logger.Component("api"),
		logger.Error(errors.New("oops")),
	)

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/users")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "component=api")
	assert.Contains(t, out, "error=oops")
}

func TestNilSafeAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{}, &buf)

	log.Info("clean", logger.Error(nil), logger.Component(""))
	assert.NotContains(t, buf.String(), "error=")
	assert.NotContains(t, buf.String(), "component=")
}
