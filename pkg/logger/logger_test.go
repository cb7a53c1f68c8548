package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNewWithOutput(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)
		log.Info("hello", slog.String("key", "value"))

		line := logLine(t, &buf)
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "value", line["key"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "info", Format: "text"}, &buf)
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "warn", Format: "json"}, &buf)

		log.Info("dropped")
		assert.Zero(t, buf.Len())
		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "bogus", Format: "json"}, &buf)

		log.Debug("dropped")
		assert.Zero(t, buf.Len())
		log.Info("kept")
		assert.NotZero(t, buf.Len())
	})
}

func TestContextExtractor(t *testing.T) {
	t.Parallel()

	type requestIDKey struct{}

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		id, ok := ctx.Value(requestIDKey{}).(string)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf, extractor)

	t.Run("attribute injected from context", func(t *testing.T) {
		buf.Reset()
		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-123")
		log.InfoContext(ctx, "handled")

		line := logLine(t, &buf)
		assert.Equal(t, "req-123", line["request_id"])
	})

	t.Run("nothing injected without value", func(t *testing.T) {
		buf.Reset()
		log.InfoContext(context.Background(), "handled")

		line := logLine(t, &buf)
		_, ok := line["request_id"]
		assert.False(t, ok)
	})
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
}
