package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/applib/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("defaults to JSON at info level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("JSON formatter overrides text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("hello", logger.Page(2))
		entry := decode(t, buf)
		assert.Equal(t, "hello", entry["msg"])
		assert.EqualValues(t, 2, entry["page"])
	})

	t.Run("development enables debug and tags component", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithDevelopment("datatable"))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "component=datatable")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Page(3)))
		log.Info("msg")
		assert.EqualValues(t, 3, decode(t, buf)["page"])
	})

	t.Run("context value extraction", func(t *testing.T) {
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("table", key{}))
		ctx := context.WithValue(context.Background(), key{}, "users")
		log.InfoContext(ctx, "loaded")
		assert.Equal(t, "users", decode(t, buf)["table"])
	})

	t.Run("custom extractor survives WithAttrs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				return slog.String("trace", "abc"), true
			}),
		).With(logger.SearchTerm("doe"))
		log.InfoContext(context.Background(), "search")
		entry := decode(t, buf)
		assert.Equal(t, "abc", entry["trace"])
		assert.Equal(t, "doe", entry["search"])
	})
}

func TestContextHandler_ExplicitAttrWins(t *testing.T) {
	fromCtx := func(ctx context.Context) (slog.Attr, bool) {
		return slog.String("request_id", "from-ctx"), true
	}

	t.Run("record attribute", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(fromCtx))
		log.InfoContext(context.Background(), "load", slog.String("request_id", "explicit"))
		assert.Equal(t, 1, strings.Count(buf.String(), `"request_id"`))
		assert.Equal(t, "explicit", decode(t, buf)["request_id"])
	})

	t.Run("bound attribute", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(fromCtx)).
			With(slog.String("request_id", "bound"))
		log.InfoContext(context.Background(), "load")
		assert.Equal(t, 1, strings.Count(buf.String(), `"request_id"`))
		assert.Equal(t, "bound", decode(t, buf)["request_id"])
	})

	t.Run("added when absent", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(fromCtx))
		log.InfoContext(context.Background(), "load")
		assert.Equal(t, "from-ctx", decode(t, buf)["request_id"])
	})
}

func TestNewContextHandler_NoExtractors(t *testing.T) {
	base := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	assert.Same(t, base, logger.NewContextHandler(base, nil))
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
