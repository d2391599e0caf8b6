package oteladapters_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervolib/catalog-query-go/catalog/oteladapters"
)

type capturedRecord struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

// captureHandler collects slog records so tests can assert on what the bridge
// actually emitted.
type captureHandler struct {
	records *[]capturedRecord
}

func newCaptureHandler() (captureHandler, *[]capturedRecord) {
	records := &[]capturedRecord{}
	return captureHandler{records: records}, records
}

func (h captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h captureHandler) Handle(_ context.Context, record slog.Record) error {
	captured := capturedRecord{
		level: record.Level,
		msg:   record.Message,
		attrs: make(map[string]string),
	}

	record.Attrs(func(attr slog.Attr) bool {
		captured.attrs[attr.Key] = attr.Value.String()
		return true
	})

	*h.records = append(*h.records, captured)

	return nil
}

func (h captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h captureHandler) WithGroup(string) slog.Handler {
	return h
}

func Test_SlogBridgeLogger_EmitsAllLevels(t *testing.T) {
	handler, records := newCaptureHandler()
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message", "key", "debug-value")
	logger.InfoContext(ctx, "info message", "key", "info-value")
	logger.WarnContext(ctx, "warn message", "key", "warn-value")
	logger.ErrorContext(ctx, "error message", "key", "error-value")

	require.Len(t, *records, 4)

	assert.Equal(t, slog.LevelDebug, (*records)[0].level)
	assert.Equal(t, "debug message", (*records)[0].msg)
	assert.Equal(t, "debug-value", (*records)[0].attrs["key"])

	assert.Equal(t, slog.LevelInfo, (*records)[1].level)
	assert.Equal(t, slog.LevelWarn, (*records)[2].level)
	assert.Equal(t, slog.LevelError, (*records)[3].level)
	assert.Equal(t, "error-value", (*records)[3].attrs["key"])
}

func Test_SlogBridgeLogger_NumericAttrsPassThrough(t *testing.T) {
	handler, records := newCaptureHandler()
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	logger.InfoContext(context.Background(), "search completed", "book_count", 7, "duration_ms", 1.25)

	require.Len(t, *records, 1)
	assert.Equal(t, "7", (*records)[0].attrs["book_count"])
	assert.Equal(t, "1.25", (*records)[0].attrs["duration_ms"])
}
