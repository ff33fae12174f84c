package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Nop(t *testing.T) {
	ctx := context.Background()
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Debug(ctx, "x")
		nilLogger.With("k", "v").Warn(ctx, "x")
		New(nil).WithOperation(OpReadConfig).Warn(ctx, "x")
		LogOperation(ctx, nil, time.Second, nil)
	})
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := New(newText(&buf, slog.LevelDebug)).WithOperation(OpSaveDataset)

	LogOperation(context.Background(), logger, 5*time.Millisecond, nil, "path", "out.csv")
	assert.Contains(t, buf.String(), "operation completed")
	assert.Contains(t, buf.String(), "op=save_dataset")
	assert.Contains(t, buf.String(), "path=out.csv")
	assert.Contains(t, buf.String(), "duration=5ms")

	buf.Reset()
	LogOperation(context.Background(), logger, time.Millisecond, errors.New("boom"))
	assert.Contains(t, buf.String(), "operation failed")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(newText(&buf, slog.LevelWarn))

	logger.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	logger.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func newText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
