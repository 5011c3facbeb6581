package chiext

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"
)

type recordHandler struct {
	levels *[]slog.Level
}

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.levels = append(*h.levels, r.Level)
	return nil
}
func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }

func TestLogEntryLevels(t *testing.T) {
	var levels []slog.Level
	prev := slog.Default()
	slog.SetDefault(slog.New(recordHandler{levels: &levels}))
	defer slog.SetDefault(prev)

	f := &DefaultLogFormatter{}
	entry := f.NewLogEntry(httptest.NewRequest("GET", "/api/state", nil))

	entry.Write(200, 0, nil, time.Millisecond, nil)
	entry.Write(503, 0, nil, time.Millisecond, nil)

	if len(levels) != 2 || levels[0] != slog.LevelInfo || levels[1] != slog.LevelError {
		t.Fatalf("levels = %v", levels)
	}
}
