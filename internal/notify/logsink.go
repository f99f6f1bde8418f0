package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// LogSink appends the full per-host report every cycle, verdict or not.
// Rotation is handled by lumberjack like the main application log.
type LogSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLogSink(path string) *LogSink {
	return &LogSink{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}}
}

func (l *LogSink) Name() string { return "log" }

func (l *LogSink) Record(ctx context.Context, report domain.CycleReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "--- %s\n%s", report.CheckedAt.Format("2006-01-02 15:04:05 MST"), report.Text())
	return err
}
