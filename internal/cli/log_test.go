package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("page") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("page") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("page") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("page") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered 2 pages")

	out := buf.String()
	if !strings.Contains(out, "Rendered 2 pages (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), l))
	if got != l {
		t.Fatal("logger not carried by context")
	}
	got.Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Errorf("output = %q", buf.String())
	}
}
