package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/csbluegem-go/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logger.New("info", "text"))
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "text is logfmt style",
			format: "text",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "level=INFO")
				assert.Contains(t, out, "msg=probe")
				assert.Contains(t, out, "skin=Karambit")
			},
		},
		{
			name:   "json is one object per line",
			format: "json",
			check: func(t *testing.T, out string) {
				var rec map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &rec))
				assert.Equal(t, "INFO", rec["level"])
				assert.Equal(t, "probe", rec["msg"])
				assert.Equal(t, "Karambit", rec["skin"])
			},
		},
		{
			name:   "color carries message and attrs",
			format: "color",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "probe")
				assert.Contains(t, out, "Karambit")
			},
		},
		{
			name:   "unknown format falls back to text",
			format: "yaml",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "level=INFO")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := logger.NewWithWriter(&buf, "info", tt.format)
			l.Info("probe", "skin", "Karambit")

			tt.check(t, strings.TrimRight(buf.String(), "\n"))
		})
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	emit := func(l *slog.Logger) {
		l.Debug("at debug")
		l.Info("at info")
		l.Warn("at warn")
		l.Error("at error")
	}

	tests := []struct {
		level        string
		wantMessages []string
	}{
		{level: "debug", wantMessages: []string{"at debug", "at info", "at warn", "at error"}},
		{level: "info", wantMessages: []string{"at info", "at warn", "at error"}},
		{level: "warn", wantMessages: []string{"at warn", "at error"}},
		{level: "error", wantMessages: []string{"at error"}},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			emit(logger.NewWithWriter(&buf, tt.level, "text"))

			out := buf.String()
			assert.Equal(t, len(tt.wantMessages), strings.Count(out, "msg="))
			for _, msg := range tt.wantMessages {
				assert.Contains(t, out, msg)
			}
		})
	}
}
