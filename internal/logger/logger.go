// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

// level is shared by every handler returned by Get so that the
// --verbose flag can raise the verbosity of the whole process.
var level = new(slog.LevelVar)

// CustomTextHandler wraps the standard TextHandler to produce the
// compact, colored log lines used across the tool.
type CustomTextHandler struct {
	handler slog.Handler
}

// Get returns a pre-configured slog logger with our custom format.
// Log lines go to stderr so that fan-out output on stdout stays
// machine-parseable.
func Get() *slog.Logger {
	handler := &CustomTextHandler{
		handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: false,
			// Time, level and message are rendered manually in Handle.
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
					return slog.Attr{}
				}
				return a
			},
		}),
	}

	return slog.New(handler)
}

// SetDebug switches the process-wide log level between Info and Debug.
func SetDebug(debug bool) {
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Handle formats a single log record.
func (h *CustomTextHandler) Handle(ctx context.Context, r slog.Record) error {
	levelStr := r.Level.String()
	switch r.Level {
	case slog.LevelDebug:
		levelStr = color.MagentaString(levelStr)
	case slog.LevelInfo:
		levelStr = color.GreenString(levelStr)
	case slog.LevelWarn:
		levelStr = color.YellowString(levelStr)
	case slog.LevelError:
		levelStr = color.RedString(levelStr)
	}

	attrs := ""
	r.Attrs(func(a slog.Attr) bool {
		attrs = attrs + " " + color.CyanString(a.Key+"=") + a.Value.String()
		return true
	})

	// Ex: 15:04:05.000 [INFO] [argo-manager]: message key=value
	logLine := fmt.Sprintf("%s [%s] %s: %s%s\n",
		r.Time.Format("15:04:05.000"),
		levelStr,
		color.BlueString("[argo-manager]"),
		r.Message,
		attrs,
	)

	_, err := os.Stderr.WriteString(logLine)
	return err
}

// WithAttrs and WithGroup are required to implement slog.Handler.
func (h *CustomTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CustomTextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *CustomTextHandler) WithGroup(name string) slog.Handler {
	return &CustomTextHandler{handler: h.handler.WithGroup(name)}
}

func (h *CustomTextHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= level.Level()
}
