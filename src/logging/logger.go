package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/term"
)

// Format selects the handler used for output.
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

var formatNames = map[string]Format{
	"":        FormatAuto,
	"auto":    FormatAuto,
	"console": FormatConsole,
	"json":    FormatJSON,
}

// level is shared by every handler built here so SetLogLevel applies immediately.
var level = new(slog.LevelVar)

var current atomic.Pointer[slog.Logger]

func init() {
	level.Set(slog.LevelInfo)
	current.Store(New(os.Stderr, FormatAuto))
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return slog.LevelInfo, goerr.New("invalid log level", goerr.V("level", s))
	}
	return l, nil
}

// ParseFormat maps a format name (auto, console, json) to a Format.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FormatAuto, goerr.New("invalid log format", goerr.V("format", s))
	}
	return f, nil
}

// SetLogLevel parses and sets the global level; unknown names are ignored.
func SetLogLevel(s string) {
	if l, err := ParseLevel(s); err == nil {
		level.Set(l)
	}
}

// New builds a logger writing to w. Auto uses clog on terminals and JSON elsewhere.
func New(w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatConsole
		}
	}

	var h slog.Handler
	switch format {
	case FormatConsole:
		h = leveled{clog.New(
			clog.WithWriter(w),
			clog.WithLevel(slog.LevelDebug),
			clog.WithTimeFmt("15:04:05.000"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)}
	default:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}

// leveled gates a handler on the shared level so SetLogLevel reaches it.
type leveled struct{ slog.Handler }

func (h leveled) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= level.Level() && h.Handler.Enabled(ctx, l)
}

func (h leveled) WithAttrs(attrs []slog.Attr) slog.Handler {
	return leveled{h.Handler.WithAttrs(attrs)}
}

func (h leveled) WithGroup(name string) slog.Handler {
	return leveled{h.Handler.WithGroup(name)}
}

// Configure installs a logger as both the package logger and slog's default.
func Configure(w io.Writer, levelName, formatName string) (*slog.Logger, error) {
	l, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	level.Set(l)
	logger := New(w, f)
	SetDefault(logger)
	return logger, nil
}

// SetDefault replaces the package logger.
func SetDefault(l *slog.Logger) {
	if l == nil {
		return
	}
	current.Store(l)
	slog.SetDefault(l)
}

func logf(l slog.Level, format string, args ...interface{}) {
	logger := current.Load()
	if !logger.Enabled(context.Background(), l) {
		return
	}
	// format only when args are present so literal '%' in prebuilt messages survives
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	logger.Log(context.Background(), l, msg)
}

func Debugf(format string, a ...interface{}) { logf(slog.LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(slog.LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(slog.LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(slog.LevelError, format, a...) }

// TimeTrack logs how long a phase took, at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
