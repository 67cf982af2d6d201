package gologger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/rs/zerolog"
)

// ZerologLogger writes glog calls through a zerolog.Logger. Variadic args are
// read as key/value pairs; a trailing key without value is logged under
// "extra".
type ZerologLogger struct {
	logger zerolog.Logger
}

func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

func (l *ZerologLogger) Trace(msg string, args ...any) { l.emit(l.logger.Trace(), msg, args) }
func (l *ZerologLogger) Debug(msg string, args ...any) { l.emit(l.logger.Debug(), msg, args) }
func (l *ZerologLogger) Info(msg string, args ...any)  { l.emit(l.logger.Info(), msg, args) }
func (l *ZerologLogger) Warn(msg string, args ...any)  { l.emit(l.logger.Warn(), msg, args) }
func (l *ZerologLogger) Error(msg string, args ...any) { l.emit(l.logger.Error(), msg, args) }

// Fatal logs at fatal level without exiting the process.
func (l *ZerologLogger) Fatal(msg string, args ...any) {
	l.emit(l.logger.WithLevel(zerolog.FatalLevel), msg, args)
}

func (l *ZerologLogger) WithContext(ctx context.Context) glog.Logger {
	if ctx == nil {
		return l
	}
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger != nil && ctxLogger.GetLevel() != zerolog.Disabled {
		return &ZerologLogger{logger: *ctxLogger}
	}
	return l
}

func (l *ZerologLogger) emit(event *zerolog.Event, msg string, args []any) {
	if event == nil {
		return
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			event = event.Interface("extra", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

// ZerologProvider hands out loggers tagged with the requested name.
type ZerologProvider struct {
	root zerolog.Logger
}

func NewZerologProvider(root zerolog.Logger) *ZerologProvider {
	return &ZerologProvider{root: root}
}

func (p *ZerologProvider) GetLogger(name string) glog.Logger {
	if p == nil {
		return glog.Nop()
	}
	logger := p.root
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		logger = logger.With().Str("logger", trimmed).Logger()
	}
	return NewZerologLogger(logger)
}

// NewConsoleProvider builds a provider writing to out (stderr when nil) at
// the named level. format is "json" or "text".
func NewConsoleProvider(out io.Writer, level string, format string) (*ZerologProvider, error) {
	if out == nil {
		out = os.Stderr
	}
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	writer := out
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		writer = zerolog.ConsoleWriter{Out: out}
	}
	root := zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
	return NewZerologProvider(root), nil
}

func ParseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("gologger: invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

var (
	_ glog.Logger         = (*ZerologLogger)(nil)
	_ glog.LoggerProvider = (*ZerologProvider)(nil)
)
