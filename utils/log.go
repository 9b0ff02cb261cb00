package utils

import (
	"encoding"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLogLevel = errors.New("unknown log level (known: trace, debug, info, warn, error)")

const (
	// TRACE is below every zapcore level. It is used to dump raw
	// request and response bodies, which is too noisy for DEBUG.
	TRACE = zapcore.DebugLevel - 1
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

const timeFormat = "15:04:05.000 02/01/2006 -07:00"

type LogLevel struct {
	level zapcore.Level
}

func NewLogLevel(level zapcore.Level) *LogLevel {
	return &LogLevel{level: level}
}

// The following are necessary for Cobra and Viper, respectively, to unmarshal log level
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*LogLevel)(nil)
	_ encoding.TextUnmarshaler = (*LogLevel)(nil)
)

func (l *LogLevel) Level() zapcore.Level {
	return l.level
}

func (l *LogLevel) String() string {
	switch l.level {
	case TRACE:
		return "trace"
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	default:
		// Should not happen.
		panic(ErrUnknownLogLevel)
	}
}

func (l LogLevel) MarshalYAML() (any, error) {
	return l.String(), nil
}

func (l *LogLevel) Set(s string) error {
	switch strings.ToLower(s) {
	case "trace":
		l.level = TRACE
	case "debug":
		l.level = DEBUG
	case "info":
		l.level = INFO
	case "warn":
		l.level = WARN
	case "error":
		l.level = ERROR
	default:
		return ErrUnknownLogLevel
	}
	return nil
}

func (l *LogLevel) Type() string {
	return "LogLevel"
}

func (l *LogLevel) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`"` + l.String() + `"`), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

// StructuredLogger is the logging surface components depend on.
type StructuredLogger interface {
	Tracew(msg string, keysAndValues ...any)
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	IsTraceEnabled() bool
}

type ZapLogger struct {
	*zap.SugaredLogger
}

var _ StructuredLogger = (*ZapLogger)(nil)

func NewZapLogger(logLevel *LogLevel, colour bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.Encoding = "console"
	config.EncoderConfig.EncodeLevel = capitalLevelEncoder
	if colour {
		config.EncoderConfig.EncodeLevel = capitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	config.EncoderConfig.ConsoleSeparator = " "
	config.Level = zap.NewAtomicLevelAt(logLevel.Level())

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{log.Sugar()}, nil
}

func NewZapLoggerWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{zap.New(core).Sugar()}
}

func NewNopZapLogger() *ZapLogger {
	return &ZapLogger{zap.NewNop().Sugar()}
}

func (l *ZapLogger) Tracew(msg string, keysAndValues ...any) {
	l.Logw(TRACE, msg, keysAndValues...)
}

func (l *ZapLogger) IsTraceEnabled() bool {
	return l.Desugar().Core().Enabled(TRACE)
}

// zapcore's builtin encoders print sub-debug levels as "LEVEL(-2)".
func capitalLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == TRACE {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(level, enc)
}

func capitalColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == TRACE {
		enc.AppendString("\x1b[35mTRACE\x1b[0m")
		return
	}
	zapcore.CapitalColorLevelEncoder(level, enc)
}
