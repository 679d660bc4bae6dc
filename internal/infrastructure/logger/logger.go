// Package logger builds the storefront's zap loggers and carries the
// request-scoped logger through context.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Config selects level, encoding and destination. Output is "stdout",
// "stderr" or a file path.
type Config struct {
	Level      string
	Format     string // json or console
	Output     string
	TimeFormat string
}

// DefaultConfig logs info and above to stdout in console format
func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "console", Output: "stdout", TimeFormat: defaultTimeLayout}
}

// Option adjusts New
type Option func(*buildOptions)

type buildOptions struct {
	tees   []zapcore.Core
	fields []zap.Field
}

// WithCore tees every entry into core, e.g. the OTLP log bridge. Nil is ignored.
func WithCore(core zapcore.Core) Option {
	return func(o *buildOptions) {
		if core != nil {
			o.tees = append(o.tees, core)
		}
	}
}

// WithFields attaches fields to every entry
func WithFields(fields ...zap.Field) Option {
	return func(o *buildOptions) { o.fields = append(o.fields, fields...) }
}

// New builds a logger. Errors and above carry a stack trace.
func New(cfg *Config, opts ...Option) (*zap.Logger, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("open log output %q: %w", output, err)
	}

	cores := append([]zapcore.Core{zapcore.NewCore(encoderFor(cfg), sink, ParseLevel(cfg.Level))}, o.tees...)
	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if len(o.fields) > 0 {
		log = log.With(o.fields...)
	}
	return log, nil
}

// ParseLevel accepts zap level names plus "warning". Anything else is info.
func ParseLevel(level string) zapcore.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zapcore.WarnLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

func encoderFor(cfg *Config) zapcore.Encoder {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeLayout
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if cfg.Format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// ForComponent names a child logger after an infrastructure component
func ForComponent(log *zap.Logger, component string) *zap.Logger {
	return log.Named(component).With(zap.String("component", component))
}

// Sync flushes buffered entries
func Sync(log *zap.Logger) error {
	return log.Sync()
}
