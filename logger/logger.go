package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"seriesaligner/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap.Logger writing to stdout and, when OutputFile is set, to a
// rotated JSON file.
func New(opts config.LogConfig) (*zap.Logger, error) {
	return newWithStdout(opts, os.Stdout)
}

func newWithStdout(opts config.LogConfig, stdout io.Writer) (*zap.Logger, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder(opts), zapcore.Lock(zapcore.AddSync(stdout)), lvl),
	}

	if opts.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.OutputFile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.OutputFile,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     7, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			fileWriter,
			lvl,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// stdoutEncoder is human-readable in dev or when asked for console output.
func stdoutEncoder(opts config.LogConfig) zapcore.Encoder {
	if opts.Environment == "dev" || opts.Format == "console" {
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
}
