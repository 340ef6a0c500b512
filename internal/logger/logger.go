// Package logger sets up the process-wide zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level and file rotation. An empty FileName logs to stdout only.
type Config struct {
	Level      string
	FileName   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// Init builds the logger and installs it as zap's global logger.
// Development environments get a readable console encoder; everything else
// writes JSON.
func Init(cfg Config, dev bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	var cores []zapcore.Core

	if cfg.FileName != "" {
		cores = append(cores, zapcore.NewCore(jsonEncoder(), fileWriter(cfg), level))
	}

	switch {
	case dev:
		console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(console, zapcore.Lock(os.Stdout), level))
	case cfg.FileName == "":
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.Lock(os.Stdout), level))
	}

	lg := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(lg)
	return lg, nil
}

func fileWriter(cfg Config) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})
}

func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}
