package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"shoeshop/configs"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func NewLogger(cfg *configs.Config) *slog.Logger {
	var logger *slog.Logger

	switch cfg.Env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}))
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(newMultiWriter("logs/shoeshop.log"), &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}))
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(newMultiWriter("/var/log/shoeshop/shoeshop.log"), &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))
	default:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		logger.Warn("unknown environment, logging to stdout", "env", cfg.Env)
	}

	return logger.With("service", "shoeshop", "env", cfg.Env)
}

// NewTestLogger returns a logger that drops everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newMultiWriter(path string) io.Writer {
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
}
