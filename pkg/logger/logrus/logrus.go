package logrus

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"shoeshop/configs"
)

// NewLogger builds the consumer-side logger. Local runs log text to stdout,
// other environments write JSON to a rotated file as well.
func NewLogger(cfg *configs.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch cfg.Env {
	case "local":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
		logger.SetOutput(os.Stdout)
	case "dev":
		logger.SetLevel(logrus.DebugLevel)
		logger.SetOutput(rotated("logs/shoeshop-consumer.json"))
	case "prod":
		logger.SetLevel(logrus.InfoLevel)
		logger.SetOutput(rotated("/var/log/shoeshop/consumer.json"))
	default:
		logger.SetOutput(os.Stdout)
	}

	return logger
}

func rotated(path string) io.Writer {
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 3,
	})
}
