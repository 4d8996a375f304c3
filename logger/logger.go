package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the colored console logger used for interactive output.
func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}
	defer logger.Sync()

	return logger.Sugar()
}

// NewFileLogger returns a logger that appends one timestamped line per
// entry to logFilePath. The storage gateway uses it as its error sink.
func NewFileLogger(logFilePath string) *zap.SugaredLogger {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:         "console",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{logFilePath},
		ErrorOutputPaths: []string{logFilePath},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}
	defer logger.Sync()

	return logger.Sugar()
}
