package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixelpage/cmd"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevel reads the logging threshold from LOG_LEVEL, defaulting to debug
// when unset or unparsable.
func logLevel() zap.AtomicLevel {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			return zap.NewAtomicLevelAt(parsed)
		}
	}
	return zap.NewAtomicLevelAt(zap.DebugLevel)
}

// main is the entry point of the application.
func main() {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	config := zap.Config{
		Level:            logLevel(),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		cmd.Execute(ctx, logger)
		close(done)
	}()

	select {
	case <-done:
		logger.Info("server exited")
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()

		select {
		case <-done:
		case <-time.After(10 * time.Second):
			logger.Warn("shutdown deadline exceeded")
		}
		logger.Info("shutdown completed")
	}
}
