package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logEnv names the file debug logs are appended to. Logging is off when unset.
const logEnv = "TODO_LOG"

var logger = discardLogger()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// initLogger points logger at the file named by TODO_LOG. The returned
// function closes that file.
func initLogger() func() {
	path := os.Getenv(logEnv)
	if path == "" {
		logger = discardLogger()
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: failed to open log file:", err)
		logger = discardLogger()
		return func() {}
	}
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("Logger initialized")
	return func() { f.Close() }
}
