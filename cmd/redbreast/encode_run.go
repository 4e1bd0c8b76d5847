package main

import (
	"time"

	"github.com/spf13/cobra"

	"redbreast/internal/history"
)

// runEncode executes one encoder operation and records the outcome in the
// history store when enabled. History failures never fail the encode; they
// are logged and the encode result stands.
func runEncode(cmd *cobra.Command, ctx *commandContext, command, inputFile string, encode func() (string, error)) (string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	logger := ctx.ensureLogger()

	started := time.Now()
	output, encodeErr := encode()
	duration := time.Since(started)

	if cfg.History.Enabled {
		entry := history.Entry{
			Command:         command,
			InputPath:       inputFile,
			OutputPath:      output,
			DurationSeconds: duration.Seconds(),
		}
		if encodeErr != nil {
			entry.Status = history.StatusFailed
			entry.ErrorMessage = encodeErr.Error()
		}

		store, err := ctx.openHistory(cfg)
		if err != nil {
			logger.Warn("history store unavailable", "error", err)
		} else {
			if _, err := store.Record(cmd.Context(), entry); err != nil {
				logger.Warn("failed to record history entry", "error", err)
			}
			_ = store.Close()
		}
	}

	if encodeErr != nil {
		return "", encodeErr
	}
	logger.Info("encode finished", "command", command, "input", inputFile, "output", output, "duration", duration)
	return output, nil
}
