package commandimpl

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// handleRun kicks off a batch in the background so the command loop stays
// responsive; the orchestrator reports the result to the owner chat itself.
func (c *CommandImpl) handleRun(ctx context.Context, chatID int64) error {
	_, err := c.Telegram.SendMessage(chatID, "🚀 Batch run started…")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.Logger.Error("Panic recovered during batch run", "panic", r, "stack", string(debug.Stack()))
			}
		}()

		runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
		defer cancel()

		if _, err := c.Orchestrator.RunBatch(runCtx); err != nil {
			c.Logger.Error("Batch run failed", "error", err)
			_, _ = c.Telegram.SendMessage(chatID, "Batch run failed: "+err.Error())
		}
	}()

	return nil
}
