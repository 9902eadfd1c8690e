package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/content-composer/linkedin-autopilot/pkg/formatter"
)

func (c *CommandImpl) handleAssets(ctx context.Context, chatID int64) error {
	infos, err := c.AssetRepo.List(ctx)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to list assets.")
		return fmt.Errorf("list assets: %w", err)
	}
	if len(infos) == 0 {
		_, err := c.Telegram.SendMessage(chatID, "No assets stored. Use the assets tool to add some.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🖼 %d stored asset(s):\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&b, "%s  %s (%s, %s bytes)\n",
			info.ID, info.Name, info.MimeType, formatter.FormatNumber(int(info.ByteLength)))
	}

	_, err = c.Telegram.SendMessage(chatID, strings.TrimRight(b.String(), "\n"))
	return err
}
