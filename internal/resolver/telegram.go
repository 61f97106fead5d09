// Package resolver turns object references into fetch locations
package resolver

import (
	"bitwise74/file-linker/internal/service"
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

// Telegram resolves Telegram file ids to CDN download URLs. The URL embeds
// the bot token so it's only ever handed out after the gateway said yes.
type Telegram struct {
	api fileLinker
}

func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

// FetchURL ignores the options, the Telegram CDN can't be told how to serve
func (t *Telegram) FetchURL(ctx context.Context, objectRef string, _ service.FetchOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	u, err := t.api.GetFileDirectURL(objectRef)
	if err != nil {
		return "", fmt.Errorf("failed to resolve telegram file, %w", err)
	}

	return u, nil
}
