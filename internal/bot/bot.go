// Package bot is the Telegram front end: it turns uploaded media into links
// and handles the password and revoke commands
package bot

import (
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/internal/service"
	"bitwise74/file-linker/pkg/validators"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = `Send me any file/video/document.
I will return:
• Stream link (page with player)
• Download link

Commands:
• /start - help
• /setpass <password> - set password for NEXT link you create
• /clearp - clear password
• /revoke <id> - revoke a link (admin/owner)
`

type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Config struct {
	BaseURL    string
	MaxSize    int64 // Bytes, 0 disables the check
	SessionTTL time.Duration
}

type Bot struct {
	api      messenger
	registry *service.Registry
	sessions *Sessions
	cfg      Config

	handlers sync.WaitGroup
}

func New(api messenger, r *service.Registry, c Config) *Bot {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}

	return &Bot{
		api:      api,
		registry: r,
		sessions: NewSessions(c.SessionTTL),
		cfg:      c,
	}
}

// Run polls for updates until ctx is cancelled. Every update is handled on
// its own goroutine, Run returns once all of them are done.
func (b *Bot) Run(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := api.GetUpdatesChan(u)
	zap.L().Info("Bot polling started", zap.String("username", api.Self.UserName))

	b.serve(ctx, updates)
	api.StopReceivingUpdates()

	zap.L().Info("Bot polling stopped")
}

func (b *Bot) serve(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer b.handlers.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}

			if upd.Message == nil {
				continue
			}

			b.handlers.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.handlers.Done()
				b.Handle(ctx, msg)
			}(upd.Message)
		}
	}
}

// Handle processes a single incoming message
func (b *Bot) Handle(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	f, ok := pickFile(msg)
	if !ok {
		return
	}

	b.handleUpload(ctx, msg, f)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	arg := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText)
	case "setpass":
		if arg == "" {
			b.reply(chatID, "Usage: /setpass yourPassword")
			return
		}

		b.sessions.SetPassword(chatID, arg)
		b.reply(chatID, "✅ Password set for your NEXT link.")
	case "clearp":
		b.sessions.Clear(chatID)
		b.reply(chatID, "✅ Password cleared.")
	case "revoke":
		b.handleRevoke(ctx, msg, arg)
	}
}

func (b *Bot) handleRevoke(ctx context.Context, msg *tgbotapi.Message, id string) {
	chatID := msg.Chat.ID

	if id == "" {
		b.reply(chatID, "Usage: /revoke <id>")
		return
	}

	if msg.From == nil {
		b.reply(chatID, "❌ Not allowed.")
		return
	}

	err := b.registry.Revoke(ctx, id, msg.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			b.reply(chatID, "❌ Not allowed.")
			return
		}

		zap.L().Error("Failed to revoke link", zap.String("id", id), zap.Error(err))
		b.reply(chatID, "❌ Something went wrong, please try again later.")
		return
	}

	b.reply(chatID, "✅ Revoked: "+id)
}

func (b *Bot) handleUpload(ctx context.Context, msg *tgbotapi.Message, f *incomingFile) {
	chatID := msg.Chat.ID

	var owner *int64
	if msg.From != nil {
		id := msg.From.ID
		owner = &id
	}

	u := model.Upload{
		ObjectRef:   f.ID,
		DisplayName: f.Name,
		OwnerID:     owner,
		Kind:        f.Kind,
		Size:        f.Size,
		Password:    b.sessions.Password(chatID),
	}

	switch err := validators.Upload(u, b.cfg.MaxSize); {
	case errors.Is(err, validators.ErrFileTooLarge):
		b.reply(chatID, fmt.Sprintf("❌ File too large (limit: %d MB)", b.cfg.MaxSize>>20))
		return
	case err != nil:
		b.reply(chatID, "❌ "+capitalize(err.Error())+".")
		return
	}

	link, err := b.registry.CreateLink(ctx, u)
	if err != nil {
		zap.L().Error("Failed to create link", zap.Int64("chat", chatID), zap.Error(err))
		b.reply(chatID, "❌ Something went wrong, please try again later.")
		return
	}

	if u.Password != nil {
		b.sessions.Clear(chatID)
	}

	streamURL := b.cfg.BaseURL + "/s/" + link.ID
	downloadURL := b.cfg.BaseURL + "/d/" + link.ID

	passNote := ""
	if link.Locked() {
		passNote = "\n🔒 Password: enabled (open stream link → enter password)"
	}

	text := fmt.Sprintf(
		"✅ Link ready\n\nID: %s\nType: %s\nName: %s\n\n🎬 Stream:\n%s\n\n⬇️ Download:\n%s\n\n⏳ Expires in ~%dh%s",
		link.ID, link.Kind, link.DisplayName, streamURL, downloadURL, expiryHours(b.registry.TTL(u)), passNote,
	)

	m := tgbotapi.NewMessage(chatID, text)
	m.DisableWebPagePreview = true
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("▶️ Stream", streamURL),
			tgbotapi.NewInlineKeyboardButtonURL("⬇️ Download", downloadURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 Copy Stream Link", streamURL),
		),
	)

	b.send(m)
}

// Close releases the session cache. Call it after Run has returned.
func (b *Bot) Close() error {
	return b.sessions.Close()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func expiryHours(ttl time.Duration) int {
	return int(math.Round(ttl.Hours()))
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(m tgbotapi.MessageConfig) {
	if _, err := b.api.Send(m); err != nil {
		zap.L().Error("Failed to send message", zap.Int64("chat", m.ChatID), zap.Error(err))
	}
}
