package notify

import (
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// ErrTelegramNotConfigured is returned when the bot token or chat is missing.
var ErrTelegramNotConfigured = errors.New("telegram sender not configured")

// TelegramSender delivers digests to a telegram chat.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramSender creates a TelegramSender from the notify configuration.
// It connects to the Bot API to verify the token.
func NewTelegramSender(cfg config.NotifyConfig, logger *slog.Logger) (*TelegramSender, error) {
	if cfg.TelegramToken == "" || cfg.TelegramChat == 0 {
		return nil, ErrTelegramNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}

	return &TelegramSender{
		bot:    bot,
		chatID: cfg.TelegramChat,
		logger: logger.With(slog.String("component", "telegram_sender")),
	}, nil
}

// Send delivers the digest to the configured chat.
func (s *TelegramSender) Send(digest Digest) error {
	msg := tgbotapi.NewMessage(s.chatID, digest.Subject+"\n\n"+digest.Body)

	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error("failed to send digest to telegram",
			slog.String("error", err.Error()),
			slog.Int64("chat_id", s.chatID))
		return fmt.Errorf("send telegram digest: %w", err)
	}

	s.logger.Info("telegram digest sent",
		slog.Int64("chat_id", s.chatID),
		slog.Int("open_tasks", digest.OpenCount))
	return nil
}
