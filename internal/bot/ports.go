package bot

import (
	"context"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/telegram"
)

// Outbound — исходящий канал в чат
type Outbound interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendHTML(ctx context.Context, chatID int64, text string) error
}

// Service — обработка входящих событий (без return наружу)
type Service interface {
	HandleUpdate(ctx context.Context, upd *telegram.Update) error
}
