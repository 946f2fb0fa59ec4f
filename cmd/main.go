package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/ai"
	"github.com/Vovarama1992/jtbd-audience-bot/internal/bot"
	"github.com/Vovarama1992/jtbd-audience-bot/internal/config"
	"github.com/Vovarama1992/jtbd-audience-bot/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", telegram.SecretTokenHeader},
	}))

	// --- Bot module wiring ---
	tg := telegram.NewClient(cfg.BotToken)
	segmenter := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	svc := bot.NewService(segmenter, tg)
	handler := bot.NewHandler(svc, cfg.SecretToken)

	bot.RegisterRoutes(r, handler)

	// --- Webhook registration ---
	registerWebhook(tg, cfg)

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// registerWebhook привязывает вебхук к публичному URL. Без PUBLIC_URL сервис
// работает, но Telegram до него не достучится, пока вебхук не поставят снаружи.
func registerWebhook(tg *telegram.Client, cfg *config.Config) {
	if cfg.PublicURL == "" {
		log.Println("[main] PUBLIC_URL is not set; skipping webhook registration")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	url := cfg.PublicURL + bot.WebhookPath
	if err := tg.DeleteWebhook(ctx, true); err != nil {
		log.Fatalf("delete webhook error: %v", err)
	}
	if err := tg.SetWebhook(ctx, url, cfg.SecretToken); err != nil {
		log.Fatalf("set webhook error: %v", err)
	}
	log.Printf("[main] webhook registered: %s", url)
}
