package bot

import "github.com/go-chi/chi/v5"

// WebhookPath должен совпадать с URL, зарегистрированным через setWebhook.
const WebhookPath = "/telegram/webhook"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.HandleHealth)
	r.Post(WebhookPath, h.HandleWebhook)
}
