package bot

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/telegram"
)

type Handler struct {
	svc    Service
	secret string
}

func NewHandler(svc Service, secret string) *Handler {
	return &Handler{svc: svc, secret: secret}
}

// HandleWebhook — вход от Telegram
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// Секрет проверяется до чтения тела: чужой запрос не должен
	// трогать ни сессии, ни парсер.
	if h.secret != "" && r.Header.Get(telegram.SecretTokenHeader) != h.secret {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := h.svc.HandleUpdate(r.Context(), &upd); err != nil {
		http.Error(w, "processing error", http.StatusInternalServerError)
		return
	}

	// Telegram ответ не ждёт — просто ACK
	w.WriteHeader(http.StatusOK)
}

// HandleHealth — liveness, не зависит ни от сессий, ни от внешних сервисов.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}
