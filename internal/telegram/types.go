package telegram

// Update — входящее событие Bot API, доставленное вебхуком.
// Разбираем только то, что нужно диалогу: текстовые сообщения.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// SecretTokenHeader — заголовок, которым Telegram подписывает доставки вебхука.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
