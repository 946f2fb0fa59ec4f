package bot

import (
	"html"
	"strconv"
	"strings"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/ai"
)

// messageLimit — порог нарезки. Телеграм ограничивает ~4096 символов,
// режем с запасом по абзацам.
const messageLimit = 3500

// formatAudience собирает HTML-блок одной ЦА. Порядок полей фиксированный,
// все значения от модели экранируются.
func formatAudience(i int, a ai.Audience) string {
	var b strings.Builder

	b.WriteString("<b>" + strconv.Itoa(i) + ". " + html.EscapeString(a.Name) + "</b>\n")
	b.WriteString("<b>Описание:</b> " + html.EscapeString(a.Description) + "\n")
	b.WriteString("<b>Главная задача (JTBD):</b> " + html.EscapeString(a.MainJob) + "\n")
	b.WriteString("<b>Триггер:</b> " + html.EscapeString(a.Trigger) + "\n")

	b.WriteString("<b>Критические подзадачи:</b>\n")
	for _, x := range a.CriticalSubtasks {
		b.WriteString("• " + html.EscapeString(x) + "\n")
	}

	b.WriteString("<b>Рекомендации для digital:</b>\n")
	for _, x := range a.DigitalMarketingRecos {
		b.WriteString("• " + html.EscapeString(x) + "\n")
	}

	return b.String()
}

// splitMessage режет текст на части не длиннее limit рун.
// Рез идёт по последнему переводу строки внутри окна; перевод строки
// остаётся в начале следующей части, так что конкатенация частей
// в точности воспроизводит исходный текст. Если переводов строк
// в окне нет — жёсткий рез по границе.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = messageLimit
	}

	runes := []rune(text)
	var parts []string

	for len(runes) > limit {
		cut := -1
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}

	return append(parts, string(runes))
}
