package bot

import (
	"context"
	"log"
	"strings"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/ai"
	"github.com/Vovarama1992/jtbd-audience-bot/internal/telegram"
)

// Тексты диалога. Подсказки шагов идут с HTML-разметкой.
const (
	msgAskCity        = "1/4 Введите <b>город</b>:"
	msgAskComplex     = "2/4 Введите <b>название ЖК</b>:"
	msgAskDescription = "3/4 Кратко опишите проект (класс, локация, фишки):"
	msgAskYear        = "4/4 Укажите <b>год сдачи</b> (например, 2027):"
	msgProcessing     = "Думаю над сегментами… ⏳"
	msgGenerateFailed = "Не удалось получить ответ от модели. Попробуйте /start ещё раз."
	msgDone           = "Готово! Чтобы начать заново — /start"
	msgCancelled      = "Окей, отменил. Начать заново — /start"
)

type service struct {
	sessions  *sessionStore
	segmenter ai.Segmenter
	outbound  Outbound
}

func NewService(segmenter ai.Segmenter, outbound Outbound) Service {
	return &service{
		sessions:  newSessionStore(),
		segmenter: segmenter,
		outbound:  outbound,
	}
}

// HandleUpdate — единственная точка входа диалога. Команды /start и /cancel
// работают из любого состояния; прочие команды и пустой ввод игнорируются.
func (s *service) HandleUpdate(ctx context.Context, upd *telegram.Update) error {
	if upd == nil || upd.Message == nil || upd.Message.Chat.ID == 0 {
		return nil
	}

	chatID := upd.Message.Chat.ID
	text := strings.TrimSpace(upd.Message.Text)

	switch {
	case isCommand(text, "/start"):
		return s.start(ctx, chatID)
	case isCommand(text, "/cancel"):
		return s.cancel(ctx, chatID)
	case strings.HasPrefix(text, "/"):
		return nil // незнакомая команда
	case text == "":
		return nil
	}

	return s.collect(ctx, chatID, text)
}

// start сбрасывает сессию и начинает сбор заново — повторный /start
// посреди диалога это обычный рестарт, не особый случай.
func (s *service) start(ctx context.Context, chatID int64) error {
	log.Printf("[bot] start chatId=%d", chatID)
	s.sessions.reset(chatID)
	return s.outbound.SendHTML(ctx, chatID, msgAskCity)
}

func (s *service) cancel(ctx context.Context, chatID int64) error {
	log.Printf("[bot] cancel chatId=%d", chatID)
	s.sessions.drop(chatID)
	return s.outbound.SendMessage(ctx, chatID, msgCancelled)
}

func (s *service) collect(ctx context.Context, chatID int64, text string) error {
	sess, ok := s.sessions.get(chatID)
	if !ok {
		return nil // диалог не начат
	}

	switch sess.Stage {
	case stageCity:
		sess.City = text
		sess.Stage = stageComplex
		return s.outbound.SendHTML(ctx, chatID, msgAskComplex)

	case stageComplex:
		sess.ComplexName = text
		sess.Stage = stageDescription
		return s.outbound.SendHTML(ctx, chatID, msgAskDescription)

	case stageDescription:
		sess.Description = text
		sess.Stage = stageYear
		return s.outbound.SendHTML(ctx, chatID, msgAskYear)

	case stageYear:
		sess.Year = text
		return s.generate(ctx, chatID, ai.ProjectInput{
			City:         sess.City,
			ComplexName:  sess.ComplexName,
			Description:  sess.Description,
			DeliveryYear: sess.Year,
		})
	}

	return nil
}

// generate — финальный шаг: ack пользователю до блокирующего вызова модели,
// затем пять блоков ЦА (каждый режется на части независимо) и финальное
// сообщение. Сессия заканчивается в любом исходе.
func (s *service) generate(ctx context.Context, chatID int64, in ai.ProjectInput) error {
	s.sessions.drop(chatID)

	if err := s.outbound.SendMessage(ctx, chatID, msgProcessing); err != nil {
		return err
	}

	audiences, err := s.segmenter.GenerateAudiences(ctx, in)
	if err != nil {
		log.Printf("[bot] generation failed chatId=%d city=%q: %v", chatID, in.City, err)
		return s.outbound.SendMessage(ctx, chatID, msgGenerateFailed)
	}

	for i, a := range audiences {
		block := formatAudience(i+1, a)
		for _, part := range splitMessage(block, messageLimit) {
			if err := s.outbound.SendHTML(ctx, chatID, part); err != nil {
				return err
			}
		}
	}

	return s.outbound.SendMessage(ctx, chatID, msgDone)
}

func isCommand(text, cmd string) bool {
	return text == cmd || strings.HasPrefix(text, cmd+" ") || strings.HasPrefix(text, cmd+"@")
}
