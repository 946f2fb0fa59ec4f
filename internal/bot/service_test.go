package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/jtbd-audience-bot/internal/ai"
	"github.com/Vovarama1992/jtbd-audience-bot/internal/telegram"
)

type sentMessage struct {
	ChatID int64
	Text   string
	HTML   bool
}

type fakeOutbound struct {
	sent []sentMessage
}

func (f *fakeOutbound) SendMessage(_ context.Context, chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (f *fakeOutbound) SendHTML(_ context.Context, chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text, HTML: true})
	return nil
}

type fakeSegmenter struct {
	calls     int
	lastInput ai.ProjectInput
	audiences []ai.Audience
	err       error
}

func (f *fakeSegmenter) GenerateAudiences(_ context.Context, in ai.ProjectInput) ([]ai.Audience, error) {
	f.calls++
	f.lastInput = in
	return f.audiences, f.err
}

func fiveAudiences() []ai.Audience {
	out := make([]ai.Audience, 5)
	for i := range out {
		out[i] = ai.Audience{
			Name:                  fmt.Sprintf("ЦА %d", i+1),
			Description:           "описание",
			MainJob:               "главная задача",
			Trigger:               "триггер",
			CriticalSubtasks:      []string{"a", "b", "c"},
			DigitalMarketingRecos: []string{"x", "y", "z", "w"},
		}
	}
	return out
}

func textUpdate(chatID int64, text string) *telegram.Update {
	return &telegram.Update{Message: &telegram.Message{Chat: telegram.Chat{ID: chatID}, Text: text}}
}

func TestDialogHappyPath(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{audiences: fiveAudiences()}
	svc := NewService(seg, out)
	ctx := context.Background()

	inputs := []string{"/start", "Казань", "ЖК Небо", "бизнес-класс у реки", " 2027 "}
	for _, text := range inputs {
		require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, text)))
	}

	require.Equal(t, 1, seg.calls)
	assert.Equal(t, ai.ProjectInput{
		City:         "Казань",
		ComplexName:  "ЖК Небо",
		Description:  "бизнес-класс у реки",
		DeliveryYear: "2027",
	}, seg.lastInput)

	// 4 подсказки, ack, 5 блоков, финал — ровно 11 сообщений, по порядку.
	require.Len(t, out.sent, 11)
	assert.Equal(t, msgAskCity, out.sent[0].Text)
	assert.Equal(t, msgAskComplex, out.sent[1].Text)
	assert.Equal(t, msgAskDescription, out.sent[2].Text)
	assert.Equal(t, msgAskYear, out.sent[3].Text)
	assert.Equal(t, msgProcessing, out.sent[4].Text)
	assert.False(t, out.sent[4].HTML)
	for i := 0; i < 5; i++ {
		block := out.sent[5+i]
		assert.True(t, block.HTML)
		assert.Equal(t, formatAudience(i+1, seg.audiences[i]), block.Text)
	}
	assert.Equal(t, msgDone, out.sent[10].Text)
}

func TestStartRestartsMidDialog(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{audiences: fiveAudiences()}
	svc := NewService(seg, out).(*service)
	ctx := context.Background()

	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/start")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "Казань")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/start")))

	sess, ok := svc.sessions.get(7)
	require.True(t, ok)
	assert.Equal(t, stageCity, sess.Stage)
	assert.Empty(t, sess.City)

	// Последнее сообщение — снова первая подсказка.
	assert.Equal(t, msgAskCity, out.sent[len(out.sent)-1].Text)
	assert.Zero(t, seg.calls)
}

func TestCancelEndsSessionWithoutGeneration(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{audiences: fiveAudiences()}
	svc := NewService(seg, out).(*service)
	ctx := context.Background()

	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/start")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "Казань")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/cancel")))

	_, ok := svc.sessions.get(7)
	assert.False(t, ok)
	assert.Zero(t, seg.calls)
	assert.Equal(t, msgCancelled, out.sent[len(out.sent)-1].Text)

	// Отмена не блокирует новый /start.
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/start")))
	assert.Equal(t, msgAskCity, out.sent[len(out.sent)-1].Text)
}

func TestGenerationFailureEmitsSingleNotice(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{err: errors.New("boom")}
	svc := NewService(seg, out).(*service)
	ctx := context.Background()

	for _, text := range []string{"/start", "Казань", "ЖК Небо", "описание", "2027"} {
		require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, text)))
	}

	require.Equal(t, 1, seg.calls)
	// ack + ровно одно сообщение об ошибке, никаких блоков.
	require.Len(t, out.sent, 6)
	assert.Equal(t, msgProcessing, out.sent[4].Text)
	assert.Equal(t, msgGenerateFailed, out.sent[5].Text)

	_, ok := svc.sessions.get(7)
	assert.False(t, ok)
}

func TestIgnoresInputOutsideDialog(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{}
	svc := NewService(seg, out)
	ctx := context.Background()

	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "привет")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "/unknown")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, "   ")))
	require.NoError(t, svc.HandleUpdate(ctx, &telegram.Update{}))

	assert.Empty(t, out.sent)
	assert.Zero(t, seg.calls)
}

func TestSessionsAreIsolatedPerChat(t *testing.T) {
	t.Parallel()

	out := &fakeOutbound{}
	seg := &fakeSegmenter{audiences: fiveAudiences()}
	svc := NewService(seg, out).(*service)
	ctx := context.Background()

	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(1, "/start")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(2, "/start")))
	require.NoError(t, svc.HandleUpdate(ctx, textUpdate(1, "Казань")))

	s1, ok := svc.sessions.get(1)
	require.True(t, ok)
	assert.Equal(t, "Казань", s1.City)

	s2, ok := svc.sessions.get(2)
	require.True(t, ok)
	assert.Equal(t, stageCity, s2.Stage)
	assert.Empty(t, s2.City)
}

func TestLongBlockIsChunkedInOrder(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("длинная строка рекомендаций для кампании\n", 200)
	audiences := fiveAudiences()
	audiences[0].Description = long

	out := &fakeOutbound{}
	seg := &fakeSegmenter{audiences: audiences}
	svc := NewService(seg, out)
	ctx := context.Background()

	for _, text := range []string{"/start", "Казань", "ЖК Небо", "описание", "2027"} {
		require.NoError(t, svc.HandleUpdate(ctx, textUpdate(7, text)))
	}

	// Сообщения между ack и финалом — блоки ЦА; первый порезан на части.
	body := out.sent[5 : len(out.sent)-1]
	require.Greater(t, len(body), 5)

	var rebuilt strings.Builder
	for _, m := range body[:len(body)-4] {
		assert.LessOrEqual(t, len([]rune(m.Text)), messageLimit)
		rebuilt.WriteString(m.Text)
	}
	assert.Equal(t, formatAudience(1, audiences[0]), rebuilt.String())
}
