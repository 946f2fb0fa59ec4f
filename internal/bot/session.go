package bot

import "sync"

// stage — текущий шаг линейного диалога
type stage int

const (
	stageCity stage = iota
	stageComplex
	stageDescription
	stageYear
)

// session — собранные поля одного диалога. Живёт только в памяти:
// завершение, отмена или повторный /start её сбрасывают.
type session struct {
	Stage       stage
	City        string
	ComplexName string
	Description string
	Year        string
}

// sessionStore — по одной активной сессии на chat_id.
// Telegram сериализует доставки внутри одного чата, но разные чаты
// приходят параллельно, поэтому доступ к map под мьютексом.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (s *sessionStore) get(chatID int64) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// reset начинает сессию заново, отбрасывая собранные поля.
func (s *sessionStore) reset(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &session{Stage: stageCity}
	s.sessions[chatID] = sess
	return sess
}

func (s *sessionStore) drop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
