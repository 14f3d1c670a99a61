package flow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Draft черновик записи, накапливаемый по ходу диалога
// Живёт только внутри сессии: до подтверждения сводки ничего не сохраняется
type Draft struct {
	PetID           int64
	PetName         string
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	StartTime       time.Time

	// Данные нового питомца, собираемые подсценарием регистрации
	NewPetName   string
	NewPetBreed  string
	NewPetWeight float64
}

// Session состояние одного диалога бронирования
type Session struct {
	ID       string
	UserID   int64
	Current  nodeID
	Draft    Draft
	Finished bool

	// Варианты, предложенные последним ответом движка. Следующее
	// сообщение пользователя сопоставляется именно с ними
	lastOptions []option

	touchedAt time.Time
	mu        sync.Mutex
}

// SessionManager хранилище активных диалоговых сессий в памяти
// Сессии эфемерны: протухшие убираются фоновой зачисткой
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// defaultSessionTTL подставляется при некорректно заданном времени жизни
const defaultSessionTTL = 30 * time.Minute

// NewSessionManager создает хранилище сессий с заданным временем жизни
// Зачистка протухших сессий запускается фоном и живет до закрытия stopCh
func NewSessionManager(ttl time.Duration, stopCh <-chan struct{}) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	m := &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}

	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-stopCh:
				return
			}
		}
	}()

	return m
}

// Create создает новую сессию для пользователя
func (m *SessionManager) Create(userID int64, start nodeID) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Current:   start,
		touchedAt: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get возвращает сессию по ID, продлевая её время жизни
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().Sub(s.touchedAt) > m.ttl {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}

	s.touchedAt = m.now()
	return s, nil
}

// Delete удаляет сессию, сбрасывая её черновик
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len возвращает количество активных сессий
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep удаляет протухшие сессии
func (m *SessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.touchedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
