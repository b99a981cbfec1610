package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store хранит сессии мастера в памяти
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    map[string]*sessionLock
	ttl      time.Duration
	now      func() time.Time
}

// sessionLock сериализует изменения одной сессии; refs считает ожидающих
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore создаёт хранилище; сессии без активности дольше ttl считаются истекшими
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sessionLock),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create открывает новую сессию на первом шаге
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := newSession(uuid.NewString(), s.now())
	s.sessions[session.ID] = session
	return session.clone()
}

// Get возвращает копию сессии
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || s.expired(session) {
		return nil, ErrSessionNotFound
	}
	return session.clone(), nil
}

// Save сохраняет сессию и продлевает её срок жизни
func (s *Store) Save(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := session.clone()
	stored.UpdatedAt = s.now()
	s.sessions[stored.ID] = stored
}

// Lock захватывает сессию до вызова возвращённой функции.
// Get, изменение и Save под этой блокировкой не перемежаются с другим запросом той же сессии.
func (s *Store) Lock(id string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Delete удаляет сессию
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Len количество сессий, включая ещё не удалённые истекшие
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Purge удаляет истекшие сессии и возвращает их количество
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunPurger периодически чистит хранилище до отмены контекста
func (s *Store) RunPurger(ctx context.Context, interval time.Duration, logger Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Purge(); removed > 0 {
				logger.Info("BookingSessions: purged %d expired sessions", removed)
			}
		}
	}
}

func (s *Store) expired(session *Session) bool {
	return s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl
}
