package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"imagemap-studio/internal/editor/session"

	"github.com/google/uuid"
)

// ============================================================
// Session Store
// ============================================================

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu       sync.Mutex
	session  *session.Session
	lastUsed time.Time
}

// Store держит независимые сессии редактора. Каждая сессия меняется
// только под своим мьютексом, поэтому переходы одной сессии не перемежаются.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	opts     []session.Option
	now      func() time.Time
}

func NewStore(opts ...session.Option) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		opts:     opts,
		now:      time.Now,
	}
}

// Create заводит новую сессию и возвращает ее id.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &entry{
		session:  session.New(s.opts...),
		lastUsed: s.now(),
	}
	return id
}

// Do выполняет fn под блокировкой сессии.
func (s *Store) Do(id string, fn func(*session.Session) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = s.now()
	return fn(e.session)
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше idle, и возвращает их id.
// Сессия, занятая запросом, пропускается.
func (s *Store) Sweep(idle time.Duration) []string {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		stale := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// RunJanitor раз в interval вызывает Sweep до отмены ctx.
func (s *Store) RunJanitor(ctx context.Context, interval, idle time.Duration, onEvict func(id string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range s.Sweep(idle) {
				slog.Info("[EDITOR] session expired", "session", id)
				if onEvict != nil {
					onEvict(id)
				}
			}
		}
	}
}
