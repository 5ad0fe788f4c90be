// Package preference хранит настройку темной темы администраторов.
package preference

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/goroutine"
)

// Listener получает новое значение после сохранения.
type Listener func(profileID uuid.UUID, darkMode bool)

// ThemeStore общий на процесс. Значение читается из хранилища один раз,
// дальше отдаётся из памяти.
type ThemeStore struct {
	repo repository.PreferenceRepository
	now  func() time.Time

	mu     sync.RWMutex
	loaded map[uuid.UUID]bool

	subMu     sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewThemeStore(repo repository.PreferenceRepository) *ThemeStore {
	return &ThemeStore{
		repo:      repo,
		now:       time.Now,
		loaded:    make(map[uuid.UUID]bool),
		listeners: make(map[int]Listener),
	}
}

func (s *ThemeStore) Get(ctx context.Context, profileID uuid.UUID) (bool, error) {
	s.mu.RLock()
	dark, ok := s.loaded[profileID]
	s.mu.RUnlock()
	if ok {
		return dark, nil
	}

	pref, err := s.repo.Find(ctx, profileID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	// Set мог успеть раньше, его значение новее.
	if current, ok := s.loaded[profileID]; ok {
		s.mu.Unlock()
		return current, nil
	}
	s.loaded[profileID] = pref.DarkMode
	s.mu.Unlock()

	return pref.DarkMode, nil
}

// Set сначала сохраняет, потом обновляет память и оповещает подписчиков.
func (s *ThemeStore) Set(ctx context.Context, profileID uuid.UUID, darkMode bool) error {
	pref := &entity.Preference{ProfileID: profileID, DarkMode: darkMode, UpdatedAt: s.now()}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return err
	}

	s.mu.Lock()
	s.loaded[profileID] = darkMode
	s.mu.Unlock()

	s.notify(profileID, darkMode)
	return nil
}

// Subscribe возвращает функцию отписки.
func (s *ThemeStore) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

func (s *ThemeStore) notify(profileID uuid.UUID, darkMode bool) {
	s.subMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range listeners {
		goroutine.DefaultRecoveryHandler.Run(func() { fn(profileID, darkMode) })
	}
}
