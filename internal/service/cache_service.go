package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

// CacheService хранит снимки коллекций в памяти с TTL и инвалидацией по префиксу.
// Значения считаются неизменяемыми: вызывающий не должен модифицировать то,
// что получил из GetOrSet.
type CacheService struct {
	mu         sync.RWMutex
	cache      map[string]*cacheEntry
	generation uint64

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService создаёт кэш и запускает фоновую очистку с периодом cleanupEvery.
func NewCacheService(cleanupEvery time.Duration) *CacheService {
	if cleanupEvery <= 0 {
		cleanupEvery = 5 * time.Minute
	}
	cs := &CacheService{
		cache: make(map[string]*cacheEntry),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	go cs.cleanup(cleanupEvery)

	return cs
}

// Get возвращает значение, если оно есть и не истекло.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{data: value, expiresAt: time.Now().Add(ttl)}
}

func (cs *CacheService) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
}

// InvalidateByPrefix удаляет все ключи с префиксом. Загрузки, начатые до
// инвалидации, свой результат в кэш уже не положат.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.generation++
	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// GetOrSet отдаёт значение из кэша или вычисляет его через fn.
// Ошибка fn не кэшируется.
func (cs *CacheService) GetOrSet(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fn func() (interface{}, error),
) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	cs.mu.RLock()
	gen := cs.generation
	cs.mu.RUnlock()

	value, err := fn()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return value, nil
	}

	cs.mu.Lock()
	if cs.generation == gen {
		cs.cache[key] = &cacheEntry{data: value, expiresAt: time.Now().Add(ttl)}
	}
	cs.mu.Unlock()

	return value, nil
}

// Len количество записей, включая истёкшие, но ещё не вычищенные.
func (cs *CacheService) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cache)
}

// Close останавливает фоновую очистку.
func (cs *CacheService) Close() {
	cs.stopOnce.Do(func() { close(cs.stop) })
	<-cs.done
}

func (cs *CacheService) cleanup(every time.Duration) {
	defer close(cs.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-cs.stop:
			return
		case <-ticker.C:
			cs.evictExpired(time.Now())
		}
	}
}

func (cs *CacheService) evictExpired(now time.Time) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}
