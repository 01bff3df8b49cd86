package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

const maxHistory = 1000

type Entry struct {
	Key       string
	Query     string
	Kind      domain.SearchKind
	Response  domain.Response
	CreatedAt time.Time
	ExpiresAt time.Time
	Params    []domain.Param
}

type HistoryRecord struct {
	Query       string            `json:"query"`
	Kind        domain.SearchKind `json:"kind"`
	Timestamp   time.Time         `json:"timestamp"`
	CacheKey    string            `json:"cache_key"`
	ResultCount int               `json:"result_count"`
}

type Stats struct {
	Total       int `json:"total_entries"`
	Valid       int `json:"valid_entries"`
	Expired     int `json:"expired_entries"`
	HistorySize int `json:"history_size"`
	Recent1h    int `json:"recent_searches_1h"`
	SizeBytes   int `json:"cache_size_bytes"`
}

type Config struct {
	DefaultTTL time.Duration
}

// Store - in-memory кеш результатов поиска с TTL и журналом запросов.
// Записи и журнал защищены одним мьютексом: Set пишет в обе структуры
// и должен быть атомарным целиком.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	history    []HistoryRecord
	defaultTTL time.Duration

	now func() time.Time // подменяется в тестах
}

func New(cfg Config) *Store {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		entries:    make(map[string]Entry),
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// Get возвращает закешированный ответ, если он ещё валиден. Просроченная
// запись удаляется на месте (ленивая очистка), настоящий промах ничего
// не меняет.
func (s *Store) Get(query string, kind domain.SearchKind, params []domain.Param) (domain.Response, bool) {
	key := Key(query, kind, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.ExpiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return e.Response, true
}

// Set кладёт ответ в кеш и дописывает запись в журнал. ttl <= 0 означает
// TTL по умолчанию. Возвращает ключ записи.
func (s *Store) Set(query string, kind domain.SearchKind, resp domain.Response, params []domain.Param, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	key := Key(query, kind, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = Entry{
		Key:       key,
		Query:     query,
		Kind:      kind,
		Response:  resp,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Params:    params,
	}

	count := 0
	if resp != nil {
		count = resp.Len()
	}
	s.history = append(s.history, HistoryRecord{
		Query:       query,
		Kind:        kind,
		Timestamp:   now,
		CacheKey:    key,
		ResultCount: count,
	})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}

	return key
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// ClearExpired убирает все просроченные записи, граница now >= expiresAt
// считается просроченной. Возвращает число удалённых.
func (s *Store) ClearExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.ExpiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// ClearAll чистит кеш вместе с журналом, возвращает прежнее число записей.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[string]Entry)
	s.history = nil
	return count
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	st := Stats{
		Total:       len(s.entries),
		HistorySize: len(s.history),
	}
	for _, e := range s.entries {
		if now.Before(e.ExpiresAt) {
			st.Valid++
		} else {
			st.Expired++
		}
	}

	cutoff := now.Add(-time.Hour)
	for _, h := range s.history {
		if h.Timestamp.After(cutoff) {
			st.Recent1h++
		}
	}

	st.SizeBytes = s.estimateSizeLocked()
	return st
}

// estimateSizeLocked - грубая оценка размера кеша; любая ошибка
// сериализации даёт 0, на Stats целиком она не влияет
func (s *Store) estimateSizeLocked() int {
	summary := make(map[string]any, len(s.entries))
	for k, e := range s.entries {
		count := 0
		if e.Response != nil {
			count = e.Response.Len()
		}
		summary[k] = map[string]any{
			"query":         e.Query,
			"kind":          string(e.Kind),
			"results_count": count,
		}
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return 0
	}
	return len(data)
}
