package cache

import (
	"sort"
	"time"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

type PopularQuery struct {
	Query        string            `json:"query"`
	Count        int               `json:"count"`
	Kind         domain.SearchKind `json:"kind"`
	LastSearched time.Time         `json:"last_searched"`
}

// Recent возвращает последние limit записей журнала, свежие первыми.
func (s *Store) Recent(limit int) []HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	out := make([]HistoryRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.history[len(s.history)-1-i]
	}
	return out
}

// Popular группирует журнал за последние hours часов по нормализованному
// тексту запроса и возвращает top-limit по числу обращений. Сортировка
// стабильная: при равном счёте порядок первого появления сохраняется.
func (s *Store) Popular(limit, hours int) []PopularQuery {
	if hours <= 0 {
		hours = 24
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-time.Duration(hours) * time.Hour)

	index := make(map[string]int)
	var groups []PopularQuery
	for _, h := range s.history {
		if !h.Timestamp.After(cutoff) {
			continue
		}
		norm := NormalizeQuery(h.Query)
		if i, ok := index[norm]; ok {
			groups[i].Count++
			if h.Timestamp.After(groups[i].LastSearched) {
				groups[i].LastSearched = h.Timestamp
			}
			continue
		}
		index[norm] = len(groups)
		groups = append(groups, PopularQuery{
			Query:        h.Query,
			Count:        1,
			Kind:         h.Kind,
			LastSearched: h.Timestamp,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}
