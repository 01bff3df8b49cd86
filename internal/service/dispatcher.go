package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ivmolchanov/search-gateway/internal/cache"
	"github.com/ivmolchanov/search-gateway/internal/domain"
	"github.com/ivmolchanov/search-gateway/internal/metrics"
	"github.com/ivmolchanov/search-gateway/internal/ratelimit"
	"github.com/ivmolchanov/search-gateway/internal/search"
)

// Deps - зависимости диспетчера. Metrics опциональны (nil в тестах).
type Deps struct {
	Provider search.Provider
	Cache    *cache.Store
	Limiter  *ratelimit.Limiter
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// Service - связка нормализация -> кеш -> rate limiter -> апстрим.
// Одинаковые одновременные промахи схлопываются через singleflight,
// в апстрим уходит один вызов.
type Service struct {
	provider search.Provider
	cache    *cache.Store
	limiter  *ratelimit.Limiter
	logger   *zap.Logger
	metrics  *metrics.Metrics
	flight   singleflight.Group
}

func New(deps Deps) *Service {
	return &Service{
		provider: deps.Provider,
		cache:    deps.Cache,
		limiter:  deps.Limiter,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

func (s *Service) SearchWeb(ctx context.Context, req *domain.WebRequest) (*domain.WebResponse, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	if err := req.Validate(); err != nil {
		s.recordRequest(domain.KindWeb, "validation_error", start)
		return nil, err
	}
	req.Sanitize()

	params := req.Params()
	if cached, ok := s.lookup(req.Query, domain.KindWeb, params); ok {
		if resp, ok := cached.(*domain.WebResponse); ok {
			s.recordRequest(domain.KindWeb, "cache_hit", start)
			return resp, nil
		}
	}

	key := cache.Key(req.Query, domain.KindWeb, params)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		// пока держали singleflight, ответ мог появиться
		if cached, ok := s.cache.Get(req.Query, domain.KindWeb, params); ok {
			return cached, nil
		}
		if err := s.admit(ctx); err != nil {
			return nil, err
		}
		resp, err := s.callUpstream(ctx, domain.KindWeb, func(ctx context.Context) (domain.Response, error) {
			return s.provider.SearchWeb(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		s.store(req.Query, domain.KindWeb, resp, params)
		return resp, nil
	})
	if err != nil {
		s.recordRequest(domain.KindWeb, "error", start)
		return nil, err
	}

	resp, ok := v.(*domain.WebResponse)
	if !ok {
		s.recordRequest(domain.KindWeb, "error", start)
		return nil, fmt.Errorf("web search: %w", search.ErrBadResponse)
	}
	s.recordRequest(domain.KindWeb, "success", start)
	return resp, nil
}

func (s *Service) SearchImages(ctx context.Context, req *domain.ImageRequest) (*domain.ImageResponse, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	if err := req.Validate(); err != nil {
		s.recordRequest(domain.KindImage, "validation_error", start)
		return nil, err
	}
	req.Sanitize()

	params := req.Params()
	if cached, ok := s.lookup(req.Query, domain.KindImage, params); ok {
		if resp, ok := cached.(*domain.ImageResponse); ok {
			s.recordRequest(domain.KindImage, "cache_hit", start)
			return resp, nil
		}
	}

	key := cache.Key(req.Query, domain.KindImage, params)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(req.Query, domain.KindImage, params); ok {
			return cached, nil
		}
		if err := s.admit(ctx); err != nil {
			return nil, err
		}
		resp, err := s.callUpstream(ctx, domain.KindImage, func(ctx context.Context) (domain.Response, error) {
			return s.provider.SearchImages(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		s.store(req.Query, domain.KindImage, resp, params)
		return resp, nil
	})
	if err != nil {
		s.recordRequest(domain.KindImage, "error", start)
		return nil, err
	}

	resp, ok := v.(*domain.ImageResponse)
	if !ok {
		s.recordRequest(domain.KindImage, "error", start)
		return nil, fmt.Errorf("image search: %w", search.ErrBadResponse)
	}
	s.recordRequest(domain.KindImage, "success", start)
	return resp, nil
}

func (s *Service) SearchNews(ctx context.Context, req *domain.NewsRequest) (*domain.NewsResponse, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	if err := req.Validate(); err != nil {
		s.recordRequest(domain.KindNews, "validation_error", start)
		return nil, err
	}
	req.Sanitize()

	params := req.Params()
	if cached, ok := s.lookup(req.Query, domain.KindNews, params); ok {
		if resp, ok := cached.(*domain.NewsResponse); ok {
			s.recordRequest(domain.KindNews, "cache_hit", start)
			return resp, nil
		}
	}

	key := cache.Key(req.Query, domain.KindNews, params)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(req.Query, domain.KindNews, params); ok {
			return cached, nil
		}
		if err := s.admit(ctx); err != nil {
			return nil, err
		}
		resp, err := s.callUpstream(ctx, domain.KindNews, func(ctx context.Context) (domain.Response, error) {
			return s.provider.SearchNews(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		s.store(req.Query, domain.KindNews, resp, params)
		return resp, nil
	})
	if err != nil {
		s.recordRequest(domain.KindNews, "error", start)
		return nil, err
	}

	resp, ok := v.(*domain.NewsResponse)
	if !ok {
		s.recordRequest(domain.KindNews, "error", start)
		return nil, fmt.Errorf("news search: %w", search.ErrBadResponse)
	}
	s.recordRequest(domain.KindNews, "success", start)
	return resp, nil
}

func (s *Service) lookup(query string, kind domain.SearchKind, params []domain.Param) (domain.Response, bool) {
	cached, ok := s.cache.Get(query, kind, params)
	if s.metrics != nil {
		if ok {
			s.metrics.RecordCacheHit()
		} else {
			s.metrics.RecordCacheMiss()
		}
	}
	return cached, ok
}

func (s *Service) admit(ctx context.Context) error {
	waited, err := s.limiter.Admit(ctx)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	if waited <= 0 {
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordRateDelay(waited)
	}
	if waited > time.Second {
		s.logger.Info("upstream call delayed by rate limiter",
			zap.Duration("waited", waited),
		)
	}
	return nil
}

func (s *Service) callUpstream(ctx context.Context, kind domain.SearchKind, call func(context.Context) (domain.Response, error)) (domain.Response, error) {
	start := time.Now()
	resp, err := call(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordUpstream(string(kind), "error", time.Since(start))
		}
		s.logger.Warn("upstream request failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s search: %w", kind, err)
	}
	if s.metrics != nil {
		s.metrics.RecordUpstream(string(kind), "success", time.Since(start))
	}
	return resp, nil
}

func (s *Service) store(query string, kind domain.SearchKind, resp domain.Response, params []domain.Param) {
	key := s.cache.Set(query, kind, resp, params, 0)
	if s.metrics != nil {
		s.metrics.SetCacheEntries(float64(s.cache.Len()))
	}
	s.logger.Debug("response cached",
		zap.String("kind", string(kind)),
		zap.String("cache_key", key),
		zap.Int("results", resp.Len()),
	)
}

func (s *Service) recordRequest(kind domain.SearchKind, status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordRequest(string(kind), status, time.Since(start))
	}
}

// Операции над кешем для API-слоя.

func (s *Service) Stats() cache.Stats {
	return s.cache.Stats()
}

func (s *Service) Recent(limit int) []cache.HistoryRecord {
	return s.cache.Recent(limit)
}

func (s *Service) Popular(limit, hours int) []cache.PopularQuery {
	return s.cache.Popular(limit, hours)
}

func (s *Service) ClearExpired() int {
	removed := s.cache.ClearExpired()
	s.logger.Info("expired cache entries cleared", zap.Int("removed", removed))
	return removed
}

func (s *Service) ClearAll() int {
	removed := s.cache.ClearAll()
	s.logger.Info("cache cleared", zap.Int("removed", removed))
	return removed
}
