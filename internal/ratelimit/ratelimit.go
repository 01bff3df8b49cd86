package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Config struct {
	RequestsPerMinute int
}

// Limiter - sliding window на исходящие запросы к апстриму. В отличие от
// отказа, переполнение окна задерживает вызов до освобождения слота.
type Limiter struct {
	mu     sync.Mutex
	window []time.Time
	limit  int
	span   time.Duration

	// подменяются в тестах
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 100
	}

	return &Limiter{
		limit: limit,
		span:  time.Minute,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Admit регистрирует исходящий вызов и возвращает суммарное время ожидания.
// Если окно заполнено, ждёт 60s - (now - oldest), не держа мьютекс на время
// ожидания. После пробуждения слот мог занять конкурентный вызов, поэтому
// условие проверяется заново в цикле. Нулевая или отрицательная задержка
// (гранулярность часов) пропускает сразу.
func (l *Limiter) Admit(ctx context.Context) (time.Duration, error) {
	var waited time.Duration

	l.mu.Lock()
	for {
		now := l.now()
		l.pruneLocked(now)

		if len(l.window) < l.limit {
			l.window = append(l.window, now)
			l.mu.Unlock()
			return waited, nil
		}

		delay := l.span - now.Sub(l.window[0])
		l.mu.Unlock()

		if delay > 0 {
			if err := l.sleep(ctx, delay); err != nil {
				return waited, err
			}
			waited += delay
		}
		l.mu.Lock()
	}
}

// Remaining - сколько вызовов ещё пройдёт без задержки
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(l.now())
	if rem := l.limit - len(l.window); rem > 0 {
		return rem
	}
	return 0
}

func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.span)
	fresh := l.window[:0] // reuse underlying array
	for _, t := range l.window {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	l.window = fresh
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
