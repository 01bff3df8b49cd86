package search

import (
	"context"
	"errors"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

var (
	ErrUnauthorized   = errors.New("invalid API key or engine ID")
	ErrRateLimited    = errors.New("upstream rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrBadResponse    = errors.New("undecodable upstream response")
	ErrSearchFailed   = errors.New("search request failed")
)

type Provider interface {
	SearchWeb(ctx context.Context, req *domain.WebRequest) (*domain.WebResponse, error)
	SearchImages(ctx context.Context, req *domain.ImageRequest) (*domain.ImageResponse, error)
	SearchNews(ctx context.Context, req *domain.NewsRequest) (*domain.NewsResponse, error)
}
