package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ivmolchanov/search-gateway/internal/domain"
	"github.com/ivmolchanov/search-gateway/internal/search"
)

type Config struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
}

// Client - клиент Google Custom Search API. Кеша внутри нет намеренно:
// единственный кеш живёт в internal/cache, клиент только ходит в апстрим.
type Client struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

func (c *Client) SearchWeb(ctx context.Context, req *domain.WebRequest) (*domain.WebResponse, error) {
	raw, err := c.do(ctx, c.webValues(req))
	if err != nil {
		return nil, err
	}
	return &domain.WebResponse{
		ResponseMeta: raw.meta(),
		Items:        parseWebItems(raw.Items),
	}, nil
}

func (c *Client) SearchImages(ctx context.Context, req *domain.ImageRequest) (*domain.ImageResponse, error) {
	raw, err := c.do(ctx, c.imageValues(req))
	if err != nil {
		return nil, err
	}
	return &domain.ImageResponse{
		ResponseMeta: raw.meta(),
		Items:        parseImageItems(raw.Items),
	}, nil
}

func (c *Client) SearchNews(ctx context.Context, req *domain.NewsRequest) (*domain.NewsResponse, error) {
	raw, err := c.do(ctx, c.newsValues(req))
	if err != nil {
		return nil, err
	}
	return &domain.NewsResponse{
		ResponseMeta: raw.meta(),
		Items:        parseNewsItems(raw.Items),
	}, nil
}

func (c *Client) do(ctx context.Context, values url.Values) (*rawResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", search.ErrSearchFailed, err)
	}

	c.logger.Debug("upstream response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	switch resp.StatusCode {
	case http.StatusOK:
		var raw rawResponse
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", search.ErrBadResponse, err)
		}
		return &raw, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, search.ErrUnauthorized

	case http.StatusTooManyRequests:
		return nil, search.ErrRateLimited

	case http.StatusBadRequest:
		return nil, search.ErrInvalidRequest

	default:
		return nil, fmt.Errorf("%w: status %d", search.ErrSearchFailed, resp.StatusCode)
	}
}
