package google

import (
	"encoding/json"
	"time"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

type rawSearchInfo struct {
	SearchTime            float64 `json:"searchTime"`
	FormattedSearchTime   string  `json:"formattedSearchTime"`
	TotalResults          string  `json:"totalResults"`
	FormattedTotalResults string  `json:"formattedTotalResults"`
}

type rawSpelling struct {
	CorrectedQuery     string `json:"correctedQuery"`
	HTMLCorrectedQuery string `json:"htmlCorrectedQuery"`
}

// rawResponse - ответ Custom Search как есть. Items держим сырыми, чтобы
// битый элемент ронял только себя, а не весь ответ.
type rawResponse struct {
	Kind              string            `json:"kind"`
	URL               map[string]any    `json:"url"`
	Queries           map[string]any    `json:"queries"`
	Context           map[string]any    `json:"context"`
	SearchInformation *rawSearchInfo    `json:"searchInformation"`
	Spelling          *rawSpelling      `json:"spelling"`
	Items             []json.RawMessage `json:"items"`
}

func (r *rawResponse) meta() domain.ResponseMeta {
	kind := r.Kind
	if kind == "" {
		kind = "customsearch#search"
	}

	meta := domain.ResponseMeta{
		Kind:    kind,
		URL:     r.URL,
		Queries: r.Queries,
		Context: r.Context,
	}
	if r.SearchInformation != nil {
		meta.SearchInformation = &domain.SearchInfo{
			SearchTime:            r.SearchInformation.SearchTime,
			FormattedSearchTime:   r.SearchInformation.FormattedSearchTime,
			TotalResults:          r.SearchInformation.TotalResults,
			FormattedTotalResults: r.SearchInformation.FormattedTotalResults,
		}
	}
	if r.Spelling != nil {
		meta.Spelling = &domain.Spelling{
			CorrectedQuery:     r.Spelling.CorrectedQuery,
			HTMLCorrectedQuery: r.Spelling.HTMLCorrectedQuery,
		}
	}
	return meta
}

type rawWebItem struct {
	Title            string         `json:"title"`
	Link             string         `json:"link"`
	Snippet          string         `json:"snippet"`
	DisplayLink      string         `json:"displayLink"`
	FileFormat       string         `json:"fileFormat"`
	FormattedURL     string         `json:"formattedUrl"`
	HTMLFormattedURL string         `json:"htmlFormattedUrl"`
	HTMLSnippet      string         `json:"htmlSnippet"`
	HTMLTitle        string         `json:"htmlTitle"`
	Mime             string         `json:"mime"`
	PageMap          map[string]any `json:"pagemap"`
}

func parseWebItems(items []json.RawMessage) []domain.WebResult {
	results := make([]domain.WebResult, 0, len(items))
	for _, data := range items {
		var item rawWebItem
		if err := json.Unmarshal(data, &item); err != nil {
			continue
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		results = append(results, domain.WebResult{
			Title:            item.Title,
			Link:             item.Link,
			Snippet:          item.Snippet,
			DisplayLink:      item.DisplayLink,
			FileFormat:       item.FileFormat,
			FormattedURL:     item.FormattedURL,
			HTMLFormattedURL: item.HTMLFormattedURL,
			HTMLSnippet:      item.HTMLSnippet,
			HTMLTitle:        item.HTMLTitle,
			MimeType:         item.Mime,
			PageMap:          item.PageMap,
		})
	}
	return results
}

type rawImageItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	Image       *struct {
		ContextLink     string `json:"contextLink"`
		ThumbnailLink   string `json:"thumbnailLink"`
		ThumbnailHeight int    `json:"thumbnailHeight"`
		ThumbnailWidth  int    `json:"thumbnailWidth"`
		Height          int    `json:"height"`
		Width           int    `json:"width"`
	} `json:"image"`
}

func parseImageItems(items []json.RawMessage) []domain.ImageResult {
	results := make([]domain.ImageResult, 0, len(items))
	for _, data := range items {
		var item rawImageItem
		if err := json.Unmarshal(data, &item); err != nil {
			continue
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		result := domain.ImageResult{
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
		}
		if item.Image != nil {
			result.ContextLink = item.Image.ContextLink
			result.ThumbnailLink = item.Image.ThumbnailLink
			result.ThumbnailHeight = item.Image.ThumbnailHeight
			result.ThumbnailWidth = item.Image.ThumbnailWidth
			result.Height = item.Image.Height
			result.Width = item.Image.Width
		}
		results = append(results, result)
	}
	return results
}

type rawNewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	PageMap     struct {
		NewsArticle []struct {
			DatePublished string `json:"datepublished"`
			Author        string `json:"author"`
		} `json:"newsarticle"`
	} `json:"pagemap"`
}

func parseNewsItems(items []json.RawMessage) []domain.NewsResult {
	results := make([]domain.NewsResult, 0, len(items))
	for _, data := range items {
		var item rawNewsItem
		if err := json.Unmarshal(data, &item); err != nil {
			continue
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		result := domain.NewsResult{
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
			Source:      item.DisplayLink,
		}
		if len(item.PageMap.NewsArticle) > 0 {
			article := item.PageMap.NewsArticle[0]
			result.Author = article.Author
			if ts := parsePublishedDate(article.DatePublished); ts != nil {
				result.PublishedDate = ts
			}
		}
		results = append(results, result)
	}
	return results
}

// parsePublishedDate пробует типовые форматы дат из pagemap, сайты пишут
// туда кто во что горазд
func parsePublishedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}
