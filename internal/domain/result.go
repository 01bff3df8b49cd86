package domain

import "time"

type SearchInfo struct {
	SearchTime            float64 `json:"search_time"`
	FormattedSearchTime   string  `json:"formatted_search_time"`
	TotalResults          string  `json:"total_results"`
	FormattedTotalResults string  `json:"formatted_total_results"`
}

type Spelling struct {
	CorrectedQuery     string `json:"corrected_query"`
	HTMLCorrectedQuery string `json:"html_corrected_query"`
}

type WebResult struct {
	Title            string         `json:"title"`
	Link             string         `json:"link"`
	Snippet          string         `json:"snippet,omitempty"`
	DisplayLink      string         `json:"display_link,omitempty"`
	FileFormat       string         `json:"file_format,omitempty"`
	FormattedURL     string         `json:"formatted_url,omitempty"`
	HTMLFormattedURL string         `json:"html_formatted_url,omitempty"`
	HTMLSnippet      string         `json:"html_snippet,omitempty"`
	HTMLTitle        string         `json:"html_title,omitempty"`
	MimeType         string         `json:"mime_type,omitempty"`
	PageMap          map[string]any `json:"page_map,omitempty"`
}

type ImageResult struct {
	Title           string `json:"title"`
	Link            string `json:"link"`
	Snippet         string `json:"snippet,omitempty"`
	DisplayLink     string `json:"display_link,omitempty"`
	ThumbnailLink   string `json:"thumbnail_link,omitempty"`
	ThumbnailHeight int    `json:"thumbnail_height,omitempty"`
	ThumbnailWidth  int    `json:"thumbnail_width,omitempty"`
	ContextLink     string `json:"context_link,omitempty"`
	Height          int    `json:"height,omitempty"`
	Width           int    `json:"width,omitempty"`
}

type NewsResult struct {
	Title         string     `json:"title"`
	Link          string     `json:"link"`
	Snippet       string     `json:"snippet,omitempty"`
	DisplayLink   string     `json:"display_link,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Source        string     `json:"source,omitempty"`
	Author        string     `json:"author,omitempty"`
}

// Response - то, что кладётся в кеш; Len нужен для счётчика в истории
type Response interface {
	Len() int
}

// ResponseMeta - метаданные ответа апстрима, общие для всех видов поиска
type ResponseMeta struct {
	Kind              string         `json:"kind"`
	URL               map[string]any `json:"url,omitempty"`
	Queries           map[string]any `json:"queries,omitempty"`
	Context           map[string]any `json:"context,omitempty"`
	SearchInformation *SearchInfo    `json:"search_information,omitempty"`
	Spelling          *Spelling      `json:"spelling,omitempty"`
}

type WebResponse struct {
	ResponseMeta

	Items []WebResult `json:"items"`
}

func (r *WebResponse) Len() int { return len(r.Items) }

type ImageResponse struct {
	ResponseMeta

	Items []ImageResult `json:"items"`
}

func (r *ImageResponse) Len() int { return len(r.Items) }

type NewsResponse struct {
	ResponseMeta

	Items []NewsResult `json:"items"`
}

func (r *NewsResponse) Len() int { return len(r.Items) }
