package domain

import (
	"strconv"
	"strings"
)

const (
	MaxQueryLength = 1000
	MaxNumResults  = 10 // жёсткий лимит Google Custom Search API
	MaxStartIndex  = 91
)

type SearchKind string

const (
	KindWeb   SearchKind = "web"
	KindImage SearchKind = "image"
	KindNews  SearchKind = "news"

	// зарезервированы, апстрим их пока не отдаёт
	KindVideo    SearchKind = "video"
	KindAcademic SearchKind = "academic"
)

func (k SearchKind) IsValid() bool {
	switch k {
	case KindWeb, KindImage, KindNews, KindVideo, KindAcademic:
		return true
	}
	return false
}

type SafeSearch string

const (
	SafeOff    SafeSearch = "off"
	SafeMedium SafeSearch = "medium"
	SafeHigh   SafeSearch = "high"
)

func (s SafeSearch) IsValid() bool {
	switch s {
	case "", SafeOff, SafeMedium, SafeHigh:
		return true
	}
	return false
}

// TimeFilter - код периода в диалекте Google (d/w/m/y)
type TimeFilter string

const (
	PastDay   TimeFilter = "d"
	PastWeek  TimeFilter = "w"
	PastMonth TimeFilter = "m"
	PastYear  TimeFilter = "y"
)

func (f TimeFilter) IsValid() bool {
	switch f {
	case "", PastDay, PastWeek, PastMonth, PastYear:
		return true
	}
	return false
}

type ImageSize string

const (
	SizeSmall   ImageSize = "small"
	SizeMedium  ImageSize = "medium"
	SizeLarge   ImageSize = "large"
	SizeXLarge  ImageSize = "xlarge"
	SizeXXLarge ImageSize = "xxlarge"
	SizeHuge    ImageSize = "huge"
)

type ImageType string

const (
	TypeClipart  ImageType = "clipart"
	TypeFace     ImageType = "face"
	TypeLineart  ImageType = "lineart"
	TypeStock    ImageType = "stock"
	TypePhoto    ImageType = "photo"
	TypeAnimated ImageType = "animated"
)

// Param - один фильтр/параметр запроса в плоском виде.
// Порядок пар фиксируется в cache.Key, здесь он не важен.
type Param struct {
	Key   string
	Value string
}

type BaseRequest struct {
	Query      string     `json:"query"`
	NumResults int        `json:"num_results,omitempty"`
	StartIndex int        `json:"start_index,omitempty"`
	SafeSearch SafeSearch `json:"safe_search,omitempty"`
	Language   string     `json:"language,omitempty"`
	Country    string     `json:"country,omitempty"`
}

func (r *BaseRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	if r.NumResults < 0 || r.NumResults > MaxNumResults {
		return ErrInvalidNumResults
	}
	if r.StartIndex < 0 || r.StartIndex > MaxStartIndex {
		return ErrInvalidStartIndex
	}
	if !r.SafeSearch.IsValid() {
		return ErrInvalidSafeSearch
	}
	if r.Language != "" && len(r.Language) != 2 {
		return ErrInvalidLanguage
	}
	if r.Country != "" && len(r.Country) != 2 {
		return ErrInvalidCountry
	}
	return nil
}

func (r *BaseRequest) Sanitize() {
	r.Query = strings.TrimSpace(r.Query)
	r.Language = strings.ToLower(r.Language)
	r.Country = strings.ToLower(r.Country)
}

// baseParams - общие ручки с подставленными дефолтами: запрос без num
// и запрос с явным num=10 семантически одинаковы и дают один ключ кеша
func (r *BaseRequest) baseParams() []Param {
	num := r.NumResults
	if num <= 0 {
		num = MaxNumResults
	}
	start := r.StartIndex
	if start <= 0 {
		start = 1
	}
	safe := r.SafeSearch
	if safe == "" {
		safe = SafeMedium
	}
	lang := r.Language
	if lang == "" {
		lang = "en"
	}
	country := r.Country
	if country == "" {
		country = "us"
	}

	return []Param{
		{"num", strconv.Itoa(num)},
		{"start", strconv.Itoa(start)},
		{"safe", string(safe)},
		{"lr", lang},
		{"gl", country},
	}
}

type WebRequest struct {
	BaseRequest

	Site         string     `json:"site,omitempty"`
	FileType     string     `json:"file_type,omitempty"`
	TimeFilter   TimeFilter `json:"time_filter,omitempty"`
	ExactTerms   string     `json:"exact_terms,omitempty"`
	ExcludeTerms string     `json:"exclude_terms,omitempty"`
}

func (r *WebRequest) Validate() error {
	if err := r.BaseRequest.Validate(); err != nil {
		return err
	}
	if !r.TimeFilter.IsValid() {
		return ErrInvalidTimeFilter
	}
	return nil
}

// Params - все ручки запроса (кроме текста) в плоском виде для ключа кеша
func (r *WebRequest) Params() []Param {
	params := r.baseParams()
	if r.Site != "" {
		params = append(params, Param{"site", r.Site})
	}
	if r.FileType != "" {
		params = append(params, Param{"filetype", r.FileType})
	}
	if r.TimeFilter != "" {
		params = append(params, Param{"dateRestrict", string(r.TimeFilter)})
	}
	if r.ExactTerms != "" {
		params = append(params, Param{"exactTerms", r.ExactTerms})
	}
	if r.ExcludeTerms != "" {
		params = append(params, Param{"excludeTerms", r.ExcludeTerms})
	}
	return params
}

type ImageRequest struct {
	BaseRequest

	ImageSize   ImageSize `json:"image_size,omitempty"`
	ImageType   ImageType `json:"image_type,omitempty"`
	Color       string    `json:"color,omitempty"`
	UsageRights string    `json:"usage_rights,omitempty"`
}

func (r *ImageRequest) Params() []Param {
	params := r.baseParams()
	if r.ImageSize != "" {
		params = append(params, Param{"imgSize", string(r.ImageSize)})
	}
	if r.ImageType != "" {
		params = append(params, Param{"imgType", string(r.ImageType)})
	}
	if r.Color != "" {
		params = append(params, Param{"imgColorType", r.Color})
	}
	if r.UsageRights != "" {
		params = append(params, Param{"rights", r.UsageRights})
	}
	return params
}

type NewsRequest struct {
	BaseRequest

	SortBy     string     `json:"sort_by,omitempty"`
	TimeFilter TimeFilter `json:"time_filter,omitempty"`
}

func (r *NewsRequest) Validate() error {
	if err := r.BaseRequest.Validate(); err != nil {
		return err
	}
	if !r.TimeFilter.IsValid() {
		return ErrInvalidTimeFilter
	}
	return nil
}

func (r *NewsRequest) Params() []Param {
	params := r.baseParams()
	if r.SortBy != "" {
		params = append(params, Param{"sort", r.SortBy})
	}
	if r.TimeFilter != "" {
		params = append(params, Param{"tbs", "qdr:" + string(r.TimeFilter)})
	}
	return params
}
