package google

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

// baseValues собирает общие параметры диалекта Custom Search.
// Модификаторы вида site:/filetype: дописываются в q выше по стеку.
func (c *Client) baseValues(query string, r *domain.BaseRequest) url.Values {
	num := r.NumResults
	if num <= 0 {
		num = domain.MaxNumResults
	}
	start := r.StartIndex
	if start <= 0 {
		start = 1
	}
	safe := r.SafeSearch
	if safe == "" {
		safe = domain.SafeMedium
	}
	lang := r.Language
	if lang == "" {
		lang = "en"
	}
	country := r.Country
	if country == "" {
		country = "us"
	}

	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("cx", c.engineID)
	values.Set("q", query)
	values.Set("num", strconv.Itoa(num))
	values.Set("start", strconv.Itoa(start))
	values.Set("safe", string(safe))
	values.Set("lr", "lang_"+lang)
	values.Set("gl", country)
	return values
}

func (c *Client) webValues(r *domain.WebRequest) url.Values {
	q := r.Query
	if r.Site != "" {
		q += " site:" + r.Site
	}
	if r.FileType != "" {
		q += " filetype:" + r.FileType
	}
	if r.ExactTerms != "" {
		q += fmt.Sprintf(" %q", r.ExactTerms)
	}
	if r.ExcludeTerms != "" {
		q += " -" + r.ExcludeTerms
	}

	values := c.baseValues(q, &r.BaseRequest)
	if r.TimeFilter != "" {
		values.Set("dateRestrict", string(r.TimeFilter))
	}
	return values
}

func (c *Client) imageValues(r *domain.ImageRequest) url.Values {
	values := c.baseValues(r.Query, &r.BaseRequest)
	values.Set("searchType", "image")
	if r.ImageSize != "" {
		values.Set("imgSize", string(r.ImageSize))
	}
	if r.ImageType != "" {
		values.Set("imgType", string(r.ImageType))
	}
	if r.Color != "" {
		values.Set("imgColorType", r.Color)
	}
	if r.UsageRights != "" {
		values.Set("rights", r.UsageRights)
	}
	return values
}

func (c *Client) newsValues(r *domain.NewsRequest) url.Values {
	values := c.baseValues(r.Query, &r.BaseRequest)
	values.Set("tbm", "nws")
	if r.SortBy == "date" {
		values.Set("sort", "date")
	}
	if r.TimeFilter != "" {
		values.Set("tbs", "qdr:"+string(r.TimeFilter))
	}
	return values
}
