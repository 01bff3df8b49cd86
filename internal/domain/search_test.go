package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestBaseRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     BaseRequest
		wantErr error
	}{
		{"valid minimal", BaseRequest{Query: "golang"}, nil},
		{"valid full", BaseRequest{Query: "golang", NumResults: 10, StartIndex: 91, SafeSearch: SafeHigh, Language: "ru", Country: "de"}, nil},
		{"empty query", BaseRequest{Query: ""}, ErrEmptyQuery},
		{"whitespace query", BaseRequest{Query: "   "}, ErrEmptyQuery},
		{"query too long", BaseRequest{Query: strings.Repeat("a", MaxQueryLength+1)}, ErrQueryTooLong},
		{"too many results", BaseRequest{Query: "q", NumResults: 11}, ErrInvalidNumResults},
		{"start index too big", BaseRequest{Query: "q", StartIndex: 92}, ErrInvalidStartIndex},
		{"bad safe search", BaseRequest{Query: "q", SafeSearch: "strict"}, ErrInvalidSafeSearch},
		{"bad language", BaseRequest{Query: "q", Language: "eng"}, ErrInvalidLanguage},
		{"bad country", BaseRequest{Query: "q", Country: "usa"}, ErrInvalidCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWebRequest_Validate(t *testing.T) {
	req := WebRequest{
		BaseRequest: BaseRequest{Query: "q"},
		TimeFilter:  "x",
	}
	if err := req.Validate(); !errors.Is(err, ErrInvalidTimeFilter) {
		t.Errorf("Validate() = %v, want ErrInvalidTimeFilter", err)
	}

	req.TimeFilter = PastWeek
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestBaseRequest_Sanitize(t *testing.T) {
	req := BaseRequest{Query: "  Go concurrency  ", Language: "EN", Country: "US"}
	req.Sanitize()

	if req.Query != "Go concurrency" {
		t.Errorf("Query = %q after Sanitize", req.Query)
	}
	if req.Language != "en" || req.Country != "us" {
		t.Errorf("locale not lowercased: %q %q", req.Language, req.Country)
	}
}

func TestWebRequest_Params(t *testing.T) {
	req := WebRequest{
		BaseRequest: BaseRequest{Query: "q", NumResults: 5, StartIndex: 11, SafeSearch: SafeOff, Language: "en", Country: "us"},
		Site:        "reddit.com",
		TimeFilter:  PastDay,
	}

	params := req.Params()
	got := make(map[string]string, len(params))
	for _, p := range params {
		got[p.Key] = p.Value
	}

	want := map[string]string{
		"num":          "5",
		"start":        "11",
		"safe":         "off",
		"lr":           "en",
		"gl":           "us",
		"site":         "reddit.com",
		"dateRestrict": "d",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("params[%q] = %q, want %q", k, got[k], v)
		}
	}
	if len(params) != len(want) {
		t.Errorf("len(params) = %d, want %d (unset filters omitted)", len(params), len(want))
	}
}

func TestWebRequest_ParamsDefaults(t *testing.T) {
	// незаполненные и явно дефолтные ручки должны давать одинаковые параметры
	unset := WebRequest{BaseRequest: BaseRequest{Query: "q"}}
	explicit := WebRequest{
		BaseRequest: BaseRequest{Query: "q", NumResults: 10, StartIndex: 1, SafeSearch: SafeMedium, Language: "en", Country: "us"},
	}

	a := unset.Params()
	b := explicit.Params()
	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("param %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestImageRequest_Params(t *testing.T) {
	req := ImageRequest{
		BaseRequest: BaseRequest{Query: "q"},
		ImageSize:   SizeLarge,
		Color:       "red",
	}

	params := req.Params()
	got := make(map[string]string, len(params))
	for _, p := range params {
		got[p.Key] = p.Value
	}

	if got["imgSize"] != "large" || got["imgColorType"] != "red" {
		t.Errorf("image params wrong: %v", got)
	}
	if _, ok := got["imgType"]; ok {
		t.Error("unset imgType should not appear in params")
	}
}

func TestNewsRequest_Params(t *testing.T) {
	req := NewsRequest{
		BaseRequest: BaseRequest{Query: "q"},
		SortBy:      "date",
		TimeFilter:  PastMonth,
	}

	params := req.Params()
	got := make(map[string]string, len(params))
	for _, p := range params {
		got[p.Key] = p.Value
	}

	if got["sort"] != "date" {
		t.Errorf("sort = %q, want date", got["sort"])
	}
	if got["tbs"] != "qdr:m" {
		t.Errorf("tbs = %q, want qdr:m", got["tbs"])
	}
}

func TestSearchKind_IsValid(t *testing.T) {
	for _, k := range []SearchKind{KindWeb, KindImage, KindNews, KindVideo, KindAcademic} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if SearchKind("maps").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
