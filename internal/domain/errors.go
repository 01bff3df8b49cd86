package domain

import "errors"

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrQueryTooLong = errors.New("query too long")
)

var (
	ErrInvalidKind       = errors.New("invalid search kind")
	ErrInvalidNumResults = errors.New("num results must be between 1 and 10")
	ErrInvalidStartIndex = errors.New("start index must be between 1 and 91")
	ErrInvalidSafeSearch = errors.New("invalid safe search level")
	ErrInvalidTimeFilter = errors.New("invalid time filter")
	ErrInvalidLanguage   = errors.New("language must be a two-letter ISO 639-1 code")
	ErrInvalidCountry    = errors.New("country must be a two-letter ISO 3166-1 code")
)
