package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/ivmolchanov/search-gateway/internal/domain"
)

// Key строит детерминированный ключ кеша из (запрос, вид поиска, параметры).
// Регистр и обрамляющие пробелы запроса на ключ не влияют, порядок
// параметров тоже. 8 байт sha256 достаточно, коллизии при наших размерах
// кеша не проблема.
func Key(query string, kind domain.SearchKind, params []domain.Param) string {
	sorted := make([]domain.Param, len(params))
	copy(sorted, params)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	b.WriteString(NormalizeQuery(query))
	b.WriteByte(0)
	b.WriteString(string(kind))
	for _, p := range sorted {
		b.WriteByte(0)
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}

	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:8])
}

func NormalizeQuery(q string) string {
	q = strings.ToLower(q)
	q = strings.TrimSpace(q)
	return strings.Join(strings.Fields(q), " ")
}
