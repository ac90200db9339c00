package fields

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/solatis/slovar/internal/types"
)

// DefaultCacheSize bounds the number of distinct expressions kept parsed.
const DefaultCacheSize = 256

// Parser memoizes Parse results. Safe for concurrent use.
type Parser struct {
	cache *lru.Cache[string, types.RuleRecord]
}

// NewParser creates a parser caching up to size records.
func NewParser(size int) (*Parser, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, types.RuleRecord](size)
	if err != nil {
		return nil, err
	}
	return &Parser{cache: cache}, nil
}

// Parse returns the rule record for exprs, parsing on a cache miss.
// The returned record is a private copy.
func (p *Parser) Parse(exprs []string, parse bool) (types.RuleRecord, error) {
	key := strconv.FormatBool(parse) + "\x00" + strings.Join(exprs, "\x00")
	if rec, ok := p.cache.Get(key); ok {
		return rec.Clone(), nil
	}
	rec, err := Parse(exprs, parse)
	if err != nil {
		return types.RuleRecord{}, err
	}
	p.cache.Add(key, rec)
	return rec.Clone(), nil
}

// Len reports how many records are cached.
func (p *Parser) Len() int {
	return p.cache.Len()
}
