// # internal/engine/lexer/cache.go
package lexer

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"minibun/internal/shared/observability"
)

// Cache memoizes Tokenize results keyed by source identity, so watch-mode
// rebuilds do not re-scan unchanged modules. Tokens are immutable after
// creation, so cached slices are shared between callers.
type Cache struct {
	inner *lru.Cache[string, []Token]
}

func NewCache(size int) (*Cache, error) {
	inner, err := lru.New[string, []Token](size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

func (c *Cache) Tokenize(source string) []Token {
	if c == nil || c.inner == nil {
		return Tokenize(source)
	}

	start := time.Now()
	key := sourceKey(source)
	if tokens, ok := c.inner.Get(key); ok {
		observability.TokenizeDuration.WithLabelValues("true").Observe(time.Since(start).Seconds())
		return tokens
	}

	tokens := Tokenize(source)
	c.inner.Add(key, tokens)
	observability.TokenizeDuration.WithLabelValues("false").Observe(time.Since(start).Seconds())
	return tokens
}

func (c *Cache) Len() int {
	if c == nil || c.inner == nil {
		return 0
	}
	return c.inner.Len()
}

func sourceKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
