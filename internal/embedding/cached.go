package embedding

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/strata-rag/strata/internal/cache"
)

// Provider turns text into a fixed-length vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cached wraps a Provider with content-hash caching. Keys are derived from
// the normalized text so trivially different spellings of the same query
// share one cached vector.
type Cached struct {
	provider Provider
	cache    cache.Cache
}

func NewCached(provider Provider, c cache.Cache) *Cached {
	return &Cached{provider: provider, cache: c}
}

// Embed returns the embedding for text, using the cache when available.
// Cache writes are best-effort; a failed Set never fails the embed.
func (e *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	key := "emb:" + ContentHash(Normalize(text))

	if data, ok := e.cache.Get(ctx, key); ok {
		if vec := BytesToFloat32(data); vec != nil {
			return vec, nil
		}
	}

	vec, err := e.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Set(ctx, key, Float32ToBytes(vec))
	return vec, nil
}

// Normalize lower-cases text and collapses runs of whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ContentHash computes a SHA-256 hash of text content.
func ContentHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h)
}
