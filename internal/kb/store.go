// Package kb memoizes the read-heavy help-center endpoints of the Zendesk
// gateway. Each endpoint carries its own TTL; keys include the full
// argument tuple so different locales or queries never collide.
package kb

import (
	"context"
	"time"

	"github.com/helpdesk-io/zendesk-mcp/internal/cache"
	"github.com/helpdesk-io/zendesk-mcp/internal/zendesk"
)

// Default TTLs per endpoint. Sections change rarely, individual articles
// occasionally, search results often.
const (
	SectionsTTL = 2 * time.Hour
	ArticleTTL  = time.Hour
	SearchTTL   = 15 * time.Minute
)

// Store wraps a zendesk.Client with time-bounded memoization. Concurrent
// misses on the same key are not deduplicated; the backend calls are
// idempotent so the only cost is a duplicate fetch.
type Store struct {
	client zendesk.Client
	cache  *cache.TTLCache
}

// NewStore creates a Store backed by the given client and cache.
func NewStore(client zendesk.Client, c *cache.TTLCache) *Store {
	return &Store{client: client, cache: c}
}

// CachedSections returns the section list, cached for SectionsTTL.
func (s *Store) CachedSections(ctx context.Context) ([]zendesk.Section, error) {
	key := cache.Key("sections")
	if v, ok := s.cache.Get(key); ok {
		return v.([]zendesk.Section), nil
	}

	sections, err := s.client.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, sections, SectionsTTL)
	return sections, nil
}

// CachedArticle returns a single article, cached for ArticleTTL.
func (s *Store) CachedArticle(ctx context.Context, articleID int64, locale string) (*zendesk.Article, error) {
	key := cache.Key("article", articleID, locale)
	if v, ok := s.cache.Get(key); ok {
		return v.(*zendesk.Article), nil
	}

	article, err := s.client.GetArticle(ctx, articleID, locale)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, article, ArticleTTL)
	return article, nil
}

// CachedSearch returns article search results, cached for SearchTTL.
func (s *Store) CachedSearch(ctx context.Context, query string, limit int, locale string) ([]zendesk.ArticleSummary, error) {
	key := cache.Key("search", query, limit, locale)
	if v, ok := s.cache.Get(key); ok {
		return v.([]zendesk.ArticleSummary), nil
	}

	articles, err := s.client.SearchArticles(ctx, query, limit, locale)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, articles, SearchTTL)
	return articles, nil
}
