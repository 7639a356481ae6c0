package search

import (
	"context"
	"fmt"
	"time"

	"github.com/insightstack/insightstack/internal/config"
	"github.com/insightstack/insightstack/internal/models"
	"github.com/insightstack/insightstack/internal/stack"
	"github.com/insightstack/insightstack/internal/store"
)

// Engine combines the insight store, stack aggregation, and the fuzzy ranker
// behind one API. Search results are cached per raw query string.
type Engine struct {
	store store.Store
	cache *ResultCache
	cfg   config.SearchConfig
}

// NewEngine creates an engine backed by the given store.
func NewEngine(s store.Store, cfg config.SearchConfig) *Engine {
	return &Engine{
		store: s,
		cache: NewResultCache(time.Duration(cfg.CacheTTLMinutes)*time.Minute, cfg.CacheCapacity),
		cfg:   cfg,
	}
}

// ListStacks returns the page of stacks matching q. Channel filtering is
// pushed down to the store; the remaining predicates apply at stack level so
// a stack matches when any of its constituent insights does.
func (e *Engine) ListStacks(ctx context.Context, q *models.StackQuery) (*models.StackListResponse, error) {
	if err := q.Validate(e.cfg.DefaultLimit, e.cfg.MaxLimit); err != nil {
		return nil, err
	}

	insights, err := e.store.ListInsights(ctx, store.Query{ChannelID: q.ChannelID})
	if err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}

	stacks := stack.BuildStacks(insights)
	stacks = stack.Filter(stacks, stack.Filters{
		Category:    q.Category,
		Tags:        q.Tags,
		Search:      q.Search,
		MinInsights: q.MinInsights,
	})
	stack.Sort(stacks, q.Sort)

	return stack.Paginate(stacks, q.Limit, q.Offset), nil
}

// GetStack returns the stack with the given ID, which is the shared thumbnail
// URL of its insights or the podcast|episode composite when none exists.
// Returns store.ErrNotFound if no insight group produces that ID.
func (e *Engine) GetStack(ctx context.Context, id string) (*models.Stack, error) {
	insights, err := e.store.ListInsights(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}
	for _, s := range stack.BuildStacks(insights) {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, store.ErrNotFound
}

// Search ranks all stacks against the query. A blank query returns every
// stack unranked. Results are served from the cache when a fresh entry
// exists for the same raw query.
func (e *Engine) Search(ctx context.Context, query string) ([]*models.StackSearchResult, error) {
	if results, ok := e.cache.Get(query); ok {
		return results, nil
	}

	insights, err := e.store.ListInsights(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}

	results := SearchStacks(stack.BuildStacks(insights), query)
	e.cache.Set(query, results)
	return results, nil
}

// Suggest returns up to max completion suggestions for a partial query.
func (e *Engine) Suggest(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		max = e.cfg.MaxSuggestions
	}

	insights, err := e.store.ListInsights(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}

	return Suggest(query, stack.BuildStacks(insights), max), nil
}

// CacheLen returns the number of cached search results.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}

// ClearCache drops all cached search results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}
