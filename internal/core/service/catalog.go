package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsSearcher = (*CatalogService)(nil)
var _ port.ProductProvider = (*CatalogService)(nil)
var _ port.Suggester = (*CatalogService)(nil)

type CatalogConfig struct {
	ExternalLimit         int
	SuggestFetchLimit     int
	SuggestLimit          int
	PageSize              int
	PopularRatingWeight   float64
	PopularDiscountWeight float64
}

func (c *CatalogConfig) normalize() {
	if c.ExternalLimit <= 0 {
		c.ExternalLimit = 100
	}
	if c.SuggestFetchLimit <= 0 {
		c.SuggestFetchLimit = 15
	}
	if c.SuggestLimit <= 0 {
		c.SuggestLimit = 5
	}
	if c.PageSize <= 0 {
		c.PageSize = 12
	}
	if c.PopularRatingWeight == 0 {
		c.PopularRatingWeight = 10
	}
	if c.PopularDiscountWeight == 0 {
		c.PopularDiscountWeight = 1
	}
}

// CatalogService answers product queries over the merged catalog:
// the fixed local list blended with the external source. Every call
// re-fetches and re-merges, there is no cache between invocations.
type CatalogService struct {
	local  []domain.Product
	source port.CatalogSource
	events port.ClientEventProducer
	cfg    CatalogConfig
	token  atomic.Uint64
}

func NewCatalogService(
	source port.CatalogSource,
	local []domain.Product,
	events port.ClientEventProducer,
	cfg CatalogConfig,
) *CatalogService {
	cfg.normalize()
	return &CatalogService{
		local:  local,
		source: source,
		events: events,
		cfg:    cfg,
	}
}

// SearchProducts runs the merge, filter, sort, paginate pipeline.
// An unavailable external source degrades to local-only results, the
// method never fails.
func (s *CatalogService) SearchProducts(
	ctx context.Context, page, pageSize int, c domain.SearchCriteria,
) domain.SearchResult {
	token := s.token.Add(1)

	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = s.cfg.PageSize
	}

	merged := s.mergedCatalog(ctx, c.Query)
	filtered := filterProducts(merged, c)
	s.sortProducts(filtered, c.SortBy)

	total := len(filtered)

	// guard the multiplication: a huge page would overflow the offset
	start := total
	if page <= total/pageSize {
		start = min(page*pageSize, total)
	}
	end := min(start+pageSize, total)

	if q := strings.TrimSpace(c.Query); q != "" {
		s.emit(ctx, domain.ClientEvent{
			Type:       domain.EventProductSearched,
			Query:      q,
			OccurredAt: time.Now(),
		})
	}

	return domain.SearchResult{
		Items:    filtered[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < total,
		Token:    token,
	}
}

// LatestToken returns the token of the most recently started pipeline
// call. A response whose token is lower is stale and can be discarded.
func (s *CatalogService) LatestToken() uint64 {
	return s.token.Load()
}

// Product resolves one product by composite identity, the local list
// first. Absence and transport failures both yield not-found.
func (s *CatalogService) Product(
	ctx context.Context, ref domain.ProductRef,
) (domain.Product, bool) {
	p, ok := s.lookup(ctx, ref)
	if !ok {
		return domain.Product{}, false
	}

	s.emit(ctx, domain.ClientEvent{
		Type:       domain.EventProductViewed,
		Source:     p.Ref.Source,
		ProductID:  p.Ref.ID,
		OccurredAt: time.Now(),
	})
	return p, true
}

func (s *CatalogService) lookup(
	ctx context.Context, ref domain.ProductRef,
) (domain.Product, bool) {
	const op = "CatalogService.lookup"

	for _, p := range s.local {
		if p.Ref == ref {
			return p, true
		}
	}

	if ref.Source != domain.SourceDummyJSON {
		return domain.Product{}, false
	}

	p, err := s.source.Product(ctx, ref.ID)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			slog.With("op", op).Warn("external lookup failed",
				"ref", ref.String(), "err", err)
		}
		return domain.Product{}, false
	}
	return p, true
}

// Similar returns up to n products sharing the category of ref,
// ordered by popular score, the product itself excluded.
func (s *CatalogService) Similar(
	ctx context.Context, ref domain.ProductRef, n int,
) []domain.Product {
	if n <= 0 {
		n = 4
	}

	p, ok := s.lookup(ctx, ref)
	if !ok {
		return nil
	}

	res := s.SearchProducts(ctx, 0, n+1, domain.SearchCriteria{
		Category: p.Category,
		SortBy:   domain.SortPopular,
	})

	similar := make([]domain.Product, 0, n)
	for _, cand := range res.Items {
		if cand.Ref == ref {
			continue
		}
		similar = append(similar, cand)
		if len(similar) == n {
			break
		}
	}
	return similar
}

// Suggest produces lightweight title suggestions for an incremental
// search box. Queries shorter than 2 trimmed characters yield nothing.
func (s *CatalogService) Suggest(
	ctx context.Context, query string, limit int,
) []domain.Suggestion {
	const op = "CatalogService.Suggest"

	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = s.cfg.SuggestLimit
	}

	candidates := slices.Clone(s.local)
	seen := make(map[domain.ProductRef]struct{}, len(candidates))
	for _, p := range candidates {
		seen[p.Ref] = struct{}{}
	}

	external, err := s.source.Suggestions(ctx, q, s.cfg.SuggestFetchLimit)
	if err != nil {
		slog.With("op", op).Warn("external suggestions unavailable", "err", err)
	}
	for _, p := range external {
		if _, ok := seen[p.Ref]; ok {
			continue
		}
		seen[p.Ref] = struct{}{}
		candidates = append(candidates, p)
	}

	lq := strings.ToLower(q)
	var matched []domain.Product
	for _, p := range candidates {
		if containsFold(p.Title, lq) ||
			containsFold(p.Brand, lq) ||
			containsFold(p.Category, lq) {
			matched = append(matched, p)
		}
	}

	// Relevance is a strict precedence chain, not a numeric score:
	// title prefix, then brand prefix, then lexical title order.
	slices.SortStableFunc(matched, func(a, b domain.Product) int {
		if c := cmpPrefix(a.Title, b.Title, lq); c != 0 {
			return c
		}
		if c := cmpPrefix(a.Brand, b.Brand, lq); c != 0 {
			return c
		}
		return strings.Compare(
			strings.ToLower(a.Title), strings.ToLower(b.Title),
		)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	suggestions := make([]domain.Suggestion, len(matched))
	for i, p := range matched {
		suggestions[i] = domain.Suggestion{Ref: p.Ref, Title: p.Title}
	}
	return suggestions
}

// mergedCatalog merges the local list with the normalized external
// records, deduplicating by composite identity with local precedence.
func (s *CatalogService) mergedCatalog(
	ctx context.Context, query string,
) []domain.Product {
	const op = "CatalogService.mergedCatalog"

	merged := slices.Clone(s.local)
	seen := make(map[domain.ProductRef]struct{}, len(merged))
	for _, p := range merged {
		seen[p.Ref] = struct{}{}
	}

	external, err := s.source.Products(
		ctx, strings.TrimSpace(query), s.cfg.ExternalLimit, 0,
	)
	if err != nil {
		slog.With("op", op).Warn(
			"external catalog unavailable, serving local only", "err", err,
		)
		return merged
	}

	for _, p := range external {
		if _, ok := seen[p.Ref]; ok {
			continue
		}
		seen[p.Ref] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}

func filterProducts(
	ps []domain.Product, c domain.SearchCriteria,
) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	filtered := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if c.HasCategoryFilter() && p.Category != c.Category {
			continue
		}
		if c.HasPriceFilter() && !inPriceRange(p, c) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesQuery(p domain.Product, lq string) bool {
	return containsFold(p.Title, lq) ||
		containsFold(p.Description, lq) ||
		containsFold(p.Brand, lq) ||
		containsFold(p.Category, lq)
}

// inPriceRange checks the inclusive bounds against the discounted
// price, a zero upper bound means unbounded.
func inPriceRange(p domain.Product, c domain.SearchCriteria) bool {
	d := p.DiscountedPrice()
	if d < c.PriceMin {
		return false
	}
	if c.PriceMax > 0 && d > c.PriceMax {
		return false
	}
	return true
}

func (s *CatalogService) sortProducts(ps []domain.Product, by domain.SortBy) {
	switch by {
	case domain.SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.DiscountedPrice(), b.DiscountedPrice())
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.DiscountedPrice(), a.DiscountedPrice())
		})
	case domain.SortRating:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortName:
		coll := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return coll.CompareString(a.Title, b.Title)
		})
	default:
		// popular is the fallback for unrecognized sort keys too
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(s.popularScore(b), s.popularScore(a))
		})
	}
}

func (s *CatalogService) popularScore(p domain.Product) float64 {
	return p.Rating*s.cfg.PopularRatingWeight +
		p.DiscountPercentage*s.cfg.PopularDiscountWeight
}

func (s *CatalogService) emit(ctx context.Context, e domain.ClientEvent) {
	const op = "CatalogService.emit"

	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.With("op", op).Warn("failed to produce client event",
			"type", e.Type, "err", err)
	}
}

func containsFold(s, lq string) bool {
	return strings.Contains(strings.ToLower(s), lq)
}

// cmpPrefix ranks a prefix match before a non-match, equal states
// compare as zero.
func cmpPrefix(a, b, lq string) int {
	ap := strings.HasPrefix(strings.ToLower(a), lq)
	bp := strings.HasPrefix(strings.ToLower(b), lq)
	switch {
	case ap == bp:
		return 0
	case ap:
		return -1
	default:
		return 1
	}
}
