package domain

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// MaxPrice is the default inclusive upper bound of the price range.
// A criteria with the full [0, MaxPrice] range skips price filtering.
const MaxPrice = 1_000_000

type SortBy string

const (
	SortPopular   SortBy = "popular"
	SortName      SortBy = "name"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortRating    SortBy = "rating"
)

type SearchCriteria struct {
	Query    string
	Category string
	PriceMin int
	PriceMax int
	SortBy   SortBy
}

// HasPriceFilter reports whether the criteria narrows the default
// full price range.
func (c SearchCriteria) HasPriceFilter() bool {
	if c.PriceMin > 0 {
		return true
	}
	return c.PriceMax > 0 && c.PriceMax < MaxPrice
}

// HasCategoryFilter reports whether the criteria narrows by category.
func (c SearchCriteria) HasCategoryFilter() bool {
	return c.Category != "" && c.Category != CategoryAll
}

type SearchResult struct {
	Items    []Product
	Total    int
	Page     int
	PageSize int
	HasMore  bool

	// Token grows monotonically per pipeline call, callers compare it
	// against the latest issued one to discard stale responses.
	Token uint64
}

type Suggestion struct {
	Ref   ProductRef
	Title string
}
