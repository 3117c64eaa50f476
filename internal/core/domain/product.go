package domain

import (
	"fmt"
	"math"
)

// Source tags the catalog origin of a product.
type Source string

const (
	SourceStore     Source = "store"
	SourceDummyJSON Source = "dummyjson"
)

// ImageCount is the exact gallery length of a normalized product.
const ImageCount = 7

type (
	// ProductRef is the composite identity of a product:
	// the id is unique within a source, not globally.
	ProductRef struct {
		Source Source
		ID     int
	}

	Product struct {
		Ref                ProductRef
		Title              string
		Description        string
		Price              int
		DiscountPercentage float64
		Rating             float64
		Stock              int
		Brand              string
		Category           string
		Thumbnail          string
		Images             []string
		Features           []string
		Specifications     map[string]string
		Tags               []string
	}
)

func (r ProductRef) String() string {
	return fmt.Sprintf("%s:%d", r.Source, r.ID)
}

// DiscountedPrice applies pct to price and rounds to a whole value.
// Non-positive price yields 0, pct outside [0, 100] is treated as 0.
func DiscountedPrice(price int, pct float64) int {
	if price <= 0 {
		return 0
	}
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		pct = 0
	}
	return int(math.Round(float64(price) - float64(price)*pct/100))
}

func (p Product) DiscountedPrice() int {
	return DiscountedPrice(p.Price, p.DiscountPercentage)
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
