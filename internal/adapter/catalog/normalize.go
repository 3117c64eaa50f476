package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// rawRecord is a loosely-typed external catalog record, normalization
// extracts each field explicitly and never fails on a missing one.
type rawRecord map[string]any

const (
	placeholderImage = "https://placehold.co/600x600?text=No+Image"

	defaultTitle    = "Untitled Product"
	defaultBrand    = "Generic"
	defaultCategory = "uncategorized"
	defaultRating   = 4.0
	defaultStock    = 10
)

// Normalize converts one raw external record into a canonical product.
// It is total over any object-shaped input: absent or malformed fields
// fall back to fixed defaults. The external price is converted with
// rate and rounded to whole rupees.
func Normalize(raw rawRecord, rate float64) domain.Product {
	p := domain.Product{
		Ref: domain.ProductRef{
			Source: domain.SourceDummyJSON,
			ID:     intField(raw, "id", 0),
		},
		Title:              stringField(raw, "title", defaultTitle),
		Description:        stringField(raw, "description", ""),
		Price:              convertPrice(floatField(raw, "price", 0), rate),
		DiscountPercentage: normalizeDiscount(floatField(raw, "discountPercentage", 0)),
		Rating:             normalizeRating(floatField(raw, "rating", 0)),
		Stock:              normalizeStock(raw),
		Brand:              stringField(raw, "brand", defaultBrand),
		Category:           CategorySlug(stringField(raw, "category", "")),
		Features:           stringSliceField(raw, "features"),
		Specifications:     specifications(raw),
		Tags:               stringSliceField(raw, "tags"),
	}

	thumbnail := stringField(raw, "thumbnail", "")
	p.Images = normalizeImages(stringSliceField(raw, "images"), thumbnail)

	p.Thumbnail = thumbnail
	if !isHTTPURL(p.Thumbnail) {
		p.Thumbnail = p.Images[0]
	}

	return p
}

// CategorySlug lowercases a category name and replaces spaces with
// hyphens, an empty name becomes the default category.
func CategorySlug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultCategory
	}
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func convertPrice(price, rate float64) int {
	if price <= 0 || math.IsNaN(price) {
		return 0
	}
	return int(math.Round(price * rate))
}

func normalizeDiscount(pct float64) float64 {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0
	}
	return pct
}

func normalizeRating(r float64) float64 {
	if math.IsNaN(r) || r <= 0 {
		return defaultRating
	}
	return math.Min(r, 5)
}

// normalizeStock keeps an explicit zero: it is an out-of-stock signal,
// only an absent or malformed field falls back to the default.
func normalizeStock(raw rawRecord) int {
	v, ok := raw["stock"]
	if !ok {
		return defaultStock
	}
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || n < 0 {
		return defaultStock
	}
	return int(n)
}

// normalizeImages keeps the entries that look like absolute HTTP(S)
// URLs and pads the list to exactly [domain.ImageCount] by cycling
// through the validated entries. With no valid entry the thumbnail is
// used, then the placeholder.
func normalizeImages(entries []string, thumbnail string) []string {
	var valid []string
	for _, e := range entries {
		if isHTTPURL(e) {
			valid = append(valid, e)
		}
	}

	if len(valid) == 0 {
		if isHTTPURL(thumbnail) {
			valid = []string{thumbnail}
		} else {
			valid = []string{placeholderImage}
		}
	}

	if len(valid) > domain.ImageCount {
		valid = valid[:domain.ImageCount]
	}

	images := make([]string, domain.ImageCount)
	for i := range images {
		images[i] = valid[i%len(valid)]
	}
	return images
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func specifications(raw rawRecord) map[string]string {
	specs := map[string]string{
		"SKU":           stringField(raw, "sku", "N/A"),
		"Warranty":      stringField(raw, "warrantyInformation", "No warranty"),
		"Shipping":      stringField(raw, "shippingInformation", "Ships in 3-5 business days"),
		"Return Policy": stringField(raw, "returnPolicy", "No return policy"),
	}

	specs["Dimensions"] = dimensions(raw)

	if w := floatField(raw, "weight", 0); w > 0 {
		specs["Weight"] = fmt.Sprintf("%v g", w)
	} else {
		specs["Weight"] = "Not specified"
	}

	if moq := intField(raw, "minimumOrderQuantity", 0); moq > 0 {
		specs["Minimum Order"] = fmt.Sprint(moq)
	} else {
		specs["Minimum Order"] = "1"
	}

	return specs
}

func dimensions(raw rawRecord) string {
	d, ok := raw["dimensions"].(map[string]any)
	if !ok {
		return "Not specified"
	}

	width := floatField(d, "width", 0)
	height := floatField(d, "height", 0)
	depth := floatField(d, "depth", 0)
	if width == 0 && height == 0 && depth == 0 {
		return "Not specified"
	}

	return fmt.Sprintf("%.1f x %.1f x %.1f cm", width, height, depth)
}

func stringField(raw map[string]any, key, fallback string) string {
	s, ok := raw[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func floatField(raw map[string]any, key string, fallback float64) float64 {
	n, ok := raw[key].(float64)
	if !ok {
		return fallback
	}
	return n
}

func intField(raw map[string]any, key string, fallback int) int {
	n, ok := raw[key].(float64)
	if !ok {
		return fallback
	}
	return int(n)
}

func stringSliceField(raw map[string]any, key string) []string {
	entries, ok := raw[key].([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, e := range entries {
		if s, ok := e.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
