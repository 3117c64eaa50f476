package catalog

import (
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

const localCDN = "https://cdn.storefront.dev/products"

// LocalProducts returns the fixed store-sourced product list. Every call
// builds fresh records: the catalog pipeline never mutates them in
// place, but callers must not rely on shared slices either.
func LocalProducts() []domain.Product {
	ps := []domain.Product{
		{
			Ref:                ref(1),
			Title:              "Aurora X5 Smartphone",
			Description:        "6.5-inch AMOLED display, 128 GB storage and a 50 MP dual camera.",
			Price:              24999,
			DiscountPercentage: 12,
			Rating:             4.5,
			Stock:              25,
			Brand:              "Aurora",
			Category:           "smartphones",
			Features:           []string{"AMOLED display", "5000 mAh battery", "Fast charging"},
			Specifications: map[string]string{
				"SKU":           "AUR-X5-128",
				"Dimensions":    "16.0 x 7.5 x 0.8 cm",
				"Weight":        "189 g",
				"Warranty":      "1 year manufacturer warranty",
				"Shipping":      "Ships in 2-3 business days",
				"Return Policy": "7 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"smartphone", "android"},
		},
		{
			Ref:                ref(2),
			Title:              "Nimbus Pro 14 Laptop",
			Description:        "14-inch ultrabook with 16 GB RAM, 512 GB SSD and all-day battery.",
			Price:              74999,
			DiscountPercentage: 8,
			Rating:             4.7,
			Stock:              10,
			Brand:              "Nimbus",
			Category:           "laptops",
			Features:           []string{"16 GB RAM", "512 GB SSD", "Backlit keyboard"},
			Specifications: map[string]string{
				"SKU":           "NIM-P14-512",
				"Dimensions":    "31.2 x 22.0 x 1.5 cm",
				"Weight":        "1350 g",
				"Warranty":      "2 years onsite warranty",
				"Shipping":      "Ships in 3-5 business days",
				"Return Policy": "10 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"laptop", "ultrabook"},
		},
		{
			Ref:                ref(3),
			Title:              "EchoBeat Wireless Headphones",
			Description:        "Over-ear headphones with active noise cancellation and 40 h playtime.",
			Price:              7999,
			DiscountPercentage: 20,
			Rating:             4.3,
			Stock:              40,
			Brand:              "EchoBeat",
			Category:           "audio",
			Features:           []string{"Active noise cancellation", "Bluetooth 5.3", "40 h playtime"},
			Specifications: map[string]string{
				"SKU":           "ECH-WH-40",
				"Dimensions":    "18.0 x 16.5 x 8.0 cm",
				"Weight":        "260 g",
				"Warranty":      "1 year manufacturer warranty",
				"Shipping":      "Ships in 2-3 business days",
				"Return Policy": "7 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"headphones", "wireless"},
		},
		{
			Ref:                ref(4),
			Title:              "Stride Runner Shoes",
			Description:        "Lightweight running shoes with a breathable mesh upper.",
			Price:              4599,
			DiscountPercentage: 25,
			Rating:             4.1,
			Stock:              60,
			Brand:              "Stride",
			Category:           "mens-shoes",
			Features:           []string{"Breathable mesh", "Cushioned sole"},
			Specifications: map[string]string{
				"SKU":           "STR-RUN-42",
				"Dimensions":    "30.0 x 11.0 x 10.0 cm",
				"Weight":        "240 g",
				"Warranty":      "No warranty",
				"Shipping":      "Ships in 3-5 business days",
				"Return Policy": "15 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"shoes", "running"},
		},
		{
			Ref:                ref(5),
			Title:              "ChronoSteel Analog Watch",
			Description:        "Stainless steel analog watch with sapphire glass, water resistant to 5 ATM.",
			Price:              12499,
			DiscountPercentage: 10,
			Rating:             4.6,
			Stock:              18,
			Brand:              "ChronoSteel",
			Category:           "mens-watches",
			Features:           []string{"Sapphire glass", "5 ATM water resistance"},
			Specifications: map[string]string{
				"SKU":           "CHR-AN-01",
				"Dimensions":    "4.2 x 4.2 x 1.1 cm",
				"Weight":        "145 g",
				"Warranty":      "2 years international warranty",
				"Shipping":      "Ships in 2-3 business days",
				"Return Policy": "7 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"watch", "analog"},
		},
		{
			Ref:                ref(6),
			Title:              "Urban Trek Backpack",
			Description:        "30 L water-repellent backpack with a padded 15-inch laptop sleeve.",
			Price:              2999,
			DiscountPercentage: 30,
			Rating:             4.2,
			Stock:              55,
			Brand:              "Urban Trek",
			Category:           "bags",
			Features:           []string{"30 L capacity", "Laptop sleeve", "Water repellent"},
			Specifications: map[string]string{
				"SKU":           "URB-BP-30",
				"Dimensions":    "48.0 x 32.0 x 18.0 cm",
				"Weight":        "780 g",
				"Warranty":      "6 months warranty",
				"Shipping":      "Ships in 3-5 business days",
				"Return Policy": "10 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"backpack", "travel"},
		},
		{
			Ref:                ref(7),
			Title:              "Lumina Desk Lamp",
			Description:        "Dimmable LED desk lamp with three color temperatures and a USB port.",
			Price:              1899,
			DiscountPercentage: 15,
			Rating:             4.0,
			Stock:              0,
			Brand:              "Lumina",
			Category:           "home-decoration",
			Features:           []string{"Dimmable LED", "USB charging port"},
			Specifications: map[string]string{
				"SKU":           "LUM-DL-03",
				"Dimensions":    "40.0 x 12.0 x 12.0 cm",
				"Weight":        "520 g",
				"Warranty":      "1 year manufacturer warranty",
				"Shipping":      "Ships in 3-5 business days",
				"Return Policy": "7 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"lamp", "led"},
		},
		{
			Ref:                ref(8),
			Title:              "Vertex Fitness Band",
			Description:        "Fitness tracker with heart-rate monitoring and 10-day battery life.",
			Price:              3499,
			DiscountPercentage: 18,
			Rating:             4.4,
			Stock:              35,
			Brand:              "Vertex",
			Category:           "sports-accessories",
			Features:           []string{"Heart-rate monitor", "Sleep tracking", "10-day battery"},
			Specifications: map[string]string{
				"SKU":           "VRT-FB-10",
				"Dimensions":    "25.0 x 2.0 x 1.2 cm",
				"Weight":        "28 g",
				"Warranty":      "1 year manufacturer warranty",
				"Shipping":      "Ships in 2-3 business days",
				"Return Policy": "7 days return policy",
				"Minimum Order": "1",
			},
			Tags: []string{"fitness", "wearable"},
		},
	}

	for i := range ps {
		ps[i].Images = localImages(ps[i].Ref.ID)
		ps[i].Thumbnail = ps[i].Images[0]
	}
	return ps
}

func ref(id int) domain.ProductRef {
	return domain.ProductRef{Source: domain.SourceStore, ID: id}
}

func localImages(id int) []string {
	base := []string{
		fmt.Sprintf("%s/%d/front.jpg", localCDN, id),
		fmt.Sprintf("%s/%d/side.jpg", localCDN, id),
		fmt.Sprintf("%s/%d/detail.jpg", localCDN, id),
	}
	return normalizeImages(base, "")
}
