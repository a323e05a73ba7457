// Package catalog holds the product list and derives the filtered, sorted
// view the storefront displays.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// Product is the catalog entry as served by the backend. Fields may be
// missing or malformed in older records; decoding is tolerant and filtering
// treats bad values as non-matching instead of failing.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Images      []string  `json:"images,omitempty"`
	Artisan     string    `json:"artisan"`
	Tribe       string    `json:"tribe"`
	Region      string    `json:"region,omitempty"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating,omitempty"`
	Popularity  float64   `json:"popularity,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
}

// UnmarshalJSON accepts both identity spellings the backend has used over
// time (`_id` and `id`, string or number) and a handful of date formats.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias struct {
		MongoID     any      `json:"_id"`
		ID          any      `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Category    string   `json:"category"`
		Image       string   `json:"image"`
		Images      []string `json:"images"`
		Artisan     string   `json:"artisan"`
		Tribe       string   `json:"tribe"`
		Region      string   `json:"region"`
		Stock       int      `json:"stock"`
		Rating      float64  `json:"rating"`
		Popularity  float64  `json:"popularity"`
		CreatedAt   string   `json:"createdAt"`
		Featured    bool     `json:"featured"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*p = Product{
		ID:          normalizeID(a.MongoID, a.ID),
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
		Category:    a.Category,
		Image:       a.Image,
		Images:      a.Images,
		Artisan:     a.Artisan,
		Tribe:       a.Tribe,
		Region:      a.Region,
		Stock:       a.Stock,
		Rating:      a.Rating,
		Popularity:  a.Popularity,
		CreatedAt:   parseCreatedAt(a.CreatedAt),
		Featured:    a.Featured,
	}
	return nil
}

// normalizeID prefers the mongo `_id` and falls back to `id`. Numeric IDs
// from the seed data are rendered without an exponent.
func normalizeID(candidates ...any) string {
	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

var createdAtFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-1-2",
}

func parseCreatedAt(raw string) time.Time {
	for _, layout := range createdAtFormats {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
