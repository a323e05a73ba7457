package server

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
)

// ProductsHandler serves the filtered catalog view. Query parameters overlay
// the stored filter for this request only; without any, the stored filter
// applies as-is.
func (s *Server) ProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, overridden := filterFromQuery(r, s.catalog.Filter())

		var products []catalog.Product
		if overridden {
			products = catalog.Apply(s.catalog.Products(), filter)
		} else {
			products = s.catalog.View()
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"products": s.resolveImages(products),
			"total":    len(products),
		})
	}
}

func filterFromQuery(r *http.Request, base catalog.Filter) (catalog.Filter, bool) {
	q := r.URL.Query()
	overridden := false

	if category := q.Get("category"); category != "" {
		base.Category = category
		overridden = true
	}
	if raw := q.Get("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			base.PriceRange.Min = min
			overridden = true
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			base.PriceRange.Max = max
			overridden = true
		}
	}
	if search := q.Get("search"); search != "" {
		base.SearchQuery = search
		overridden = true
	}
	if sortBy := q.Get("sort"); sortBy != "" {
		base.SortBy = sortBy
		overridden = true
	}
	return base, overridden
}

// RefreshCatalogHandler reloads the product list from the backend. Loads are
// sequenced, so if a second refresh starts while this one is in flight, the
// slower response is discarded instead of clobbering the newer one.
func (s *Server) RefreshCatalogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := s.catalog.BeginLoad()

		products, err := s.backend.Products(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		if !s.catalog.CompleteLoad(token, products) {
			respondMessage(w, http.StatusConflict, "superseded by a newer refresh")
			return
		}
		s.catalog.SetCategories(deriveCategories(products))

		respondJSON(w, http.StatusOK, map[string]any{"count": len(products)})
	}
}

func deriveCategories(products []catalog.Product) []string {
	var categories []string
	for _, p := range products {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	slices.Sort(categories)
	return categories
}

// ProductHandler serves a single product, falling back to the backend when
// the cached catalog does not have it yet.
func (s *Server) ProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		product, ok := s.catalog.Get(id)
		if !ok {
			var err error
			product, err = s.backend.Product(r.Context(), id)
			if err != nil {
				s.respondError(w, r, err)
				return
			}
		}

		product.Image = s.images.Resolve(product.Image)
		respondJSON(w, http.StatusOK, product)
	}
}

func (s *Server) CategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := s.catalog.Categories()
		if categories == nil {
			categories = []string{}
		}
		respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

type filterUpdate struct {
	Category    *string `json:"category"`
	SearchQuery *string `json:"searchQuery"`
	SortBy      *string `json:"sortBy"`
	PriceRange  *struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRange"`
}

// UpdateFilterHandler changes the stored filter. Absent fields keep their
// current value, so the client can change one dimension at a time.
func (s *Server) UpdateFilterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update filterUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		s.catalog.UpdateFilter(func(f *catalog.Filter) {
			if update.Category != nil {
				f.Category = *update.Category
			}
			if update.SearchQuery != nil {
				f.SearchQuery = *update.SearchQuery
			}
			if update.SortBy != nil {
				f.SortBy = *update.SortBy
			}
			if update.PriceRange != nil {
				f.PriceRange = catalog.PriceRange{Min: update.PriceRange.Min, Max: update.PriceRange.Max}
			}
		})

		respondJSON(w, http.StatusOK, s.catalog.Filter())
	}
}

func (s *Server) ResetFilterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.catalog.ResetFilter()
		respondJSON(w, http.StatusOK, s.catalog.Filter())
	}
}

func (s *Server) RateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var body struct {
			Rating int `json:"rating"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Rating < 1 || body.Rating > 5 {
			respondMessage(w, http.StatusBadRequest, "rating must be between 1 and 5")
			return
		}

		if err := s.backend.RateProduct(r.Context(), sess.Token, r.PathValue("id"), body.Rating); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"rating": body.Rating})
	}
}

func (s *Server) UserRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		rating, rated, err := s.backend.UserRating(r.Context(), sess.Token, r.PathValue("id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"rating": rating, "rated": rated})
	}
}

func (s *Server) resolveImages(products []catalog.Product) []catalog.Product {
	resolved := make([]catalog.Product, len(products))
	for i, p := range products {
		p.Image = s.images.Resolve(p.Image)
		resolved[i] = p
	}
	return resolved
}
