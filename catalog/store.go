package catalog

import "sync"

// Store caches the full product list fetched from the backend plus the
// active filter, and serves the derived view. Loads are guarded with a
// sequence number so a slow response can never overwrite a newer one.
type Store struct {
	lock       sync.RWMutex
	products   []Product
	categories []string
	filter     Filter
	loadSeq    uint64
}

func NewStore() *Store {
	return &Store{filter: DefaultFilter()}
}

// BeginLoad marks the start of a catalog fetch and returns a token that the
// matching CompleteLoad must present.
func (s *Store) BeginLoad() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.loadSeq++
	return s.loadSeq
}

// CompleteLoad folds a fetch result into the store. A stale token (a newer
// load has begun since) is discarded and reported as false.
func (s *Store) CompleteLoad(token uint64, products []Product) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if token != s.loadSeq {
		return false
	}
	s.products = products
	return true
}

func (s *Store) SetCategories(categories []string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.categories = categories
}

func (s *Store) Categories() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]string(nil), s.categories...)
}

// UpdateFilter mutates the active filter and is the only way to change it,
// so every change goes through the same derivation on the next View call.
func (s *Store) UpdateFilter(update func(*Filter)) {
	s.lock.Lock()
	defer s.lock.Unlock()

	update(&s.filter)
}

func (s *Store) ResetFilter() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.filter = DefaultFilter()
}

func (s *Store) Filter() Filter {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.filter
}

// View returns the filtered, sorted product list.
func (s *Store) View() []Product {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return Apply(s.products, s.filter)
}

// Products returns the unfiltered catalog.
func (s *Store) Products() []Product {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]Product(nil), s.products...)
}

// Get finds a product by identity.
func (s *Store) Get(id string) (Product, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
