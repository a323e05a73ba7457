// Package wishlist keeps the device's saved-for-later products.
package wishlist

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

// Item caches just enough of a product to render the wishlist without a
// catalog round trip.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type Service struct {
	repo storage.Repo
}

func NewService(repo storage.Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Items(ctx context.Context, deviceID string) ([]Item, error) {
	var items []Item
	if _, err := storage.GetJSON(ctx, s.repo, deviceID, storage.KeyWishlistItems, &items); err != nil {
		return nil, errors.Wrap(err, "[Service.Items] load wishlist")
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Toggle adds the item if absent and removes it if present, reporting
// whether it ended up on the list.
func (s *Service) Toggle(ctx context.Context, deviceID string, item Item) (bool, []Item, error) {
	items, err := s.Items(ctx, deviceID)
	if err != nil {
		return false, nil, err
	}

	kept := items[:0]
	removed := false
	for _, existing := range items {
		if existing.ID == item.ID {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, item)
	}

	if err := storage.SetJSON(ctx, s.repo, deviceID, storage.KeyWishlistItems, kept); err != nil {
		return false, nil, errors.Wrap(err, "[Service.Toggle] persist wishlist")
	}
	return !removed, kept, nil
}

func (s *Service) Clear(ctx context.Context, deviceID string) error {
	if err := s.repo.Delete(ctx, deviceID, storage.KeyWishlistItems); err != nil {
		return errors.Wrap(err, "[Service.Clear] delete wishlist")
	}
	return nil
}
