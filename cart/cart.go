// Package cart maintains the authoritative list of items a device intends to
// purchase. Every mutation writes through to device storage, so the cart
// survives restarts the way the web client's cart survived reloads.
package cart

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

var ErrMissingIdentity = errors.New("cart item has no resolvable identity")

// Line is one product entry in the cart with its own quantity and the unit
// price cached at add time.
type Line struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Tribe     string  `json:"tribe,omitempty"`
	// StockLimit is the product's reported inventory when the line was
	// added. Zero means unknown. The store itself never enforces it;
	// callers check it before asking for an increment.
	StockLimit int `json:"stock,omitempty"`
}

// Cart is the line list plus totals. Totals are always recomputed from the
// lines, never maintained incrementally, so they cannot drift.
type Cart struct {
	Items         []Line  `json:"items"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}

type Service struct {
	repo storage.Repo
}

func NewService(repo storage.Repo) *Service {
	return &Service{repo: repo}
}

// Get loads the device's cart. Corrupt or absent persisted data yields an
// empty cart, never an error.
func (s *Service) Get(ctx context.Context, deviceID string) (Cart, error) {
	var items []Line
	if _, err := storage.GetJSON(ctx, s.repo, deviceID, storage.KeyCartItems, &items); err != nil {
		return Cart{}, errors.Wrap(err, "[Service.Get] load cart")
	}
	return withTotals(items), nil
}

// Add puts an item in the cart. An existing identity is incremented by
// exactly 1 regardless of the payload's quantity field; a new line starts at
// the payload quantity, floored at 1. Stock limits are the caller's problem.
func (s *Service) Add(ctx context.Context, deviceID string, item Line) (Cart, error) {
	if item.ID == "" {
		return Cart{}, errors.Wrapf(ErrMissingIdentity, "%q", item.Name)
	}

	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		c.Items = append(c.Items, item)
	}

	return s.save(ctx, deviceID, c.Items)
}

// Remove deletes a line. Absent identities are a silent no-op.
func (s *Service) Remove(ctx context.Context, deviceID, id string) (Cart, error) {
	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}

	items := c.Items[:0]
	for _, line := range c.Items {
		if line.ID != id {
			items = append(items, line)
		}
	}
	return s.save(ctx, deviceID, items)
}

// Decrease lowers a line's quantity by 1; a line that would reach zero is
// removed instead. Absent identities are a silent no-op.
func (s *Service) Decrease(ctx context.Context, deviceID, id string) (Cart, error) {
	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}

	items := c.Items[:0]
	for _, line := range c.Items {
		if line.ID == id {
			line.Quantity--
			if line.Quantity < 1 {
				continue
			}
		}
		items = append(items, line)
	}
	return s.save(ctx, deviceID, items)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, deviceID string) (Cart, error) {
	return s.save(ctx, deviceID, nil)
}

func (s *Service) save(ctx context.Context, deviceID string, items []Line) (Cart, error) {
	if items == nil {
		items = []Line{}
	}
	if err := storage.SetJSON(ctx, s.repo, deviceID, storage.KeyCartItems, items); err != nil {
		return Cart{}, errors.Wrap(err, "[Service.save] persist cart")
	}
	return withTotals(items), nil
}

func withTotals(items []Line) Cart {
	if items == nil {
		items = []Line{}
	}
	c := Cart{Items: items}
	for _, line := range items {
		c.TotalQuantity += line.Quantity
		c.TotalAmount += line.UnitPrice * float64(line.Quantity)
	}
	return c
}
