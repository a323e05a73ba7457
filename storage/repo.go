package storage

import (
	"context"
	"encoding/json"
)

// Keys persisted per device. These mirror what the web storefront keeps in
// the browser's local storage, so a device that moves between clients sees
// the same cart, wishlist and session.
const (
	KeyToken         = "token"
	KeyUser          = "user"
	KeyCartItems     = "cartItems"
	KeyWishlistItems = "wishlistItems"
	KeyCartDiscount  = "cartDiscount"
)

// Repo is a device-scoped key/value store.
type Repo interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, deviceID, key string) (string, bool, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID, key string) error
}

// GetJSON unmarshals a stored value into v. A missing value or one that no
// longer parses both report absence; corrupt data never propagates as an
// error to the caller.
func GetJSON(ctx context.Context, repo Repo, deviceID, key string, v any) (bool, error) {
	raw, ok, err := repo.Get(ctx, deviceID, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

func SetJSON(ctx context.Context, repo Repo, deviceID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return repo.Set(ctx, deviceID, key, string(raw))
}
