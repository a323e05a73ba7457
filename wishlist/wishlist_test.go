package wishlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/storage/memstore"
	"github.com/amodkhurasiya/tribal-crafts-server/wishlist"
)

func TestToggle(t *testing.T) {
	svc := wishlist.NewService(memstore.New())
	ctx := context.Background()
	item := wishlist.Item{ID: "p1", Name: "Tribal Pot", Price: 850}

	added, items, err := svc.Toggle(ctx, "d1", item)
	require.NoError(t, err)
	require.True(t, added)
	require.Len(t, items, 1)

	added, items, err = svc.Toggle(ctx, "d1", item)
	require.NoError(t, err)
	require.False(t, added)
	require.Empty(t, items)
}

func TestItemsEmptyByDefault(t *testing.T) {
	svc := wishlist.NewService(memstore.New())

	items, err := svc.Items(context.Background(), "d1")
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestClear(t *testing.T) {
	svc := wishlist.NewService(memstore.New())
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "d1", wishlist.Item{ID: "p1"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "d1"))

	items, err := svc.Items(ctx, "d1")
	require.NoError(t, err)
	require.Empty(t, items)
}
