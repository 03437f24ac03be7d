package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

func TestStore_Ping(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		assert.NoError(t, store.Ping(context.Background()))
	})
}

func TestStore_WriteAndReadCollection(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		ctx := context.Background()

		records := []tourism.Record{
			{ID: "b", Fields: map[string]any{"name": "Second by id, first by position", "rating": 4.5}},
			{ID: "a", Fields: map[string]any{"name": "Kawasan Falls", "coordinates": map[string]any{"lat": 9.8, "lng": 123.37}}},
			{ID: "c"},
		}
		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionAttractions, records))

		got, err := store.ReadCollection(ctx, tourism.CollectionAttractions)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
		assert.Equal(t, 4.5, got[0].Fields["rating"])
		assert.Equal(t, map[string]any{"lat": 9.8, "lng": 123.37}, got[1].Fields["coordinates"])
		assert.Empty(t, got[2].Fields)
	})
}

func TestStore_WriteReplacesCollection(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		ctx := context.Background()

		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionBeaches, []tourism.Record{
			{ID: "old", Fields: map[string]any{"name": "Old"}},
		}))
		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionBeaches, []tourism.Record{
			{ID: "new", Fields: map[string]any{"name": "New"}},
		}))
		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionRestaurants, []tourism.Record{
			{ID: "r1", Fields: map[string]any{"name": "Lechon"}},
		}))

		got, err := store.ReadCollection(ctx, tourism.CollectionBeaches)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "new", got[0].ID)
	})
}

func TestStore_EmptyCollection(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		got, err := store.ReadCollection(context.Background(), tourism.CollectionDestinations)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_WriteRejectsMissingID(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		ctx := context.Background()
		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionBeaches, []tourism.Record{{ID: "keep"}}))

		err := store.WriteCollection(ctx, tourism.CollectionBeaches, []tourism.Record{{ID: "x"}, {}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no id")

		// the failed write rolled back
		got, err := store.ReadCollection(ctx, tourism.CollectionBeaches)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "keep", got[0].ID)
	})
}

func TestStore_DuplicateID(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		err := store.WriteCollection(context.Background(), tourism.CollectionBeaches, []tourism.Record{{ID: "x"}, {ID: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate document id")
	})
}

func TestStore_ThroughGateway(t *testing.T) {
	runTest(t, func(t *testing.T, store *Store, db *testDB) {
		ctx := context.Background()
		records, err := tourism.ItemsToRecords(tourism.DefaultCatalog().Featured())
		require.NoError(t, err)
		require.NoError(t, store.WriteCollection(ctx, tourism.CollectionAttractions, records))

		gateway, err := tourism.NewGateway(tourism.WithStore(store))
		require.NoError(t, err)

		env := gateway.FetchCollection(ctx, tourism.CollectionAttractions)
		require.True(t, env.Success)
		assert.Equal(t, tourism.DefaultCatalog().Featured(), env.Data)
	})
}
