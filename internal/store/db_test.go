package store

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), slog.Default(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	t.Run("InsertAndFindOne", func(t *testing.T) {
		t.Parallel()

		id, err := store.InsertOne(t.Context(), "products", Document{
			"name":  "flour",
			"price": 42.5,
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := store.FindOne(t.Context(), "products", Filter{"name": "flour"})
		require.NoError(t, err)
		assert.Equal(t, id, doc[IDField])
		assert.Equal(t, "flour", doc["name"])
		assert.InEpsilon(t, 42.5, doc["price"], 1e-9)

		_, err = store.FindOne(t.Context(), "products", Filter{"name": "no such thing"})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.FindOne(t.Context(), "empty_collection", Filter{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FindMany", func(t *testing.T) {
		t.Parallel()

		docs, err := store.FindMany(t.Context(), "orders", Filter{})
		require.NoError(t, err)
		assert.Empty(t, docs)

		id1, err := store.InsertOne(t.Context(), "orders", Document{"email": "a@b.com", "total": 10})
		require.NoError(t, err)
		id2, err := store.InsertOne(t.Context(), "orders", Document{"email": "a@b.com", "total": 20})
		require.NoError(t, err)
		_, err = store.InsertOne(t.Context(), "orders", Document{"email": "c@d.com", "total": 30})
		require.NoError(t, err)

		docs, err = store.FindMany(t.Context(), "orders", Filter{"email": "a@b.com"})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		// insertion order
		assert.Equal(t, id1, docs[0][IDField])
		assert.Equal(t, id2, docs[1][IDField])
	})

	t.Run("UpdateOne", func(t *testing.T) {
		t.Parallel()

		id, err := store.InsertOne(t.Context(), "dairy", Document{"name": "milk", "stock": 3})
		require.NoError(t, err)

		err = store.UpdateOne(t.Context(), "dairy", Filter{IDField: id}, Document{"stock": 5})
		require.NoError(t, err)

		doc, err := store.FindOne(t.Context(), "dairy", Filter{IDField: id})
		require.NoError(t, err)
		assert.Equal(t, "milk", doc["name"])
		assert.InEpsilon(t, float64(5), doc["stock"], 1e-9)

		// updating a missing document is a no-op
		err = store.UpdateOne(t.Context(), "dairy", Filter{IDField: "missing"}, Document{"stock": 9})
		require.NoError(t, err)
	})

	t.Run("DeleteOne", func(t *testing.T) {
		t.Parallel()

		id, err := store.InsertOne(t.Context(), "snacks", Document{"name": "chips"})
		require.NoError(t, err)

		err = store.DeleteOne(t.Context(), "snacks", Filter{IDField: id})
		require.NoError(t, err)

		_, err = store.FindOne(t.Context(), "snacks", Filter{IDField: id})
		require.ErrorIs(t, err, ErrNotFound)

		// deleting again is a no-op
		err = store.DeleteOne(t.Context(), "snacks", Filter{IDField: id})
		require.NoError(t, err)
	})

	t.Run("DeleteOneOnlyFirstMatch", func(t *testing.T) {
		t.Parallel()

		_, err := store.InsertOne(t.Context(), "cereals", Document{"name": "oats"})
		require.NoError(t, err)
		_, err = store.InsertOne(t.Context(), "cereals", Document{"name": "oats"})
		require.NoError(t, err)

		err = store.DeleteOne(t.Context(), "cereals", Filter{"name": "oats"})
		require.NoError(t, err)

		docs, err := store.FindMany(t.Context(), "cereals", Filter{"name": "oats"})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("UniqueUserEmail", func(t *testing.T) {
		t.Parallel()

		_, err := store.InsertOne(t.Context(), "users", Document{"email": "unique@test.com"})
		require.NoError(t, err)

		_, err = store.InsertOne(t.Context(), "users", Document{"email": "unique@test.com"})
		require.ErrorIs(t, err, ErrAlreadyExists)

		// uniqueness only applies to the users collection
		_, err = store.InsertOne(t.Context(), "banking_details", Document{"email": "unique@test.com"})
		require.NoError(t, err)
		_, err = store.InsertOne(t.Context(), "banking_details", Document{"email": "unique@test.com"})
		require.NoError(t, err)
	})
}
