package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return newTestStore(t)
	})
}

func TestOpen_Pragmas(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	var journalMode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var fk int
	require.NoError(t, s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	for _, table := range []string{"recipes", "recipe_ingredients", "grocery_lists", "grocery_list_items"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	first := storetest.NewRecipe("First")
	require.NoError(t, s.CreateRecipe(ctx, first))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetRecipe(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	require.Len(t, got.Ingredients, 1)
}

func TestDeleteGroceryList_CascadesItems(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `INSERT INTO grocery_lists (id, name, recipe_ids, created_at, updated_at)
		VALUES ('gl-1', 'Weekly', '[]', ?, ?)`, now, now)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO grocery_list_items (list_id, position, id, name, recipe_ids)
		VALUES ('gl-1', 0, 'item-1', 'Milk', '[]')`)
	require.NoError(t, err)

	require.NoError(t, s.DeleteGroceryList(ctx, "gl-1"))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM grocery_list_items").Scan(&n))
	assert.Zero(t, n)
}

func TestDSN_ImmediateTransactions(t *testing.T) {
	got := dsn("/tmp/grocery.db")
	assert.Contains(t, got, "_txlock=immediate")
	assert.Contains(t, got, "_pragma=foreign_keys%281%29")
}
