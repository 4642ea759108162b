package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecentSearchesNewestFirstAndDeduped(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.RememberSearch("products", "boots"))
	require.NoError(t, s.RememberSearch("products", "hats"))
	require.NoError(t, s.RememberSearch("products", "boots")) // bump

	got, err := s.RecentSearches("products")
	require.NoError(t, err)
	assert.Equal(t, []string{"boots", "hats"}, got)
}

func TestRecentSearchesTrimmedPerScope(t *testing.T) {
	s := testStore(t)

	for i := 0; i < MaxRecentSearches+5; i++ {
		require.NoError(t, s.RememberSearch("orders", string(rune('a'+i))))
	}
	require.NoError(t, s.RememberSearch("products", "kept"))

	got, err := s.RecentSearches("orders")
	require.NoError(t, err)
	assert.Len(t, got, MaxRecentSearches)

	other, err := s.RecentSearches("products")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, other, "trimming is scoped")
}

func TestEmptySearchIgnored(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.RememberSearch("products", ""))
	got, err := s.RecentSearches("products")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPinUnpin(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Pin("categories", 7, "Shoes"))
	require.NoError(t, s.Pin("categories", 7, "Shoes (renamed)"))
	require.NoError(t, s.Pin("categories", 9, "Hats"))

	pins, err := s.PinnedIn("categories")
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, int64(9), pins[0].EntityID)

	var labels []string
	for _, p := range pins {
		labels = append(labels, p.Label)
	}
	assert.Contains(t, labels, "Shoes (renamed)", "re-pin refreshes the label")

	require.NoError(t, s.Unpin("categories", 7))
	require.NoError(t, s.Unpin("categories", 7)) // no-op
	pins, err = s.PinnedIn("categories")
	require.NoError(t, err)
	assert.Len(t, pins, 1)
}

func TestJournalRecordsMutations(t *testing.T) {
	s := testStore(t)

	s.Journal("products", "create", 12, "Sneaker")
	s.Journal("categories", "delete", 3, "Old Hats")

	entries, err := s.RecentMutations(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}
