package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	saved, err := s.Save("mygame", SavedDeck{
		Name:      "Aggro",
		Deck:      Deck{"card-17": 4},
		Overrides: map[string]string{"card-17": "Heroes"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, found, err := s.Get("mygame", saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, got)

	byName, found, err := s.Get("mygame", "Aggro")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, byName)
}

func TestStoreLastWriteWinsOnName(t *testing.T) {
	s := NewStore(t.TempDir())

	first, err := s.Save("mygame", SavedDeck{Name: "Aggro", Deck: Deck{"a": 1}})
	require.NoError(t, err)
	second, err := s.Save("mygame", SavedDeck{Name: "Aggro", Deck: Deck{"b": 2}})
	require.NoError(t, err)

	// the record keeps its identity across overwrites
	assert.Equal(t, first.ID, second.ID)

	decks, err := s.List("mygame")
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, Deck{"b": 2}, decks[0].Deck)
}

func TestStoreRequiresName(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save("mygame", SavedDeck{Deck: Deck{"a": 1}})
	assert.Error(t, err)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(t.TempDir())
	saved, err := s.Save("mygame", SavedDeck{Name: "Aggro", Deck: Deck{"a": 1}})
	require.NoError(t, err)

	require.NoError(t, s.Delete("mygame", saved.ID))
	decks, err := s.List("mygame")
	require.NoError(t, err)
	assert.Empty(t, decks)

	// deleting something missing is fine
	assert.NoError(t, s.Delete("mygame", "nope"))
}

func TestStoreGamesAreSeparate(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save("alpha", SavedDeck{Name: "A", Deck: Deck{"a": 1}})
	require.NoError(t, err)

	decks, err := s.List("beta")
	require.NoError(t, err)
	assert.Empty(t, decks)
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	decks, err := s.List("mygame")
	require.NoError(t, err)
	assert.Nil(t, decks)
}
