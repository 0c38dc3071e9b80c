package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/youruser/tcgbuilder/internal/util"
)

// SavedDeck is one named deck record with its section overrides.
type SavedDeck struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Deck      Deck              `json:"deck"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Store keeps saved decks as one JSON file per game under a data directory,
// the server-side stand-in for the browser's per-game deck list.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(game string) string {
	return filepath.Join(s.dir, game+"-decks.json")
}

// List returns all saved decks for the game. A missing file is an empty list.
func (s *Store) List(game string) ([]SavedDeck, error) {
	data, err := os.ReadFile(s.path(game))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var decks []SavedDeck
	if err := json.Unmarshal(data, &decks); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path(game), err)
	}
	return decks, nil
}

// Save stores the deck under its name, last write wins on a name collision.
// A record without an id gets one.
func (s *Store) Save(game string, d SavedDeck) (SavedDeck, error) {
	if d.Name == "" {
		return SavedDeck{}, fmt.Errorf("deck name is required")
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	decks, err := s.List(game)
	if err != nil {
		return SavedDeck{}, err
	}
	replaced := false
	for i := range decks {
		if decks[i].Name == d.Name {
			d.ID = decks[i].ID
			decks[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		decks = append(decks, d)
	}
	return d, s.write(game, decks)
}

// Get finds a saved deck by id or name.
func (s *Store) Get(game, key string) (SavedDeck, bool, error) {
	decks, err := s.List(game)
	if err != nil {
		return SavedDeck{}, false, err
	}
	for _, d := range decks {
		if d.ID == key || d.Name == key {
			return d, true, nil
		}
	}
	return SavedDeck{}, false, nil
}

// Delete removes a saved deck by id or name. Deleting a missing deck is a
// no-op.
func (s *Store) Delete(game, key string) error {
	decks, err := s.List(game)
	if err != nil {
		return err
	}
	kept := decks[:0]
	for _, d := range decks {
		if d.ID != key && d.Name != key {
			kept = append(kept, d)
		}
	}
	return s.write(game, kept)
}

func (s *Store) write(game string, decks []SavedDeck) error {
	if err := util.EnsureDir(s.dir); err != nil {
		return err
	}
	data, err := json.MarshalIndent(decks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(game), data, 0o644)
}
