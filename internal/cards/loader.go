package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadCatalog reads a cards.json file into a catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	var list []Card
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewCatalog(list), nil
}

// LoadGameCatalog loads games/<game>/cards.json.
func LoadGameCatalog(gamesDir, game string) (*Catalog, error) {
	return LoadCatalog(filepath.Join(gamesDir, game, "cards.json"))
}

// ListGames returns the game ids under a games directory. A manifest.json
// with a games array wins when present; otherwise any subdirectory carrying a
// cards.json counts.
func ListGames(gamesDir string) ([]string, error) {
	manifest := filepath.Join(gamesDir, "manifest.json")
	if data, err := os.ReadFile(manifest); err == nil {
		var m struct {
			Games []string `json:"games"`
		}
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", manifest, err)
		}
		return m.Games, nil
	}

	entries, err := os.ReadDir(gamesDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", gamesDir, err)
	}
	var games []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(gamesDir, e.Name(), "cards.json")); err != nil {
			continue
		}
		games = append(games, e.Name())
	}
	sort.Strings(games)
	return games, nil
}
