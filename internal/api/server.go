package api

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/youruser/tcgbuilder/internal/cards"
	"github.com/youruser/tcgbuilder/internal/deck"
	"github.com/youruser/tcgbuilder/internal/settings"
)

// Game is one loaded game bundle: immutable catalog plus settings. Bundles
// are built once at startup and only ever read by handlers.
type Game struct {
	ID       string
	Catalog  *cards.Catalog
	Settings *settings.Settings
}

// Server owns the loaded game registry and the saved-deck store.
type Server struct {
	games    map[string]*Game
	gameIDs  []string
	store    *deck.Store
	gamesDir string
	baseURL  string
}

// NewServer loads every game under gamesDir. A game that fails to load is
// skipped with a warning; an unreadable games directory is fatal.
func NewServer(gamesDir, dataDir, baseURL string) (*Server, error) {
	ids, err := cards.ListGames(gamesDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		games:    map[string]*Game{},
		store:    deck.NewStore(dataDir),
		gamesDir: gamesDir,
		baseURL:  baseURL,
	}
	for _, id := range ids {
		catalog, err := cards.LoadGameCatalog(gamesDir, id)
		if err != nil {
			log.Warnf("skipping game %s: %v", id, err)
			continue
		}
		cfg, err := settings.Load(filepath.Join(gamesDir, id, "settings.json"))
		if err != nil {
			log.Warnf("skipping game %s: %v", id, err)
			continue
		}
		s.games[id] = &Game{ID: id, Catalog: catalog, Settings: cfg}
		s.gameIDs = append(s.gameIDs, id)
		log.Infof("loaded game %s (%d cards)", id, catalog.Len())
	}
	if len(s.gameIDs) == 0 {
		return nil, fmt.Errorf("no loadable games in %s", gamesDir)
	}
	return s, nil
}

// game resolves the :game route parameter, answering 404 itself on a miss.
func (s *Server) game(c *gin.Context) (*Game, bool) {
	g, ok := s.games[c.Param("game")]
	if !ok {
		c.JSON(404, gin.H{"error": "unknown game"})
		return nil, false
	}
	return g, true
}
