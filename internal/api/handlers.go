package api

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/youruser/tcgbuilder/internal/cards"
	"github.com/youruser/tcgbuilder/internal/deck"
	imagepkg "github.com/youruser/tcgbuilder/internal/image"
)

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": s.gameIDs})
}

func (s *Server) cardsHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	list := g.Catalog.Cards
	if c.Query("dedup") == "1" {
		list = cards.DedupForDisplay(list)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "cards": list})
}

func (s *Server) settingsHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.Settings)
}

func (s *Server) filterHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	var req struct {
		Query   string            `json:"query"`
		Filters map[string]string `json:"filters"`
		Dedup   bool              `json:"dedup"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Search(g.Catalog, req.Query, req.Filters, cards.SearchOptions{
		Prefixes:  g.Settings.SearchPrefixes,
		Delimiter: g.Settings.FilterDelimiter,
	})
	if req.Dedup {
		out = cards.DedupForDisplay(out)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// deckRequest is the common deck payload of the grouping, validation, share
// and export endpoints.
type deckRequest struct {
	Name      string            `json:"name"`
	Deck      deck.Deck         `json:"deck"`
	GroupBy   string            `json:"groupBy"`
	Overrides map[string]string `json:"overrides"`
	QR        bool              `json:"qr"`
}

func bindDeck(c *gin.Context) (deckRequest, bool) {
	var req deckRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.Deck == nil {
		req.Deck = deck.New()
	}
	// entries at zero or below are absent by definition
	for id, qty := range req.Deck {
		if qty <= 0 {
			delete(req.Deck, id)
		}
	}
	return req, true
}

type groupEntry struct {
	Card *cards.Card `json:"card"`
	Qty  int         `json:"qty"`
}

type groupView struct {
	Name  string       `json:"name"`
	Total int          `json:"total"`
	Cards []groupEntry `json:"cards"`
}

func (s *Server) groupHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	cfg := g.Settings.GroupConfig(req.GroupBy, req.Overrides)
	groups := deck.GroupDeck(req.Deck, g.Catalog, cfg)
	out := make([]groupView, 0, len(groups))
	for _, grp := range groups {
		view := groupView{Name: grp.Name, Total: grp.Total}
		for _, e := range grp.Entries {
			view.Cards = append(view.Cards, groupEntry{Card: e.Card, Qty: e.Qty})
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, gin.H{"groups": out, "total": req.Deck.Total()})
}

func (s *Server) validateHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	violations := deck.Validate(req.Deck, g.Catalog, g.Settings.Rules())
	if violations == nil {
		violations = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(violations) == 0, "violations": violations})
}

func (s *Server) shareHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	cfg := g.Settings.GroupConfig(req.GroupBy, req.Overrides)
	query := deck.ShareQuery(g.ID, req.Deck, req.Overrides, g.Catalog, &cfg)
	c.JSON(http.StatusOK, gin.H{
		"deck":     query.Get("deck"),
		"sections": query.Get("sections"),
		"url":      s.baseURL + "/?" + query.Encode(),
	})
}

func (s *Server) decodeHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	d := deck.Decode(c.Query("deck"), g.Catalog)
	overrides := deck.DecodeOverrides(c.Query("sections"), g.Catalog)
	c.JSON(http.StatusOK, gin.H{"deck": d, "overrides": overrides, "total": d.Total()})
}

func (s *Server) importHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, d, overrides, err := deck.ImportJSON(body, g.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "deck": d, "overrides": overrides, "total": d.Total()})
}

func (s *Server) exportTextHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	if !g.Settings.Exports.Text {
		c.JSON(http.StatusNotFound, gin.H{"error": "text export disabled for this game"})
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	cfg := g.Settings.GroupConfig(req.GroupBy, req.Overrides)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(deck.ExportText(req.Name, req.Deck, g.Catalog, cfg)))
}

func (s *Server) exportJSONHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	if !g.Settings.Exports.JSON {
		c.JSON(http.StatusNotFound, gin.H{"error": "json export disabled for this game"})
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	cfg := g.Settings.GroupConfig(req.GroupBy, req.Overrides)
	out, err := deck.ExportJSON(req.Name, g.ID, req.Deck, g.Catalog, cfg, req.Overrides)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}

func (s *Server) exportOCTGNHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	if !g.Settings.Exports.OCTGN || len(g.Settings.Sections) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "octgn export disabled for this game"})
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	cfg := g.Settings.GroupConfig(deck.GroupByOCTGN, req.Overrides)
	out, err := deck.ExportOCTGN(g.ID, req.Deck, g.Catalog, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/xml", out)
}

// deckImageHandler renders the deck sheet PNG. Art that fails to load is
// skipped so one broken image never sinks the whole export.
func (s *Server) deckImageHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	if !g.Settings.Exports.Image {
		c.JSON(http.StatusNotFound, gin.H{"error": "image export disabled for this game"})
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}

	cfg := g.Settings.GroupConfig(req.GroupBy, req.Overrides)
	snapshot := req.Deck.Clone()

	var sheet []imagepkg.SheetCard
	for _, e := range deck.ExportList(snapshot, g.Catalog, cfg) {
		img, err := imagepkg.LoadCardArt(s.gamesDir, g.ID, e.Card.Image)
		if err != nil {
			log.Warnf("card art for %s: %v", e.Card.ID, err)
			continue
		}
		sheet = append(sheet, imagepkg.SheetCard{
			Img:        img,
			Qty:        e.Qty,
			Horizontal: e.Card.Orientation == cards.OrientationHorizontal,
		})
	}

	var qr image.Image
	if req.QR {
		query := deck.ShareQuery(g.ID, snapshot, req.Overrides, g.Catalog, &cfg)
		img, err := imagepkg.GenerateQRImage(s.baseURL+"/?"+query.Encode(), 400)
		if err != nil {
			log.Warnf("share qr: %v", err)
		} else {
			qr = img
		}
	}

	out := imagepkg.ComposeSheet(sheet, qr)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) decksListHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	decks, err := s.store.List(g.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if decks == nil {
		decks = []deck.SavedDeck{}
	}
	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

func (s *Server) deckSaveHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	req, ok := bindDeck(c)
	if !ok {
		return
	}
	saved, err := s.store.Save(g.ID, deck.SavedDeck{
		Name:      req.Name,
		Deck:      req.Deck,
		Overrides: req.Overrides,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deckGetHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	saved, found, err := s.store.Get(g.ID, c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "deck not found"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deckDeleteHandler(c *gin.Context) {
	g, ok := s.game(c)
	if !ok {
		return
	}
	if err := s.store.Delete(g.ID, c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
