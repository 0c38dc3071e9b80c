package deck

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/youruser/tcgbuilder/internal/cards"
)

// ExportText renders the deck as a grouped, quantity-annotated listing in the
// canonical grouping order.
func ExportText(name string, d Deck, cat *cards.Catalog, cfg GroupConfig) string {
	var lines []string
	if name != "" {
		lines = append(lines, "Deck: "+name, "")
	}
	groups := GroupDeck(d, cat, cfg)
	for i, g := range groups {
		lines = append(lines, fmt.Sprintf("%s (%d)", g.Name, g.Total))
		for _, e := range g.Entries {
			lines = append(lines, strconv.Itoa(e.Qty)+"x "+e.Card.DisplayName(cfg.IncludeSubtitle))
		}
		if i < len(groups)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// DeckFile is the JSON deck document written by ExportJSON and read back by
// ImportJSON.
type DeckFile struct {
	Name      string            `json:"name"`
	Game      string            `json:"game"`
	Deck      []json.RawMessage `json:"deck"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// ExportJSON renders the deck as a flat list of card records with quantities,
// in the canonical grouping order.
func ExportJSON(name, game string, d Deck, cat *cards.Catalog, cfg GroupConfig, overrides map[string]string) ([]byte, error) {
	file := DeckFile{Name: name, Game: game, Overrides: overrides}
	for _, e := range ExportList(d, cat, cfg) {
		entry, err := cardWithQty(e.Card, e.Qty)
		if err != nil {
			return nil, err
		}
		file.Deck = append(file.Deck, entry)
	}
	return json.MarshalIndent(file, "", "  ")
}

func cardWithQty(c *cards.Card, qty int) (json.RawMessage, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["qty"] = qty
	return json.Marshal(m)
}

// ImportJSON parses a deck file exported by ExportJSON. The returned deck is
// freshly built; on any error nothing usable is returned, so the caller's
// current deck stays untouched.
func ImportJSON(data []byte, game string) (string, Deck, map[string]string, error) {
	var file DeckFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", nil, nil, fmt.Errorf("invalid deck file: %w", err)
	}
	if file.Game == "" || file.Deck == nil {
		return "", nil, nil, fmt.Errorf("invalid deck file: missing game or deck")
	}
	if file.Game != game {
		return "", nil, nil, fmt.Errorf("deck is for game %q", file.Game)
	}
	d := New()
	for _, raw := range file.Deck {
		var entry struct {
			ID  string `json:"id"`
			Qty int    `json:"qty"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return "", nil, nil, fmt.Errorf("invalid deck entry: %w", err)
		}
		if entry.ID == "" || entry.Qty <= 0 {
			continue
		}
		d.Add(entry.ID, entry.Qty)
	}
	return file.Name, d, file.Overrides, nil
}

type octgnCard struct {
	Qty  int    `xml:"qty,attr"`
	ID   string `xml:"id,attr"`
	Name string `xml:",chardata"`
}

type octgnSection struct {
	Name   string      `xml:"name,attr"`
	Shared bool        `xml:"shared,attr"`
	Cards  []octgnCard `xml:"card"`
}

type octgnDeck struct {
	XMLName  xml.Name       `xml:"deck"`
	Game     string         `xml:"game,attr"`
	Sections []octgnSection `xml:"section"`
}

// ExportOCTGN renders the deck as an OCTGN .o8d document. Sections mirror the
// section-mode grouping exactly: every declared (non-ignored) section appears,
// empty or not, and Ungrouped trails only when it has cards.
func ExportOCTGN(game string, d Deck, cat *cards.Catalog, cfg GroupConfig) ([]byte, error) {
	cfg.GroupBy = GroupByOCTGN
	grouped := map[string]Group{}
	for _, g := range GroupDeck(d, cat, cfg) {
		grouped[g.Name] = g
	}

	doc := octgnDeck{Game: game}
	for i := range cfg.Sections {
		sec := &cfg.Sections[i]
		if cfg.ignored(sec.Name) {
			continue
		}
		out := octgnSection{Name: sec.Name, Shared: sec.Shared}
		for _, e := range grouped[sec.Name].Entries {
			out.Cards = append(out.Cards, octgnCard{Qty: e.Qty, ID: e.Card.ID, Name: e.Card.DisplayName(cfg.IncludeSubtitle)})
		}
		doc.Sections = append(doc.Sections, out)
	}
	if g, ok := grouped[GroupUngrouped]; ok {
		out := octgnSection{Name: GroupUngrouped}
		for _, e := range g.Entries {
			out.Cards = append(out.Cards, octgnCard{Qty: e.Qty, ID: e.Card.ID, Name: e.Card.DisplayName(cfg.IncludeSubtitle)})
		}
		doc.Sections = append(doc.Sections, out)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
