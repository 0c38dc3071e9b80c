package cards

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Card orientation values. Orientation only affects rendering dimensions.
const (
	OrientationNormal     = "normal"
	OrientationHorizontal = "horizontal"
)

// Card is one catalog record. The well-known fields are pulled out of the
// game's JSON; every other key lands in the Attrs bag and is reached through
// Attr and friends by configuration-driven rules.
type Card struct {
	ID          string
	Index       int
	Name        string
	Subtitle    string
	Orientation string
	Image       string
	Attrs       map[string]any
}

var coreKeys = map[string]bool{
	"id":          true,
	"index":       true,
	"name":        true,
	"subtitle":    true,
	"Subtitle":    true,
	"orientation": true,
	"image":       true,
}

func (c *Card) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = asString(raw["id"])
	c.Name = asString(raw["name"])
	if n, ok := raw["index"].(float64); ok {
		c.Index = int(n)
	}
	c.Subtitle = asString(raw["subtitle"])
	if c.Subtitle == "" {
		// games in the wild capitalize this one
		c.Subtitle = asString(raw["Subtitle"])
	}
	c.Orientation = asString(raw["orientation"])
	c.Image = asString(raw["image"])
	c.Attrs = map[string]any{}
	for k, v := range raw {
		if !coreKeys[k] {
			c.Attrs[k] = v
		}
	}
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":    c.ID,
		"index": c.Index,
		"name":  c.Name,
	}
	if c.Subtitle != "" {
		out["subtitle"] = c.Subtitle
	}
	if c.Orientation != "" {
		out["orientation"] = c.Orientation
	}
	if c.Image != "" {
		out["image"] = c.Image
	}
	for k, v := range c.Attrs {
		out[k] = v
	}
	return json.Marshal(out)
}

// Attr returns the named attribute. Core fields are reachable by name too, so
// rules configured against "name" or "subtitle" keep working.
func (c *Card) Attr(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "index":
		return c.Index, true
	case "name":
		return c.Name, true
	case "subtitle", "Subtitle":
		if c.Subtitle == "" {
			return nil, false
		}
		return c.Subtitle, true
	case "image":
		if c.Image == "" {
			return nil, false
		}
		return c.Image, true
	}
	v, ok := c.Attrs[name]
	return v, ok
}

// AttrString returns the attribute rendered as a string, "" when absent.
func (c *Card) AttrString(name string) string {
	v, ok := c.Attr(name)
	if !ok {
		return ""
	}
	return asString(v)
}

// AttrNumber parses the attribute as a number.
func (c *Card) AttrNumber(name string) (float64, bool) {
	v, ok := c.Attr(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AttrValues returns the attribute as a list of strings: array-valued
// attributes yield one entry per element, scalars a single entry.
func (c *Card) AttrValues(name string) []string {
	v, ok := c.Attr(name)
	if !ok || v == nil {
		return nil
	}
	if arr, ok := v.([]any); ok {
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			out = append(out, asString(e))
		}
		return out
	}
	return []string{asString(v)}
}

// AttrBlank reports whether the attribute is absent, null, or all-whitespace.
func (c *Card) AttrBlank(name string) bool {
	v, ok := c.Attr(name)
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// DisplayName is the card's list/export name, optionally suffixed with the
// subtitle to tell alternate printings apart.
func (c *Card) DisplayName(withSubtitle bool) string {
	if withSubtitle && c.Subtitle != "" {
		return c.Name + " - " + c.Subtitle
	}
	return c.Name
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case []any:
		parts := make([]string, 0, len(s))
		for _, e := range s {
			parts = append(parts, asString(e))
		}
		return strings.Join(parts, ", ")
	default:
		b, _ := json.Marshal(s)
		return string(b)
	}
}

// Catalog is the read-only card set for one game.
type Catalog struct {
	Cards   []Card
	byID    map[string]*Card
	byIndex map[int]*Card
}

func NewCatalog(list []Card) *Catalog {
	c := &Catalog{
		Cards:   list,
		byID:    make(map[string]*Card, len(list)),
		byIndex: make(map[int]*Card, len(list)),
	}
	for i := range c.Cards {
		card := &c.Cards[i]
		c.byID[card.ID] = card
		c.byIndex[card.Index] = card
	}
	return c
}

func (c *Catalog) ByID(id string) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

func (c *Catalog) ByIndex(idx int) (*Card, bool) {
	card, ok := c.byIndex[idx]
	return card, ok
}

func (c *Catalog) Len() int { return len(c.Cards) }
