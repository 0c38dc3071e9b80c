// Package settings holds the per-game configuration: grouping options, sort
// rules, validation rules, search prefixes and export toggles. The loose
// validation JSON is compiled once at load time into the typed rule variants
// the deck engine evaluates.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/youruser/tcgbuilder/internal/deck"
)

// PropertyLimit is the raw JSON shape of one attribute-count rule. Either
// property+value (single pair) or properties (conjunction) must be present,
// along with at least one bound; anything else is dropped at compile time.
type PropertyLimit struct {
	Property     string            `json:"property"`
	Value        string            `json:"value"`
	Properties   map[string]string `json:"properties"`
	Min          *int              `json:"min"`
	Max          *int              `json:"max"`
	Message      string            `json:"message"`
	HideProperty bool              `json:"hideProperty"`
}

// Validation is the deckValidation block of a game's settings file.
type Validation struct {
	MinCards        int             `json:"minCards"`
	MaxCards        int             `json:"maxCards"`
	UsePerCardLimit bool            `json:"usePerCardLimit"`
	LimitProperty   string          `json:"limitProperty"`
	PropertyLimits  []PropertyLimit `json:"propertyLimits"`
	BanList         []string        `json:"banList"`
}

// Exports toggles the optional export formats.
type Exports struct {
	Text  bool `json:"text"`
	JSON  bool `json:"json"`
	Image bool `json:"image"`
	OCTGN bool `json:"octgn"`
}

// Settings is one game's configuration.
type Settings struct {
	GameName         string                    `json:"gameName"`
	GroupOptions     []string                  `json:"groupOptions"`
	GroupOrder       []string                  `json:"groupOrder"`
	GroupSort        map[string]*deck.SortSpec `json:"groupSort"`
	FilterOptions    []string                  `json:"filterOptions"`
	FilterDelimiter  string                    `json:"filterDelimiter"`
	SearchPrefixes   map[string]string         `json:"searchPrefixes"`
	AddNValue        int                       `json:"addNValue"`
	MaxCopiesPerCard int                       `json:"maxCopiesPerCard"`
	DeckValidation   Validation                `json:"deckValidation"`
	Sections         []deck.Section            `json:"sections"`
	IgnoreSections   []string                  `json:"ignoreSections"`
	IncludeSubtitle  bool                      `json:"includeSubtitle"`
	Exports          *Exports                  `json:"exports"`
}

// Parse decodes a settings document and applies defaults.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if s.AddNValue <= 0 {
		s.AddNValue = 4
	}
	if s.Exports == nil {
		s.Exports = &Exports{Text: true, JSON: true, Image: true, OCTGN: len(s.Sections) > 0}
	}
	return &s, nil
}

// Load reads and parses a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return Parse(data)
}

// Rules compiles the validation config into the typed rule set. Malformed
// property limits are skipped with a warning, never an error.
func (s *Settings) Rules() deck.Rules {
	r := deck.Rules{
		MinCards:     s.DeckValidation.MinCards,
		MaxCards:     s.DeckValidation.MaxCards,
		MaxCopies:    s.MaxCopiesPerCard,
		PerCardLimit: s.DeckValidation.UsePerCardLimit,
		LimitAttr:    s.DeckValidation.LimitProperty,
		Banned:       s.DeckValidation.BanList,
	}
	for i, pl := range s.DeckValidation.PropertyLimits {
		props := pl.Properties
		if len(props) == 0 && pl.Property != "" {
			props = map[string]string{pl.Property: pl.Value}
		}
		if len(props) == 0 || (pl.Min == nil && pl.Max == nil) {
			log.Warnf("settings for %s: propertyLimits[%d] is malformed, skipping", s.GameName, i)
			continue
		}
		r.Bounds = append(r.Bounds, deck.AttributeBound{
			Props:        props,
			Min:          pl.Min,
			Max:          pl.Max,
			Message:      pl.Message,
			HideProperty: pl.HideProperty,
		})
	}
	return r
}

// GroupConfig builds the grouping config for one pass. An empty groupBy falls
// back to the first configured grouping option.
func (s *Settings) GroupConfig(groupBy string, overrides map[string]string) deck.GroupConfig {
	if groupBy == "" {
		if len(s.GroupOptions) > 0 {
			groupBy = s.GroupOptions[0]
		} else {
			groupBy = "Type"
		}
	}
	return deck.GroupConfig{
		GroupBy:         groupBy,
		Order:           s.GroupOrder,
		Sorts:           s.GroupSort,
		Sections:        s.Sections,
		IgnoreSections:  s.IgnoreSections,
		Overrides:       overrides,
		IncludeSubtitle: s.IncludeSubtitle,
	}
}
