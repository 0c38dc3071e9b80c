package deck

import (
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/tcgbuilder/internal/cards"
)

// GroupByOCTGN is the groupBy sentinel that selects section-rule grouping.
const GroupByOCTGN = "OCTGN"

// Fallback group names.
const (
	GroupOther     = "Other"
	GroupUngrouped = "Ungrouped"
)

// Entry is one card of a group with its deck quantity.
type Entry struct {
	Card *cards.Card
	Qty  int
}

// Group is a named bucket of deck entries, rebuilt fresh on every pass.
type Group struct {
	Name    string
	Entries []Entry
	Total   int
}

// SortSpec orders the cards inside one group: compare the listed attributes in
// turn, honoring a custom value ordering per attribute when given.
type SortSpec struct {
	By    []string            `json:"by"`
	Order map[string][]string `json:"order"`
}

// Section is a rule-based group. A card matches when any declared criterion
// accepts any of the card's values for that attribute.
type Section struct {
	Name   string              `json:"name"`
	Shared bool                `json:"shared"`
	Match  map[string][]string `json:"match"`
}

func (s *Section) Matches(c *cards.Card) bool {
	for attr, accepted := range s.Match {
		for _, have := range c.AttrValues(attr) {
			for _, want := range accepted {
				if have == want {
					return true
				}
			}
		}
	}
	return false
}

// GroupConfig drives one grouping pass. The same config produces the same
// partition for the deck panel, text/JSON export, the deck sheet and OCTGN.
type GroupConfig struct {
	GroupBy         string
	Order           []string
	Sorts           map[string]*SortSpec
	Sections        []Section
	IgnoreSections  []string
	Overrides       map[string]string
	IncludeSubtitle bool
}

// GroupDeck partitions the deck into named, ordered, sorted groups. Deck keys
// missing from the catalog are dropped.
func GroupDeck(d Deck, cat *cards.Catalog, cfg GroupConfig) []Group {
	sectionMode := cfg.GroupBy == GroupByOCTGN && len(cfg.Sections) > 0

	buckets := map[string][]Entry{}
	for _, id := range sortedIDs(d) {
		card, ok := cat.ByID(id)
		if !ok {
			continue
		}
		var name string
		if sectionMode {
			name = cfg.sectionFor(card)
		} else {
			name = flatGroupName(card, cfg.GroupBy)
		}
		buckets[name] = append(buckets[name], Entry{Card: card, Qty: d[id]})
	}

	var names []string
	if sectionMode {
		names = cfg.sectionOrder(buckets)
	} else {
		names = orderedNames(buckets, cfg.Order)
	}

	out := make([]Group, 0, len(names))
	for _, name := range names {
		entries := buckets[name]
		sortEntries(entries, cfg.Sorts[name], cfg.IncludeSubtitle)
		total := 0
		for _, e := range entries {
			total += e.Qty
		}
		out = append(out, Group{Name: name, Entries: entries, Total: total})
	}
	return out
}

// ExportEntry is one line of the flattened canonical export order.
type ExportEntry struct {
	Card  *cards.Card
	Qty   int
	Group string
}

// ExportList flattens the grouped deck into the canonical export sequence.
func ExportList(d Deck, cat *cards.Catalog, cfg GroupConfig) []ExportEntry {
	var out []ExportEntry
	for _, g := range GroupDeck(d, cat, cfg) {
		for _, e := range g.Entries {
			out = append(out, ExportEntry{Card: e.Card, Qty: e.Qty, Group: g.Name})
		}
	}
	return out
}

func flatGroupName(c *cards.Card, attr string) string {
	v, ok := c.Attr(attr)
	if !ok || v == nil {
		return GroupOther
	}
	// mirror the loose falsy check of the original: empty string, zero and
	// false all fall through to Other
	switch t := v.(type) {
	case string:
		if t == "" {
			return GroupOther
		}
		return t
	case float64:
		if t == 0 {
			return GroupOther
		}
	case bool:
		if !t {
			return GroupOther
		}
	}
	return c.AttrString(attr)
}

func (cfg *GroupConfig) ignored(name string) bool {
	for _, ig := range cfg.IgnoreSections {
		if ig == name {
			return true
		}
	}
	return false
}

func (cfg *GroupConfig) declared(name string) bool {
	for i := range cfg.Sections {
		if cfg.Sections[i].Name == name {
			return true
		}
	}
	return false
}

func (cfg *GroupConfig) sectionFor(c *cards.Card) string {
	if name, ok := cfg.Overrides[c.ID]; ok {
		if cfg.declared(name) && !cfg.ignored(name) {
			return name
		}
	}
	for i := range cfg.Sections {
		sec := &cfg.Sections[i]
		if cfg.ignored(sec.Name) {
			continue
		}
		if sec.Matches(c) {
			return sec.Name
		}
	}
	return GroupUngrouped
}

func (cfg *GroupConfig) sectionOrder(buckets map[string][]Entry) []string {
	var names []string
	for i := range cfg.Sections {
		name := cfg.Sections[i].Name
		if _, ok := buckets[name]; ok {
			names = append(names, name)
		}
	}
	if _, ok := buckets[GroupUngrouped]; ok {
		names = append(names, GroupUngrouped)
	}
	return names
}

// orderedNames applies the configured order first, then appends the remaining
// group names lexicographically.
func orderedNames(buckets map[string][]Entry, order []string) []string {
	inOrder := map[string]bool{}
	var names []string
	for _, name := range order {
		inOrder[name] = true
		if _, ok := buckets[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range buckets {
		if !inOrder[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func sortEntries(entries []Entry, spec *SortSpec, withSubtitle bool) {
	if spec == nil || len(spec.By) == 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Card.DisplayName(withSubtitle) < entries[j].Card.DisplayName(withSubtitle)
		})
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compareBySpec(entries[i].Card, entries[j].Card, spec) < 0
	})
}

func compareBySpec(a, b *cards.Card, spec *SortSpec) int {
	for _, prop := range spec.By {
		av := a.AttrString(prop)
		bv := b.AttrString(prop)

		if order, ok := spec.Order[prop]; ok {
			ai := indexOf(order, av)
			bi := indexOf(order, bv)
			switch {
			case ai >= 0 && bi >= 0 && ai != bi:
				return ai - bi
			case ai >= 0 && bi < 0:
				return -1
			case bi >= 0 && ai < 0:
				return 1
			}
		}

		an, aerr := strconv.ParseFloat(av, 64)
		bn, berr := strconv.ParseFloat(bv, 64)
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func indexOf(list []string, v string) int {
	for i, e := range list {
		if e == v {
			return i
		}
	}
	return -1
}

// sortedIDs fixes the map walk order so grouping is deterministic.
func sortedIDs(d Deck) []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
