package cards

import (
	"regexp"
	"sort"
	"strings"
)

// NoneValue is the sentinel filter value that matches blank/missing
// attributes.
const NoneValue = "(none)"

// Criterion is one parsed search term: match Value against Property, or match
// blank/missing when Blank is set.
type Criterion struct {
	Property string
	Value    string
	Blank    bool
}

// SearchOptions carry the game's search configuration: the prefix-to-attribute
// map and the delimiter splitting list-valued attribute strings.
type SearchOptions struct {
	Prefixes  map[string]string
	Delimiter string
}

// ParseQuery splits a free-text query into criteria. A recognized prefix
// followed by a quoted string, a parenthesized string or a bare token targets
// the mapped attribute; everything else matches the card name. The values
// none and (none) select blank-match criteria. An empty query parses to no
// criteria at all.
func ParseQuery(query string, prefixes map[string]string) []Criterion {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var criteria []Criterion
	if len(prefixes) == 0 {
		for _, tok := range strings.Fields(query) {
			criteria = append(criteria, Criterion{Property: "name", Value: tok})
		}
		return criteria
	}

	// the token match is case-insensitive, so resolve prefixes that way too
	lower := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		lower[strings.ToLower(k)] = v
	}

	re := queryRegexp(prefixes)
	for _, m := range re.FindAllStringSubmatch(query, -1) {
		if m[1] != "" {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			if value == "" {
				value = m[4]
			}
			prop := lower[strings.ToLower(m[1])]
			low := strings.ToLower(strings.TrimSpace(value))
			if low == "none" || low == NoneValue {
				criteria = append(criteria, Criterion{Property: prop, Blank: true})
			} else {
				criteria = append(criteria, Criterion{Property: prop, Value: strings.TrimSpace(value)})
			}
		} else if m[5] != "" {
			criteria = append(criteria, Criterion{Property: "name", Value: strings.TrimSpace(m[5])})
		}
	}
	return criteria
}

// queryRegexp builds the token pattern: a prefix followed by "...", (...) or a
// bare word, else a plain word. Longer prefixes are tried first so one prefix
// being a prefix of another cannot shadow it.
func queryRegexp(prefixes map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	alt := strings.Join(quoted, "|")
	return regexp.MustCompile(`(?i)(?:\s*(` + alt + `)\s*(?:"([^"]+)"|\(([^)]+)\)|(\S+)))|(\S+)`)
}

// Search returns the catalog subset matching the query and the dropdown
// filter selections. All criteria are ANDed; an empty query and empty filters
// yield the full catalog.
func Search(cat *Catalog, query string, filters map[string]string, opts SearchOptions) []Card {
	criteria := ParseQuery(query, opts.Prefixes)

	var out []Card
	for i := range cat.Cards {
		card := &cat.Cards[i]
		if !matchesCriteria(card, criteria) {
			continue
		}
		if !matchesFilters(card, filters, opts.Delimiter) {
			continue
		}
		out = append(out, *card)
	}
	return out
}

func matchesCriteria(card *Card, criteria []Criterion) bool {
	for _, cr := range criteria {
		if cr.Blank {
			if !card.AttrBlank(cr.Property) {
				return false
			}
			continue
		}
		have := card.AttrString(cr.Property)
		if have == "" || !strings.Contains(strings.ToLower(have), strings.ToLower(cr.Value)) {
			return false
		}
	}
	return true
}

// matchesFilters applies exact-match dropdown selections. The (none) sentinel
// requires a blank/missing attribute; list-valued attributes match when any
// element (after delimiter splitting) equals the selection.
func matchesFilters(card *Card, filters map[string]string, delimiter string) bool {
	for prop, want := range filters {
		if want == "" {
			continue
		}
		if want == NoneValue {
			if !card.AttrBlank(prop) {
				return false
			}
			continue
		}
		if !hasFilterValue(card, prop, want, delimiter) {
			return false
		}
	}
	return true
}

func hasFilterValue(card *Card, prop, want, delimiter string) bool {
	for _, have := range card.AttrValues(prop) {
		if delimiter != "" {
			for _, part := range strings.Split(have, delimiter) {
				if strings.TrimSpace(part) == want {
					return true
				}
			}
			continue
		}
		if have == want {
			return true
		}
	}
	return false
}

// DedupForDisplay collapses cards sharing (name, subtitle) to their first
// printing. Presentation only: deck contents and grouping never go through
// this.
func DedupForDisplay(list []Card) []Card {
	seen := map[string]bool{}
	out := make([]Card, 0, len(list))
	for _, c := range list {
		key := c.Name + "\x00" + c.Subtitle
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
