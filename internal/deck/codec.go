package deck

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/tcgbuilder/internal/cards"
)

// Encode packs the deck into a short string for a URL query parameter. Cards
// are bucketed by quantity and written as "qty:idx,idx" segments joined by
// ";", with catalog indices standing in for the long card ids. Indices inside
// a bucket are ascending. When a grouping config is given the buckets follow
// the canonical export order of the deck (first appearance of each quantity),
// otherwise ascending quantity.
func Encode(d Deck, cat *cards.Catalog, cfg *GroupConfig) string {
	buckets := map[int][]int{}
	for _, id := range sortedIDs(d) {
		card, ok := cat.ByID(id)
		if !ok {
			continue
		}
		buckets[d[id]] = append(buckets[d[id]], card.Index)
	}
	if len(buckets) == 0 {
		return ""
	}

	var qtys []int
	if cfg != nil {
		seen := map[int]bool{}
		for _, e := range ExportList(d, cat, *cfg) {
			if !seen[e.Qty] {
				seen[e.Qty] = true
				qtys = append(qtys, e.Qty)
			}
		}
		// quantities the export walk missed still get written
		var rest []int
		for q := range buckets {
			if !seen[q] {
				rest = append(rest, q)
			}
		}
		sort.Ints(rest)
		qtys = append(qtys, rest...)
	} else {
		for q := range buckets {
			qtys = append(qtys, q)
		}
		sort.Ints(qtys)
	}

	var sb strings.Builder
	for i, q := range qtys {
		if i > 0 {
			sb.WriteByte(';')
		}
		idxs := buckets[q]
		sort.Ints(idxs)
		sb.WriteString(strconv.Itoa(q))
		sb.WriteByte(':')
		for j, idx := range idxs {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(idx))
		}
	}
	return sb.String()
}

// Decode rebuilds a deck from an encoded string. Malformed segments and
// indices missing from the catalog are dropped; garbage in, empty deck out.
func Decode(s string, cat *cards.Catalog) Deck {
	d := New()
	for _, seg := range strings.Split(s, ";") {
		parts := strings.SplitN(seg, ":", 2)
		if len(parts) != 2 {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || qty <= 0 {
			continue
		}
		for _, tok := range strings.Split(parts[1], ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				continue
			}
			card, ok := cat.ByIndex(idx)
			if !ok {
				continue
			}
			d[card.ID] += qty
		}
	}
	return d
}

// EncodeOverrides packs user section overrides as "idx:section" pairs joined
// by ",", section names URL-escaped.
func EncodeOverrides(overrides map[string]string, cat *cards.Catalog) string {
	type pair struct {
		idx  int
		name string
	}
	var pairs []pair
	for id, section := range overrides {
		card, ok := cat.ByID(id)
		if !ok {
			continue
		}
		pairs = append(pairs, pair{card.Index, section})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].idx < pairs[j].idx })

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, strconv.Itoa(p.idx)+":"+url.QueryEscape(p.name))
	}
	return strings.Join(parts, ",")
}

// DecodeOverrides mirrors EncodeOverrides with the same drop-on-unknown
// tolerance as Decode.
func DecodeOverrides(s string, cat *cards.Catalog) map[string]string {
	out := map[string]string{}
	for _, seg := range strings.Split(s, ",") {
		parts := strings.SplitN(seg, ":", 2)
		if len(parts) != 2 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		card, ok := cat.ByIndex(idx)
		if !ok {
			continue
		}
		section, err := url.QueryUnescape(parts[1])
		if err != nil || section == "" {
			continue
		}
		out[card.ID] = section
	}
	return out
}

// ShareQuery builds the query portion of a shareable link: the game id, the
// encoded deck and, when present, the encoded section overrides.
func ShareQuery(game string, d Deck, overrides map[string]string, cat *cards.Catalog, cfg *GroupConfig) url.Values {
	q := url.Values{}
	q.Set("game", game)
	if enc := Encode(d, cat, cfg); enc != "" {
		q.Set("deck", enc)
	}
	if enc := EncodeOverrides(overrides, cat); enc != "" {
		q.Set("sections", enc)
	}
	return q
}
