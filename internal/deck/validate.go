package deck

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/youruser/tcgbuilder/internal/cards"
)

// AttributeBound limits the summed quantity of cards whose attributes carry
// the configured values. With a single pair it is the classic property limit;
// several pairs form a conjunction. Min == Max demands an exact count.
type AttributeBound struct {
	Props        map[string]string
	Min          *int
	Max          *int
	Message      string // optional template: {count} {min} {max} {description}
	HideProperty bool
}

// Rules is the compiled validation rule set for one game. Zero values disable
// the corresponding check.
type Rules struct {
	MinCards     int
	MaxCards     int
	MaxCopies    int
	PerCardLimit bool
	LimitAttr    string
	Bounds       []AttributeBound
	Banned       []string
}

// Validate evaluates the rule set against the deck and returns every
// violation. It never mutates the deck and collects rather than
// short-circuits; an empty result means the deck is legal.
func Validate(d Deck, cat *cards.Catalog, r Rules) []string {
	var errs []string

	total := d.Total()
	if r.MinCards > 0 && total < r.MinCards {
		errs = append(errs, "Too few cards in deck!")
	}
	if r.MaxCards > 0 && total > r.MaxCards {
		errs = append(errs, "Too many cards in deck!")
	}

	ids := sortedIDs(d)

	if r.MaxCopies > 0 {
		for _, id := range ids {
			if d[id] > r.MaxCopies {
				errs = append(errs, fmt.Sprintf("Too many copies of %s (max %d)", cardName(cat, id), r.MaxCopies))
			}
		}
	}

	if r.PerCardLimit {
		attr := r.LimitAttr
		if attr == "" {
			attr = "Limit"
		}
		for _, id := range ids {
			card, ok := cat.ByID(id)
			if !ok {
				continue
			}
			limit, ok := card.AttrNumber(attr)
			if !ok {
				continue
			}
			if float64(d[id]) > limit {
				errs = append(errs, fmt.Sprintf("Too many copies of %s: limit is %s", card.Name, formatNum(limit)))
			}
		}
	}

	for i := range r.Bounds {
		if msg := checkBound(d, cat, ids, &r.Bounds[i]); msg != "" {
			errs = append(errs, msg)
		}
	}

	if len(r.Banned) > 0 {
		if hits := bannedIn(d, cat, ids, r.Banned); len(hits) > 0 {
			errs = append(errs, "Banned cards in deck: "+strings.Join(hits, ", "))
		}
	}

	return errs
}

func checkBound(d Deck, cat *cards.Catalog, ids []string, b *AttributeBound) string {
	if len(b.Props) == 0 || (b.Min == nil && b.Max == nil) {
		// malformed rule, skipped
		return ""
	}

	count := 0
	for _, id := range ids {
		card, ok := cat.ByID(id)
		if !ok {
			continue
		}
		if matchesProps(card, b.Props) {
			count += d[id]
		}
	}

	ok := true
	switch {
	case b.Min != nil && b.Max != nil:
		ok = count >= *b.Min && count <= *b.Max
	case b.Max != nil:
		ok = count <= *b.Max
	case b.Min != nil:
		ok = count >= *b.Min
	}
	if ok {
		return ""
	}

	desc := b.describe()
	if b.Message != "" {
		return renderTemplate(b.Message, count, b.Min, b.Max, desc)
	}
	if b.Max != nil && count > *b.Max {
		return "Too many cards of " + desc
	}
	return "Too few cards of " + desc
}

func matchesProps(card *cards.Card, props map[string]string) bool {
	for attr, want := range props {
		found := false
		for _, have := range card.AttrValues(attr) {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (b *AttributeBound) describe() string {
	attrs := make([]string, 0, len(b.Props))
	for attr := range b.Props {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		if b.HideProperty {
			parts = append(parts, b.Props[attr])
		} else {
			parts = append(parts, attr+": "+b.Props[attr])
		}
	}
	return strings.Join(parts, ", ")
}

func renderTemplate(tpl string, count int, min, max *int, desc string) string {
	out := strings.ReplaceAll(tpl, "{count}", strconv.Itoa(count))
	out = strings.ReplaceAll(out, "{description}", desc)
	minS, maxS := "", ""
	if min != nil {
		minS = strconv.Itoa(*min)
	}
	if max != nil {
		maxS = strconv.Itoa(*max)
	}
	out = strings.ReplaceAll(out, "{min}", minS)
	return strings.ReplaceAll(out, "{max}", maxS)
}

// bannedIn matches ban entries against deck cards by normalized name or id and
// reports the actual display names.
func bannedIn(d Deck, cat *cards.Catalog, ids []string, banned []string) []string {
	normed := make(map[string]bool, len(banned))
	for _, b := range banned {
		if n := normalizeName(b); n != "" {
			normed[n] = true
		}
	}

	seen := map[string]bool{}
	var hits []string
	for _, id := range ids {
		card, ok := cat.ByID(id)
		if !ok {
			continue
		}
		if normed[normalizeName(card.Name)] || normed[normalizeName(card.ID)] {
			if !seen[card.Name] {
				seen[card.Name] = true
				hits = append(hits, card.Name)
			}
		}
	}
	sort.Strings(hits)
	return hits
}

// normalizeName lowercases and strips everything but letters and digits, so
// "Counterspell" and "counter-spell " compare equal.
func normalizeName(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func cardName(cat *cards.Catalog, id string) string {
	if card, ok := cat.ByID(id); ok {
		return card.Name
	}
	return id
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
