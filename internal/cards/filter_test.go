package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefixes = map[string]string{
	"t:": "Type",
	"k:": "Keywords",
}

func searchCatalog() *Catalog {
	return NewCatalog([]Card{
		{ID: "bear", Index: 1, Name: "Grizzly Bears", Attrs: map[string]any{"Type": "Creature", "Color": "Green"}},
		{ID: "drake", Index: 2, Name: "Azure Drake", Attrs: map[string]any{"Type": "Creature", "Color": "Blue", "Keywords": []any{"Flying"}}},
		{ID: "bolt", Index: 3, Name: "Lightning Bolt", Attrs: map[string]any{"Type": "Spell", "Color": "Red"}},
		{ID: "blank", Index: 4, Name: "Plain Fellow", Attrs: map[string]any{"Color": "   "}},
		{ID: "multi", Index: 5, Name: "Hybrid Thing", Attrs: map[string]any{"Type": "Spell", "Color": "Red / Green"}},
	})
}

func TestParseQueryBareTokens(t *testing.T) {
	crit := ParseQuery("grizzly bears", testPrefixes)
	require.Len(t, crit, 2)
	assert.Equal(t, Criterion{Property: "name", Value: "grizzly"}, crit[0])
	assert.Equal(t, Criterion{Property: "name", Value: "bears"}, crit[1])
}

func TestParseQueryPrefixForms(t *testing.T) {
	tests := []struct {
		query string
		want  Criterion
	}{
		{`t:"Creature"`, Criterion{Property: "Type", Value: "Creature"}},
		{`t:(Creature)`, Criterion{Property: "Type", Value: "Creature"}},
		{`t:Creature`, Criterion{Property: "Type", Value: "Creature"}},
		{`t:"Ancient Hero"`, Criterion{Property: "Type", Value: "Ancient Hero"}},
		{`t:none`, Criterion{Property: "Type", Blank: true}},
		{`t:"NONE"`, Criterion{Property: "Type", Blank: true}},
		{`t:(none)`, Criterion{Property: "Type", Blank: true}},
	}
	for _, tc := range tests {
		crit := ParseQuery(tc.query, testPrefixes)
		require.Len(t, crit, 1, "query %q", tc.query)
		assert.Equal(t, tc.want, crit[0], "query %q", tc.query)
	}
}

func TestParseQueryMixed(t *testing.T) {
	crit := ParseQuery(`bear t:"Creature" k:Flying`, testPrefixes)
	require.Len(t, crit, 3)
	assert.Equal(t, "name", crit[0].Property)
	assert.Equal(t, "Type", crit[1].Property)
	assert.Equal(t, "Keywords", crit[2].Property)
}

func TestParseQueryEmpty(t *testing.T) {
	assert.Nil(t, ParseQuery("", testPrefixes))
	assert.Nil(t, ParseQuery("   ", testPrefixes))
}

func TestSearchByName(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, "bears", nil, SearchOptions{Prefixes: testPrefixes})
	require.Len(t, out, 1)
	assert.Equal(t, "bear", out[0].ID)

	// case-insensitive substring
	out = Search(cat, "AZURE", nil, SearchOptions{Prefixes: testPrefixes})
	require.Len(t, out, 1)
	assert.Equal(t, "drake", out[0].ID)
}

func TestSearchEmptyQueryYieldsAll(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, "", nil, SearchOptions{Prefixes: testPrefixes})
	assert.Len(t, out, cat.Len())
}

func TestSearchPrefixCriteria(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, `t:"Creature"`, nil, SearchOptions{Prefixes: testPrefixes})
	assert.Len(t, out, 2)

	// criteria AND together
	out = Search(cat, `t:"Creature" drake`, nil, SearchOptions{Prefixes: testPrefixes})
	require.Len(t, out, 1)
	assert.Equal(t, "drake", out[0].ID)

	// multiple criteria on one attribute are all enforced
	out = Search(cat, `t:Creature t:Spell`, nil, SearchOptions{Prefixes: testPrefixes})
	assert.Empty(t, out)
}

func TestSearchBlankCriterion(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, "t:none", nil, SearchOptions{Prefixes: testPrefixes})
	require.Len(t, out, 1)
	assert.Equal(t, "blank", out[0].ID)
}

func TestSearchArrayAttribute(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, "k:Flying", nil, SearchOptions{Prefixes: testPrefixes})
	require.Len(t, out, 1)
	assert.Equal(t, "drake", out[0].ID)
}

func TestSearchDropdownFilters(t *testing.T) {
	cat := searchCatalog()

	out := Search(cat, "", map[string]string{"Color": "Green"}, SearchOptions{})
	require.Len(t, out, 1)
	assert.Equal(t, "bear", out[0].ID)

	// all-whitespace counts as blank for the (none) sentinel
	out = Search(cat, "", map[string]string{"Type": NoneValue}, SearchOptions{})
	require.Len(t, out, 1)
	assert.Equal(t, "blank", out[0].ID)

	// empty selection is no filter
	out = Search(cat, "", map[string]string{"Color": ""}, SearchOptions{})
	assert.Len(t, out, cat.Len())
}

func TestSearchDelimitedFilterValues(t *testing.T) {
	cat := searchCatalog()
	out := Search(cat, "", map[string]string{"Color": "Green"}, SearchOptions{Delimiter: "/"})
	// "Red / Green" splits into candidates, so the hybrid matches too
	require.Len(t, out, 2)
	assert.Equal(t, "bear", out[0].ID)
	assert.Equal(t, "multi", out[1].ID)
}

func TestDedupForDisplay(t *testing.T) {
	list := []Card{
		{ID: "a1", Name: "Hero", Subtitle: "Origins"},
		{ID: "a2", Name: "Hero", Subtitle: "Origins"}, // alternate printing
		{ID: "b1", Name: "Hero", Subtitle: "Return"},  // different card
		{ID: "c1", Name: "Hero"},
	}
	out := DedupForDisplay(list)
	require.Len(t, out, 3)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "b1", out[1].ID)
	assert.Equal(t, "c1", out[2].ID)
}
