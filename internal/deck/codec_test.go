package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/tcgbuilder/internal/cards"
)

func TestEncodeScenarioFollowsExportOrder(t *testing.T) {
	cat := testCatalog()
	d := Deck{"card-17": 3, "card-42": 1}
	cfg := GroupConfig{GroupBy: "type", Order: []string{"Creature", "Spell"}}

	assert.Equal(t, "3:7;1:12", Encode(d, cat, &cfg))
}

func TestEncodeBucketSorting(t *testing.T) {
	cat := cards.NewCatalog([]cards.Card{
		mkCard("e", 5, "Echo", nil),
		mkCard("t", 2, "Tango", nil),
		mkCard("h", 8, "Hotel", nil),
		mkCard("o", 1, "Oscar", nil),
	})
	d := Deck{"e": 3, "t": 3, "h": 3, "o": 1}

	// without a grouping config buckets are ascending by quantity and
	// indices ascending inside a bucket
	assert.Equal(t, "1:1;3:2,5,8", Encode(d, cat, nil))
}

func TestCodecRoundTrip(t *testing.T) {
	cat := testCatalog()
	decks := []Deck{
		{},
		{"card-17": 1},
		{"card-17": 3, "card-42": 1, "card-03": 4, "card-09": 3},
		{"card-17": 60},
	}
	cfg := GroupConfig{GroupBy: "type", Order: []string{"Creature", "Spell"}}

	for _, d := range decks {
		assert.Equal(t, d, Decode(Encode(d, cat, nil), cat))
		assert.Equal(t, d, Decode(Encode(d, cat, &cfg), cat))
	}
}

func TestDecodeGarbageNeverFails(t *testing.T) {
	cat := testCatalog()
	for _, s := range []string{
		"", "garbage", ";;;", ":::", "x:y;1:", "-1:7", "0:7", "3:", "3:,,,", "3:notanumber", "1;2;3",
	} {
		assert.Empty(t, Decode(s, cat), "input %q", s)
	}
}

func TestDecodeDropsUnknownIndices(t *testing.T) {
	cat := testCatalog()
	d := Decode("2:7,999;1:12", cat)
	assert.Equal(t, Deck{"card-17": 2, "card-42": 1}, d)
}

func TestDecodeSkipsMalformedSegments(t *testing.T) {
	cat := testCatalog()
	d := Decode("bogus;2:7;also bogus", cat)
	assert.Equal(t, Deck{"card-17": 2}, d)
}

func TestEncodeSkipsUnknownIDs(t *testing.T) {
	cat := testCatalog()
	d := Deck{"card-17": 2, "ghost": 5}
	assert.Equal(t, "2:7", Encode(d, cat, nil))
}

func TestOverrideCodecRoundTrip(t *testing.T) {
	cat := sectionCatalog()
	overrides := map[string]string{
		"hero-1": "Gear",
		"ally-1": "Extra Stuff & More",
	}

	enc := EncodeOverrides(overrides, cat)
	require.NotEmpty(t, enc)
	// section names are escaped, so separators survive
	assert.NotContains(t, enc, " ")
	assert.Equal(t, overrides, DecodeOverrides(enc, cat))
}

func TestOverrideCodecTolerance(t *testing.T) {
	cat := sectionCatalog()
	assert.Empty(t, DecodeOverrides("", cat))
	assert.Empty(t, DecodeOverrides("junk", cat))
	assert.Empty(t, DecodeOverrides("999:Somewhere", cat))
	assert.Equal(t, map[string]string{"hero-1": "Gear"}, DecodeOverrides("1:Gear,999:Lost,bad", cat))
}

func TestShareQuery(t *testing.T) {
	cat := testCatalog()
	d := Deck{"card-17": 2}
	q := ShareQuery("mygame", d, nil, cat, nil)

	assert.Equal(t, "mygame", q.Get("game"))
	assert.Equal(t, "2:7", q.Get("deck"))
	assert.Empty(t, q.Get("sections"))
}
