package deck

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportText(t *testing.T) {
	cat := testCatalog()
	d := Deck{"card-17": 3, "card-42": 1}

	out := ExportText("My Deck", d, cat, GroupConfig{
		GroupBy: "type",
		Order:   []string{"Creature", "Spell"},
	})

	assert.Equal(t, "Deck: My Deck\n\nCreature (3)\n3x Grizzly Bears\n\nSpell (1)\n1x Counterspell\n", out)
}

func TestExportTextNoName(t *testing.T) {
	cat := testCatalog()
	out := ExportText("", Deck{"card-17": 1}, cat, GroupConfig{GroupBy: "type"})
	assert.Equal(t, "Creature (1)\n1x Grizzly Bears\n", out)
}

func TestExportJSONAndImportRoundTrip(t *testing.T) {
	cat := testCatalog()
	d := Deck{"card-17": 3, "card-42": 1}
	overrides := map[string]string{"card-17": "Heroes"}

	data, err := ExportJSON("My Deck", "mygame", d, cat, GroupConfig{GroupBy: "type"}, overrides)
	require.NoError(t, err)

	name, back, backOverrides, err := ImportJSON(data, "mygame")
	require.NoError(t, err)
	assert.Equal(t, "My Deck", name)
	assert.Equal(t, d, back)
	assert.Equal(t, overrides, backOverrides)
}

func TestExportJSONEntriesCarryCardFields(t *testing.T) {
	cat := testCatalog()
	data, err := ExportJSON("x", "mygame", Deck{"card-17": 2}, cat, GroupConfig{GroupBy: "type"}, nil)
	require.NoError(t, err)

	var file struct {
		Deck []map[string]any `json:"deck"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	require.Len(t, file.Deck, 1)
	entry := file.Deck[0]
	assert.Equal(t, "card-17", entry["id"])
	assert.Equal(t, "Grizzly Bears", entry["name"])
	assert.Equal(t, "Creature", entry["type"])
	assert.Equal(t, float64(2), entry["qty"])
}

func TestImportJSONRejectsWrongGame(t *testing.T) {
	cat := testCatalog()
	data, err := ExportJSON("x", "mygame", Deck{"card-17": 1}, cat, GroupConfig{GroupBy: "type"}, nil)
	require.NoError(t, err)

	_, _, _, err = ImportJSON(data, "othergame")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mygame")
}

func TestImportJSONRejectsGarbage(t *testing.T) {
	_, _, _, err := ImportJSON([]byte("not json"), "mygame")
	assert.Error(t, err)

	_, _, _, err = ImportJSON([]byte(`{"name":"x"}`), "mygame")
	assert.Error(t, err)
}

func TestExportOCTGN(t *testing.T) {
	cat := sectionCatalog()
	d := Deck{"hero-1": 1, "ally-1": 3, "odd-1": 2}
	cfg := sectionConfig()

	out, err := ExportOCTGN("mygame", d, cat, cfg)
	require.NoError(t, err)

	var doc struct {
		Game     string `xml:"game,attr"`
		Sections []struct {
			Name   string `xml:"name,attr"`
			Shared bool   `xml:"shared,attr"`
			Cards  []struct {
				Qty  int    `xml:"qty,attr"`
				ID   string `xml:"id,attr"`
				Name string `xml:",chardata"`
			} `xml:"card"`
		} `xml:"section"`
	}
	require.NoError(t, xml.Unmarshal(out, &doc))

	assert.Equal(t, "mygame", doc.Game)
	// every declared section appears, empty or not, Ungrouped trailing
	require.Len(t, doc.Sections, 4)
	assert.Equal(t, "Heroes", doc.Sections[0].Name)
	assert.Equal(t, "Allies", doc.Sections[1].Name)
	assert.True(t, doc.Sections[1].Shared)
	assert.Equal(t, "Gear", doc.Sections[2].Name)
	assert.Empty(t, doc.Sections[2].Cards)
	assert.Equal(t, "Ungrouped", doc.Sections[3].Name)

	require.Len(t, doc.Sections[1].Cards, 1)
	assert.Equal(t, 3, doc.Sections[1].Cards[0].Qty)
	assert.Equal(t, "ally-1", doc.Sections[1].Cards[0].ID)
	assert.Equal(t, "Sidekick", doc.Sections[1].Cards[0].Name)
}

func TestExportOCTGNOmitsEmptyUngrouped(t *testing.T) {
	cat := sectionCatalog()
	out, err := ExportOCTGN("mygame", Deck{"hero-1": 1}, cat, sectionConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Ungrouped")
}
