package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []ServiceEntry {
	return []ServiceEntry{
		{
			ID:          "flybilder",
			Name:        "Flybilder",
			Description: `Ortofoto. <a href="https://example.no">Se mer</a>`,
			Offerings: map[string]Offering{
				TypeWMTS: {Label: "WMTS / XYZ", Variants: []TilesetVariant{
					{Type: TypeXYZ, Label: "UTM32"},
				}},
			},
		},
		{
			ID:          "sjokart",
			Name:        "Sjøkart",
			Description: "Sjøkart i rasterformat.",
			Offerings: map[string]Offering{
				TypeWMTS: {Label: "WMTS", Variants: []TilesetVariant{
					{Type: TypeWMTS, Label: "UTM33"},
					{Type: TypeWMTS, Label: "WebMercator"},
				}},
			},
		},
	}
}

func TestFilterIdentity(t *testing.T) {
	entries := testEntries()

	got := Filter(entries, "")
	assert.Equal(t, entries, got)

	// whitespace-only queries behave like empty ones
	got = Filter(entries, "   ")
	assert.Equal(t, entries, got)
}

func TestFilterScenario(t *testing.T) {
	entries := testEntries()

	got := Filter(entries, "sjø")
	require.Len(t, got, 1)
	assert.Equal(t, "Sjøkart", got[0].Name)
}

func TestFilterMatchesAllFields(t *testing.T) {
	entries := testEntries()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Name", "flybilder", []string{"flybilder"}},
		{"Name case-insensitive", "FLYBILDER", []string{"flybilder"}},
		{"Description", "ortofoto", []string{"flybilder"}},
		{"Variant label", "webmercator", []string{"sjokart"}},
		{"Offering label", "xyz", []string{"flybilder"}},
		{"Both", "utm", []string{"flybilder", "sjokart"}},
		{"None", "grunnkart", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, e := range Filter(entries, tt.query) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterDoesNotMatchMarkup(t *testing.T) {
	entries := testEntries()

	// "href" and the link target only exist in the markup, not the text
	assert.Empty(t, Filter(entries, "href"))
	assert.Empty(t, Filter(entries, "example.no"))
	// the link text itself is searchable
	assert.Len(t, Filter(entries, "se mer"), 1)
}

func TestFilterPreservesOrder(t *testing.T) {
	entries := testEntries()

	got := Filter(entries, "kart") // "Sjøkart" only; "Flybilder" has no 'kart'
	require.Len(t, got, 1)

	got = Filter(entries, "utm")
	require.Len(t, got, 2)
	assert.Equal(t, "flybilder", got[0].ID)
	assert.Equal(t, "sjokart", got[1].ID)
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "bare tekst", "bare tekst"},
		{"Link", `Se <a href="https://x.no">mer</a> her`, "Se mer her"},
		{"Break", "linje<br><br>to", "linjeto"},
		{"Entity", "&copy; Kartverket", "© Kartverket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestLinks(t *testing.T) {
	desc := `Ortofoto. <a href="https://kartkatalog.geonorge.no/metadata/x">Se mer informasjon</a>` +
		`<br><br>&copy; <a href="https://www.kartverket.no">Kartverket</a>.`

	links := Links(desc)
	require.Len(t, links, 2)
	assert.Equal(t, "Se mer informasjon", links[0].Text)
	assert.Equal(t, "https://kartkatalog.geonorge.no/metadata/x", links[0].URL)
	assert.Equal(t, "Kartverket", links[1].Text)

	assert.Empty(t, Links("ingen lenker her"))
}

func TestFilterBundledCatalog(t *testing.T) {
	c := loadBundled(t)

	got := Filter(c.Services, "gråtone")
	require.NotEmpty(t, got)
	for _, e := range got {
		assert.True(t, strings.Contains(strings.ToLower(searchBlob(&e)), "gråtone"))
	}

	// every entry advertises Kartverket in its description
	assert.Len(t, Filter(c.Services, "kartverket"), len(c.Services))
}
