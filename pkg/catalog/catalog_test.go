package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geonorge-tools/bakgrunnskart/asset"
)

func loadBundled(t *testing.T) *Catalog {
	t.Helper()
	raw, err := asset.NewManager().GetCatalog()
	require.NoError(t, err)
	c, err := Load(raw)
	require.NoError(t, err)
	return c
}

func TestLoadBundledCatalog(t *testing.T) {
	c := loadBundled(t)

	assert.NotEmpty(t, c.Version)
	assert.Len(t, c.Services, 10)

	seen := make(map[string]bool)
	for _, e := range c.Services {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true

		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Offerings, "%s should have offerings", e.ID)
		assert.NotEmpty(t, e.Preview)
	}
}

func TestBundledCatalogContent(t *testing.T) {
	c := loadBundled(t)

	sjo := c.ByID("sjokart")
	require.NotNil(t, sjo)
	assert.Equal(t, "Sjøkart", sjo.Name)
	assert.Contains(t, sjo.Offerings, TypeWMTS)
	assert.Contains(t, sjo.Offerings, TypeWMS)

	fly := c.ByID("flybilder")
	require.NotNil(t, fly)
	wmts, ok := fly.Offerings[TypeWMTS]
	require.True(t, ok)
	require.Len(t, wmts.Variants, 1)
	assert.Equal(t, TypeXYZ, wmts.Variants[0].Type)
	assert.Contains(t, wmts.Variants[0].URL, "{z}")

	topo := c.ByID("topo")
	require.NotNil(t, topo)
	vt, ok := topo.Offerings[TypeVectorTile]
	require.True(t, ok)
	assert.True(t, vt.Disabled)
	assert.NotEmpty(t, vt.DisabledReason)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Malformed JSON", `{"services": [`},
		{"Missing ID", `{"services": [{"name": "Uten id"}]}`},
		{"Duplicate ID", `{"services": [{"id": "a", "name": "A"}, {"id": "a", "name": "B"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestNormalizeFlatVariants(t *testing.T) {
	raw := `{"services": [{
		"id": "flat",
		"name": "Flat",
		"variants": [
			{"type": "xyz", "label": "XYZ"},
			{"type": "wms", "label": "WMS-variant"},
			{"type": "mvt", "label": "VT"},
			{"type": "weird", "label": "Ukjent"}
		]
	}]}`

	c, err := Load([]byte(raw))
	require.NoError(t, err)
	e := c.ByID("flat")
	require.NotNil(t, e)

	// xyz and unknown types are grouped under wmts
	require.Contains(t, e.Offerings, TypeWMTS)
	labels := []string{}
	for _, v := range e.Offerings[TypeWMTS].Variants {
		labels = append(labels, v.Label)
	}
	assert.Equal(t, []string{"XYZ", "Ukjent"}, labels)

	require.Contains(t, e.Offerings, TypeWMS)
	assert.Equal(t, "WMS-variant", e.Offerings[TypeWMS].Variants[0].Label)

	require.Contains(t, e.Offerings, TypeVectorTile)
	assert.Equal(t, "VT", e.Offerings[TypeVectorTile].Variants[0].Label)

	// flat list is consumed by normalization
	assert.Nil(t, e.Variants)
}

func TestNormalizeEmptyEntry(t *testing.T) {
	c, err := Load([]byte(`{"services": [{"id": "tom", "name": "Tom"}]}`))
	require.NoError(t, err)

	e := c.ByID("tom")
	require.NotNil(t, e)
	require.Contains(t, e.Offerings, TypeWMTS)
	require.Len(t, e.Offerings[TypeWMTS].Variants, 1)
	assert.Equal(t, "Standard", e.Offerings[TypeWMTS].Variants[0].Label)
}

func TestOfferingKeysOrder(t *testing.T) {
	e := &ServiceEntry{
		ID: "x",
		Offerings: map[string]Offering{
			"zzz":          {Label: "Z"},
			TypeVectorTile: {Label: "VT"},
			TypeWMS:        {Label: "WMS"},
			TypeWMTS:       {Label: "WMTS"},
			"aaa":          {Label: "A"},
		},
	}

	assert.Equal(t, []string{TypeWMTS, TypeWMS, TypeVectorTile, "aaa", "zzz"}, e.OfferingKeys())
}

func TestFirstEnabledOffering(t *testing.T) {
	e := &ServiceEntry{
		ID: "x",
		Offerings: map[string]Offering{
			TypeWMTS: {Label: "WMTS", Disabled: true},
			TypeWMS:  {Label: "WMS"},
		},
	}
	assert.Equal(t, TypeWMS, e.FirstEnabledOffering())

	allDisabled := &ServiceEntry{
		ID: "y",
		Offerings: map[string]Offering{
			TypeWMTS: {Label: "WMTS", Disabled: true},
		},
	}
	assert.Equal(t, "", allDisabled.FirstEnabledOffering())
}

func TestVariantByLabel(t *testing.T) {
	c := loadBundled(t)
	sjo := c.ByID("sjokart")
	require.NotNil(t, sjo)

	v := sjo.VariantByLabel(TypeWMTS, "WebMercator (EPSG:3857)")
	require.NotNil(t, v)
	assert.Equal(t, "webmercator", v.TileMatrixSet)

	assert.Nil(t, sjo.VariantByLabel(TypeWMTS, "finnes ikke"))
	assert.Nil(t, sjo.VariantByLabel("nope", "WebMercator (EPSG:3857)"))
}
