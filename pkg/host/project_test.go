package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrGetGroup(t *testing.T) {
	p := NewProject()

	g1, err := p.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)
	assert.Equal(t, "Bakgrunnskart", g1.Name())

	// second call reuses the same group
	g2, err := p.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)
	assert.Same(t, g1, g2)
	assert.Len(t, p.Groups(), 1)

	_, err = p.CreateOrGetGroup("  ")
	assert.Error(t, err)
}

func TestAddLayerToGroupInsertsOnTop(t *testing.T) {
	p := NewProject()
	g, err := p.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)

	require.NoError(t, p.AddLayerToGroup(g, LayerDefinition{
		Title: "Første", Provider: ProviderRaster, URI: "type=xyz&url=https://x.no",
	}))
	require.NoError(t, p.AddLayerToGroup(g, LayerDefinition{
		Title: "Andre", Provider: ProviderRaster, URI: "type=xyz&url=https://y.no",
	}))

	layers := p.Group("Bakgrunnskart").Layers()
	require.Len(t, layers, 2)
	assert.Equal(t, "Andre", layers[0].Title)
	assert.Equal(t, "Første", layers[1].Title)

	// every layer gets a unique id
	assert.NotEqual(t, layers[0].ID, layers[1].ID)
	assert.NotEmpty(t, layers[0].ID)
}

func TestAddLayerToGroupRejections(t *testing.T) {
	p := NewProject()
	g, err := p.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)

	tests := []struct {
		name string
		def  LayerDefinition
	}{
		{"Unknown provider", LayerDefinition{Title: "x", Provider: "tull", URI: "url=https://x.no"}},
		{"URI without url", LayerDefinition{Title: "x", Provider: ProviderRaster, URI: "type=xyz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, p.AddLayerToGroup(g, tt.def))
		})
	}
	assert.Empty(t, p.Group("Bakgrunnskart").Layers())
}

func TestAddLayerToForeignGroup(t *testing.T) {
	p1 := NewProject()
	p2 := NewProject()
	g1, err := p1.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)

	err = p2.AddLayerToGroup(g1, LayerDefinition{
		Title: "x", Provider: ProviderRaster, URI: "url=https://x.no",
	})
	assert.Error(t, err)
}

func TestAddLayerDefaultTitle(t *testing.T) {
	p := NewProject()
	g, err := p.CreateOrGetGroup("Bakgrunnskart")
	require.NoError(t, err)

	require.NoError(t, p.AddLayerToGroup(g, LayerDefinition{
		Provider: ProviderRaster, URI: "url=https://x.no",
	}))
	assert.Equal(t, "Uten navn", p.Group("Bakgrunnskart").Layers()[0].Title)
}
