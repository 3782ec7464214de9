package host

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
)

// MockHost implements Host for adapter tests.
type MockHost struct {
	mock.Mock
}

func (m *MockHost) CreateOrGetGroup(name string) (Group, error) {
	args := m.Called(name)
	if g := args.Get(0); g != nil {
		return g.(Group), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHost) AddLayerToGroup(group Group, def LayerDefinition) error {
	args := m.Called(group, def)
	return args.Error(0)
}

func sjokartEntry() (*catalog.ServiceEntry, *catalog.TilesetVariant) {
	v := &catalog.TilesetVariant{
		Type:          catalog.TypeWMTS,
		Label:         "WebMercator",
		Capabilities:  "https://cache.kartverket.no/v1/service?service=WMTS&request=GetCapabilities",
		Layer:         "sjokartraster",
		Style:         "default",
		Format:        "image/png",
		TileMatrixSet: "webmercator",
		CRS:           "EPSG:3857",
	}
	e := &catalog.ServiceEntry{ID: "sjokart", Name: "Sjøkart"}
	return e, v
}

func TestAdapterAddLayer(t *testing.T) {
	entry, v := sjokartEntry()
	group := &LayerGroup{name: "Bakgrunnskart"}

	h := &MockHost{}
	h.On("CreateOrGetGroup", "Bakgrunnskart").Return(group, nil).Once()
	h.On("AddLayerToGroup", group, mock.MatchedBy(func(def LayerDefinition) bool {
		return def.Title == "Sjøkart [WMTS] (WebMercator)" &&
			def.Provider == ProviderRaster
	})).Return(nil).Once()

	err := NewAdapter(h).AddLayer(entry, catalog.TypeWMTS, v)
	require.NoError(t, err)
	h.AssertExpectations(t)
}

func TestAdapterAddLayerAgainstProject(t *testing.T) {
	entry, v := sjokartEntry()
	p := NewProject()

	// the Bakgrunnskart group is created on demand
	require.Nil(t, p.Group("Bakgrunnskart"))
	require.NoError(t, NewAdapter(p).AddLayer(entry, catalog.TypeWMTS, v))

	g := p.Group("Bakgrunnskart")
	require.NotNil(t, g)
	require.Len(t, g.Layers(), 1)
	assert.Equal(t, "Sjøkart [WMTS] (WebMercator)", g.Layers()[0].Title)
	assert.Contains(t, g.Layers()[0].URI, "tileMatrixSet=webmercator")
}

func TestAdapterBadVariant(t *testing.T) {
	entry, _ := sjokartEntry()
	v := &catalog.TilesetVariant{Type: "tull", Label: "x"}

	h := &MockHost{}
	err := NewAdapter(h).AddLayer(entry, catalog.TypeWMTS, v)
	assert.Error(t, err)
	// the host is never touched for an unbuildable variant
	h.AssertNotCalled(t, "CreateOrGetGroup", mock.Anything)
}

func TestAdapterGroupFailure(t *testing.T) {
	entry, v := sjokartEntry()

	h := &MockHost{}
	h.On("CreateOrGetGroup", "Bakgrunnskart").Return(nil, fmt.Errorf("project is read-only"))

	err := NewAdapter(h).AddLayer(entry, catalog.TypeWMTS, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestAdapterInsertFailure(t *testing.T) {
	entry, v := sjokartEntry()
	group := &LayerGroup{name: "Bakgrunnskart"}

	h := &MockHost{}
	h.On("CreateOrGetGroup", "Bakgrunnskart").Return(group, nil)
	h.On("AddLayerToGroup", group, mock.Anything).Return(fmt.Errorf("unreachable service"))

	err := NewAdapter(h).AddLayer(entry, catalog.TypeWMTS, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable service")
}

// panicHost panics like a host binding that throws.
type panicHost struct{}

func (panicHost) CreateOrGetGroup(string) (Group, error) {
	panic("native binding failure")
}

func (panicHost) AddLayerToGroup(Group, LayerDefinition) error { return nil }

func TestAdapterRecoversHostPanic(t *testing.T) {
	entry, v := sjokartEntry()

	err := NewAdapter(panicHost{}).AddLayer(entry, catalog.TypeWMTS, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "native binding failure")
}
