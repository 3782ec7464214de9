// Package host is the boundary towards the application that owns the map
// project. The picker only needs two capabilities from it: looking up or
// creating a layer group, and inserting a layer definition into one.
package host

// Provider identifiers the host understands.
const (
	ProviderRaster     = "wms" // raster tile providers (wmts, wms and xyz URIs)
	ProviderVectorTile = "arcgisvectortileservice"
)

// LayerDefinition describes a tile layer for the host to construct. The URI
// carries the provider-specific connection string.
type LayerDefinition struct {
	Title    string
	Provider string
	URI      string
}

// Group is a named layer group in the host project.
type Group interface {
	Name() string
}

// Host is the capability set the picker consumes from the hosting
// application.
type Host interface {
	// CreateOrGetGroup returns the group with the given name, creating it
	// at the layer tree root if absent.
	CreateOrGetGroup(name string) (Group, error)
	// AddLayerToGroup constructs the layer and inserts it as the top child
	// of the group. The host may reject malformed definitions.
	AddLayerToGroup(group Group, def LayerDefinition) error
}
