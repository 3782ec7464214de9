// Package catalog holds the static basemap service catalog bundled with the
// application: which services exist, how they are described and previewed,
// and the connection parameters of every tileset variant they offer.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Service type keys as they appear in the catalog definition.
const (
	TypeWMTS       = "wmts"
	TypeWMS        = "wms"
	TypeXYZ        = "xyz"
	TypeVectorTile = "vectortile"
)

// TypeOrder is the stable display order for offering radio buttons.
var TypeOrder = []string{TypeWMTS, TypeWMS, TypeVectorTile}

// TilesetVariant is one tileset / projection choice of a service. The
// populated connection fields depend on Type: wmts uses Capabilities, Layer,
// Style, Format, TileMatrixSet and CRS; wms uses URL, Layer, Style, Format
// and CRS; xyz uses a URL template with {z}/{x}/{y} placeholders plus the
// zoom range; vectortile uses URL, StyleURL and the zoom range.
type TilesetVariant struct {
	Type          string `json:"type"`
	Label         string `json:"label"`
	URL           string `json:"url,omitempty"`
	Capabilities  string `json:"capabilities,omitempty"`
	Layer         string `json:"layer,omitempty"`
	Style         string `json:"style,omitempty"`
	Format        string `json:"format,omitempty"`
	TileMatrixSet string `json:"tileMatrixSet,omitempty"`
	CRS           string `json:"crs,omitempty"`
	StyleURL      string `json:"styleUrl,omitempty"`
	ZMin          int    `json:"zmin,omitempty"`
	ZMax          int    `json:"zmax,omitempty"`
}

// Offering groups the variants a service exposes through one service type.
// A disabled offering is shown but not selectable (e.g. vector tiles that
// are announced but not live yet).
type Offering struct {
	Label          string           `json:"label"`
	Disabled       bool             `json:"disabled,omitempty"`
	DisabledReason string           `json:"disabledReason,omitempty"`
	Variants       []TilesetVariant `json:"variants"`
}

// ServiceEntry is one basemap service in the catalog. Entries are immutable
// after load.
type ServiceEntry struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"` // may contain hyperlink markup
	Preview     string              `json:"preview"`
	Thumb       string              `json:"thumb"`
	Offerings   map[string]Offering `json:"offerings"`

	// Legacy flat form, grouped into Offerings during load.
	Variants []TilesetVariant `json:"variants,omitempty"`
}

// Catalog is the versioned service list bundled with the application.
type Catalog struct {
	Version  string         `json:"version"`
	Services []ServiceEntry `json:"services"`
}

// Load decodes and normalizes a catalog definition. The bundled definition
// is static, so errors only occur on a malformed build.
func Load(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Services))
	for i := range c.Services {
		e := &c.Services[i]
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has no id", e.Name)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate catalog id %q", e.ID)
		}
		seen[e.ID] = true
		e.normalizeOfferings()
	}

	return &c, nil
}

// ByID returns the entry with the given id, or nil.
func (c *Catalog) ByID(id string) *ServiceEntry {
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i]
		}
	}
	return nil
}

// normalizeOfferings guarantees every entry has a non-empty Offerings map.
// Flat variant lists are grouped by type, with xyz counted as wmts since
// that is how users think of tiled raster services.
func (e *ServiceEntry) normalizeOfferings() {
	if len(e.Offerings) > 0 {
		return
	}

	var wmtsLike, wmsLike, vtLike []TilesetVariant
	for _, v := range e.Variants {
		switch v.Type {
		case TypeWMS:
			wmsLike = append(wmsLike, v)
		case TypeVectorTile, "vt", "mvt", "arcgis_vt":
			vtLike = append(vtLike, v)
		default:
			// wmts, xyz and anything unknown, so the variant at least shows up
			wmtsLike = append(wmtsLike, v)
		}
	}

	out := make(map[string]Offering)
	if len(wmtsLike) > 0 {
		out[TypeWMTS] = Offering{Label: "WMTS / XYZ", Variants: wmtsLike}
	}
	if len(wmsLike) > 0 {
		out[TypeWMS] = Offering{Label: "WMS", Variants: wmsLike}
	}
	if len(vtLike) > 0 {
		out[TypeVectorTile] = Offering{Label: "Vector tiles", Variants: vtLike}
	}

	if len(out) == 0 {
		out[TypeWMTS] = Offering{
			Label:    "WMTS / XYZ",
			Variants: []TilesetVariant{{Type: TypeWMTS, Label: "Standard"}},
		}
	}

	e.Offerings = out
	e.Variants = nil
}

// OfferingKeys returns the entry's offering keys in stable display order:
// the well-known types first, then any unknown keys alphabetically.
func (e *ServiceEntry) OfferingKeys() []string {
	known := make(map[string]bool, len(TypeOrder))
	var keys []string
	for _, k := range TypeOrder {
		known[k] = true
		if _, ok := e.Offerings[k]; ok {
			keys = append(keys, k)
		}
	}

	var rest []string
	for k := range e.Offerings {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// FirstEnabledOffering returns the key of the first selectable offering in
// display order, or "" when every offering is disabled.
func (e *ServiceEntry) FirstEnabledOffering() string {
	for _, k := range e.OfferingKeys() {
		if !e.Offerings[k].Disabled {
			return k
		}
	}
	return ""
}

// VariantByLabel returns the variant with the given label within the named
// offering, or nil.
func (e *ServiceEntry) VariantByLabel(typeKey, label string) *TilesetVariant {
	off, ok := e.Offerings[typeKey]
	if !ok {
		return nil
	}
	for i := range off.Variants {
		if off.Variants[i].Label == label {
			return &off.Variants[i]
		}
	}
	return nil
}
