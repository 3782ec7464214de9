package host

import (
	"fmt"
	"strings"

	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
)

// encodeURL escapes a URL for embedding as the url= parameter of a layer
// URI. Matches what the host shows in its source field: '=' and '&' are
// escaped, '%' first.
func encodeURL(url string) string {
	return strings.NewReplacer("%", "%25", "=", "%3D", "&", "%26").Replace(url)
}

// encodeTemplate escapes an xyz URL template. The {z}/{x}/{y} placeholders
// must survive as %7B..%7D, so '=' is left alone and braces are escaped
// instead.
func encodeTemplate(url string) string {
	return strings.NewReplacer("%", "%25", "&", "%26", "{", "%7B", "}", "%7D").Replace(url)
}

// BuildURI translates a tileset variant into the host's (provider, uri)
// pair. It fails on variants missing their required connection parameters,
// which the caller surfaces as a layer rejection.
func BuildURI(v *catalog.TilesetVariant) (provider, uri string, err error) {
	switch v.Type {
	case catalog.TypeXYZ:
		return buildXYZ(v)
	case catalog.TypeWMTS:
		return buildWMTS(v)
	case catalog.TypeWMS:
		return buildWMS(v)
	case catalog.TypeVectorTile, "vt", "mvt", "arcgis_vt":
		return buildVectorTile(v)
	default:
		return "", "", fmt.Errorf("unknown variant type %q", v.Type)
	}
}

func buildXYZ(v *catalog.TilesetVariant) (string, string, error) {
	if v.URL == "" {
		return "", "", fmt.Errorf("xyz variant %q has no url template", v.Label)
	}

	zmin, zmax := v.ZMin, v.ZMax
	if zmax == 0 {
		zmax = 21
	}

	uri := fmt.Sprintf("type=xyz&url=%s&zmin=%d&zmax=%d&crs=EPSG3857",
		encodeTemplate(v.URL), zmin, zmax)
	return ProviderRaster, uri, nil
}

func buildWMTS(v *catalog.TilesetVariant) (string, string, error) {
	if v.Capabilities == "" {
		return "", "", fmt.Errorf("wmts variant %q has no capabilities url", v.Label)
	}
	if v.Layer == "" || v.TileMatrixSet == "" {
		return "", "", fmt.Errorf("wmts variant %q is missing layer or tileMatrixSet", v.Label)
	}

	crs := v.CRS
	if crs == "" {
		crs = "EPSG:25833"
	}
	format := v.Format
	if format == "" {
		format = "image/png"
	}
	style := v.Style
	if style == "" {
		style = "default"
	}

	uri := fmt.Sprintf("crs=%s&format=%s&layers=%s&styles=%s&tileMatrixSet=%s&url=%s",
		crs, format, v.Layer, style, v.TileMatrixSet, encodeURL(v.Capabilities))
	return ProviderRaster, uri, nil
}

func buildWMS(v *catalog.TilesetVariant) (string, string, error) {
	if v.URL == "" {
		return "", "", fmt.Errorf("wms variant %q has no service url", v.Label)
	}
	if v.Layer == "" {
		return "", "", fmt.Errorf("wms variant %q has no layers", v.Label)
	}

	crs := v.CRS
	if crs == "" {
		crs = "EPSG:25833"
	}
	format := v.Format
	if format == "" {
		format = "image/png"
	}

	uri := fmt.Sprintf("crs=%s&format=%s&layers=%s&styles=%s&url=%s",
		crs, format, v.Layer, v.Style, encodeURL(v.URL))
	return ProviderRaster, uri, nil
}

func buildVectorTile(v *catalog.TilesetVariant) (string, string, error) {
	if v.URL == "" || v.StyleURL == "" {
		return "", "", fmt.Errorf("vector tile variant %q needs both a service url and a style url", v.Label)
	}

	zmin, zmax := v.ZMin, v.ZMax
	if zmax == 0 {
		zmax = 14
	}

	uri := fmt.Sprintf("serviceType=arcgis&styleUrl=%s&type=xyz&url=%s&zmin=%d&zmax=%d",
		v.StyleURL, v.URL, zmin, zmax)
	return ProviderVectorTile, uri, nil
}
