// Package preview turns the bundled catalog imagery into the banner and
// list-icon bitmaps the picker dialog displays.
package preview

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/geonorge-tools/bakgrunnskart/asset"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// Anchor selects where the cover crop is taken from. The catalog previews
// are composed for a top crop; center and smart exist as user preferences.
type Anchor int

// Crop anchors.
const (
	AnchorTop Anchor = iota
	AnchorCenter
	AnchorSmart
)

// AnchorNames lists the anchors as shown in the settings panel.
var AnchorNames = []string{"Top", "Center", "Smart"}

// String returns the anchor's settings-panel name.
func (a Anchor) String() string {
	if int(a) < 0 || int(a) >= len(AnchorNames) {
		return AnchorNames[AnchorTop]
	}
	return AnchorNames[a]
}

// AnchorFromString maps a settings value back to an Anchor. Unknown values
// fall back to the top anchor.
func AnchorFromString(s string) Anchor {
	for i, name := range AnchorNames {
		if name == s {
			return Anchor(i)
		}
	}
	return AnchorTop
}

// Renderer produces display bitmaps from catalog image references. A missing
// or corrupt asset is recovered with a placeholder, never an error.
type Renderer struct {
	assets    *asset.Manager
	anchor    Anchor
	resampler imaging.ResampleFilter
}

// NewRenderer creates a renderer reading from the given asset manager.
func NewRenderer(assets *asset.Manager, anchor Anchor) *Renderer {
	return &Renderer{
		assets:    assets,
		anchor:    anchor,
		resampler: imaging.Lanczos,
	}
}

// SetAnchor changes the crop anchor for subsequent renders.
func (r *Renderer) SetAnchor(anchor Anchor) {
	r.anchor = anchor
}

// Banner renders the big preview for an entry: cover-scaled, cropped to
// w x h logical pixels and rendered at the device pixel ratio so high-density
// displays get native resolution.
func (r *Renderer) Banner(ref string, w, h int, dpr float32) image.Image {
	img := r.load(ref, w, h)
	return CoverCrop(img, scaled(w, dpr), scaled(h, dpr), r.anchor, r.resampler)
}

// Thumbnail renders the square list icon for an entry.
func (r *Renderer) Thumbnail(ref string, size int, dpr float32) image.Image {
	img := r.load(ref, size, size)
	return CoverCrop(img, scaled(size, dpr), scaled(size, dpr), r.anchor, r.resampler)
}

func (r *Renderer) load(ref string, w, h int) image.Image {
	if ref == "" {
		return Placeholder(w, h)
	}
	img, err := r.assets.GetPreview(ref)
	if err != nil {
		log.Printf("Preview %s unavailable, using placeholder: %v", ref, err)
		return Placeholder(w, h)
	}
	return img
}

// CoverCrop scales img so the shorter dimension fills w x h and crops the
// overflow according to the anchor: top crops are horizontally centered and
// anchored at the top edge, center crops are centered both ways, and smart
// crops ask the content analyzer for the most interesting window.
func CoverCrop(img image.Image, w, h int, anchor Anchor, resampler imaging.ResampleFilter) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	switch anchor {
	case AnchorCenter:
		return imaging.Fill(img, w, h, imaging.Center, resampler)
	case AnchorSmart:
		return smartFill(img, w, h, resampler)
	default:
		return imaging.Fill(img, w, h, imaging.Top, resampler)
	}
}

func smartFill(img image.Image, w, h int, resampler imaging.ResampleFilter) image.Image {
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: resampler})
	crop, err := analyzer.FindBestCrop(img, w, h)
	if err != nil {
		log.Printf("Smart crop failed, falling back to center: %v", err)
		return imaging.Fill(img, w, h, imaging.Center, resampler)
	}
	return imaging.Resize(imaging.Crop(img, crop), w, h, resampler)
}

// Placeholder returns the neutral bitmap shown when an entry has no usable
// preview.
func Placeholder(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.New(w, h, color.NRGBA{R: 0x3a, G: 0x3f, B: 0x44, A: 0xff})
}

func scaled(v int, dpr float32) int {
	if dpr <= 0 {
		dpr = 1
	}
	s := int(float32(v) * dpr)
	if s < 1 {
		s = 1
	}
	return s
}

// resizer adapts the imaging resampler to the smartcrop analyzer.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
