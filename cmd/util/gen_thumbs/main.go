// Regenerates the 50x50 list thumbnails from the banner previews in
// asset/previews. Run from the repository root after changing any preview.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/geonorge-tools/bakgrunnskart/pkg/preview"
)

const (
	previewDir = "asset/previews"
	thumbSize  = 50
)

func main() {
	entries, err := os.ReadDir(previewDir)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", previewDir, err)
		os.Exit(1)
	}

	var g errgroup.Group
	g.SetLimit(4)

	count := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".png") || strings.HasSuffix(name, "_thumb.png") {
			continue
		}
		count++

		g.Go(func() error {
			src := filepath.Join(previewDir, name)
			img, err := imaging.Open(src)
			if err != nil {
				return fmt.Errorf("opening %s: %w", src, err)
			}

			thumb := preview.CoverCrop(img, thumbSize, thumbSize, preview.AnchorTop, imaging.Lanczos)

			dst := filepath.Join(previewDir, strings.TrimSuffix(name, ".png")+"_thumb.png")
			if err := imaging.Save(thumb, dst); err != nil {
				return fmt.Errorf("saving %s: %w", dst, err)
			}
			fmt.Printf("Wrote %s\n", dst)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Regenerated %d thumbnails\n", count)
}
