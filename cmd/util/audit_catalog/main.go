// Validates the bundled catalog: every service must parse, carry its
// preview assets and produce a well-formed layer URI for every tileset.
// Run from the repository root before cutting a release.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geonorge-tools/bakgrunnskart/asset"
	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/pkg/host"
)

func main() {
	assets := asset.NewManager()
	raw, err := assets.GetCatalog()
	if err != nil {
		fmt.Printf("Error reading catalog: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(raw)
	if err != nil {
		fmt.Printf("Error parsing catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog %s, %d services\n", cat.Version, len(cat.Services))

	problems := 0
	variants := 0
	for i := range cat.Services {
		e := &cat.Services[i]

		for _, ref := range []string{e.Preview, e.Thumb} {
			if ref == "" {
				continue
			}
			if _, err := os.Stat(filepath.Join("asset", ref)); err != nil {
				fmt.Printf("  %s: missing asset %s\n", e.ID, ref)
				problems++
			}
		}

		for _, key := range e.OfferingKeys() {
			off := e.Offerings[key]
			if off.Disabled {
				fmt.Printf("  %s/%s: disabled (%s)\n", e.ID, key, off.DisabledReason)
				continue
			}
			for vi := range off.Variants {
				v := &off.Variants[vi]
				variants++
				provider, uri, err := host.BuildURI(v)
				if err != nil {
					fmt.Printf("  %s/%s/%s: %v\n", e.ID, key, v.Label, err)
					problems++
					continue
				}
				if provider == "" || uri == "" {
					fmt.Printf("  %s/%s/%s: empty provider or uri\n", e.ID, key, v.Label)
					problems++
				}
			}
		}
	}

	fmt.Printf("Checked %d tilesets, %d problems\n", variants, problems)
	if problems > 0 {
		os.Exit(1)
	}
}
