package host

import (
	"fmt"
	"strings"

	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// Adapter translates a confirmed picker selection into host calls. All
// failures, including panics out of the host, come back as plain errors for
// the dialog to show as a dismissible notice.
type Adapter struct {
	host Host
}

// NewAdapter creates an adapter for the given host.
func NewAdapter(h Host) *Adapter {
	return &Adapter{host: h}
}

// LayerTitle is the display title given to an inserted layer.
func LayerTitle(entry *catalog.ServiceEntry, typeKey string, v *catalog.TilesetVariant) string {
	return fmt.Sprintf("%s [%s] (%s)", entry.Name, strings.ToUpper(typeKey), v.Label)
}

// AddLayer ensures the Bakgrunnskart group exists and inserts the layer
// built from the variant as its top child.
func (a *Adapter) AddLayer(entry *catalog.ServiceEntry, typeKey string, v *catalog.TilesetVariant) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host rejected layer: %v", r)
		}
	}()

	provider, uri, err := BuildURI(v)
	if err != nil {
		return fmt.Errorf("building layer uri: %w", err)
	}

	group, err := a.host.CreateOrGetGroup(config.LayerGroupName)
	if err != nil {
		return fmt.Errorf("ensuring %q group: %w", config.LayerGroupName, err)
	}

	def := LayerDefinition{
		Title:    LayerTitle(entry, typeKey, v),
		Provider: provider,
		URI:      uri,
	}
	if err := a.host.AddLayerToGroup(group, def); err != nil {
		return fmt.Errorf("adding layer %q: %w", def.Title, err)
	}

	log.Printf("Added layer %q to group %q", def.Title, group.Name())
	return nil
}
