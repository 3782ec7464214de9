package basemap

import (
	"net/url"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geonorge-tools/bakgrunnskart/asset"
	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/pkg/host"
	"github.com/geonorge-tools/bakgrunnskart/pkg/ui"
)

// stubManager is a minimal shell for exercising the insertion path.
type stubManager struct {
	notifications []string
	project       *host.Project
}

func (s *stubManager) Register(ui.Plugin)      {}
func (s *stubManager) Deregister(ui.Plugin)    {}
func (s *stubManager) RegisterNotifier(ui.Notifier) {}
func (s *stubManager) NotifyUser(title, message string) {
	s.notifications = append(s.notifications, message)
}
func (s *stubManager) CreateMenuItem(label string, action func(), icon string) *fyne.MenuItem {
	return fyne.NewMenuItem(label, action)
}
func (s *stubManager) CreateToggleMenuItem(label string, action func(bool), icon string, checked bool) *fyne.MenuItem {
	return fyne.NewMenuItem(label, nil)
}
func (s *stubManager) OpenURL(*url.URL) error          { return nil }
func (s *stubManager) GetPreferences() fyne.Preferences { return nil }
func (s *stubManager) GetAssetManager() *asset.Manager  { return asset.NewManager() }
func (s *stubManager) GetProject() *host.Project        { return s.project }
func (s *stubManager) Window() fyne.Window              { return nil }
func (s *stubManager) RefreshTrayMenu()                 {}

func testPlugin(t *testing.T) (*Plugin, *stubManager) {
	t.Helper()

	assets := asset.NewManager()
	raw, err := assets.GetCatalog()
	require.NoError(t, err)
	cat, err := catalog.Load(raw)
	require.NoError(t, err)

	mgr := &stubManager{project: host.NewProject()}
	p := &Plugin{
		mgr:     mgr,
		cat:     cat,
		adapter: host.NewAdapter(mgr.project),
	}
	return p, mgr
}

func TestAddResolvedDefaults(t *testing.T) {
	p, mgr := testPlugin(t)
	entry := &p.cat.Services[0]

	require.NoError(t, p.addResolved(entry, "", ""))

	group := mgr.project.Group(config.LayerGroupName)
	require.NotNil(t, group)
	require.Len(t, group.Layers(), 1)
	assert.Contains(t, group.Layers()[0].Title, entry.Name)
	assert.Len(t, mgr.notifications, 1)
}

func TestAddResolvedExplicitVariant(t *testing.T) {
	p, mgr := testPlugin(t)
	entry := p.cat.ByID("topo")
	require.NotNil(t, entry)

	typeKey := entry.FirstEnabledOffering()
	variant := entry.Offerings[typeKey].Variants[0]

	require.NoError(t, p.addResolved(entry, typeKey, variant.Label))

	group := mgr.project.Group(config.LayerGroupName)
	require.NotNil(t, group)
	assert.Contains(t, group.Layers()[0].Title, variant.Label)
}

func TestAddResolvedErrors(t *testing.T) {
	p, _ := testPlugin(t)
	entry := &p.cat.Services[0]

	err := p.addResolved(entry, "finnes-ikke", "")
	assert.Error(t, err)

	err = p.addResolved(entry, "", "Finnes ikke")
	assert.Error(t, err)
}

func TestAddResolvedRejectsDisabledOffering(t *testing.T) {
	p, _ := testPlugin(t)

	for i := range p.cat.Services {
		entry := &p.cat.Services[i]
		for key, off := range entry.Offerings {
			if off.Disabled {
				err := p.addResolved(entry, key, "")
				assert.Error(t, err)
				return
			}
		}
	}
	t.Skip("bundled catalog has no disabled offerings")
}

func TestAddLayerGroupReuse(t *testing.T) {
	p, mgr := testPlugin(t)

	require.NoError(t, p.addResolved(&p.cat.Services[0], "", ""))
	require.NoError(t, p.addResolved(&p.cat.Services[1], "", ""))

	// both layers share the one group, newest first
	require.Len(t, mgr.project.Groups(), 1)
	group := mgr.project.Group(config.LayerGroupName)
	require.Len(t, group.Layers(), 2)
	assert.Contains(t, group.Layers()[0].Title, p.cat.Services[1].Name)
}
