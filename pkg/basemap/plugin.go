// Package basemap is the Bakgrunnskart plugin: it owns the bundled catalog,
// the picker dialog, the layer insertion path and the companion bridge.
package basemap

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/pkg/api"
	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/pkg/host"
	"github.com/geonorge-tools/bakgrunnskart/pkg/hotkey"
	"github.com/geonorge-tools/bakgrunnskart/pkg/picker"
	"github.com/geonorge-tools/bakgrunnskart/pkg/preview"
	"github.com/geonorge-tools/bakgrunnskart/pkg/ui"
	"github.com/geonorge-tools/bakgrunnskart/pkg/ui/setting"
	"github.com/geonorge-tools/bakgrunnskart/util"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// Plugin implements ui.Plugin for the basemap picker.
type Plugin struct {
	mgr      ui.PluginManager
	cfg      *config.AppConfig
	cat      *catalog.Catalog
	renderer *preview.Renderer
	adapter  *host.Adapter
	bridge   *api.Server

	dialogOpen *util.SafeFlag
	bridgeUp   *util.SafeFlag
}

// New creates the plugin. Init must run before any other method.
func New() *Plugin {
	return &Plugin{
		dialogOpen: util.NewSafeBool(),
		bridgeUp:   util.NewSafeBool(),
	}
}

// Name returns the plugin's name.
func (p *Plugin) Name() string {
	return config.AppName
}

// Init loads the bundled catalog and wires the plugin into the shell.
func (p *Plugin) Init(mgr ui.PluginManager) {
	p.mgr = mgr
	p.cfg = config.NewAppConfig(mgr.GetPreferences())

	assets := mgr.GetAssetManager()
	raw, err := assets.GetCatalog()
	if err != nil {
		log.Fatalf("Failed to read bundled catalog: %v", err)
	}
	cat, err := catalog.Load(raw)
	if err != nil {
		log.Fatalf("Failed to parse bundled catalog: %v", err)
	}
	p.cat = cat
	log.Printf("Loaded catalog %s with %d services", cat.Version, len(cat.Services))

	anchor := preview.AnchorFromString(p.cfg.GetPreviewCropAnchor())
	p.renderer = preview.NewRenderer(assets, anchor)
	p.adapter = host.NewAdapter(mgr.GetProject())

	p.bridge = api.NewServer(cat, assets)
	p.bridge.SetAddLayerHandler(p.addByID)
}

// Activate starts the hotkeys, the update check and, when enabled, the
// companion bridge.
func (p *Plugin) Activate() {
	hotkey.StartListeners(
		func() { fyne.Do(p.OpenPicker) },
		func() { fyne.Do(func() { p.addDefaultLayer() }) },
	)

	if p.cfg.GetBridgeEnabled() {
		p.startBridge()
	}

	if p.cfg.GetUpdateCheckEnabled() {
		go p.checkForUpdates(false)
	}
}

// Deactivate stops the companion bridge.
func (p *Plugin) Deactivate() {
	p.stopBridge()
}

// CreateTrayMenuItems returns the plugin's tray entries.
func (p *Plugin) CreateTrayMenuItems() []*fyne.MenuItem {
	return []*fyne.MenuItem{
		p.mgr.CreateMenuItem("Legg til bakgrunnskart…", func() {
			p.OpenPicker()
		}, "add.png"),
		p.mgr.CreateMenuItem("Legg til standardkart", func() {
			p.addDefaultLayer()
		}, "add.png"),
	}
}

// OpenPicker shows the picker dialog over the main window. Only one dialog
// is open at a time.
func (p *Plugin) OpenPicker() {
	if !p.dialogOpen.TestAndSet() {
		return
	}

	picker.Show(p.mgr.Window(), p.cat, p.renderer, p, func(res picker.Result) {
		p.dialogOpen.Set(false)
		if res.Accepted() {
			log.Debugf("Picker accepted")
		}
	})
}

// AddLayer implements picker.LayerAdder: insert through the host adapter,
// then notify the user and the bridge clients.
func (p *Plugin) AddLayer(entry *catalog.ServiceEntry, typeKey string, v *catalog.TilesetVariant) error {
	if err := p.adapter.AddLayer(entry, typeKey, v); err != nil {
		return err
	}

	title := host.LayerTitle(entry, typeKey, v)
	p.mgr.NotifyUser(config.AppName, fmt.Sprintf("La til %s", title))
	if p.bridge != nil {
		_ = p.bridge.BroadcastLayerAdded(entry.ID, typeKey, title)
	}
	return nil
}

// addDefaultLayer inserts the first catalog service with its default
// offering and tileset, without opening the dialog.
func (p *Plugin) addDefaultLayer() {
	if len(p.cat.Services) == 0 {
		return
	}
	entry := &p.cat.Services[0]
	if err := p.addResolved(entry, "", ""); err != nil {
		log.Printf("Default layer insertion failed: %v", err)
	}
}

// addByID resolves catalog identifiers from the bridge and inserts on the
// UI thread, since the project is only touched there.
func (p *Plugin) addByID(serviceID, typeKey, variantLabel string) error {
	entry := p.cat.ByID(serviceID)
	if entry == nil {
		return fmt.Errorf("unknown service %q", serviceID)
	}

	var err error
	fyne.DoAndWait(func() {
		err = p.addResolved(entry, typeKey, variantLabel)
	})
	return err
}

// addResolved fills in offering and variant defaults and inserts the layer.
func (p *Plugin) addResolved(entry *catalog.ServiceEntry, typeKey, variantLabel string) error {
	if typeKey == "" {
		typeKey = entry.FirstEnabledOffering()
	}
	off, ok := entry.Offerings[typeKey]
	if !ok {
		return fmt.Errorf("service %q has no %q offering", entry.ID, typeKey)
	}
	if off.Disabled {
		return fmt.Errorf("offering %q of %q is not available yet", typeKey, entry.ID)
	}

	var v *catalog.TilesetVariant
	if variantLabel == "" {
		if len(off.Variants) == 0 {
			return fmt.Errorf("offering %q of %q has no tilesets", typeKey, entry.ID)
		}
		v = &off.Variants[0]
	} else {
		v = entry.VariantByLabel(typeKey, variantLabel)
		if v == nil {
			return fmt.Errorf("service %q has no tileset %q under %q", entry.ID, variantLabel, typeKey)
		}
	}

	return p.AddLayer(entry, typeKey, v)
}

// CreatePrefsPanel builds the plugin's settings panel.
func (p *Plugin) CreatePrefsPanel(sm setting.SettingsManager) *fyne.Container {
	panel := container.NewVBox(sm.CreateSectionTitleLabel(config.AppName))

	anchors := []fmt.Stringer{preview.AnchorTop, preview.AnchorCenter, preview.AnchorSmart}
	sm.CreateSelectSetting(&setting.SelectConfig{
		Name:         "Forhåndsvisning",
		Options:      setting.StringOptions(anchors),
		InitialValue: int(preview.AnchorFromString(p.cfg.GetPreviewCropAnchor())),
		Label:        sm.CreateSettingTitleLabel("Beskjæring av forhåndsvisning"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Hvilken del av kartbildet som vises i dialogen."),
		ApplyFunc: func(v interface{}) {
			anchor := preview.Anchor(v.(int))
			p.cfg.SetPreviewCropAnchor(anchor.String())
			p.renderer.SetAnchor(anchor)
		},
	}, panel)

	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         "Bro",
		InitialValue: p.cfg.GetBridgeEnabled(),
		Label:        sm.CreateSettingTitleLabel("Lokal bro"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Tillat verktøy på denne maskinen å legge til kartlag via " + api.ListenAddr + "."),
		ApplyFunc: func(enabled bool) {
			p.cfg.SetBridgeEnabled(enabled)
			if enabled {
				p.startBridge()
			} else {
				p.stopBridge()
			}
		},
	}, panel)

	sm.CreateButtonSetting(&setting.ButtonConfig{
		Name:        "Oppdateringssjekk",
		Label:       sm.CreateSettingTitleLabel("Oppdateringer"),
		HelpContent: sm.CreateSettingDescriptionLabel("Se etter en nyere versjon med oppdatert kartkatalog."),
		ButtonText:  "Se etter oppdateringer",
		OnPressed: func() {
			go p.checkForUpdates(true)
		},
	}, panel)

	return panel
}

func (p *Plugin) startBridge() {
	if !p.bridgeUp.TestAndSet() {
		return
	}

	go func() {
		log.Printf("Starting bridge on %s", api.ListenAddr)
		if err := p.bridge.Start(); err != nil {
			log.Printf("Bridge stopped: %v", err)
		}
		p.bridgeUp.Set(false)
	}()
}

func (p *Plugin) stopBridge() {
	if !p.bridgeUp.Value() {
		return
	}
	if err := p.bridge.Stop(); err != nil {
		log.Printf("Bridge shutdown failed: %v", err)
	}
}

// checkForUpdates polls for a newer release. Silent when nothing is newer
// unless the user asked explicitly.
func (p *Plugin) checkForUpdates(manual bool) {
	result, err := util.CheckForUpdates(nil)
	if err != nil {
		log.Printf("Update check failed: %v", err)
		if manual {
			p.mgr.NotifyUser(config.AppName, "Kunne ikke sjekke etter oppdateringer.")
		}
		return
	}

	if result.UpdateAvailable {
		p.mgr.NotifyUser(config.AppName,
			fmt.Sprintf("Versjon %s er tilgjengelig (du har %s).", result.LatestVersion, result.CurrentVersion))
		return
	}
	if manual {
		p.mgr.NotifyUser(config.AppName, "Du har nyeste versjon.")
	}
}
