package ui

import (
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/geonorge-tools/bakgrunnskart/asset"
	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/pkg/host"
	"github.com/geonorge-tools/bakgrunnskart/pkg/ui/setting"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// BakgrunnskartApp is the desktop shell. It owns the Fyne app, the open map
// project, the tray menu and the registered plugins.
type BakgrunnskartApp struct {
	app      fyne.App
	win      fyne.Window
	assetMgr *asset.Manager
	trayMenu *fyne.Menu
	prefs    fyne.Preferences
	cfg      *config.AppConfig
	project  *host.Project

	plugins   map[string]Plugin
	notifiers []Notifier
	mu        sync.Mutex
}

var (
	instance *BakgrunnskartApp
	once     sync.Once
)

// GetInstance returns the singleton instance of the application shell.
func GetInstance() *BakgrunnskartApp {
	a := app.NewWithID(config.AppID)
	once.Do(func() {
		instance = &BakgrunnskartApp{
			app:      a,
			assetMgr: asset.NewManager(),
			prefs:    a.Preferences(),
			cfg:      config.NewAppConfig(a.Preferences()),
			project:  host.NewProject(),
			plugins:  make(map[string]Plugin),
		}
		instance.createMainWindow()
		instance.createTrayMenu()
	})
	return instance
}

func (ba *BakgrunnskartApp) createMainWindow() {
	win := ba.app.NewWindow(config.AppName)
	win.Resize(fyne.NewSize(420, 520))
	win.CenterOnScreen()
	win.SetContent(ba.layerPanel())
	if icon, err := ba.assetMgr.GetIcon("bakgrunnskart.png"); err == nil {
		ba.app.SetIcon(icon)
	}
	ba.win = win
}

// layerPanel renders the project's layer tree, newest layer on top within
// each group.
func (ba *BakgrunnskartApp) layerPanel() fyne.CanvasObject {
	box := container.NewVBox()
	refresh := func() {
		box.RemoveAll()
		groups := ba.project.Groups()
		if len(groups) == 0 {
			empty := widget.NewLabel("Ingen kartlag ennå.")
			empty.Importance = widget.LowImportance
			box.Add(empty)
		}
		for _, g := range groups {
			title := widget.NewLabel(g.Name())
			title.TextStyle = fyne.TextStyle{Bold: true}
			box.Add(title)
			for _, l := range g.Layers() {
				box.Add(widget.NewLabel("    " + l.Title))
			}
		}
		box.Refresh()
	}
	refresh()
	ba.project.OnChange(func() {
		fyne.Do(refresh)
	})
	return container.NewVScroll(box)
}

// createTrayMenu builds the base tray menu. Plugin items are spliced in by
// RefreshTrayMenu after registration.
func (ba *BakgrunnskartApp) createTrayMenu() {
	desk, ok := ba.app.(desktop.App)
	if !ok {
		log.Println("Tray icon not supported on this platform")
		return
	}

	items := []*fyne.MenuItem{}
	for _, p := range ba.plugins {
		items = append(items, p.CreateTrayMenuItems()...)
		items = append(items, fyne.NewMenuItemSeparator())
	}

	items = append(items,
		ba.CreateMenuItem("Innstillinger", func() {
			go ba.CreatePreferencesWindow()
		}, "settings.png"),
		ba.CreateMenuItem("Om "+config.AppName, func() {
			go ba.showAbout()
		}, "bakgrunnskart.png"),
		fyne.NewMenuItemSeparator(),
		ba.CreateMenuItem("Avslutt", func() {
			ba.app.Quit()
		}, ""),
	)

	trayMenu := fyne.NewMenu(config.AppName, items...)
	desk.SetSystemTrayMenu(trayMenu)
	if icon, err := ba.assetMgr.GetIcon("bakgrunnskart.png"); err == nil {
		desk.SetSystemTrayIcon(icon)
	}
	ba.trayMenu = trayMenu
}

// RefreshTrayMenu rebuilds the tray menu, picking up plugin item changes.
func (ba *BakgrunnskartApp) RefreshTrayMenu() {
	ba.createTrayMenu()
}

// CreateMenuItem creates a menu item with an optional bundled icon.
func (ba *BakgrunnskartApp) CreateMenuItem(label string, action func(), iconName string) *fyne.MenuItem {
	mi := fyne.NewMenuItem(label, action)
	if iconName == "" {
		return mi
	}
	icon, err := ba.assetMgr.GetIcon(iconName)
	if err != nil {
		log.Printf("Failed to load icon: %v", err)
		return mi
	}
	mi.Icon = icon
	return mi
}

// CreateToggleMenuItem creates a checkable menu item.
func (ba *BakgrunnskartApp) CreateToggleMenuItem(label string, action func(bool), iconName string, checked bool) *fyne.MenuItem {
	var mi *fyne.MenuItem
	mi = ba.CreateMenuItem(label, func() {
		mi.Checked = !mi.Checked
		action(mi.Checked)
		ba.RefreshTrayMenu()
	}, iconName)
	mi.Checked = checked
	return mi
}

// Register registers a plugin and activates it.
func (ba *BakgrunnskartApp) Register(p Plugin) {
	ba.mu.Lock()
	ba.plugins[p.Name()] = p
	ba.mu.Unlock()

	p.Init(ba)
	p.Activate()
	ba.RefreshTrayMenu()
	log.Printf("Registered plugin: %s", p.Name())
}

// Deregister deactivates and removes a plugin.
func (ba *BakgrunnskartApp) Deregister(p Plugin) {
	ba.mu.Lock()
	delete(ba.plugins, p.Name())
	ba.mu.Unlock()

	p.Deactivate()
	ba.RefreshTrayMenu()
}

// NotifyUser sends a system notification when enabled, and fans out to all
// registered notifiers.
func (ba *BakgrunnskartApp) NotifyUser(title, message string) {
	if ba.cfg.GetAppNotificationsEnabled() {
		ba.app.SendNotification(fyne.NewNotification(title, message))
	}
	ba.mu.Lock()
	notifiers := append([]Notifier(nil), ba.notifiers...)
	ba.mu.Unlock()
	for _, n := range notifiers {
		n(title, message)
	}
}

// RegisterNotifier adds a notification listener.
func (ba *BakgrunnskartApp) RegisterNotifier(n Notifier) {
	ba.mu.Lock()
	defer ba.mu.Unlock()
	ba.notifiers = append(ba.notifiers, n)
}

// OpenURL opens a URL in the default browser.
func (ba *BakgrunnskartApp) OpenURL(u *url.URL) error {
	return ba.app.OpenURL(u)
}

// GetPreferences returns the preferences for the application.
func (ba *BakgrunnskartApp) GetPreferences() fyne.Preferences {
	return ba.prefs
}

// GetAssetManager returns the asset manager.
func (ba *BakgrunnskartApp) GetAssetManager() *asset.Manager {
	return ba.assetMgr
}

// GetProject returns the open map project.
func (ba *BakgrunnskartApp) GetProject() *host.Project {
	return ba.project
}

// Window returns the main window.
func (ba *BakgrunnskartApp) Window() fyne.Window {
	return ba.win
}

// CreatePreferencesWindow creates and displays the preferences window with
// one panel per registered plugin plus the application panel.
func (ba *BakgrunnskartApp) CreatePreferencesWindow() {
	prefsWindow := ba.app.NewWindow(config.AppName + " innstillinger")
	prefsWindow.Resize(fyne.NewSize(700, 600))
	prefsWindow.CenterOnScreen()

	sm := NewSettingsManager(prefsWindow)
	panels := container.NewVBox(ba.createAppPreferences(sm))
	ba.mu.Lock()
	for _, p := range ba.plugins {
		panels.Add(widget.NewSeparator())
		panels.Add(p.CreatePrefsPanel(sm))
	}
	ba.mu.Unlock()

	closeButton := widget.NewButton("Lukk", func() {
		prefsWindow.Close()
	})
	bottom := container.NewHBox(layout.NewSpacer(), sm.GetApplySettingsButton(), closeButton)

	prefsWindow.SetContent(container.NewBorder(nil, bottom, nil, nil, container.NewVScroll(panels)))
	prefsWindow.Show()
}

// createAppPreferences builds the application-wide settings panel.
func (ba *BakgrunnskartApp) createAppPreferences(sm setting.SettingsManager) *fyne.Container {
	panel := container.NewVBox(sm.CreateSectionTitleLabel("Program"))

	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         "Varsler",
		InitialValue: ba.cfg.GetAppNotificationsEnabled(),
		Label:        sm.CreateSettingTitleLabel("Systemvarsler"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Vis et varsel når et kartlag legges til."),
		ApplyFunc:    ba.cfg.SetAppNotificationsEnabled,
	}, panel)

	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         "Oppdateringer",
		InitialValue: ba.cfg.GetUpdateCheckEnabled(),
		Label:        sm.CreateSettingTitleLabel("Se etter oppdateringer"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Sjekk automatisk om en nyere versjon er tilgjengelig."),
		ApplyFunc:    ba.cfg.SetUpdateCheckEnabled,
	}, panel)

	return panel
}

// showAbout displays the about window with the bundled attribution text.
func (ba *BakgrunnskartApp) showAbout() {
	aboutText, err := ba.assetMgr.GetText("about.txt")
	if err != nil {
		log.Printf("Error loading about text: %v", err)
		return
	}

	aboutWindow := ba.app.NewWindow("Om " + config.AppName)
	aboutWindow.Resize(fyne.NewSize(500, 400))
	aboutWindow.CenterOnScreen()

	text := widget.NewRichTextWithText(aboutText)
	text.Wrapping = fyne.TextWrapWord

	version := widget.NewLabel("Versjon: " + config.AppVersion)
	version.Importance = widget.LowImportance

	aboutWindow.SetContent(container.NewBorder(nil, version, nil, nil, container.NewVScroll(text)))
	aboutWindow.Show()
}

// Preferences returns the preferences for the application.
func (ba *BakgrunnskartApp) Preferences() fyne.Preferences {
	return ba.prefs
}

// Lifecycle returns the application lifecycle.
func (ba *BakgrunnskartApp) Lifecycle() fyne.Lifecycle {
	return ba.app.Lifecycle()
}

// Start shows the main window and runs the application main loop.
func (ba *BakgrunnskartApp) Start() {
	ba.win.Show()
	ba.app.Run()
}
