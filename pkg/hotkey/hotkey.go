// Package hotkey registers the global keyboard shortcuts. The modifier
// constants live in per-platform files because macOS uses Cmd/Option where
// the other platforms use Ctrl/Alt.
package hotkey

import (
	"time"

	"golang.design/x/hotkey"

	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// StartListeners registers the global shortcuts and starts their listener
// goroutines. openPicker opens the basemap picker dialog; addDefault
// inserts the default basemap without showing the dialog.
func StartListeners(openPicker, addDefault func()) {
	// Primary + Alt + B (open picker)
	hkPicker := hotkey.New([]hotkey.Modifier{modPrimary, modSecondary}, hotkey.KeyB)

	// Primary + Alt + N (add default basemap)
	hkDefault := hotkey.New([]hotkey.Modifier{modPrimary, modSecondary}, hotkey.KeyN)

	registerAndListen := func(hk *hotkey.Hotkey, name string, action func()) {
		if action == nil {
			return
		}
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register hotkey %s: %v", name, err)
			return
		}
		log.Printf("Registered hotkey: %s", name)

		go func() {
			for range hk.Keydown() {
				log.Debugf("Hotkey pressed: %s", name)
				action()
				// debounce repeated keydowns from held keys
				time.Sleep(200 * time.Millisecond)
			}
		}()
	}

	registerAndListen(hkPicker, "Open Picker", openPicker)
	registerAndListen(hkDefault, "Add Default Basemap", addDefault)
}
