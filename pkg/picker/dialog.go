package picker

import (
	"bytes"
	"errors"
	"image/png"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/pkg/preview"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// Dialog geometry, matching the layout the catalog previews are composed
// for.
const (
	previewW = 550
	previewH = 220
	iconSize = 50
	dialogW  = 900
	dialogH  = 580
)

// Dialog is the Fyne view over a Controller.
type Dialog struct {
	ctrl     *Controller
	renderer *preview.Renderer
	win      fyne.Window
	dlg      dialog.Dialog
	onDone   func(Result)

	search       *widget.Entry
	list         *widget.List
	previewImg   *canvas.Image
	titleLabel   *widget.Label
	descLabel    *widget.Label
	linksBox     *fyne.Container
	offeringGrp  *widget.RadioGroup
	variantGrp   *widget.RadioGroup
	offeringKeys map[string]string // radio option label -> offering key

	thumbs   map[string]fyne.Resource
	updating bool // guards radio callbacks during programmatic refresh
}

// Show opens the picker over the given window. onDone receives the dialog
// result after it closes.
func Show(win fyne.Window, cat *catalog.Catalog, renderer *preview.Renderer, adder LayerAdder, onDone func(Result)) *Dialog {
	d := &Dialog{
		ctrl:     NewController(cat.Services, adder),
		renderer: renderer,
		win:      win,
		onDone:   onDone,
		thumbs:   make(map[string]fyne.Resource),
	}
	d.build()
	d.refresh()
	d.dlg.Show()
	return d
}

func (d *Dialog) build() {
	d.search = widget.NewEntry()
	d.search.SetPlaceHolder("Søk…")
	d.search.OnChanged = func(q string) {
		d.ctrl.SetQuery(q)
		d.refresh()
	}

	d.list = widget.NewList(
		func() int {
			return len(d.ctrl.Visible())
		},
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(nil), widget.NewLabel("Placeholder"))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			visible := d.ctrl.Visible()
			if i >= len(visible) {
				return
			}
			entry := visible[i]
			c := o.(*fyne.Container)
			c.Objects[0].(*widget.Icon).SetResource(d.thumb(&entry))
			c.Objects[1].(*widget.Label).SetText(entry.Name)
		},
	)
	d.list.OnSelected = func(i widget.ListItemID) {
		if d.updating {
			return
		}
		d.ctrl.SelectIndex(i)
		d.refreshDetails()
	}

	d.previewImg = canvas.NewImageFromImage(preview.Placeholder(previewW, previewH))
	d.previewImg.FillMode = canvas.ImageFillContain
	d.previewImg.SetMinSize(fyne.NewSize(previewW, previewH))

	d.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	d.descLabel = widget.NewLabel("")
	d.descLabel.Wrapping = fyne.TextWrapWord
	d.linksBox = container.NewHBox()

	d.offeringGrp = widget.NewRadioGroup(nil, func(label string) {
		if d.updating {
			return
		}
		d.ctrl.SelectOffering(d.offeringKeys[label])
		d.refreshDetails()
	})
	d.offeringGrp.Horizontal = true

	d.variantGrp = widget.NewRadioGroup(nil, func(label string) {
		if d.updating {
			return
		}
		d.ctrl.SelectVariant(label)
		d.refreshDetails()
	})

	confirmBtn := newButton("Legg til", RoleConfirm, d.confirm)
	cancelBtn := newButton("Avbryt", RoleDismiss, func() {
		d.close(Cancelled)
	})

	left := container.NewBorder(d.search, nil, nil, nil, d.list)
	right := container.NewVBox(
		d.previewImg,
		d.titleLabel,
		d.descLabel,
		d.linksBox,
		widget.NewCard("", "Velg tjenestetype", d.offeringGrp),
		widget.NewCard("", "Velg tileset / projeksjon", d.variantGrp),
	)

	content := container.NewBorder(
		widget.NewLabel("Velg et bakgrunnskart:"),
		container.NewHBox(widget.NewSeparator(), confirmBtn, cancelBtn),
		nil, nil,
		container.NewHSplit(left, container.NewVScroll(right)),
	)

	d.dlg = dialog.NewCustomWithoutButtons("Bakgrunnskart", content, d.win)
	d.dlg.Resize(fyne.NewSize(dialogW, dialogH))
	d.dlg.SetOnClosed(func() {
		if d.onDone != nil && d.ctrl.Phase() != Confirmed {
			done := d.onDone
			d.onDone = nil
			done(Cancelled)
		}
	})
}

// confirm runs the write path. An incomplete selection gets an
// informational nudge; a host rejection gets a dismissible error notice and
// the dialog stays open.
func (d *Dialog) confirm() {
	err := d.ctrl.Confirm()
	switch {
	case errors.Is(err, ErrNoSelection):
		dialog.ShowInformation("Bakgrunnskart", "Velg en tjeneste først.", d.win)
	case err != nil:
		log.Printf("Layer insertion failed: %v", err)
		dialog.ShowError(err, d.win)
	default:
		d.close(Accepted)
	}
}

func (d *Dialog) close(r Result) {
	done := d.onDone
	d.onDone = nil
	d.dlg.Hide()
	if done != nil {
		done(r)
	}
}

// refresh re-renders the list and the detail panel after a filter change.
func (d *Dialog) refresh() {
	d.updating = true
	d.list.Refresh()
	if i := d.ctrl.SelectedIndex(); i >= 0 {
		d.list.Select(i)
	} else {
		d.list.UnselectAll()
	}
	d.updating = false

	d.refreshDetails()
}

// refreshDetails re-renders the right panel from the controller state.
func (d *Dialog) refreshDetails() {
	d.updating = true
	defer func() { d.updating = false }()

	entry := d.ctrl.SelectedEntry()
	if entry == nil {
		d.previewImg.Image = preview.Placeholder(previewW, previewH)
		d.previewImg.Refresh()
		d.titleLabel.SetText("")
		d.descLabel.SetText("")
		d.linksBox.RemoveAll()
		d.offeringGrp.Options = nil
		d.offeringGrp.Selected = ""
		d.offeringGrp.Refresh()
		d.variantGrp.Options = nil
		d.variantGrp.Selected = ""
		d.variantGrp.Refresh()
		return
	}

	dpr := d.dpr()
	d.previewImg.Image = d.renderer.Banner(entry.Preview, previewW, previewH, dpr)
	d.previewImg.Refresh()

	d.titleLabel.SetText(entry.Name)
	d.descLabel.SetText(catalog.StripMarkup(entry.Description))

	d.linksBox.RemoveAll()
	for _, link := range catalog.Links(entry.Description) {
		if u, err := url.Parse(link.URL); err == nil {
			d.linksBox.Add(widget.NewHyperlink(link.Text, u))
		}
	}
	d.linksBox.Refresh()

	sel := d.ctrl.Selection()

	d.offeringKeys = make(map[string]string, len(entry.Offerings))
	var offeringOptions []string
	var selectedOffering string
	for _, k := range entry.OfferingKeys() {
		off := entry.Offerings[k]
		label := off.Label
		if label == "" {
			label = k
		}
		offeringOptions = append(offeringOptions, label)
		d.offeringKeys[label] = k
		if k == sel.OfferingKey() {
			selectedOffering = label
		}
	}
	d.offeringGrp.Options = offeringOptions
	d.offeringGrp.Selected = selectedOffering
	d.offeringGrp.Refresh()

	var variantOptions []string
	if key := sel.OfferingKey(); key != "" {
		for _, v := range entry.Offerings[key].Variants {
			variantOptions = append(variantOptions, v.Label)
		}
	}
	d.variantGrp.Options = variantOptions
	d.variantGrp.Selected = sel.VariantLabel()
	d.variantGrp.Refresh()
}

// thumb returns the cached list icon for an entry.
func (d *Dialog) thumb(entry *catalog.ServiceEntry) fyne.Resource {
	if res, ok := d.thumbs[entry.ID]; ok {
		return res
	}

	ref := entry.Thumb
	if ref == "" {
		ref = entry.Preview
	}
	img := d.renderer.Thumbnail(ref, iconSize, d.dpr())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("Encoding thumbnail for %s: %v", entry.ID, err)
		return nil
	}

	res := fyne.NewStaticResource(entry.ID+"_thumb.png", buf.Bytes())
	d.thumbs[entry.ID] = res
	return res
}

func (d *Dialog) dpr() float32 {
	if d.win == nil || d.win.Canvas() == nil {
		return 1
	}
	if s := d.win.Canvas().Scale(); s > 0 {
		return s
	}
	return 1
}
