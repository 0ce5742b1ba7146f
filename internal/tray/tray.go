// Package tray provides the StayAwake system tray icon using getlantern/systray.
package tray

import (
	"encoding/binary"
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID        int
	Title     string
	Tooltip   string
	Checkable bool
	Disabled  bool
	Callback  func()

	checked bool
	item    *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	title   string
	tooltip string
	items   []*MenuItem
	onReady func()
	quitCh  chan struct{}
}

// New creates a tray with the given title and tooltip. onReady runs once the
// menu has been built.
func New(title, tooltip string, onReady func()) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		items:   make([]*MenuItem, 0),
		onReady: onReady,
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a clickable item and returns its id
func (t *Tray) AddMenuItem(title, tooltip string, callback func()) int {
	return t.add(&MenuItem{Title: title, Tooltip: tooltip, Callback: callback})
}

// AddCheckbox adds an item that carries a check mark
func (t *Tray) AddCheckbox(title, tooltip string, checked bool, callback func()) int {
	return t.add(&MenuItem{Title: title, Tooltip: tooltip, Checkable: true, checked: checked, Callback: callback})
}

// AddLabel adds a disabled, informational item
func (t *Tray) AddLabel(title string) int {
	return t.add(&MenuItem{Title: title, Disabled: true})
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, nil) // nil indicates separator
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

func (t *Tray) lookup(id int) *MenuItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) {
		return nil
	}
	return t.items[id]
}

// SetItemChecked sets the checked state of a checkbox item
func (t *Tray) SetItemChecked(id int, checked bool) {
	mi := t.lookup(id)
	if mi == nil || !mi.Checkable {
		return
	}

	t.mu.Lock()
	mi.checked = checked
	item := mi.item
	t.mu.Unlock()

	if item == nil {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// Checked reports the checked state of a checkbox item
func (t *Tray) Checked(id int) bool {
	mi := t.lookup(id)
	if mi == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return mi.checked
}

// SetItemTitle updates the label of an item
func (t *Tray) SetItemTitle(id int, title string) {
	mi := t.lookup(id)
	if mi == nil {
		return
	}

	t.mu.Lock()
	mi.Title = title
	item := mi.item
	t.mu.Unlock()

	if item != nil {
		item.SetTitle(title)
	}
}

// Run starts the tray event loop. It blocks and must be called from the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(Icon())

	t.mu.Lock()
	items := append([]*MenuItem(nil), t.items...)
	t.mu.Unlock()

	for _, mi := range items {
		if mi == nil {
			systray.AddSeparator()
			continue
		}

		var item *systray.MenuItem
		if mi.Checkable {
			item = systray.AddMenuItemCheckbox(mi.Title, mi.Tooltip, mi.checked)
		} else {
			item = systray.AddMenuItem(mi.Title, mi.Tooltip)
		}
		if mi.Disabled {
			item.Disable()
		}

		t.mu.Lock()
		mi.item = item
		t.mu.Unlock()

		if mi.Callback != nil {
			go t.dispatch(item, mi.Callback)
		}
	}

	if t.onReady != nil {
		t.onReady()
	}
}

// dispatch forwards clicks to callback until the tray exits
func (t *Tray) dispatch(item *systray.MenuItem, callback func()) {
	for {
		select {
		case <-item.ClickedCh:
			callback()
		case <-t.quitCh:
			return
		}
	}
}

const iconSize = 16

// Icon returns a 16x16 32-bit ICO showing a filled circle
func Icon() []byte {
	const (
		headerLen = 6 + 16
		dibLen    = 40
		pixelLen  = iconSize * iconSize * 4
		maskLen   = iconSize * 4 // 1bpp rows padded to 32 bits
	)
	imageLen := dibLen + pixelLen + maskLen

	icon := make([]byte, headerLen+imageLen)
	le := binary.LittleEndian

	// ICONDIR
	le.PutUint16(icon[2:], 1) // type: icon
	le.PutUint16(icon[4:], 1) // count

	// ICONDIRENTRY
	icon[6] = iconSize
	icon[7] = iconSize
	le.PutUint16(icon[10:], 1)  // planes
	le.PutUint16(icon[12:], 32) // bpp
	le.PutUint32(icon[14:], uint32(imageLen))
	le.PutUint32(icon[18:], headerLen)

	// BITMAPINFOHEADER, height doubled for the AND mask
	dib := icon[headerLen:]
	le.PutUint32(dib[0:], dibLen)
	le.PutUint32(dib[4:], iconSize)
	le.PutUint32(dib[8:], iconSize*2)
	le.PutUint16(dib[12:], 1)
	le.PutUint16(dib[14:], 32)
	le.PutUint32(dib[20:], pixelLen)

	// BGRA rows, bottom-up
	pixels := dib[dibLen:]
	const r2 = 7 * 7
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := 2*x-15, 2*y-15
			if dx*dx+dy*dy > 4*r2 {
				continue
			}
			off := (y*iconSize + x) * 4
			pixels[off+0] = 0x3c // B
			pixels[off+1] = 0xb3 // G
			pixels[off+2] = 0xf0 // R
			pixels[off+3] = 0xff // A
		}
	}

	return icon
}
