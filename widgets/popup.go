package widgets

import (
	"strings"
)

// Popup is the floating panel anchored under a host panel. It starts hidden
// and has no state beyond visible/hidden.
type Popup struct {
	Element
	anchor        *FlowPanel
	children      []Widget
	onCloseReq    func()
	reserveSpace  bool
	positionTicks int
	detached      bool
}

func NewPopup(anchor *FlowPanel) *Popup {
	p := &Popup{Element: NewElement(), anchor: anchor, reserveSpace: true}
	p.SetVisible(false)
	return p
}

func (p *Popup) Anchor() *FlowPanel { return p.anchor }

func (p *Popup) Add(w Widget) {
	if w == nil {
		return
	}
	w.Base().setParent(&p.Element)
	p.children = append(p.children, w)
}

func (p *Popup) Children() []Widget {
	return append([]Widget(nil), p.children...)
}

func (p *Popup) Show() { p.SetVisible(true) }

func (p *Popup) Hide() { p.SetVisible(false) }

// UpdatePosition re-anchors the popup under its host. Hosts read Positions
// to know a re-layout was requested.
func (p *Popup) UpdatePosition() { p.positionTicks++ }

func (p *Popup) Positions() int { return p.positionTicks }

// SetCloseRequestListener installs the single callback invoked when the
// popup asks to be closed, for example after a click outside of it.
func (p *Popup) SetCloseRequestListener(fn func()) { p.onCloseReq = fn }

// RequestClose notifies the close-request listener, if any.
func (p *Popup) RequestClose() {
	if p.onCloseReq != nil {
		p.onCloseReq()
	}
}

// DisableSpaceWhenOpened makes hosts draw the popup over the rows below its
// anchor instead of pushing them down.
func (p *Popup) DisableSpaceWhenOpened() { p.reserveSpace = false }

func (p *Popup) ReservesSpace() bool { return p.reserveSpace }

// RemoveFromParent detaches the popup from its anchor and hides it.
func (p *Popup) RemoveFromParent() {
	p.detached = true
	p.anchor = nil
	p.setParent(nil)
	p.Hide()
}

func (p *Popup) IsDetached() bool { return p.detached }

// HandleKey offers ev to each child that consumes keys, stopping at the first
// one that uses it.
func (p *Popup) HandleKey(ev KeyEvent) bool {
	if !p.IsVisible() {
		return false
	}
	for _, child := range p.children {
		if !child.Base().IsVisible() {
			continue
		}
		if kc, ok := child.(KeyConsumer); ok && kc.HandleKey(ev) {
			return true
		}
	}
	return false
}

func (p *Popup) Render(width, height int) string {
	if !p.IsVisible() {
		return ""
	}
	inner := width - 4
	parts := make([]string, 0, len(p.children))
	for _, child := range p.children {
		if !child.Base().IsVisible() {
			continue
		}
		if out := child.Render(inner, height); out != "" {
			parts = append(parts, out)
		}
	}
	return PopupCardStyle.Inherit(StyleFor(&p.Element)).Render(strings.Join(parts, "\n"))
}
