package widgets

import (
	"strings"
)

// FlowPanel lays its children out on one line and is the focus target for
// keyboard interaction.
type FlowPanel struct {
	Element
	children    []Widget
	focused     bool
	stopped     map[EventType]bool
	focusFns    []func(FocusEvent)
	blurFns     []func(BlurEvent)
	keyUpFns    []func(KeyEvent)
	initFns     []func()
	initialized bool
}

func NewFlowPanel() *FlowPanel {
	return &FlowPanel{Element: NewElement(), stopped: make(map[EventType]bool)}
}

func (p *FlowPanel) Add(w Widget) {
	if w == nil {
		return
	}
	w.Base().setParent(&p.Element)
	p.children = append(p.children, w)
}

func (p *FlowPanel) Children() []Widget {
	return append([]Widget(nil), p.children...)
}

// StopEvent keeps events of type t from bubbling past this panel.
func (p *FlowPanel) StopEvent(t EventType) { p.stopped[t] = true }

func (p *FlowPanel) IsEventStopped(t EventType) bool { return p.stopped[t] }

func (p *FlowPanel) AddFocusHandler(fn func(FocusEvent)) { p.focusFns = append(p.focusFns, fn) }

func (p *FlowPanel) AddBlurHandler(fn func(BlurEvent)) { p.blurFns = append(p.blurFns, fn) }

func (p *FlowPanel) AddKeyUpHandler(fn func(KeyEvent)) { p.keyUpFns = append(p.keyUpFns, fn) }

// AddInitializeListener queues fn to run when the panel is first attached to
// a live host. On an attached panel fn runs immediately.
func (p *FlowPanel) AddInitializeListener(fn func()) {
	if fn == nil {
		return
	}
	if p.initialized {
		fn()
		return
	}
	p.initFns = append(p.initFns, fn)
}

// Attach marks the panel as materialized by a host and fires the initialize
// listeners once.
func (p *FlowPanel) Attach() {
	if p.initialized {
		return
	}
	p.initialized = true
	fns := p.initFns
	p.initFns = nil
	for _, fn := range fns {
		fn()
	}
}

func (p *FlowPanel) IsAttached() bool { return p.initialized }

func (p *FlowPanel) IsFocused() bool { return p.focused }

// Focus gives the panel keyboard focus. Panels with TabIndexNone refuse.
func (p *FlowPanel) Focus() {
	if p.focused || p.TabIndex() == TabIndexNone {
		return
	}
	p.focused = true
	ev := FocusEvent{Source: p}
	for _, fn := range p.focusFns {
		fn(ev)
	}
}

func (p *FlowPanel) Blur() {
	if !p.focused {
		return
	}
	p.focused = false
	ev := BlurEvent{Source: p}
	for _, fn := range p.blurFns {
		fn(ev)
	}
}

// KeyUp delivers a released key. It reports whether the panel stopped the
// event from bubbling further.
func (p *FlowPanel) KeyUp(ev KeyEvent) bool {
	for _, fn := range p.keyUpFns {
		fn(ev)
	}
	return p.stopped[EventKey]
}

func (p *FlowPanel) Render(width, height int) string {
	if !p.IsVisible() {
		return ""
	}
	parts := make([]string, 0, len(p.children))
	for _, child := range p.children {
		if !child.Base().IsVisible() {
			continue
		}
		parts = append(parts, child.Render(0, height))
	}
	out := StyleFor(&p.Element).Render(strings.Join(parts, " "))
	return padRightANSI(out, width)
}

// ButtonSpans reports the column range each visible button child occupies in
// Render output, for mouse hit-testing.
func (p *FlowPanel) ButtonSpans() []Span {
	var out []Span
	col := 0
	first := true
	for _, child := range p.children {
		if !child.Base().IsVisible() {
			continue
		}
		if !first {
			col++
		}
		first = false
		w := maxLineWidth(splitToLines(child.Render(0, 1), 0))
		if b, ok := child.(*Button); ok {
			out = append(out, Span{Button: b, Start: col, End: col + w})
		}
		col += w
	}
	return out
}

// Span is a half-open column range [Start, End).
type Span struct {
	Button *Button
	Start  int
	End    int
}

func (s Span) Contains(col int) bool { return col >= s.Start && col < s.End }

// Destroy tears down the panel and then its children.
func (p *FlowPanel) Destroy() {
	p.Element.Destroy()
	for _, child := range p.children {
		child.Base().Destroy()
	}
}
