package widgets

import (
	"github.com/charmbracelet/x/ansi"
)

// Button is a single-line clickable label.
type Button struct {
	Element
	text   string
	clicks []func(ClickEvent)
}

func NewButton(text string) *Button {
	return &Button{Element: NewElement(), text: text}
}

func (b *Button) Text() string { return b.text }

func (b *Button) SetText(text string) { b.text = text }

func (b *Button) AddClickHandler(fn func(ClickEvent)) {
	if fn == nil {
		return
	}
	b.clicks = append(b.clicks, fn)
}

// Click dispatches a click to every handler. Hidden buttons ignore clicks.
func (b *Button) Click() {
	if !b.IsVisible() {
		return
	}
	ev := ClickEvent{Source: b}
	for _, fn := range b.clicks {
		fn(ev)
	}
}

func (b *Button) Render(width, _ int) string {
	if !b.IsVisible() {
		return ""
	}
	out := StyleFor(&b.Element).Render(b.text)
	if width > 0 {
		out = ansi.Truncate(out, width, "…")
	}
	return out
}
