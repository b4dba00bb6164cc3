package widgets

import (
	"sort"

	"github.com/google/uuid"
)

// TabIndexMode controls how an element takes keyboard focus.
type TabIndexMode int

const (
	// TabIndexNone means the element never takes focus.
	TabIndexNone TabIndexMode = iota
	// TabIndexTabulable puts the element in the tab ring.
	TabIndexTabulable
	// TabIndexFocusable allows programmatic focus only.
	TabIndexFocusable
)

func (m TabIndexMode) String() string {
	switch m {
	case TabIndexTabulable:
		return "tabulable"
	case TabIndexFocusable:
		return "focusable"
	default:
		return "none"
	}
}

// Widget is anything that can be placed in a panel and rendered.
type Widget interface {
	Base() *Element
	Render(width, height int) string
}

// Element carries the state shared by every primitive.
type Element struct {
	id         string
	styles     map[string]struct{}
	attributes map[string]string
	tabIndex   TabIndexMode
	hidden     bool
	title      string
	parent     *Element
	destroy    map[string]func()
}

// NewElement returns an element with a fresh id. Widgets outside this package
// embed it the way Button and Label do.
func NewElement() Element {
	return Element{
		id:         uuid.NewString(),
		styles:     make(map[string]struct{}),
		attributes: make(map[string]string),
	}
}

func (e *Element) Base() *Element { return e }

func (e *Element) ID() string { return e.id }

func (e *Element) AddStyleName(name string) {
	if name == "" {
		return
	}
	e.styles[name] = struct{}{}
}

func (e *Element) RemoveStyleName(name string) {
	delete(e.styles, name)
}

func (e *Element) HasStyleName(name string) bool {
	_, ok := e.styles[name]
	return ok
}

// StyleNames returns the style names in sorted order.
func (e *Element) StyleNames() []string {
	out := make([]string, 0, len(e.styles))
	for name := range e.styles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (e *Element) SetAttribute(name, value string) {
	e.attributes[name] = value
}

func (e *Element) Attribute(name string) string {
	return e.attributes[name]
}

func (e *Element) SetTabIndex(mode TabIndexMode) { e.tabIndex = mode }

func (e *Element) TabIndex() TabIndexMode { return e.tabIndex }

func (e *Element) SetVisible(visible bool) { e.hidden = !visible }

func (e *Element) IsVisible() bool { return !e.hidden }

// SetTitle sets the tooltip text.
func (e *Element) SetTitle(title string) { e.title = title }

func (e *Element) Title() string { return e.title }

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(parent *Element) { e.parent = parent }

// SetDestroyListener registers fn under name, replacing any listener already
// registered under the same name.
func (e *Element) SetDestroyListener(name string, fn func()) {
	if e.destroy == nil {
		e.destroy = make(map[string]func())
	}
	e.destroy[name] = fn
}

// Destroy runs and then drops every destroy listener.
func (e *Element) Destroy() {
	listeners := e.destroy
	e.destroy = nil
	for _, fn := range listeners {
		if fn != nil {
			fn()
		}
	}
}

func (e *Element) DestroyListenerCount() int { return len(e.destroy) }
