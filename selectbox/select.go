// Package selectbox provides list controls built on the dropdown container:
// Single picks one item, Multi checks any number of them.
package selectbox

import (
	"strings"

	"github.com/jask/dropdown/dropdown"
	"github.com/jask/dropdown/widgets"
)

// Config extends the shared dropdown settings with list options.
type Config struct {
	dropdown.Configuration
	VisibleRows int
}

func DefaultConfig() Config {
	return Config{Configuration: dropdown.DefaultConfiguration(), VisibleRows: defaultVisibleRows}
}

// Single selects one item id. Enter picks the row under the cursor and
// closes the popup.
type Single struct {
	*dropdown.Container[string, Config]
	dropdown.NoopHooks

	value  string
	picker *Picker
	list   *ListContent
}

func NewSingle(cfg Config, items []Item) *Single {
	s := &Single{picker: NewPicker(items, false)}
	s.list = newListContent(s.picker, cfg.VisibleRows, s.onResult)
	s.Container = dropdown.New[string](cfg, dropdown.Model[string](s))
	return s
}

func (s *Single) Value() string { return s.value }

// SetValue stores id and refreshes the trigger text. Unknown ids are kept;
// they display as the raw id.
func (s *Single) SetValue(id string) {
	s.value = id
	s.UpdateTitle(id)
}

func (s *Single) IsValueEmpty(id string) bool { return id == "" }

func (s *Single) CreateDefaultContent() widgets.Widget { return s.list }

func (s *Single) EnableDefaultContent(enabled bool) { s.list.SetVisible(enabled) }

func (s *Single) AppendDisplayValue(b *strings.Builder, id string) {
	if it, ok := s.picker.Lookup(id); ok {
		b.WriteString(it.Label)
		return
	}
	b.WriteString(id)
}

func (s *Single) BeforeContainerVisible() {
	s.picker.SetQuery("")
	s.picker.MoveTo(s.value)
}

func (s *Single) List() *ListContent { return s.list }

func (s *Single) onResult(res Result) {
	switch res.Action {
	case ActionChosen:
		s.SetValue(res.Item.ID)
		s.FireValueChange()
		s.Close()
	case ActionCancelled:
		s.Close()
	}
}

// Encode returns the value in its stored form.
func (s *Single) Encode() string { return s.value }

// Decode restores a stored value without firing change events.
func (s *Single) Decode(stored string) { s.SetValue(stored) }

// Multi checks any number of items. Every toggle changes the value and fires
// a change event; Enter closes the popup.
type Multi struct {
	*dropdown.Container[[]string, Config]
	dropdown.NoopHooks

	picker *Picker
	list   *ListContent
}

func NewMulti(cfg Config, items []Item) *Multi {
	m := &Multi{picker: NewPicker(items, true)}
	m.list = newListContent(m.picker, cfg.VisibleRows, m.onResult)
	m.Container = dropdown.New[[]string](cfg, dropdown.Model[[]string](m))
	return m
}

// Value returns the checked ids in item order, nil when nothing is checked.
func (m *Multi) Value() []string { return m.picker.Checked() }

func (m *Multi) SetValue(ids []string) {
	m.picker.SetChecked(ids)
	m.UpdateTitle(m.Value())
}

func (m *Multi) IsValueEmpty(ids []string) bool { return len(ids) == 0 }

func (m *Multi) CreateDefaultContent() widgets.Widget { return m.list }

func (m *Multi) EnableDefaultContent(enabled bool) { m.list.SetVisible(enabled) }

func (m *Multi) AppendDisplayValue(b *strings.Builder, ids []string) {
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		if it, ok := m.picker.Lookup(id); ok {
			b.WriteString(it.Label)
		} else {
			b.WriteString(id)
		}
	}
}

func (m *Multi) BeforeContainerVisible() { m.picker.SetQuery("") }

func (m *Multi) AfterContainerClose() { m.list.SetFocused(false) }

func (m *Multi) IsContainerFocusable() bool { return true }

func (m *Multi) FocusContainer() { m.list.SetFocused(true) }

func (m *Multi) List() *ListContent { return m.list }

func (m *Multi) onResult(res Result) {
	switch res.Action {
	case ActionToggled:
		m.FireValueChange()
	case ActionChosen, ActionCancelled:
		m.Close()
	}
}

func (m *Multi) Encode() string { return strings.Join(m.Value(), ",") }

func (m *Multi) Decode(stored string) {
	if stored == "" {
		m.SetValue(nil)
		return
	}
	m.SetValue(strings.Split(stored, ","))
}
