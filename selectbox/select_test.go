package selectbox

import (
	"strings"
	"testing"

	"github.com/jask/dropdown/dropdown"
	"github.com/jask/dropdown/widgets"
)

func key(name string) widgets.KeyEvent { return widgets.KeyEvent{Key: name} }

func TestSingleEnterSelectsAndCloses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Fruit"
	s := NewSingle(cfg, fruit())
	s.AsWidget().Attach()

	if got := s.MainButton().Text(); got != "Fruit : All" {
		t.Fatalf("initial title = %q", got)
	}

	var changes []string
	s.AddValueChangeHandler(dropdown.ValueChangeFunc(func(ev dropdown.ValueChangeEvent[string]) {
		changes = append(changes, ev.Value)
	}))

	s.Open()
	popup := s.Popup()
	popup.HandleKey(key("b"))
	popup.HandleKey(key("a"))
	popup.HandleKey(key("enter"))

	if s.Value() != "banana" {
		t.Fatalf("value = %q, want banana", s.Value())
	}
	if s.IsOpen() {
		t.Fatalf("enter should close the popup")
	}
	if strings.Join(changes, ",") != "banana" {
		t.Fatalf("changes = %v, want [banana]", changes)
	}
	if got := s.MainButton().Text(); got != "Fruit : Banana" {
		t.Fatalf("title = %q, want label of selection", got)
	}
	if !s.ClearButton().IsVisible() {
		t.Fatalf("clear button should show once a value is set")
	}
}

func TestSingleReopenResetsQueryAndCursor(t *testing.T) {
	s := NewSingle(DefaultConfig(), fruit())
	s.AsWidget().Attach()
	s.SetValue("cherry")

	s.Open()
	if it, _ := s.List().Picker().CurrentItem(); it.ID != "cherry" {
		t.Fatalf("cursor on %q, want current value", it.ID)
	}
	s.Popup().HandleKey(key("x"))
	s.Popup().HandleKey(key("esc"))
	if s.IsOpen() {
		t.Fatalf("esc should close")
	}
	s.Open()
	if q := s.List().Picker().Query(); q != "" {
		t.Fatalf("query = %q, want reset on open", q)
	}
}

func TestSingleClearEmptiesValue(t *testing.T) {
	s := NewSingle(DefaultConfig(), fruit())
	s.AsWidget().Attach()
	s.SetValue("apple")
	s.ClearButton().Click()
	if s.Value() != "" {
		t.Fatalf("value = %q, want empty", s.Value())
	}
	if s.ClearButton().IsVisible() {
		t.Fatalf("clear button should hide after clearing")
	}
	if got := s.MainButton().Text(); got != " : All" {
		t.Fatalf("title = %q, want all label", got)
	}
}

func TestSingleDecodeBeforeAttachShowsOnAttach(t *testing.T) {
	s := NewSingle(DefaultConfig(), fruit())
	s.Decode("grape")
	w := s.AsWidget()
	if got := s.MainButton().Text(); got != "" {
		t.Fatalf("title before attach = %q, want configured title", got)
	}
	w.Attach()
	if got := s.MainButton().Text(); got != " : Green Grape" {
		t.Fatalf("title after attach = %q", got)
	}
	if s.Encode() != "grape" {
		t.Fatalf("encode = %q, want grape", s.Encode())
	}
}

func TestSingleDisabledDefaultContentHidesList(t *testing.T) {
	s := NewSingle(DefaultConfig(), fruit())
	s.AsWidget().Attach()
	s.SetDefaultContentEnabled(false)
	s.Open()
	if s.Popup().HandleKey(key("enter")) {
		t.Fatalf("hidden list should not consume keys")
	}
}

func TestMultiTogglesLiveAndJoinsLabels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Tags"
	m := NewMulti(cfg, fruit())
	m.AsWidget().Attach()

	changes := 0
	m.AddValueChangeHandler(dropdown.ValueChangeFunc(func(ev dropdown.ValueChangeEvent[[]string]) { changes++ }))

	m.Open()
	p := m.Popup()
	p.HandleKey(key(" "))
	p.HandleKey(key("down"))
	p.HandleKey(key("down"))
	p.HandleKey(key("space"))
	if changes != 2 {
		t.Fatalf("changes = %d, want 2", changes)
	}
	if got := strings.Join(m.Value(), ","); got != "apple,banana" {
		t.Fatalf("value = %q, want apple,banana", got)
	}
	if !m.IsOpen() {
		t.Fatalf("toggling should keep the popup open")
	}
	p.HandleKey(key("enter"))
	if m.IsOpen() {
		t.Fatalf("enter should close")
	}
	if got := m.MainButton().Text(); got != "Tags : Apple, Banana" {
		t.Fatalf("title = %q", got)
	}
	if m.Encode() != "apple,banana" {
		t.Fatalf("encode = %q", m.Encode())
	}
}

func TestMultiBlurMovesFocusIntoList(t *testing.T) {
	m := NewMulti(DefaultConfig(), fruit())
	m.AsWidget().Attach()
	m.Focus()
	m.Open()
	m.Blur()
	if !m.IsOpen() {
		t.Fatalf("blur should leave a multi select open")
	}
	if !m.List().IsFocused() {
		t.Fatalf("list should take focus")
	}
	m.Close()
	if m.List().IsFocused() {
		t.Fatalf("list focus should reset on close")
	}
}

func TestMultiDecodeAndClear(t *testing.T) {
	m := NewMulti(DefaultConfig(), fruit())
	m.AsWidget().Attach()
	m.Decode("cherry,apple")
	if got := strings.Join(m.Value(), ","); got != "apple,cherry" {
		t.Fatalf("value = %q, want declaration order", got)
	}
	m.ClearButton().Click()
	if m.Value() != nil {
		t.Fatalf("value = %v, want nil after clear", m.Value())
	}
	m.Decode("")
	if got := m.MainButton().Text(); got != " : All" {
		t.Fatalf("title = %q", got)
	}
}

func TestListContentLeavesTabToHost(t *testing.T) {
	s := NewSingle(DefaultConfig(), fruit())
	s.AsWidget().Attach()
	s.Open()
	if s.Popup().HandleKey(key("tab")) {
		t.Fatalf("tab should not be consumed")
	}
	if !s.Popup().HandleKey(key("q")) {
		t.Fatalf("printable keys should be consumed while open")
	}
}

func TestListContentRender(t *testing.T) {
	m := NewMulti(DefaultConfig(), fruit())
	m.AsWidget().Attach()
	m.SetValue([]string{"banana"})
	out := m.List().Render(40, 0)
	for _, want := range []string{"Filter:", "(type to filter)", "[x]", "[ ]", "Banana", "yellow"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}

	m.List().Picker().SetQuery("zzzz")
	if out := m.List().Render(40, 0); !strings.Contains(out, "no matches") {
		t.Fatalf("empty render missing placeholder:\n%s", out)
	}
}

func TestListContentScrollsWithCursor(t *testing.T) {
	items := make([]Item, 0, 12)
	for _, name := range []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9", "j10", "k11", "l12"} {
		items = append(items, Item{ID: name, Label: name})
	}
	cfg := DefaultConfig()
	cfg.VisibleRows = 3
	s := NewSingle(cfg, items)
	s.AsWidget().Attach()
	for i := 0; i < 5; i++ {
		s.List().Picker().HandleKey("down")
	}
	out := s.List().Render(0, 0)
	if strings.Contains(out, "a1") || !strings.Contains(out, "f6") {
		t.Fatalf("window should follow cursor:\n%s", out)
	}
}
