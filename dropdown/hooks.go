package dropdown

import (
	"reflect"
	"strings"

	"github.com/jask/dropdown/widgets"
)

// Model is what a concrete control supplies: the value it owns and the
// default popup content that edits it.
type Model[V any] interface {
	Value() V
	SetValue(V)
	// IsValueEmpty reports whether v counts as no selection. Nil values never
	// reach it; they are always empty.
	IsValueEmpty(V) bool
	CreateDefaultContent() widgets.Widget
}

// Hooks are the lifecycle callbacks a control may override. Embed NoopHooks
// to get the do-nothing defaults.
type Hooks interface {
	BeforeContainerVisible()
	AfterContainerVisible()
	AfterContainerClose()
	OnFocus()
	// FocusContainer moves focus into the popup. Only called when
	// IsContainerFocusable reports true.
	FocusContainer()
	IsContainerFocusable() bool
}

// NoopHooks implements Hooks with no behavior.
type NoopHooks struct{}

func (NoopHooks) BeforeContainerVisible()    {}
func (NoopHooks) AfterContainerVisible()     {}
func (NoopHooks) AfterContainerClose()       {}
func (NoopHooks) OnFocus()                   {}
func (NoopHooks) FocusContainer()            {}
func (NoopHooks) IsContainerFocusable() bool { return false }

// ValueFormatter renders a non-empty value into the trigger title. Controls
// that don't implement it get fmt.Sprint of the value.
type ValueFormatter[V any] interface {
	AppendDisplayValue(b *strings.Builder, v V)
}

// DefaultContentToggler is implemented by controls whose default content can
// be switched off.
type DefaultContentToggler interface {
	EnableDefaultContent(enabled bool)
}

func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
