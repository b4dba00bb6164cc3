package dropdown

// Configuration describes how a container labels itself. The container keeps
// its own copy, so mutating the caller's value after construction has no
// effect.
type Configuration struct {
	Title              string
	TitleDisplayed     bool
	TitlePlaceholder   bool // only applies when TitleDisplayed is set
	TitleSeparator     string
	SelectionDisplayed bool
	AllLabel           string
	ClearLabel         string
	ClearButtonEnabled bool
	// EventOnlyMode leaves the trigger text alone; value display is up to
	// whoever listens to the events.
	EventOnlyMode bool
}

// DefaultConfiguration returns the settings used when a control is declared
// without overrides.
func DefaultConfiguration() Configuration {
	return Configuration{
		TitleDisplayed:     true,
		TitleSeparator:     ":",
		SelectionDisplayed: true,
		AllLabel:           "All",
		ClearLabel:         "Clear",
		ClearButtonEnabled: true,
	}
}

// DropDown lets extended configurations that embed Configuration satisfy
// Configurer.
func (c Configuration) DropDown() Configuration { return c }

// Configurer is any configuration that carries the shared dropdown settings.
type Configurer interface {
	DropDown() Configuration
}
