package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
	Fields   []FieldConfig  `mapstructure:"fields"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title string `mapstructure:"title"`
	Mouse bool   `mapstructure:"mouse"`
	// Remember restores each field's last value from the database.
	Remember bool `mapstructure:"remember"`
}

// FieldConfig declares one dropdown on the demo form. Flags are phrased so
// that the zero value is the usual choice.
type FieldConfig struct {
	ID            string         `mapstructure:"id"`
	Label         string         `mapstructure:"label"`
	Kind          string         `mapstructure:"kind"` // "single" or "multi"
	Title         string         `mapstructure:"title"`
	Placeholder   bool           `mapstructure:"placeholder"`
	HideTitle     bool           `mapstructure:"hide_title"`
	HideSelection bool           `mapstructure:"hide_selection"`
	Separator     string         `mapstructure:"separator"`
	AllLabel      string         `mapstructure:"all_label"`
	NoClear       bool           `mapstructure:"no_clear"`
	Floating      bool           `mapstructure:"floating"`
	Disabled      bool           `mapstructure:"disabled"`
	EventOnly     bool           `mapstructure:"event_only"`
	VisibleRows   int            `mapstructure:"visible_rows"`
	Options       []OptionConfig `mapstructure:"options"`
}

type OptionConfig struct {
	ID    string `mapstructure:"id"`
	Label string `mapstructure:"label"`
	Meta  string `mapstructure:"meta"`
}

const (
	KindSingle = "single"
	KindMulti  = "multi"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "dropdown")
}

// Path resolves the config file location. An explicit path wins, then
// DROPDOWN_CONFIG, then ~/.config/dropdown/config.toml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("DROPDOWN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "dropdown", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// DROPDOWN_. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "dropdown.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "dropdown.log"))
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("ui.title", "Dropdown demo")
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.remember", true)

	v.SetConfigType("toml")
	v.SetConfigFile(Path(path))

	v.SetEnvPrefix("DROPDOWN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.Fields) == 0 {
		c.Fields = DefaultFields()
	}
	for i := range c.Fields {
		if err := c.Fields[i].validate(); err != nil {
			return Config{}, fmt.Errorf("field %d: %w", i, err)
		}
	}
	return c, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (f *FieldConfig) validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("missing id")
	}
	switch f.Kind {
	case "":
		f.Kind = KindSingle
	case KindSingle, KindMulti:
	default:
		return fmt.Errorf("%s: unknown kind %q", f.ID, f.Kind)
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("%s: no options", f.ID)
	}
	if f.Label == "" {
		f.Label = f.ID
	}
	return nil
}

// DefaultFields is the form shown when the config declares none.
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{
			ID: "status", Label: "Status", Kind: KindSingle, Title: "Status",
			Options: []OptionConfig{
				{ID: "open", Label: "Open"},
				{ID: "in_progress", Label: "In progress"},
				{ID: "blocked", Label: "Blocked", Meta: "needs attention"},
				{ID: "done", Label: "Done"},
			},
		},
		{
			ID: "assignee", Label: "Assignee", Kind: KindSingle, Title: "Pick an assignee", Placeholder: true,
			Options: []OptionConfig{
				{ID: "ana", Label: "Ana Lima"},
				{ID: "bo", Label: "Bo Chen"},
				{ID: "cy", Label: "Cy Okafor"},
				{ID: "dee", Label: "Dee Park"},
			},
		},
		{
			ID: "labels", Label: "Labels", Kind: KindMulti, Title: "Labels", Floating: true,
			Options: []OptionConfig{
				{ID: "bug", Label: "bug"},
				{ID: "docs", Label: "docs"},
				{ID: "feature", Label: "feature"},
				{ID: "perf", Label: "perf"},
				{ID: "ux", Label: "ux"},
			},
		},
	}
}

// Save writes cfg to path (resolved like Load), creating the directory.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("log.max_age_days", cfg.Log.MaxAgeDays)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("ui.remember", cfg.UI.Remember)

	fields := make([]map[string]any, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		opts := make([]map[string]any, 0, len(f.Options))
		for _, o := range f.Options {
			opts = append(opts, map[string]any{"id": o.ID, "label": o.Label, "meta": o.Meta})
		}
		fields = append(fields, map[string]any{
			"id":             f.ID,
			"label":          f.Label,
			"kind":           f.Kind,
			"title":          f.Title,
			"placeholder":    f.Placeholder,
			"hide_title":     f.HideTitle,
			"hide_selection": f.HideSelection,
			"separator":      f.Separator,
			"all_label":      f.AllLabel,
			"no_clear":       f.NoClear,
			"floating":       f.Floating,
			"disabled":       f.Disabled,
			"event_only":     f.EventOnly,
			"visible_rows":   f.VisibleRows,
			"options":        opts,
		})
	}
	v.Set("fields", fields)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
