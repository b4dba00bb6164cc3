package main

import (
	"context"
	"fmt"

	"github.com/jask/dropdown/dropdown"
	"github.com/jask/dropdown/host"
	"github.com/jask/dropdown/internal/config"
	"github.com/jask/dropdown/internal/logging"
	"github.com/jask/dropdown/internal/store"
	"github.com/jask/dropdown/selectbox"
)

// formControl is the part of Single and Multi the form wiring needs.
type formControl interface {
	host.Control
	Encode() string
	Decode(stored string)
	SetEnabled(enabled bool)
	DisableSpaceWhenOpened()
	AddOpenHandler(h dropdown.OpenHandler)
	AddCloseHandler(h dropdown.CloseHandler)
	AddListener(l dropdown.Listener)
}

func controlConfig(f config.FieldConfig) selectbox.Config {
	cfg := selectbox.DefaultConfig()
	cfg.Title = f.Title
	cfg.TitleDisplayed = !f.HideTitle
	cfg.TitlePlaceholder = f.Placeholder
	cfg.SelectionDisplayed = !f.HideSelection
	cfg.ClearButtonEnabled = !f.NoClear
	cfg.EventOnlyMode = f.EventOnly
	if f.Separator != "" {
		cfg.TitleSeparator = f.Separator
	}
	if f.AllLabel != "" {
		cfg.AllLabel = f.AllLabel
	}
	if f.VisibleRows > 0 {
		cfg.VisibleRows = f.VisibleRows
	}
	return cfg
}

func controlItems(f config.FieldConfig) []selectbox.Item {
	items := make([]selectbox.Item, 0, len(f.Options))
	for _, o := range f.Options {
		label := o.Label
		if label == "" {
			label = o.ID
		}
		items = append(items, selectbox.Item{ID: o.ID, Label: label, Meta: o.Meta})
	}
	return items
}

// buildForm creates one control per field, restores remembered values and
// records every change.
func buildForm(ctx context.Context, cfg config.Config, repo *store.SelectionRepo, logger *logging.Logger) (*host.Model, error) {
	model := host.New(cfg.UI.Title)

	for _, f := range cfg.Fields {
		id := f.ID
		var ctl formControl
		persist := func(value string) {
			logger.Changed(id, value)
			if err := repo.Record(ctx, id, value); err != nil {
				logger.Printf("record %s: %v", id, err)
				model.SetStatus(fmt.Sprintf("could not save %s: %v", id, err))
				return
			}
			model.SetStatus(fmt.Sprintf("saved %s", id))
		}

		switch f.Kind {
		case config.KindMulti:
			m := selectbox.NewMulti(controlConfig(f), controlItems(f))
			m.AddValueChangeHandler(dropdown.ValueChangeFunc(func(dropdown.ValueChangeEvent[[]string]) {
				persist(m.Encode())
			}))
			ctl = m
		default:
			s := selectbox.NewSingle(controlConfig(f), controlItems(f))
			s.AddValueChangeHandler(dropdown.ValueChangeFunc(func(ev dropdown.ValueChangeEvent[string]) {
				persist(ev.Value)
			}))
			ctl = s
		}

		ctl.AddOpenHandler(dropdown.OpenFunc(func(dropdown.OpenEvent) { logger.Opened(id) }))
		ctl.AddCloseHandler(dropdown.CloseFunc(func(dropdown.CloseEvent) { logger.Closed(id) }))
		ctl.AddListener(dropdown.ListenerFunc(func() { logger.Cleared(id) }))
		if f.Floating {
			ctl.DisableSpaceWhenOpened()
		}
		if f.Disabled {
			ctl.SetEnabled(false)
		}

		if cfg.UI.Remember {
			sel, err := repo.Get(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("restore %s: %w", id, err)
			}
			if sel != nil {
				ctl.Decode(sel.Value)
			}
		}

		model.Add(f.Label, ctl)
	}
	return model, nil
}
