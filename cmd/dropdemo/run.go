package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/dropdown/internal/config"
	"github.com/jask/dropdown/internal/logging"
	"github.com/jask/dropdown/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the form",
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Path:       cfg.Log.Path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logger.Close()

	repo, closeDB, err := openRepo(cmd.Context(), cfg.Database.Path)
	if err != nil {
		return err
	}
	defer closeDB()

	model, err := buildForm(cmd.Context(), cfg, repo, logger)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	logger.Printf("start: %d fields", len(cfg.Fields))
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Printf("exit")
	return nil
}

func openRepo(ctx context.Context, path string) (*store.SelectionRepo, func(), error) {
	db, err := store.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("store: %w", err)
	}
	return store.NewSelectionRepo(db), func() { _ = db.Close() }, nil
}
