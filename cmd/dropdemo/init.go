package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/dropdown/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config",
	Long:  `Writes the built-in sample form, with default paths, to the config file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.Path(configPath)
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		home := os.Getenv("HOME")
		cfg := config.Config{
			Database: config.DatabaseConfig{Path: filepath.Join(home, ".local", "share", "dropdown", "dropdown.db")},
			Log: config.LogConfig{
				Path:       filepath.Join(home, ".local", "share", "dropdown", "dropdown.log"),
				MaxSizeMB:  5,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
			UI:     config.UIConfig{Title: "Dropdown demo", Mouse: true, Remember: true},
			Fields: config.DefaultFields(),
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
}
