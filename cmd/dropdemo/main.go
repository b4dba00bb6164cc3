package main

import (
	"log"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dropdemo",
	Short: "Terminal form built from dropdown controls",
	Long: `dropdemo renders a form of dropdown controls declared in a TOML config.
Selections are remembered in a local sqlite database.

Available commands:
  run      - open the form (default)
  init     - write a sample config
  history  - print recent values of a field, or all remembered values
  forget   - drop the remembered value of a field`,
	SilenceUsage: true,
	RunE:         runForm,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $DROPDOWN_CONFIG or ~/.config/dropdown/config.toml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(forgetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("dropdemo: %v", err)
	}
}
