package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/dropdown/internal/config"
	"github.com/jask/dropdown/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [field-id]",
	Short: "Print recent values of a field",
	Long:  `Without a field id, prints the remembered value of every field.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(repo *store.SelectionRepo) error {
			if len(args) == 0 {
				return printSelections(cmd.Context(), cmd.OutOrStdout(), repo)
			}
			return printHistory(cmd.Context(), cmd.OutOrStdout(), repo, args[0], historyLimit)
		})
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <field-id>",
	Short: "Drop the remembered value of a field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(repo *store.SelectionRepo) error {
			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("forget: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot %s\n", args[0])
			return nil
		})
	},
}

func withRepo(cmd *cobra.Command, fn func(repo *store.SelectionRepo) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	repo, closeDB, err := openRepo(cmd.Context(), cfg.Database.Path)
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(repo)
}

const timeLayout = "2006-01-02 15:04:05"

func printSelections(ctx context.Context, out io.Writer, repo *store.SelectionRepo) error {
	sels, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(sels) == 0 {
		fmt.Fprintln(out, "no remembered values")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range sels {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ControlID, s.Value, s.UpdatedAt.Local().Format(timeLayout))
	}
	return w.Flush()
}

func printHistory(ctx context.Context, out io.Writer, repo *store.SelectionRepo, id string, limit int) error {
	changes, err := repo.History(ctx, id, limit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(changes) == 0 {
		fmt.Fprintf(out, "no history for %s\n", id)
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range changes {
		value := c.Value
		if value == "" {
			value = "(cleared)"
		}
		fmt.Fprintf(w, "%s\t%s\n", c.ChangedAt.Local().Format(timeLayout), value)
	}
	return w.Flush()
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}
