package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/dropdown/internal/config"
	"github.com/jask/dropdown/internal/logging"
	"github.com/jask/dropdown/internal/store"
)

func testDeps(t *testing.T) (*store.SelectionRepo, *logging.Logger, string) {
	t.Helper()
	dir := t.TempDir()
	repo, closeDB, err := openRepo(context.Background(), filepath.Join(dir, "data", "form.db"))
	require.NoError(t, err)
	t.Cleanup(closeDB)
	logPath := filepath.Join(dir, "form.log")
	logger, err := logging.New(logging.Options{Path: logPath, MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return repo, logger, logPath
}

func testConfig() config.Config {
	return config.Config{
		UI:     config.UIConfig{Title: "Test", Remember: true},
		Fields: config.DefaultFields(),
	}
}

func keys(m tea.Model, names ...string) {
	for _, n := range names {
		var msg tea.KeyMsg
		switch n {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(n)}
		}
		m.Update(msg)
	}
}

func TestFormRecordsChanges(t *testing.T) {
	ctx := context.Background()
	repo, logger, logPath := testDeps(t)

	model, err := buildForm(ctx, testConfig(), repo, logger)
	require.NoError(t, err)

	keys(model, "enter", "d", "o", "n", "enter")
	keys(model, "tab", "tab", "enter", " ", "down", " ", "enter")

	status, err := repo.Get(ctx, "status")
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Equal(t, "done", status.Value)

	labels, err := repo.Get(ctx, "labels")
	require.NoError(t, err)
	require.NotNil(t, labels)
	require.Equal(t, "bug,docs", labels.Value)

	require.Contains(t, model.View(), "saved labels")

	require.NoError(t, logger.Close())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `change: status = "done"`), string(data))
	require.True(t, strings.Contains(string(data), "open: labels"), string(data))
}

func TestFormRestoresRememberedValues(t *testing.T) {
	ctx := context.Background()
	repo, logger, _ := testDeps(t)
	require.NoError(t, repo.Record(ctx, "assignee", "cy"))
	require.NoError(t, repo.Record(ctx, "labels", "perf,ux"))

	model, err := buildForm(ctx, testConfig(), repo, logger)
	require.NoError(t, err)
	view := model.View()
	require.Contains(t, view, "Cy Okafor")
	require.Contains(t, view, "perf, ux")

	cfg := testConfig()
	cfg.UI.Remember = false
	model, err = buildForm(ctx, cfg, repo, logger)
	require.NoError(t, err)
	require.NotContains(t, model.View(), "Cy Okafor")
}

func TestControlConfigMapsFieldFlags(t *testing.T) {
	f := config.FieldConfig{
		Title: "T", HideTitle: true, Placeholder: true, HideSelection: true,
		NoClear: true, EventOnly: true, Separator: "-", AllLabel: "Any", VisibleRows: 3,
	}
	cfg := controlConfig(f)
	require.False(t, cfg.TitleDisplayed)
	require.True(t, cfg.TitlePlaceholder)
	require.False(t, cfg.SelectionDisplayed)
	require.False(t, cfg.ClearButtonEnabled)
	require.True(t, cfg.EventOnlyMode)
	require.Equal(t, "-", cfg.TitleSeparator)
	require.Equal(t, "Any", cfg.AllLabel)
	require.Equal(t, 3, cfg.VisibleRows)

	def := controlConfig(config.FieldConfig{Title: "D"})
	require.Equal(t, ":", def.TitleSeparator)
	require.Equal(t, "All", def.AllLabel)
	require.True(t, def.ClearButtonEnabled)
}

func TestHistoryListingsShowRememberedAndCleared(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := testDeps(t)
	require.NoError(t, repo.Record(ctx, "status", "open"))
	require.NoError(t, repo.Record(ctx, "status", ""))
	require.NoError(t, repo.Record(ctx, "labels", "bug"))

	var out bytes.Buffer
	require.NoError(t, printSelections(ctx, &out, repo))
	require.Contains(t, out.String(), "labels")
	require.NotContains(t, out.String(), "status")

	out.Reset()
	require.NoError(t, printHistory(ctx, &out, repo, "status", 10))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "(cleared)")
	require.Contains(t, lines[1], "open")

	out.Reset()
	require.NoError(t, printHistory(ctx, &out, repo, "missing", 10))
	require.Equal(t, "no history for missing\n", out.String())

	require.NoError(t, repo.Delete(ctx, "labels"))
	out.Reset()
	require.NoError(t, printSelections(ctx, &out, repo))
	require.Equal(t, "no remembered values\n", out.String())
}
