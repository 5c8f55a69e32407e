package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bizmatters/healthpath/internal/export"
	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/prompt"
	"github.com/bizmatters/healthpath/internal/report"
)

var errNoSavedPlan = errors.New("no saved health plan, run 'healthpath start' first")

var (
	reportTab    string
	reportRaw    bool
	exportOutput string
)

// reportCmd prints one tab of the saved plan
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a tab of the saved health plan",
	Long: `Renders one tab of the saved health plan as markdown.

Tabs: overview, workout, diet, sleep, equipment, weekly`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

// exportCmd writes the printable plan document
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved health plan as a printable document",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

// promptCmd prints the prompt compiled from the saved answers
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt compiled from the saved answers",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func runReport(cmd *cobra.Command, args []string) error {
	tab, err := report.ParseTab(reportTab)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, _ := a.persister.Load(cmd.Context())
	if !s.HasPlan() {
		return errNoSavedPlan
	}
	v, err := report.Render(s.Plan, tab)
	if err != nil {
		return err
	}

	md := fmt.Sprintf("# %s\n\n%s", tab.Title(), report.Markdown(v))
	if reportRaw {
		_, err = io.WriteString(cmd.OutOrStdout(), md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, _ := a.persister.Load(cmd.Context())
	if !s.HasPlan() {
		return errNoSavedPlan
	}

	if exportOutput == "-" {
		return export.Write(cmd.OutOrStdout(), s.Plan, export.DefaultOptions())
	}
	dest, err := exportToFile(exportOutput, s.Plan)
	if err != nil {
		return err
	}
	a.log.Info("Exported health plan", "path", dest)
	fmt.Fprintf(cmd.OutOrStdout(), "Health plan saved to %s\n", dest)
	return nil
}

// exportToFile writes the document to path, the default file name in the
// working directory when empty, and returns the absolute path
func exportToFile(path string, doc *plan.Document) (string, error) {
	if path == "" {
		path = export.DefaultFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, doc, export.DefaultOptions()); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return abs, nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, hasSaved := a.persister.Load(cmd.Context())
	if !hasSaved {
		fmt.Fprintln(cmd.ErrOrStderr(), "No saved answers; the prompt uses defaults for every question.")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt.Compile(s.Answers))
	return err
}
