package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/tui"
)

// startCmd launches the interactive questionnaire
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the interactive questionnaire",
	Long: `Opens the terminal UI. Saved progress is offered for resuming; a finished
questionnaire is sent to the HealthPath API server and the plan is shown in tabs.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

// resetCmd clears saved answers and plan
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved answers and health plan",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resumable := a.flow.Open(ctx)
	a.log.Info("Starting terminal UI", "resume_available", resumable, "proxy_url", a.cfg.Client.ProxyURL)

	exporter := func(doc *plan.Document) (string, error) {
		return exportToFile(exportOutput, doc)
	}
	m := tui.New(ctx, a.flow, tui.NewStyles(tui.DetectDark()), exporter)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, _ := a.persister.Load(ctx)
	a.persister.Clear(ctx, s)
	a.log.Info("Cleared saved progress")
	fmt.Fprintln(cmd.OutOrStdout(), "Saved progress cleared.")
	return nil
}
