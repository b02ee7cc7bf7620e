package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/catering"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// ExplorerOptions configures one drill-down session.
type ExplorerOptions struct {
	// Hierarchy is the dimension to explore.
	Hierarchy catering.Hierarchy

	// Initial is the root context: year, optional month range, optional
	// supplier filter.
	Initial drill.Context

	// MaxSelection caps the comparison selection. Zero uses the engine
	// default.
	MaxSelection int

	// Logger receives navigation and fetch logs.
	Logger zerolog.Logger
}

// RunExplorer wires a navigation engine to the client and runs the
// interactive explorer until the user exits.
func RunExplorer(ctx context.Context, client *catering.Client, opts ExplorerOptions) error {
	eng, err := drill.New(drill.Config{
		Root:         opts.Hierarchy.Root,
		MultiSelect:  opts.Hierarchy.MultiSelect,
		MaxSelection: opts.MaxSelection,
		SelectionKey: opts.Hierarchy.SelectionKey,
		Fetch:        client.FetcherFor(opts.Hierarchy),
		Empty:        func() drill.Data { return catering.EmptyTable() },
		Logger:       opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("configure %s navigation: %w", opts.Hierarchy.Name, err)
	}

	model := NewExplorerModel(ctx, eng, opts.Hierarchy, opts.Initial, opts.Logger)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive explorer: %w", err)
	}
	return nil
}
