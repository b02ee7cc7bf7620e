package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/catering"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/tui"
)

// exploreParams holds the shared flags of the explore commands. Zero
// values mean "use the config default".
type exploreParams struct {
	year     int
	from     int
	to       int
	supplier string // costs and quantities only
	site     int    // budgets and meals only
}

// exploreSpec describes one explore command. The supplier filter only
// exists where the backend accepts a supplier parameter; the site filter
// takes a numeric ID because the backend has no sites roster to resolve
// names against.
type exploreSpec struct {
	name         string
	short        string
	long         string
	example      string
	withSupplier bool
	withSite     bool
}

func newCostsCmd() *cobra.Command {
	return newExploreCmd(exploreSpec{
		name:  "costs",
		short: "Drill into purchase costs",
		long: `Explore purchase costs: months, then sites within a month, then
categories within a site, then the products of a category.`,
		example: `  # Costs for the configured year
  caterview costs

  # Costs for March through September 2025
  caterview costs --year 2025 --from 3 --to 9

  # Costs filtered to one supplier
  caterview costs --supplier "Fresh Foods"`,
		withSupplier: true,
	})
}

func newQuantitiesCmd() *cobra.Command {
	return newExploreCmd(exploreSpec{
		name:  "quantities",
		short: "Drill into purchase quantities",
		long: `Explore purchase quantities: months, sites, categories and products,
with a monthly trend per category (t) and a product comparison built
from the multi-selection (space to select, c to compare).`,
		example: `  # Quantities for the configured year
  caterview quantities

  # Quantities filtered to one supplier, by roster ID
  caterview quantities --supplier 3`,
		withSupplier: true,
	})
}

func newBudgetsCmd() *cobra.Command {
	return newExploreCmd(exploreSpec{
		name:  "budgets",
		short: "Drill into budget vs actual",
		long: `Explore supplier budgets against actual spend: suppliers, then the
sites of a supplier, then the months of a site. Every table carries a
budget, actual, variance and % used footer.`,
		example: `  # Budgets for the configured year
  caterview budgets

  # Budgets for one site
  caterview budgets --site 4`,
		withSite: true,
	})
}

func newMealsCmd() *cobra.Command {
	return newExploreCmd(exploreSpec{
		name:  "meals",
		short: "Drill into meal counts",
		long: `Explore served meal counts: months, then sites within a month, then
the individual days of a site.`,
		example: `  # Meals for the configured year
  caterview meals

  # Meals at one site for the first quarter
  caterview meals --site 4 --from 1 --to 3`,
		withSite: true,
	})
}

// newExploreCmd builds one explore command from its spec. All four share
// the year and month-range flags and the runExplore flow.
func newExploreCmd(spec exploreSpec) *cobra.Command {
	var params exploreParams

	cmd := &cobra.Command{
		Use:     spec.name,
		Short:   spec.short,
		Long:    spec.long,
		Example: spec.example,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplore(cmd, spec.name, params)
		},
	}

	cmd.Flags().IntVar(&params.year, "year", 0, "calendar year to explore (default from config)")
	cmd.Flags().IntVar(&params.from, "from", 0, "first month of the range, 1-12 (default from config)")
	cmd.Flags().IntVar(&params.to, "to", 0, "last month of the range, 1-12 (default from config)")
	if spec.withSupplier {
		cmd.Flags().StringVar(&params.supplier, "supplier", "", "filter to one supplier, by name or roster ID")
	}
	if spec.withSite {
		cmd.Flags().IntVar(&params.site, "site", 0, "filter to one site by numeric ID")
	}

	return cmd
}

// runExplore is the shared explore flow: resolve parameters, verify the
// server, then hand the terminal to the interactive explorer.
func runExplore(cmd *cobra.Command, hierarchyName string, params exploreParams) error {
	ctx := cmd.Context()

	cfg, err := configFromCmd(cmd)
	if err != nil {
		return err
	}

	hierarchy, err := catering.HierarchyByName(hierarchyName)
	if err != nil {
		return err
	}

	params = params.withDefaults(cfg)
	if err := params.validate(); err != nil {
		return err
	}

	client, err := catering.NewClient(catering.ClientOptions{
		BaseURL:  cfg.API.BaseURL,
		Token:    cfg.API.Token,
		Timeout:  cfg.API.Timeout(),
		RetryMax: cfg.API.RetryMax,
		Logger:   config.GetLogger().With().Str("component", "catering").Logger(),
	})
	if err != nil {
		return err
	}

	preflight, err := client.Preflight(ctx)
	if err != nil {
		return fmt.Errorf("server preflight against %s: %w", cfg.API.BaseURL, err)
	}
	logger.Info().
		Str("server", preflight.Server.App).
		Str("server_version", preflight.Server.Version).
		Bool("healthy", preflight.Healthy).
		Int("suppliers", preflight.Suppliers).
		Msg("server preflight passed")

	initial := drill.Context{
		catering.KeyYear:      params.year,
		catering.KeyFromMonth: params.from,
		catering.KeyToMonth:   params.to,
	}
	if params.supplier != "" {
		supplier, resolveErr := resolveSupplier(ctx, client, params.supplier)
		if resolveErr != nil {
			return resolveErr
		}
		initial[catering.KeySupplier] = supplier.ID
		initial[catering.KeySupplierName] = supplier.Name
	}
	if params.site > 0 {
		initial[catering.KeySite] = params.site
	}

	if !isTerminal(os.Stdout) {
		return fmt.Errorf("caterview %s is an interactive dashboard; stdout must be a terminal", hierarchyName)
	}

	return tui.RunExplorer(ctx, client, tui.ExplorerOptions{
		Hierarchy:    hierarchy,
		Initial:      initial,
		MaxSelection: cfg.UI.MaxSelection,
		Logger:       config.GetLogger().With().Str("component", "tui").Logger(),
	})
}

// withDefaults fills unset flags from the session defaults.
func (p exploreParams) withDefaults(cfg *config.Config) exploreParams {
	if p.year == 0 {
		p.year = cfg.Defaults.Year
	}
	if p.from == 0 {
		p.from = cfg.Defaults.FromMonth
	}
	if p.to == 0 {
		p.to = cfg.Defaults.ToMonth
	}
	return p
}

func (p exploreParams) validate() error {
	if p.year < config.MinYear || p.year > config.MaxYear {
		return fmt.Errorf("--year must be between %d and %d, got %d", config.MinYear, config.MaxYear, p.year)
	}
	if p.from < config.MinMonth || p.from > config.MaxMonth {
		return fmt.Errorf("--from must be a month between 1 and 12, got %d", p.from)
	}
	if p.to < config.MinMonth || p.to > config.MaxMonth {
		return fmt.Errorf("--to must be a month between 1 and 12, got %d", p.to)
	}
	if p.from > p.to {
		return fmt.Errorf("--from month %d is after --to month %d", p.from, p.to)
	}
	if p.site < 0 {
		return fmt.Errorf("--site must be a positive site ID, got %d", p.site)
	}
	return nil
}

// resolveSupplier maps the --supplier flag to a roster entry. Numeric
// values are treated as roster IDs, anything else as a case-insensitive
// name match.
func resolveSupplier(ctx context.Context, client *catering.Client, value string) (catering.Supplier, error) {
	suppliers, err := client.Suppliers(ctx)
	if err != nil {
		return catering.Supplier{}, fmt.Errorf("loading supplier roster: %w", err)
	}

	if id, convErr := strconv.Atoi(value); convErr == nil {
		for _, s := range suppliers {
			if s.ID == id {
				return s, nil
			}
		}
		return catering.Supplier{}, fmt.Errorf("no supplier with id %d", id)
	}

	names := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		if strings.EqualFold(s.Name, value) {
			return s, nil
		}
		names = append(names, s.Name)
	}
	return catering.Supplier{}, fmt.Errorf("unknown supplier %q (known: %s)", value, strings.Join(names, ", "))
}
