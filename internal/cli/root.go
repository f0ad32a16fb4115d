// Package cli implements schoolctl, a command-line view of the console's
// tabs. It runs the same filter composer and paginator as the web console
// over a freshly seeded dataset.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/schooladmin/internal/config"
	"github.com/JonMunkholm/schooladmin/internal/core"
	"github.com/JonMunkholm/schooladmin/internal/logging"
	"github.com/JonMunkholm/schooladmin/internal/school"
)

// App holds the persistent flags shared by every command.
type App struct {
	Fixtures string
	LogLevel string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the schoolctl command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "schoolctl",
		Short:        "Query the school admin console's tabs from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Tabs with their item counts
  schoolctl tabs

  # Second page of 6A students, 5 per page
  schoolctl list eleves --filter classe=6A --page 2 --size 5

  # Unpaid payments to a spreadsheet
  schoolctl export paiements --filter statut=impaye --out impayes.xlsx
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("fixtures") {
			app.Fixtures = cfg.Data.FixturesPath
		}
		app.cfg = cfg
		app.logger = logging.New(cmd.ErrOrStderr(), app.LogLevel, cfg.Logging.Format)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Fixtures, "fixtures", "", "YAML dataset to load (default: built-in sample data)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(newTabsCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newExportCmd(app))
	return cmd
}

// open seeds the dataset and registers the tabs with the given export format.
func (app *App) open(exportFormat string) (*core.Registry, error) {
	reg, stores, err := school.Open(app.Fixtures, exportFormat)
	if err != nil {
		return nil, err
	}
	app.logger.Debug("dataset loaded", "fixtures", app.Fixtures, "counts", stores.Counts())
	return reg, nil
}

// queryFlags are the search and filter flags of list and export.
type queryFlags struct {
	search  string
	filters []string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.search, "search", "", "free-text search over the tab's search fields")
	cmd.Flags().StringArrayVar(&q.filters, "filter", nil, "filter as key=value; repeatable")
}

// state parses the flags against tab's filters.
func (q *queryFlags) state(tab core.Tab) (core.FilterState, error) {
	state := core.NewFilterState()
	state.Search = q.search
	for _, f := range q.filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return state, fmt.Errorf("filter %q: want key=value", f)
		}
		key = strings.TrimSpace(key)
		if _, ok := tab.Filter(key); !ok {
			return state, fmt.Errorf("filter %q on %s: %w (have %s)", key, tab.ID, core.ErrUnknownFilter, filterKeys(tab))
		}
		state.Selected[key] = strings.TrimSpace(value)
	}
	return state, nil
}

// query lists tabID and applies the flags.
func (q *queryFlags) query(cmd *cobra.Command, reg *core.Registry, tabID string) (core.Tab, []core.Entity, error) {
	tab, ok := reg.Get(tabID)
	if !ok {
		return core.Tab{}, nil, fmt.Errorf("tab %q: %w (have %s)", tabID, core.ErrTabNotFound, tabIDs(reg))
	}
	state, err := q.state(tab)
	if err != nil {
		return tab, nil, err
	}
	items, err := tab.Store.List(cmd.Context())
	if err != nil {
		return tab, nil, fmt.Errorf("list %s: %w", tab.ID, err)
	}
	return tab, core.FilterItems(items, tab.SearchFields, tab.Filters, state), nil
}

func filterKeys(tab core.Tab) string {
	keys := make([]string, len(tab.Filters))
	for i, f := range tab.Filters {
		keys[i] = f.Key
	}
	return strings.Join(keys, ", ")
}

func tabIDs(reg *core.Registry) string {
	var ids []string
	for _, tab := range reg.All() {
		ids = append(ids, tab.ID)
	}
	return strings.Join(ids, ", ")
}

// completeTabs offers tab ids for the first argument.
func completeTabs(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		reg, _, err := school.Open(app.Fixtures, "")
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var out []string
		for _, tab := range reg.All() {
			if strings.HasPrefix(tab.ID, toComplete) {
				out = append(out, tab.ID+"\t"+tab.Label)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
