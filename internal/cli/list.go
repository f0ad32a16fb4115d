package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

type listOptions struct {
	queryFlags
	page int
	size int
	json bool
}

type listRow struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

type listOutput struct {
	Tab   string         `json:"tab"`
	Items []listRow      `json:"items"`
	Page  core.PageState `json:"page"`
}

func newListCmd(app *App) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:               "list <tab>",
		Short:             "Show one page of a tab",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTabs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.open("")
			if err != nil {
				return err
			}
			tab, filtered, err := opts.query(cmd, reg, args[0])
			if err != nil {
				return err
			}

			size := opts.size
			if !cmd.Flags().Changed("size") {
				size = app.cfg.Grid.PageSize
			}
			pager := core.NewPaginator(size)
			pager.SetTotal(len(filtered))
			pager.GoToPage(opts.page)
			page := core.Page(filtered, pager)

			if opts.json {
				return writeJSONPage(cmd, tab, page, pager.State())
			}
			return writeTablePage(cmd, tab, page, pager.State())
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.page, "page", 1, "page to show; out-of-range pages are clamped")
	cmd.Flags().IntVar(&opts.size, "size", core.DefaultPageSize, "items per page (default: GRID_PAGE_SIZE)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	return cmd
}

func writeTablePage(cmd *cobra.Command, tab core.Tab, page []core.Entity, st core.PageState) error {
	out := cmd.OutOrStdout()
	if len(page) == 0 {
		fmt.Fprintln(out, "Aucun élément")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	headers := make([]string, len(tab.Columns))
	for i, c := range tab.Columns {
		headers[i] = strings.ToUpper(c.Label)
	}
	fmt.Fprintln(tw, "ID\t"+strings.Join(headers, "\t"))

	cells := make([]string, len(tab.Columns))
	for _, item := range page {
		for i, c := range tab.Columns {
			cells[i] = c.Cell(item)
		}
		fmt.Fprintln(tw, item.EntityID()+"\t"+strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nPage %d sur %d · %d élément(s)\n", st.CurrentPage, st.TotalPages, st.TotalItems)
	return nil
}

func writeJSONPage(cmd *cobra.Command, tab core.Tab, page []core.Entity, st core.PageState) error {
	resp := listOutput{Tab: tab.ID, Items: make([]listRow, 0, len(page)), Page: st}
	for _, item := range page {
		row := listRow{ID: item.EntityID(), Cells: make(map[string]string, len(tab.Columns))}
		for _, c := range tab.Columns {
			row.Cells[c.Key] = c.Cell(item)
		}
		resp.Items = append(resp.Items, row)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
