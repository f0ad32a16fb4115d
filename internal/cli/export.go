package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

type exportOptions struct {
	queryFlags
	format string
	out    string
}

func newExportCmd(app *App) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <tab>",
		Short: "Write a tab's filtered collection to a spreadsheet",
		Long: `Write every item of a tab matching --search and --filter to a CSV or
XLSX file, with the same columns as the console table. Pagination does
not apply.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTabs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.format
			if !cmd.Flags().Changed("format") {
				format = app.cfg.Data.ExportFormat
			}
			reg, err := app.open(format)
			if err != nil {
				return err
			}
			tab, filtered, err := opts.query(cmd, reg, args[0])
			if err != nil {
				return err
			}
			if !tab.CanExport() {
				return fmt.Errorf("export %s: %w", tab.ID, core.ErrExportUnsupported)
			}

			path := opts.out
			if path == "" {
				path = tab.ID + tab.Exporter.FileExtension()
			}

			var w io.Writer = cmd.OutOrStdout()
			if path != "-" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				w = f
			}

			if err := tab.Exporter.Export(w, filtered); err != nil {
				return fmt.Errorf("export %s: %w", tab.ID, err)
			}
			if path != "-" {
				app.logger.Info("export written", "tab", tab.ID, "file", path, "rows", len(filtered))
				fmt.Fprintf(cmd.ErrOrStderr(), "%d ligne(s) exportée(s) dans %s\n", len(filtered), path)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "xlsx", "file type: xlsx or csv (default: EXPORT_FORMAT)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", `output file, "-" for stdout (default: <tab>.<format>)`)
	return cmd
}
