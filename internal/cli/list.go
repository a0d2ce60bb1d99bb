package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/applib/pkg/datatable"
)

type listFlags struct {
	sourceFlags
	page   int
	search string
	sort   string
	desc   bool
	output string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a remote dataset",
		Long: `Fetch records from the API and print the requested page as a table.

Client-side (default) the whole dataset is fetched and searched, sorted and
paginated locally. With --server-side the API receives
page, limit, search, sort and order query parameters.`,
		Example: `  # Second page, five rows, sorted by city descending
  tablectl list --url https://api.example.com/users --page 2 --sort address.city --desc

  # Let the API paginate and render Markdown
  tablectl list --url https://api.example.com --endpoint users --server-side -o markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, f)
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page to show")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort key, dotted paths allowed")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "output format (table|markdown|csv)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, f listFlags) error {
	ctx := cmd.Context()
	log := loggerFrom(ctx)

	var opts []datatable.Option
	if f.sort != "" {
		dir := datatable.Ascending
		if f.desc {
			dir = datatable.Descending
		}
		opts = append(opts, datatable.WithInitialSort(f.sort, dir))
	}

	c, _, err := f.newController(configFrom(ctx), log, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Load(ctx, f.page, f.search); err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	return renderRecords(cmd.OutOrStdout(), c.VisiblePage(), c.State(), f.output)
}

// renderRecords prints records with go-pretty followed by a page summary.
func renderRecords(w io.Writer, records []datatable.Record, state datatable.State, format string) error {
	cols := state.Columns
	if len(cols) == 0 {
		cols = datatable.InferColumns(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		title := col.Title()
		if col.Field == state.SortKey {
			title += " " + arrow(state.SortDirection)
		}
		header[i] = title
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = col.Cell(r)
		}
		t.AppendRow(row)
	}

	switch strings.ToLower(format) {
	case "", "table":
		if len(records) == 0 {
			_, _ = fmt.Fprintln(w, "(0 rows)")
		} else {
			t.Render()
		}
	case "md", "markdown":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	summary := fmt.Sprintf("page %d/%d, %d rows", state.CurrentPage, state.TotalPages, state.TotalRows)
	if state.SearchTerm != "" {
		summary += fmt.Sprintf(", search %q", state.SearchTerm)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func arrow(d datatable.Direction) string {
	if d == datatable.Descending {
		return "▼"
	}
	return "▲"
}
