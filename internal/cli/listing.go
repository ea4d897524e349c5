package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/config"
	"github.com/doublewordai/dwadmin/internal/pager"
)

// listFlags are the state flags shared by every one-shot listing
// command. They are two spellings of the same thing: --url takes a
// whole bookmarked query string, --page/--after set individual
// parameters on top of it.
type listFlags struct {
	urlState string
	page     int
	after    string
}

// register adds the shared flags to cmd.
func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.urlState, "url", "", "bookmarked query string to resume from (as printed by a previous run)")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number to report (requires --after for pages beyond the first)")
	cmd.Flags().StringVar(&f.after, "after", "", "cursor of the item to resume listing after")
}

// instance reconstructs a pagination instance for the namespace from
// the flags, exactly as a browser would from its address bar. Malformed
// pagination parameters inside the query string fall back to defaults;
// only an unparseable query string itself is an error.
func (f *listFlags) instance(namespace string, defaultPageSize int) (*pager.Instance, error) {
	values, err := url.ParseQuery(f.urlState)
	if err != nil {
		return nil, fmt.Errorf("parsing --url: %w", err)
	}

	// Explicit flags overwrite whatever the bookmark carried.
	pageKey, _, afterKey := pager.ParamNames(namespace)
	if f.page > 0 {
		values.Set(pageKey, strconv.Itoa(f.page))
	}
	if f.after != "" {
		values.Set(afterKey, f.after)
	}

	return pager.FromValues(namespace, values, pager.Options{
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     config.MaxPageSize,
	}), nil
}

// renderTable writes rows through a tabwriter in the house table style.
func renderTable(cmd *cobra.Command, header []string, rows [][]string) error {
	const tabPadding = 2
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	for i, h := range header {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// printFooter reports the page position and the query strings that
// resume this page and, when more results exist, the next one. The
// next-page string is produced by actually advancing the instance, so
// it is exactly what the engine would navigate to.
func printFooter[T pager.Item](cmd *cobra.Command, inst *pager.Instance, page pager.Page[T]) {
	cmd.Println()
	position := fmt.Sprintf("Page %d (%d per page)", page.PageNum, page.PageSize)
	if page.HasMore {
		position += ", more results available"
	} else {
		position += ", end of results"
	}
	cmd.Println(position)

	if qs := inst.QueryString(); qs != "" {
		cmd.Printf("Resume here:  --url %q\n", qs)
	}

	if page.HasMore {
		if err := inst.NextPage(page.LastCursor()); err == nil {
			cmd.Printf("Next page:    --url %q\n", inst.QueryString())
		}
	}
}

// formatUnix renders a control layer unix timestamp for table output.
func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
