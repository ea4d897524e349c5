package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/api"
	"github.com/doublewordai/dwadmin/internal/logging"
	"github.com/doublewordai/dwadmin/internal/pager"
)

// NamespaceFiles is the query-string namespace of the files view.
const NamespaceFiles = "files"

// newFilesCmd creates the files command group.
func newFilesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "File commands",
	}
	cmd.AddCommand(newFilesListCmd(opts))
	return cmd
}

// newFilesListCmd creates the "files list" command: one page of the
// control layer's file listing, addressed by the same query-string
// state a browser would keep in its address bar.
func newFilesListCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  listFlags
		order  string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded files",
		Long:  "List uploaded files one page at a time using cursor pagination.",
		Example: `  # First page
  dwadmin files list

  # Resume a bookmarked position
  dwadmin files list --url "filesPage=2&filesAfter=file-abc123"

  # Search, newest first
  dwadmin files list --search requests --order desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst, err := flags.instance(NamespaceFiles, opts.defaultPageSize())
			if err != nil {
				return err
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			list := func(ctx context.Context, limit int, after string) ([]api.File, error) {
				return client.ListFiles(ctx, api.ListFilesParams{
					Limit:  limit,
					After:  after,
					Order:  order,
					Search: search,
				})
			}
			prefetcher := pager.NewPrefetcher(
				list,
				opts.newCache(),
				logging.ComponentLogger(opts.logger, "prefetch"),
				NamespaceFiles, "order="+order, "search="+search,
			)
			defer prefetcher.Wait()

			page, err := prefetcher.FetchPage(cmd.Context(), inst)
			if err != nil {
				return err
			}

			if len(page.Items) == 0 {
				cmd.Println("No files found.")
				return nil
			}

			rows := make([][]string, 0, len(page.Items))
			for _, f := range page.Items {
				rows = append(rows, []string{
					f.ID,
					f.Filename,
					f.Purpose,
					strconv.FormatInt(f.Bytes, 10),
					formatUnix(f.CreatedAt),
				})
			}
			if err := renderTable(cmd, []string{"ID", "FILENAME", "PURPOSE", "BYTES", "CREATED"}, rows); err != nil {
				return err
			}

			printFooter(cmd, inst, page)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&order, "order", "", "sort order by creation time: asc or desc")
	cmd.Flags().StringVar(&search, "search", "", "filter files by filename substring")

	return cmd
}
