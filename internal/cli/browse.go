package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/api"
	"github.com/doublewordai/dwadmin/internal/config"
	"github.com/doublewordai/dwadmin/internal/logging"
	"github.com/doublewordai/dwadmin/internal/pager"
	listview "github.com/doublewordai/dwadmin/internal/tui/list"
)

// newBrowseCmd creates the interactive browser: files and batches side
// by side, each with its own pagination namespace, sharing one
// bookmarkable query string.
func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var urlState string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse files and batches interactively",
		Long:  "Open an interactive browser over the control layer's files and batches, with cursor pagination, speculative next-page prefetch, and a shareable bookmark for the current position of every view.",
		Example: `  # Start browsing from the first page of each view
  dwadmin browse

  # Restore a bookmarked position for both views at once
  dwadmin browse --url "filesPage=3&filesAfter=file-x&batchesPage=2&batchesAfter=batch-y"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := url.ParseQuery(urlState)
			if err != nil {
				return fmt.Errorf("parsing --url: %w", err)
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			store := opts.newCache()
			size := opts.defaultPageSize()
			pfLogger := logging.ComponentLogger(opts.logger, "prefetch")

			filesView := listview.NewSource(
				"Files",
				[]string{"ID", "FILENAME", "PURPOSE", "BYTES", "CREATED"},
				pager.FromValues(NamespaceFiles, values, pager.Options{DefaultPageSize: size, MaxPageSize: config.MaxPageSize}),
				func(f api.File) listview.Row {
					return listview.Row{
						ID: f.ID,
						Columns: []string{
							f.ID, f.Filename, f.Purpose,
							strconv.FormatInt(f.Bytes, 10),
							formatUnix(f.CreatedAt),
						},
					}
				},
				func(filter string) *pager.Prefetcher[api.File] {
					return pager.NewPrefetcher(
						func(ctx context.Context, limit int, after string) ([]api.File, error) {
							return client.ListFiles(ctx, api.ListFilesParams{
								Limit:  limit,
								After:  after,
								Search: filter,
							})
						},
						store, pfLogger,
						NamespaceFiles, "search="+filter,
					)
				},
			)

			batchesView := listview.NewSource(
				"Batches",
				[]string{"ID", "ENDPOINT", "STATUS", "REQUESTS", "CREATED"},
				pager.FromValues(NamespaceBatches, values, pager.Options{DefaultPageSize: size, MaxPageSize: config.MaxPageSize}),
				func(b api.Batch) listview.Row {
					return listview.Row{
						ID: b.ID,
						Columns: []string{
							b.ID, b.Endpoint, b.Status,
							fmt.Sprintf("%d/%d", b.RequestCounts.Completed, b.RequestCounts.Total),
							formatUnix(b.CreatedAt),
						},
					}
				},
				func(filter string) *pager.Prefetcher[api.Batch] {
					return pager.NewPrefetcher(
						func(ctx context.Context, limit int, after string) ([]api.Batch, error) {
							return client.ListBatches(ctx, api.ListBatchesParams{
								Limit:  limit,
								After:  after,
								Search: filter,
							})
						},
						store, pfLogger,
						NamespaceBatches, "search="+filter,
					)
				},
			)

			model := listview.NewModel(values, filesView, batchesView)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&urlState, "url", "", "bookmarked query string restoring every view's position")
	return cmd
}
