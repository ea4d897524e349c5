package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/api"
	"github.com/doublewordai/dwadmin/internal/logging"
	"github.com/doublewordai/dwadmin/internal/pager"
)

// Query-string namespaces of the batch-related views.
const (
	NamespaceBatches = "batches"
	NamespaceResults = "results"
)

// newBatchesCmd creates the batches command group.
func newBatchesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Batch commands",
	}
	cmd.AddCommand(newBatchesListCmd(opts), newBatchResultsCmd(opts))
	return cmd
}

// newBatchesListCmd creates the "batches list" command.
func newBatchesListCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  listFlags
		search string
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Long:  "List batch jobs one page at a time using cursor pagination.",
		Example: `  # First page
  dwadmin batches list

  # Only in-progress batches
  dwadmin batches list --status in_progress

  # Resume a bookmarked position
  dwadmin batches list --url "batchesPage=2&batchesAfter=batch-abc123"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst, err := flags.instance(NamespaceBatches, opts.defaultPageSize())
			if err != nil {
				return err
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			list := func(ctx context.Context, limit int, after string) ([]api.Batch, error) {
				return client.ListBatches(ctx, api.ListBatchesParams{
					Limit:  limit,
					After:  after,
					Search: search,
					Status: status,
				})
			}
			prefetcher := pager.NewPrefetcher(
				list,
				opts.newCache(),
				logging.ComponentLogger(opts.logger, "prefetch"),
				NamespaceBatches, "search="+search, "status="+status,
			)
			defer prefetcher.Wait()

			page, err := prefetcher.FetchPage(cmd.Context(), inst)
			if err != nil {
				return err
			}

			if len(page.Items) == 0 {
				cmd.Println("No batches found.")
				return nil
			}

			rows := make([][]string, 0, len(page.Items))
			for _, b := range page.Items {
				rows = append(rows, []string{
					b.ID,
					b.Endpoint,
					b.Status,
					fmt.Sprintf("%d/%d (%d failed)", b.RequestCounts.Completed, b.RequestCounts.Total, b.RequestCounts.Failed),
					formatUnix(b.CreatedAt),
				})
			}
			if err := renderTable(cmd, []string{"ID", "ENDPOINT", "STATUS", "REQUESTS", "CREATED"}, rows); err != nil {
				return err
			}

			printFooter(cmd, inst, page)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&search, "search", "", "filter batches by endpoint or input filename substring")
	cmd.Flags().StringVar(&status, "status", "", "filter batches by status (validating, in_progress, completed, failed, cancelled)")

	return cmd
}

// newBatchResultsCmd creates the "batches results" command for paging
// through a single batch's per-request outcomes.
func newBatchResultsCmd(opts *rootOptions) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "results <batch-id>",
		Short: "List a batch's results",
		Long:  "List the per-request results of one batch, one page at a time using cursor pagination.",
		Example: `  # First page of a batch's results
  dwadmin batches results batch-abc123

  # Resume a bookmarked position
  dwadmin batches results batch-abc123 --url "resultsPage=4&resultsAfter=req-900"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batchID := args[0]

			inst, err := flags.instance(NamespaceResults, opts.defaultPageSize())
			if err != nil {
				return err
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			list := func(ctx context.Context, limit int, after string) ([]api.BatchResult, error) {
				return client.ListBatchResults(ctx, batchID, api.ListResultsParams{
					Limit: limit,
					After: after,
				})
			}
			prefetcher := pager.NewPrefetcher(
				list,
				opts.newCache(),
				logging.ComponentLogger(opts.logger, "prefetch"),
				NamespaceResults, "batch="+batchID,
			)
			defer prefetcher.Wait()

			page, err := prefetcher.FetchPage(cmd.Context(), inst)
			if err != nil {
				return err
			}

			if len(page.Items) == 0 {
				cmd.Println("No results found.")
				return nil
			}

			rows := make([][]string, 0, len(page.Items))
			for _, r := range page.Items {
				errText := r.Error
				if errText == "" {
					errText = "-"
				}
				rows = append(rows, []string{
					r.ID,
					r.CustomID,
					r.Status,
					r.Model,
					errText,
				})
			}
			if err := renderTable(cmd, []string{"ID", "CUSTOM ID", "STATUS", "MODEL", "ERROR"}, rows); err != nil {
				return err
			}

			printFooter(cmd, inst, page)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
