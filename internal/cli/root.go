// Package cli wires the dwadmin command tree: cursor-paginated listings
// of control layer files, batches, and batch results, plus the
// interactive browser.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/api"
	"github.com/doublewordai/dwadmin/internal/cache"
	"github.com/doublewordai/dwadmin/internal/config"
	"github.com/doublewordai/dwadmin/internal/logging"
)

// rootOptions carries flag values and resolved dependencies shared by
// all subcommands.
type rootOptions struct {
	server           string
	apiKey           string
	debug            bool
	pageSize         int
	noCache          bool
	skipVersionCheck bool

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd creates the root Cobra command for the dwadmin CLI.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "dwadmin",
		Short:   "Admin client for the Doubleword control layer",
		Long:    "dwadmin: browse files, batches, and batch results on a Doubleword control layer through its cursor-paginated admin APIs",
		Version: version,
		Example: `  # List the first page of files
  dwadmin files list

  # Resume a bookmarked position (query string printed by a previous run)
  dwadmin files list --url "filesPage=3&filesAfter=file-abc123"

  # List running batches matching a search term
  dwadmin batches list --status in_progress --search chat

  # Page through a batch's results
  dwadmin batches results batch-abc123 --page-size 50

  # Browse files and batches interactively
  dwadmin browse`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", "", "control layer base URL (overrides config and DWADMIN_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "API key for the control layer (overrides config and DWADMIN_API_KEY)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().IntVar(&opts.pageSize, "page-size", 0, "items per page (0 = config or terminal-derived default)")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache and prefetching")
	cmd.PersistentFlags().BoolVar(&opts.skipVersionCheck, "skip-version-check", false, "skip control layer version compatibility check")

	cmd.AddCommand(
		newFilesCmd(opts),
		newBatchesCmd(opts),
		newBrowseCmd(opts),
		newVersionCmd(opts, version),
	)

	return cmd
}

// setup loads configuration, applies flag overrides, and builds the
// logger. Runs once per invocation from PersistentPreRunE.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if o.server != "" {
		cfg.Server = o.server
	}
	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
	}
	if cmd.Flags().Changed("page-size") {
		if o.pageSize <= 0 || o.pageSize > config.MaxPageSize {
			return fmt.Errorf("%w: got %d", config.ErrInvalidPageSize, o.pageSize)
		}
		cfg.PageSize = o.pageSize
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}
	if o.debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = logging.FormatConsole
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.ComponentLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    cmd.ErrOrStderr(),
	}), "cli")
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), o.logger))
	return nil
}

// newClient builds the control layer client and, unless skipped, runs
// the version compatibility check. Incompatibility warns rather than
// fails so older deployments remain usable.
func (o *rootOptions) newClient(cmd *cobra.Command) (*api.Client, error) {
	client, err := api.NewClient(o.cfg.Server, o.cfg.APIKey, logging.ComponentLogger(o.logger, "api"))
	if err != nil {
		return nil, err
	}

	if !o.skipVersionCheck {
		if info, verErr := client.ServerVersion(cmd.Context()); verErr == nil {
			ok, reason, checkErr := api.CheckCompatibility(info.Version)
			switch {
			case checkErr != nil:
				o.logger.Debug().Err(checkErr).Msg("could not parse server version")
			case !ok:
				cmd.PrintErrf("Warning: %s\n", reason)
			}
		} else {
			o.logger.Debug().Err(verErr).Msg("server version check skipped")
		}
	}

	return client, nil
}

// newCache builds the shared response cache for this invocation.
func (o *rootOptions) newCache() *cache.Store {
	return cache.NewStore(
		time.Duration(o.cfg.Cache.TTLSeconds)*time.Second,
		o.cfg.Cache.Enabled,
	)
}

// defaultPageSize resolves the effective default page size, derived
// from the terminal height when nothing is configured.
func (o *rootOptions) defaultPageSize() int {
	return o.cfg.ResolvePageSize(int(os.Stdout.Fd()))
}
