package cli

import (
	"github.com/spf13/cobra"

	"github.com/doublewordai/dwadmin/internal/api"
)

// newVersionCmd creates the version command, reporting the client
// version and, when the server is reachable, its version and
// compatibility status.
func newVersionCmd(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("dwadmin %s\n", version)

			client, err := api.NewClient(opts.cfg.Server, opts.cfg.APIKey, opts.logger)
			if err != nil {
				return err
			}

			info, err := client.ServerVersion(cmd.Context())
			if err != nil {
				cmd.Printf("control layer: unreachable (%v)\n", err)
				return nil
			}

			cmd.Printf("control layer: %s\n", info.Version)
			ok, reason, err := api.CheckCompatibility(info.Version)
			switch {
			case err != nil:
				cmd.Printf("compatibility: unknown (%v)\n", err)
			case ok:
				cmd.Println("compatibility: ok")
			default:
				cmd.Printf("compatibility: %s\n", reason)
			}
			return nil
		},
	}
}
