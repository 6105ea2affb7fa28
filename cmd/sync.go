package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhmVu/EBN-Besu/envfile"
)

func newSyncCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-env",
		Short: "Copy ADMIN_PRIVATE_KEY from the network env file into the contracts env file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest := st.cfg.EnvFile(), st.cfg.ContractsEnvFile()
			if err := envfile.NewPropagator(st.cfg.RPCURL).Sync(source, dest); err != nil {
				return err
			}
			st.logger.Info("Synced admin key", "source", source, "dest", dest)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s + %s).\n", dest, envfile.KeyBesuRPCURL, envfile.KeyAdminPrivateKey)
			return nil
		},
	}
}
