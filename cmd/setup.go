package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhmVu/EBN-Besu/admin"
)

func newSetupCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the admin account and fund it in genesis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := admin.Setup(st.cfg, st.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Admin Address: %s\n", res.Address)
			fmt.Fprintf(out, "Private Key: (see %s)\n", st.cfg.EnvFile())
			if !res.Genesis.Applied {
				fmt.Fprintln(out, "Genesis not updated: admin address already allocated.")
			}
			return nil
		},
	}
}
