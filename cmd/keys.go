package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhmVu/EBN-Besu/crypto"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh private key and its address without writing any file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := crypto.Generate()
			if err != nil {
				return err
			}
			printKeyMaterial(cmd, km, true)
			return nil
		},
	}
}

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <private-key>",
		Short: "Derive the address of a hex private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := crypto.Derive(args[0])
			if err != nil {
				return err
			}
			printKeyMaterial(cmd, km, false)
			return nil
		},
	}
}

func printKeyMaterial(cmd *cobra.Command, km crypto.KeyMaterial, withKey bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Address: %s\n", km.Address)
	if withKey {
		fmt.Fprintf(out, "Private Key: %s\n", km.PrivateKey)
	}
}
