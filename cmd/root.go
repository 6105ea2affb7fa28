package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/PhmVu/EBN-Besu/config"
	"github.com/PhmVu/EBN-Besu/envfile"
	"github.com/PhmVu/EBN-Besu/genesis"
)

var RootCmd = NewRootCmd()

type state struct {
	rootDir string
	cfg     *config.Config
	logger  log.Logger
}

func NewRootCmd() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "ebn-admin",
		Short:         "Admin account bootstrap for the Besu network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
	}

	def := config.DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVar(&st.rootDir, "home", "./besu-network", "Home directory of the Besu network")
	pf.String("genesis-file", def.Genesis, "Genesis file, relative to home")
	pf.String("account-file", def.Account, "Admin account record, relative to home")
	pf.String("env-file", def.Env, "Network env file, relative to home")
	pf.String("env-example-file", def.EnvExample, "Network env template, relative to home")
	pf.String("contracts-env-file", def.ContractsEnv, "Contract deployment env file, relative to home")
	pf.String("rpc-url", envfile.DefaultRPCURL, "JSON-RPC endpoint written to env files")
	pf.String("rpc-ws-url", envfile.DefaultRPCWSURL, "WebSocket endpoint written to the network env file")
	pf.Uint64("chain-id", envfile.DefaultChainID, "Chain id written to the network env file")
	pf.String("balance", genesis.DefaultBalance, "Admin balance allocated in genesis (hex wei)")
	pf.String("log-level", config.DefaultLogLevel, "Log level")

	root.AddCommand(newSetupCmd(st))
	root.AddCommand(newSyncCmd(st))
	root.AddCommand(newKeygenCmd())
	root.AddCommand(newAddressCmd())
	return root
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.rootDir, cmd.Flags())
	if err != nil {
		return err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	logger, err = flags.ParseLogLevel(cfg.LogLevel, logger, config.DefaultLogLevel)
	if err != nil {
		return err
	}
	st.cfg, st.logger = cfg, logger
	return nil
}
