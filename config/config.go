package config

import (
	"math/big"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/PhmVu/EBN-Besu/envfile"
	"github.com/PhmVu/EBN-Besu/genesis"
)

const DefaultLogLevel = "info"

var (
	defaultGenesisFile      = filepath.Join("config", "genesis.json")
	defaultAccountFile      = filepath.Join("config", "admin-account.json")
	defaultEnvFile          = ".env"
	defaultEnvExampleFile   = ".env.example"
	defaultContractsEnvFile = filepath.Join("..", "contracts", ".env")
)

// Config locates the files managed for one network. Relative paths are
// resolved against RootDir.
type Config struct {
	RootDir      string `mapstructure:"home"`
	Genesis      string `mapstructure:"genesis_file"`
	Account      string `mapstructure:"account_file"`
	Env          string `mapstructure:"env_file"`
	EnvExample   string `mapstructure:"env_example_file"`
	ContractsEnv string `mapstructure:"contracts_env_file"`
	RPCURL       string `mapstructure:"rpc_url"`
	RPCWSURL     string `mapstructure:"rpc_ws_url"`
	ChainID      uint64 `mapstructure:"chain_id"`
	Balance      string `mapstructure:"balance"`
	LogLevel     string `mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		RootDir:      ".",
		Genesis:      defaultGenesisFile,
		Account:      defaultAccountFile,
		Env:          defaultEnvFile,
		EnvExample:   defaultEnvExampleFile,
		ContractsEnv: defaultContractsEnvFile,
		RPCURL:       envfile.DefaultRPCURL,
		RPCWSURL:     envfile.DefaultRPCWSURL,
		ChainID:      envfile.DefaultChainID,
		Balance:      genesis.DefaultBalance,
		LogLevel:     DefaultLogLevel,
	}
}

func (cfg *Config) SetRoot(root string) *Config {
	cfg.RootDir = root
	return cfg
}

func (cfg *Config) GenesisFile() string { return rootify(cfg.Genesis, cfg.RootDir) }
func (cfg *Config) AccountFile() string { return rootify(cfg.Account, cfg.RootDir) }
func (cfg *Config) EnvFile() string { return rootify(cfg.Env, cfg.RootDir) }
func (cfg *Config) EnvExampleFile() string { return rootify(cfg.EnvExample, cfg.RootDir) }
func (cfg *Config) ContractsEnvFile() string { return rootify(cfg.ContractsEnv, cfg.RootDir) }

// AdminBalance parses Balance as a 0x-prefixed hex quantity.
func (cfg *Config) AdminBalance() (*big.Int, error) {
	balance, err := hexutil.DecodeBig(cfg.Balance)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid balance %q", cfg.Balance)
	}
	return balance, nil
}

func (cfg *Config) ValidateBasic() error {
	for name, path := range map[string]string{
		"genesis_file":       cfg.Genesis,
		"account_file":       cfg.Account,
		"env_file":           cfg.Env,
		"env_example_file":   cfg.EnvExample,
		"contracts_env_file": cfg.ContractsEnv,
	} {
		if path == "" {
			return errors.Errorf("%s must not be empty", name)
		}
	}
	if cfg.RPCURL == "" {
		return errors.New("rpc_url must not be empty")
	}
	if cfg.ChainID == 0 {
		return errors.New("chain_id must be positive")
	}
	if _, err := cfg.AdminBalance(); err != nil {
		return err
	}
	return nil
}

func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
