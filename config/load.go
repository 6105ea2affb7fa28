package config

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	tmos "github.com/tendermint/tendermint/libs/os"
)

const envPrefix = "EBN"

// ConfigFile is the optional per-network configuration file under the home dir.
func ConfigFile(home string) string {
	return filepath.Join(home, "config", "admin.toml")
}

// Load merges defaults, the optional config file, EBN_* environment variables
// and any changed flags, in increasing priority. A flag named genesis-file
// sets the genesis_file key.
func Load(home string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	for key, value := range map[string]interface{}{
		"genesis_file":       cfg.Genesis,
		"account_file":       cfg.Account,
		"env_file":           cfg.Env,
		"env_example_file":   cfg.EnvExample,
		"contracts_env_file": cfg.ContractsEnv,
		"rpc_url":            cfg.RPCURL,
		"rpc_ws_url":         cfg.RPCWSURL,
		"chain_id":           cfg.ChainID,
		"balance":            cfg.Balance,
		"log_level":          cfg.LogLevel,
	} {
		v.SetDefault(key, value)
		if flags == nil {
			continue
		}
		if flag := flags.Lookup(strings.ReplaceAll(key, "_", "-")); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if file := ConfigFile(home); tmos.FileExists(file) {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", file)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	cfg.SetRoot(home)
	if err := cfg.ValidateBasic(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
