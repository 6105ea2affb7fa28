package admin

import (
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	tmos "github.com/tendermint/tendermint/libs/os"

	"github.com/PhmVu/EBN-Besu/account"
	"github.com/PhmVu/EBN-Besu/config"
	"github.com/PhmVu/EBN-Besu/crypto"
	"github.com/PhmVu/EBN-Besu/envfile"
	"github.com/PhmVu/EBN-Besu/genesis"
)

// ErrEnvWithoutKey is returned when the network store exists but holds no
// usable admin key. The store is never overwritten, so a new key would be lost.
var ErrEnvWithoutKey = errors.New("env file exists without a valid " + envfile.KeyAdminPrivateKey)

type Result struct {
	Address        string
	Reused         bool
	EnvCreated     bool
	ExampleCreated bool
	Genesis        genesis.Result
}

// Setup provisions the admin account for the network described by cfg: it
// resolves the key, writes the public account record, creates both network
// env files once and funds the address in genesis.
func Setup(cfg *config.Config, logger log.Logger) (Result, error) {
	var res Result
	balance, err := cfg.AdminBalance()
	if err != nil {
		return res, err
	}

	km, reused, err := resolveKey(cfg.EnvFile())
	if err != nil {
		return res, err
	}
	res.Address, res.Reused = km.Address, reused
	if reused {
		logger.Info("Reusing admin key from env file", "address", km.Address, "file", cfg.EnvFile())
	} else {
		logger.Info("Generated admin key", "address", km.Address)
	}

	if _, err := account.Write(cfg.AccountFile(), km.Address); err != nil {
		return res, err
	}
	logger.Info("Wrote admin account", "file", cfg.AccountFile())

	values := envfile.NetworkValues{
		Address:    km.Address,
		PrivateKey: km.PrivateKey,
		RPCURL:     cfg.RPCURL,
		RPCWSURL:   cfg.RPCWSURL,
		ChainID:    cfg.ChainID,
	}
	if res.ExampleCreated, err = envfile.WriteIfAbsent(cfg.EnvExampleFile(), envfile.RenderNetworkExample(values), 0644); err != nil {
		return res, err
	}
	if res.ExampleCreated {
		logger.Info("Created env template", "file", cfg.EnvExampleFile())
	}
	if res.EnvCreated, err = envfile.WriteIfAbsent(cfg.EnvFile(), envfile.RenderNetwork(values), 0600); err != nil {
		return res, err
	}
	if res.EnvCreated {
		logger.Info("Created env file with private key; keep it out of version control", "file", cfg.EnvFile())
	}

	if res.Genesis, err = genesis.Allocate(cfg.GenesisFile(), km.Address, balance); err != nil {
		return res, err
	}
	if res.Genesis.BackupCreated {
		logger.Info("Backed up genesis", "file", genesis.BackupPath(cfg.GenesisFile()))
	}
	if res.Genesis.Applied {
		logger.Info("Funded admin account in genesis", "address", km.Address, "file", cfg.GenesisFile())
	} else {
		logger.Info("Admin account already in genesis", "address", km.Address)
	}
	return res, nil
}

// resolveKey treats an existing network env file as authoritative for the
// admin key and only generates one when no env file exists. The key is read
// with the same rule sync-env uses, so both always see the same secret.
func resolveKey(envPath string) (crypto.KeyMaterial, bool, error) {
	if !tmos.FileExists(envPath) {
		km, err := crypto.Generate()
		return km, false, err
	}
	secret, err := envfile.ExtractSecret(envPath)
	if err != nil {
		return crypto.KeyMaterial{}, false, errors.Wrapf(ErrEnvWithoutKey, "%s: %v", envPath, err)
	}
	km, err := crypto.Derive(secret)
	if err != nil {
		return crypto.KeyMaterial{}, false, errors.Wrap(ErrEnvWithoutKey, envPath)
	}
	return km, true, nil
}
