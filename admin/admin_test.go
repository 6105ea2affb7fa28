package admin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/PhmVu/EBN-Besu/account"
	"github.com/PhmVu/EBN-Besu/config"
	"github.com/PhmVu/EBN-Besu/crypto"
	"github.com/PhmVu/EBN-Besu/envfile"
	"github.com/PhmVu/EBN-Besu/genesis"
)

const emptyGenesis = `{"config": {"chainId": 1337}, "alloc": {}}`

func newNetwork(t *testing.T) *config.Config {
	t.Helper()
	root := filepath.Join(t.TempDir(), "besu-network")
	cfg := config.DefaultConfig().SetRoot(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.GenesisFile()), 0755))
	require.NoError(t, os.WriteFile(cfg.GenesisFile(), []byte(emptyGenesis), 0644))
	return cfg
}

func TestSetupFreshNetwork(t *testing.T) {
	cfg := newNetwork(t)

	res, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.False(t, res.Reused)
	assert.True(t, res.EnvCreated)
	assert.True(t, res.ExampleCreated)
	assert.True(t, res.Genesis.Applied)
	assert.True(t, res.Genesis.BackupCreated)

	values, err := envfile.Read(cfg.EnvFile())
	require.NoError(t, err)
	km, err := crypto.Derive(values[envfile.KeyAdminPrivateKey])
	require.NoError(t, err)
	assert.Equal(t, res.Address, km.Address)
	assert.Equal(t, res.Address, values[envfile.KeyAdminAddress])
	assert.Equal(t, "1337", values[envfile.KeyChainID])

	example, err := envfile.Read(cfg.EnvExampleFile())
	require.NoError(t, err)
	assert.Equal(t, envfile.PrivateKeyPlaceholder, example[envfile.KeyAdminPrivateKey])

	rec, err := account.Read(cfg.AccountFile())
	require.NoError(t, err)
	assert.Equal(t, res.Address, rec.Address)

	doc, err := genesis.Load(cfg.GenesisFile())
	require.NoError(t, err)
	balance, ok := doc.Balance(res.Address)
	require.True(t, ok)
	assert.Equal(t, 0, genesis.DefaultAdminBalance().Cmp(balance))

	backup, err := os.ReadFile(genesis.BackupPath(cfg.GenesisFile()))
	require.NoError(t, err)
	assert.Equal(t, emptyGenesis, string(backup))
}

func TestSetupRerunReusesKey(t *testing.T) {
	cfg := newNetwork(t)
	first, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)
	envBefore, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)
	genesisBefore, err := os.ReadFile(cfg.GenesisFile())
	require.NoError(t, err)

	second, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Address, second.Address)
	assert.False(t, second.EnvCreated)
	assert.False(t, second.ExampleCreated)
	assert.False(t, second.Genesis.Applied)

	envAfter, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)
	assert.Equal(t, envBefore, envAfter)
	genesisAfter, err := os.ReadFile(cfg.GenesisFile())
	require.NoError(t, err)
	assert.Equal(t, genesisBefore, genesisAfter)

	doc, err := genesis.Load(cfg.GenesisFile())
	require.NoError(t, err)
	assert.Len(t, doc.Addresses(), 1)
}

func TestSetupThenSync(t *testing.T) {
	cfg := newNetwork(t)
	res, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, envfile.NewPropagator(cfg.RPCURL).Sync(cfg.EnvFile(), cfg.ContractsEnvFile()))
	values, err := envfile.Read(cfg.ContractsEnvFile())
	require.NoError(t, err)
	km, err := crypto.Derive(values[envfile.KeyAdminPrivateKey])
	require.NoError(t, err)
	assert.Equal(t, res.Address, km.Address)
}

func TestSetupEnvWithoutKey(t *testing.T) {
	cfg := newNetwork(t)
	require.NoError(t, os.WriteFile(cfg.EnvFile(), []byte("ADMIN_PRIVATE_KEY="+envfile.PrivateKeyPlaceholder+"\n"), 0600))

	_, err := Setup(cfg, log.NewNopLogger())
	assert.ErrorIs(t, err, ErrEnvWithoutKey)

	data, err := os.ReadFile(cfg.GenesisFile())
	require.NoError(t, err)
	assert.Equal(t, emptyGenesis, string(data))
	assert.NoFileExists(t, cfg.AccountFile())
}

func TestSetupMalformedGenesis(t *testing.T) {
	cfg := newNetwork(t)
	require.NoError(t, os.WriteFile(cfg.GenesisFile(), []byte("{broken"), 0644))

	_, err := Setup(cfg, log.NewNopLogger())
	var malformed *genesis.MalformedGenesisError
	assert.ErrorAs(t, err, &malformed)
}

func TestSetupAndSyncAgreeOnDuplicateKeyLines(t *testing.T) {
	cfg := newNetwork(t)
	first := "0x1111111111111111111111111111111111111111111111111111111111111111"
	second := "0x2222222222222222222222222222222222222222222222222222222222222222"
	require.NoError(t, os.WriteFile(cfg.EnvFile(), []byte("ADMIN_PRIVATE_KEY="+first+"\nADMIN_PRIVATE_KEY="+second+"\n"), 0600))

	res, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.True(t, res.Reused)
	want, err := crypto.Derive(first)
	require.NoError(t, err)
	assert.Equal(t, want.Address, res.Address)

	require.NoError(t, envfile.NewPropagator(cfg.RPCURL).Sync(cfg.EnvFile(), cfg.ContractsEnvFile()))
	synced, err := envfile.ExtractSecret(cfg.ContractsEnvFile())
	require.NoError(t, err)
	km, err := crypto.Derive(synced)
	require.NoError(t, err)
	assert.Equal(t, res.Address, km.Address)

	doc, err := genesis.Load(cfg.GenesisFile())
	require.NoError(t, err)
	assert.True(t, doc.Has(want.Address))
}

func TestSetupCreatesAccountDirectory(t *testing.T) {
	cfg := newNetwork(t)
	cfg.Account = filepath.Join("records", "nested", "admin-account.json")

	res, err := Setup(cfg, log.NewNopLogger())
	require.NoError(t, err)
	rec, err := account.Read(cfg.AccountFile())
	require.NoError(t, err)
	assert.Equal(t, res.Address, rec.Address)
}
