package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	tmos "github.com/tendermint/tendermint/libs/os"
	"github.com/tendermint/tendermint/libs/tempfile"
)

const (
	KeyAdminAddress    = "ADMIN_ADDRESS"
	KeyAdminPrivateKey = "ADMIN_PRIVATE_KEY"
	KeyRPCURL          = "RPC_URL"
	KeyRPCWSURL        = "RPC_WS_URL"
	KeyChainID         = "CHAIN_ID"
	KeyBesuRPCURL      = "BESU_RPC_URL"

	DefaultRPCURL   = "http://localhost:8549"
	DefaultRPCWSURL = "ws://localhost:8550"
	DefaultChainID  = 1337

	PrivateKeyPlaceholder = "your_admin_private_key_here"
)

// NetworkValues fill the network-side store read by the node network.
type NetworkValues struct {
	Address    string
	PrivateKey string
	RPCURL     string
	RPCWSURL   string
	ChainID    uint64
}

func RenderNetwork(v NetworkValues) string {
	var b strings.Builder
	b.WriteString("# Admin Account Configuration\n")
	writeNetwork(&b, v, v.PrivateKey)
	return b.String()
}

// RenderNetworkExample is RenderNetwork with the secret replaced by a
// placeholder, for committing to version control.
func RenderNetworkExample(v NetworkValues) string {
	var b strings.Builder
	b.WriteString("# Admin Account Configuration\n")
	b.WriteString("# DO NOT commit the actual private key to git!\n")
	b.WriteString("# Copy this file to .env and fill in the actual values\n\n")
	writeNetwork(&b, v, PrivateKeyPlaceholder)
	return b.String()
}

func writeNetwork(b *strings.Builder, v NetworkValues, privateKey string) {
	writeLine(b, KeyAdminAddress, v.Address)
	writeLine(b, KeyAdminPrivateKey, privateKey)
	b.WriteString("\n# Besu Network Configuration\n")
	writeLine(b, KeyRPCURL, v.RPCURL)
	writeLine(b, KeyRPCWSURL, v.RPCWSURL)
	writeLine(b, KeyChainID, fmt.Sprint(v.ChainID))
}

func writeLine(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte('\n')
}

// Read parses the store at path.
func Read(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return values, nil
}

// Write replaces the store at path, creating its directory if needed.
func Write(path, content string, perm os.FileMode) error {
	if err := tmos.EnsureDir(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := tempfile.WriteFileAtomic(path, []byte(content), perm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// WriteIfAbsent creates the store at path unless it already exists, and
// reports whether it wrote.
func WriteIfAbsent(path, content string, perm os.FileMode) (bool, error) {
	if tmos.FileExists(path) {
		return false, nil
	}
	if err := Write(path, content, perm); err != nil {
		return false, err
	}
	return true, nil
}
