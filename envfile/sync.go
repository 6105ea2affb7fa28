package envfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	secretPrefix    = "0x"
	minSecretLength = 10
)

var secretLine = regexp.MustCompile(`(?m)^` + KeyAdminPrivateKey + `=(.+)$`)

type SourceMissingError struct {
	Path string
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("missing %s: run admin setup first", e.Path)
}

type SecretNotFoundError struct {
	Path string
	Key  string
}

func (e *SecretNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.Key, e.Path)
}

type InvalidSecretFormatError struct {
	Path string
	Key  string
}

func (e *InvalidSecretFormatError) Error() string {
	return fmt.Sprintf("%s in %s looks invalid (expected hex string starting with %s)", e.Key, e.Path, secretPrefix)
}

// Propagator copies the admin secret from the network-side store into a
// deployment-side store that it fully owns.
type Propagator struct {
	RPCURL string
}

func NewPropagator(rpcURL string) *Propagator {
	return &Propagator{RPCURL: rpcURL}
}

func Sync(source, dest string) error {
	return NewPropagator(DefaultRPCURL).Sync(source, dest)
}

// Sync overwrites dest with the RPC endpoint and the secret found in source.
// source is never modified and dest is left alone on any error.
func (p *Propagator) Sync(source, dest string) error {
	secret, err := ExtractSecret(source)
	if err != nil {
		return err
	}
	return Write(dest, p.Render(secret), 0600)
}

// Render returns the deployment-side document for secret.
func (p *Propagator) Render(secret string) string {
	var b strings.Builder
	writeLine(&b, KeyRPCURL, p.RPCURL)
	writeLine(&b, KeyBesuRPCURL, p.RPCURL)
	writeLine(&b, KeyAdminPrivateKey, secret)
	return b.String()
}

// ExtractSecret reads the ADMIN_PRIVATE_KEY line of the store at path and
// applies a loose format check: 0x prefix, at least 10 characters.
func ExtractSecret(path string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &SourceMissingError{Path: path}
		}
		return "", errors.Wrapf(err, "reading %s", path)
	}
	m := secretLine.FindSubmatch(text)
	if m == nil {
		return "", &SecretNotFoundError{Path: path, Key: KeyAdminPrivateKey}
	}
	secret := strings.TrimSpace(string(m[1]))
	if !strings.HasPrefix(secret, secretPrefix) || len(secret) < minSecretLength {
		return "", &InvalidSecretFormatError{Path: path, Key: KeyAdminPrivateKey}
	}
	return secret, nil
}
