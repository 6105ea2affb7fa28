package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	privateKeyLength = 32
	addressLength    = 20
)

var ErrInvalidPrivateKey = errors.New("invalid private key")

// KeyMaterial is a private key and the address derived from it.
// Both are 0x-prefixed lowercase hex.
type KeyMaterial struct {
	PrivateKey string
	Address    string
}

func (km KeyMaterial) String() string {
	return "KeyMaterial{" + km.Address + "}"
}

// Generate draws a fresh secp256k1 key from crypto/rand.
func Generate() (KeyMaterial, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom draws 32 bytes at a time from r until they form a scalar in [1, N).
func GenerateFrom(r io.Reader) (KeyMaterial, error) {
	order := btcec.S256().N
	buf := make([]byte, privateKeyLength)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return KeyMaterial{}, errors.Wrap(err, "reading entropy")
		}
		k := new(big.Int).SetBytes(buf)
		if k.Sign() == 0 || k.Cmp(order) >= 0 {
			continue
		}
		return FromBytes(buf)
	}
}

// Derive parses a hex private key, with or without 0x, and derives its address.
func Derive(privateKeyHex string) (KeyMaterial, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"), "0X")
	if len(s) != 2*privateKeyLength {
		return KeyMaterial{}, ErrInvalidPrivateKey
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyMaterial{}, ErrInvalidPrivateKey
	}
	return FromBytes(b)
}

func FromBytes(privKey []byte) (KeyMaterial, error) {
	if _, err := ethcrypto.ToECDSA(privKey); err != nil {
		return KeyMaterial{}, ErrInvalidPrivateKey
	}
	_, pubKey := btcec.PrivKeyFromBytes(btcec.S256(), privKey)
	return KeyMaterial{
		PrivateKey: "0x" + hex.EncodeToString(privKey),
		Address:    "0x" + hex.EncodeToString(address(pubKey.SerializeUncompressed())),
	}, nil
}

// address is the last 20 bytes of keccak256 over the 64-byte public key.
func address(uncompressed []byte) []byte {
	hash := ethcrypto.Keccak256(uncompressed[1:])
	return hash[len(hash)-addressLength:]
}
