package genesis

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/tempfile"
)

const allocKey = "alloc"

// DefaultBalance funds the admin account in a fresh network.
const DefaultBalance = "0x200000000000000000000000000000000000000000000000000000000000000"

func DefaultAdminBalance() *big.Int {
	return hexutil.MustDecodeBig(DefaultBalance)
}

type Account struct {
	Balance *hexutil.Big `json:"balance"`
}

// Document is a genesis file. Fields other than alloc are kept as raw JSON so
// they round-trip without re-encoding.
type Document struct {
	fields map[string]json.RawMessage
	alloc  map[string]json.RawMessage
}

func Parse(path string, data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &MalformedGenesisError{Path: path, Err: err}
	}
	if fields == nil {
		return nil, &MalformedGenesisError{Path: path, Err: errors.New("document is not an object")}
	}
	doc := &Document{fields: fields, alloc: make(map[string]json.RawMessage)}
	if raw, ok := fields[allocKey]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &doc.alloc); err != nil || doc.alloc == nil {
			return nil, &MalformedGenesisError{Path: path, Err: errors.New("alloc is not an object")}
		}
	}
	return doc, nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading genesis %s", path)
	}
	return Parse(path, data)
}

// Has reports whether address is allocated, ignoring case and the 0x prefix.
func (doc *Document) Has(address string) bool {
	want := normalize(address)
	for key := range doc.alloc {
		if normalize(key) == want {
			return true
		}
	}
	return false
}

func (doc *Document) Balance(address string) (*big.Int, bool) {
	want := normalize(address)
	for key, raw := range doc.alloc {
		if normalize(key) != want {
			continue
		}
		var acc Account
		if err := json.Unmarshal(raw, &acc); err != nil || acc.Balance == nil {
			return nil, false
		}
		return acc.Balance.ToInt(), true
	}
	return nil, false
}

func (doc *Document) Addresses() []string {
	addrs := make([]string, 0, len(doc.alloc))
	for key := range doc.alloc {
		addrs = append(addrs, key)
	}
	return addrs
}

// Allocate funds address with balance unless it is already allocated. It
// reports whether the document changed.
func (doc *Document) Allocate(address string, balance *big.Int) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, errors.Wrap(ErrInvalidAddress, address)
	}
	if balance == nil || balance.Sign() < 0 {
		return false, ErrNegativeBalance
	}
	if doc.Has(address) {
		return false, nil
	}
	entry, err := json.Marshal(Account{Balance: (*hexutil.Big)(new(big.Int).Set(balance))})
	if err != nil {
		return false, err
	}
	doc.alloc[normalize(address)] = entry
	return true, nil
}

// Marshal renders the document with sorted keys and two-space indentation.
func (doc *Document) Marshal() ([]byte, error) {
	alloc, err := json.Marshal(doc.alloc)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(doc.fields)+1)
	for k, v := range doc.fields {
		out[k] = v
	}
	if _, ok := doc.fields[allocKey]; ok || len(doc.alloc) > 0 {
		out[allocKey] = alloc
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type Result struct {
	Applied       bool
	BackupCreated bool
}

// Allocate adds a funded entry for address to the genesis file at path. The
// file is read once, backed up before its first mutation, and replaced
// atomically. Nothing is written when the address is already allocated.
func Allocate(path, address string, balance *big.Int) (Result, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, "reading genesis %s", path)
	}
	doc, err := Parse(path, original)
	if err != nil {
		return Result{}, err
	}
	applied, err := doc.Allocate(address, balance)
	if err != nil || !applied {
		return Result{}, err
	}
	data, err := doc.Marshal()
	if err != nil {
		return Result{}, errors.Wrap(err, "encoding genesis")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, "reading genesis metadata %s", path)
	}

	var res Result
	if res.BackupCreated, err = EnsureBackup(path, original); err != nil {
		return res, err
	}
	beforeWrite()
	if err := unchanged(path, original); err != nil {
		return res, err
	}
	if err := tempfile.WriteFileAtomic(path, data, info.Mode().Perm()); err != nil {
		return res, errors.Wrapf(err, "writing genesis %s", path)
	}
	res.Applied = true
	return res, nil
}

// beforeWrite is a test hook run between the backup and the content check.
var beforeWrite = func() {}

func unchanged(path string, original []byte) error {
	current, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "re-reading genesis %s", path)
	}
	if sha256.Sum256(current) != sha256.Sum256(original) {
		return ErrConcurrentUpdate
	}
	return nil
}

func normalize(address string) string {
	return "0x" + strings.TrimPrefix(strings.ToLower(address), "0x")
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
