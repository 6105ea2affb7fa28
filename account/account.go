package account

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	tmos "github.com/tendermint/tendermint/libs/os"
	"github.com/tendermint/tendermint/libs/tempfile"
)

const DefaultNote = "This is the admin account for teacher. Private key should be stored securely in .env file, not in this file."

// Record is the public half of the admin key material. It holds no secret and
// may be committed.
type Record struct {
	Address string `json:"address"`
	Note    string `json:"note"`
}

func Write(path, address string) (Record, error) {
	rec := Record{Address: address, Note: DefaultNote}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return rec, err
	}
	if err := tmos.EnsureDir(filepath.Dir(path), 0755); err != nil {
		return rec, errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := tempfile.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return rec, errors.Wrapf(err, "writing admin account %s", path)
	}
	return rec, nil
}

func Read(path string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, errors.Wrapf(err, "reading admin account %s", path)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, errors.Wrapf(err, "decoding admin account %s", path)
	}
	return rec, nil
}
