package genesis

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/tempfile"
)

const backupSuffix = ".backup"

// BackupState tracks whether the pre-mutation snapshot of a genesis file exists.
// The only transition is BackupMissing -> BackupPresent; a present backup is
// never rewritten.
type BackupState int

const (
	BackupMissing BackupState = iota
	BackupPresent
)

func (s BackupState) String() string {
	if s == BackupPresent {
		return "present"
	}
	return "missing"
}

func BackupPath(path string) string {
	return path + backupSuffix
}

func CheckBackup(path string) (BackupState, error) {
	_, err := os.Stat(BackupPath(path))
	switch {
	case err == nil:
		return BackupPresent, nil
	case os.IsNotExist(err):
		return BackupMissing, nil
	default:
		return BackupMissing, errors.Wrap(err, "checking genesis backup")
	}
}

// EnsureBackup writes original to the backup path if no backup exists yet,
// carrying over the mode and modification time of path. It reports whether a
// backup was created.
func EnsureBackup(path string, original []byte) (bool, error) {
	state, err := CheckBackup(path)
	if err != nil {
		return false, err
	}
	if state == BackupPresent {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading genesis metadata")
	}
	backup := BackupPath(path)
	if err := tempfile.WriteFileAtomic(backup, original, info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, "writing backup %s", backup)
	}
	if err := os.Chtimes(backup, info.ModTime(), info.ModTime()); err != nil {
		return true, errors.Wrapf(err, "preserving backup times %s", backup)
	}
	return true, nil
}
