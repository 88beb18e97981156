// Package backup writes and restores zstd-compressed badger backups.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// Extension is appended to every backup file name.
const Extension = ".badger.zst"

// maxPendingWrites bounds the writes badger buffers during Load.
const maxPendingWrites = 16

// Write streams a full backup of db into w and returns the version it
// covers.
func Write(db *badger.DB, w io.Writer) (uint64, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}

	version, err := db.Backup(enc, 0)
	if err != nil {
		enc.Close()
		return 0, fmt.Errorf("badger backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("flush backup: %w", err)
	}
	return version, nil
}

// Read loads a backup produced by Write into db.
func Read(db *badger.DB, r io.Reader) (err error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer dec.Close()

	// badger panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()

	if err := db.Load(dec, maxPendingWrites); err != nil {
		return fmt.Errorf("badger load: %w", err)
	}
	return nil
}

// ToFile writes a backup of db into dir, naming the file after now, and
// returns its path.
func ToFile(db *badger.DB, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("backup_%d%s", now.Unix(), Extension))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}

	if _, err := Write(db, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// FromFile restores the backup at path into db.
func FromFile(db *badger.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", path)
	}
	return Read(db, f)
}
