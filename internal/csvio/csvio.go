package csvio

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"ucclean/internal/records"
)

const utf8BOM = "\ufeff"

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("csv file has no header row")

// Load reads a comma-separated file with a header row into a table.
func Load(path string) (*records.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	tbl, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tbl, nil
}

// Read parses CSV data from r. Rows shorter than the header are padded.
func Read(r io.Reader) (*records.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	tbl := records.New(header)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(row) > len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(header))
		}
		tbl.Append(line, row)
	}
	return tbl, nil
}

// Write encodes tbl (header first) to w.
func Write(w io.Writer, tbl *records.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(tbl.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range tbl.Records {
		if err := writer.Write(rec.Fields); err != nil {
			return fmt.Errorf("write line %d: %w", rec.Line, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LockPath returns the advisory lock file guarding writes to path. Locks live
// in lockDir (the system temp directory when empty) so the output directory
// only ever holds the exported file.
func LockPath(lockDir, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if strings.TrimSpace(lockDir) == "" {
		lockDir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, "ucclean-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Save writes tbl to path atomically. The target is replaced only after the
// full table has been written and synced. Concurrent writers to the same path
// are serialized through the advisory lock at LockPath(lockDir, path).
func Save(path string, tbl *records.Table, lockDir string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}

	lockPath, err := LockPath(lockDir, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if err := Write(tmp, tbl); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
