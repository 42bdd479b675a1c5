// Package transfer reads and writes wishlist backup files.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/wishlist/internal/model"
)

// ErrParse is wrapped when a backup file is not valid JSON.
var ErrParse = errors.New("invalid backup file")

// Filename is the default backup name for the given day.
func Filename(now time.Time) string {
	return "wishlist_backup_" + now.Format("2006-01-02") + ".json"
}

// Encode writes snap as JSON indented by two spaces.
func Encode(w io.Writer, snap model.Snapshot) error {
	if snap.Items == nil {
		snap.Items = []model.Item{}
	}
	if snap.Categories == nil {
		snap.Categories = []string{}
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Decode parses a backup. Fields of the wrong type are dropped rather than
// failing the whole import; absent keys stay nil in the snapshot.
func Decode(r io.Reader) (model.Snapshot, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read: %w", err)
	}
	var snap model.Snapshot
	partial, err := model.UnmarshalLenient(b, &snap)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := checkShape(b, snap); err != nil {
		return model.Snapshot{}, err
	}
	if partial {
		slog.Warn("backup has fields of the wrong type, importing what decoded")
	}
	return snap, nil
}

// checkShape rejects documents whose collections did not decode as lists,
// which the lenient decoder would otherwise turn into a silent no-op.
func checkShape(b []byte, snap model.Snapshot) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return fmt.Errorf("%w: want a JSON object with items and categories", ErrParse)
	}
	for _, c := range []struct {
		key     string
		decoded bool
	}{
		{"items", snap.Items != nil},
		{"categories", snap.Categories != nil},
	} {
		raw, ok := top[c.key]
		if ok && !c.decoded && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%w: %q is not a list", ErrParse, c.key)
		}
	}
	return nil
}

// WriteFile encodes snap to path. An existing file is overwritten.
func WriteFile(path string, snap model.Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the backup at path.
func ReadFile(path string) (model.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
