// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// StampFileName is the sentinel written inside a marker after creation succeeded.
	StampFileName = ".venvshell.toml"
	// StampVersion is the current stamp schema version.
	StampVersion = 1
)

// ErrStampVersion is returned when a stamp carries an unsupported schema version.
var ErrStampVersion = errors.New("unsupported stamp version")

// Stamp records how an environment was created. Its presence means creation
// finished; it is never rewritten.
type Stamp struct {
	Version     int             `toml:"version"`
	Interpreter InterpreterSpec `toml:"interpreter"`
	Creator     string          `toml:"creator"`
	CreatedAt   time.Time       `toml:"created_at"`
}

// WriteStamp writes s into dir. The file is written to a temporary name and
// renamed, so a reader never sees a half-written stamp.
func WriteStamp(dir string, s Stamp) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode stamp: %w", err)
	}

	tmp, err := os.CreateTemp(dir, StampFileName+".*")
	if err != nil {
		return fmt.Errorf("write stamp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write stamp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write stamp: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, StampFileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write stamp: %w", err)
	}
	return nil
}

// ReadStamp reads the stamp in dir. A missing stamp returns an error
// satisfying errors.Is(err, fs.ErrNotExist).
func ReadStamp(dir string) (*Stamp, error) {
	data, err := os.ReadFile(filepath.Join(dir, StampFileName))
	if err != nil {
		return nil, err
	}
	var s Stamp
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StampFileName, err)
	}
	if s.Version < 1 || s.Version > StampVersion {
		return nil, fmt.Errorf("%s: %w %d", StampFileName, ErrStampVersion, s.Version)
	}
	return &s, nil
}
