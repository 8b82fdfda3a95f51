package exam

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// File is the complete input for one exam: the record plus the setup and
// supervision configuration. Exam is nil when no exam has been selected.
type File struct {
	Exam        *Record     `toml:"exam" json:"exam,omitempty"`
	Setup       Setup       `toml:"setup" json:"setup"`
	Supervision Supervision `toml:"supervision" json:"supervision"`
}

// newFile returns a File with setup defaults filled in, so keys absent from
// the input keep their default values after decoding.
func newFile() *File {
	return &File{Setup: NewSetup()}
}

// LoadFile reads and validates a TOML exam file.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "exam file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ef, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ef, nil
}

// Decode reads a TOML exam document from r and validates it.
func Decode(r io.Reader) (*File, error) {
	f := newFile()
	if _, err := toml.NewDecoder(r).Decode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	return f.finish()
}

// DecodeJSON reads a JSON exam document from r and validates it. The shape
// mirrors the TOML tables: {"exam": {...}, "setup": {...}, "supervision": {...}}.
func DecodeJSON(r io.Reader) (*File, error) {
	f := newFile()
	if err := json.NewDecoder(r).Decode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return f.finish()
}

func (f *File) finish() (*File, error) {
	if f.Exam != nil {
		rec := f.Exam.EnsureID()
		f.Exam = &rec
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks every part of the file for malformed values.
func (f *File) Validate() error {
	if f.Exam != nil {
		if err := f.Exam.Validate(); err != nil {
			return err
		}
	}
	if err := f.Setup.Validate(); err != nil {
		return err
	}
	return f.Supervision.Validate()
}
