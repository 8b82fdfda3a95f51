package pipeline

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/exam"
)

// LoadInput reads an exam file, choosing the decoder by extension: ".json"
// is decoded as JSON, anything else as TOML. A path of "-" reads TOML from
// stdin.
func LoadInput(path string) (*exam.File, error) {
	if path == "-" {
		return ParseInput(os.Stdin, "stdin.toml")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "exam file %s", path)
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return exam.DecodeJSON(f)
	}
	return exam.LoadFile(path)
}

// ParseInput decodes an exam document from r. name is only used to pick
// the format by extension.
func ParseInput(r io.Reader, name string) (*exam.File, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return exam.DecodeJSON(r)
	}
	return exam.Decode(r)
}

// ParseInputBytes decodes data, sniffing JSON by a leading '{'.
func ParseInputBytes(data []byte) (*exam.File, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return exam.DecodeJSON(bytes.NewReader(data))
	}
	return exam.Decode(bytes.NewReader(data))
}
