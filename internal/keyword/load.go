package keyword

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk layout of an externally supplied keyword table
type tableFile struct {
	Keywords []Record `yaml:"keywords"`
}

// LoadTable reads a YAML keyword table from path.
// An empty path returns the default table.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading keyword file: %w", err)
	}

	return ParseTable(bytes.NewReader(data))
}

// ParseTable decodes and validates a YAML keyword table
func ParseTable(r io.Reader) (Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file tableFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("parsing keyword file: %w", err)
	}

	t, err := NewTable(file.Keywords)
	if err != nil {
		return Table{}, fmt.Errorf("validating keyword file: %w", err)
	}
	return t, nil
}
