package facility

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/setunayuki/fukko-portal2/data"
)

type seedFile struct {
	Categories []string `yaml:"categories"`
	Facilities []Record `yaml:"facilities"`
}

// Load decodes a YAML seed document and builds a Store from it.
func Load(r io.Reader) (*Store, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return NewStore(nil, nil)
		}
		return nil, fmt.Errorf("facility: decode seed: %w", err)
	}
	return NewStore(seed.Facilities, seed.Categories)
}

// LoadFile reads a YAML seed document from disk.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("facility: read seed %s: %w", path, err)
	}
	store, err := Load(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Default builds the Store from the seed compiled into the binary.
func Default() (*Store, error) {
	return Load(bytes.NewReader(data.Facilities))
}
