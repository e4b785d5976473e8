package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a parameter set from a YAML or JSON file. Fields missing
// from the file keep their DefaultParameters value.
func LoadFile(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, err
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON, which YAML accepts) over the defaults and
// validates the outcome
func Parse(data []byte) (Parameters, error) {
	p := DefaultParameters()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("decode parameters: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}
