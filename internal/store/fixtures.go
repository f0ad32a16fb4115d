package store

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeFixtures reads a YAML dataset into out. Unknown keys are rejected so
// a typo in a fixture file fails loudly.
func DecodeFixtures(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode fixtures: %w", err)
	}
	return nil
}

// LoadFixtures decodes the file at path into out, or the embedded default
// when path is empty.
func LoadFixtures(path string, embedded []byte, out any) error {
	if path == "" {
		return DecodeFixtures(bytes.NewReader(embedded), out)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	return DecodeFixtures(f, out)
}
