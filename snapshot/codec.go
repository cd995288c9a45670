package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Encode(w io.Writer, p *Portal) error {
	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(p); err != nil {
		return fmt.Errorf("encoding snapshot to YAML: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		return fmt.Errorf("encoding snapshot to YAML failed on close: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (*Portal, error) {
	var p Portal
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		if err == io.EOF {
			return &p, nil
		}
		return nil, fmt.Errorf("decoding snapshot YAML: %w", err)
	}
	return &p, nil
}

// Save writes the snapshot next to path first and renames it into place, so a failed
// write never leaves a truncated snapshot behind.
func Save(path string, p *Portal) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, p); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func Load(path string) (*Portal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
