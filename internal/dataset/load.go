package dataset

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default is the embedded dataset used when none is named.
const Default = "agno"

//go:embed datasets/*
var embedded embed.FS

// Format is a dataset file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf derives the format from a file name's extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrFormat, name)
	}
}

// Info describes an embedded dataset.
type Info struct {
	Name        string
	Description string
}

// List returns the embedded datasets sorted by name.
func List() ([]Info, error) {
	entries, err := fs.ReadDir(embedded, "datasets")
	if err != nil {
		return nil, fmt.Errorf("read embedded datasets: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		d, err := Embedded(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, Info{Name: name, Description: d.Description})
	}

	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

// Embedded loads the embedded dataset with the given name.
func Embedded(name string) (*Dataset, error) {
	entries, err := fs.ReadDir(embedded, "datasets")
	if err != nil {
		return nil, fmt.Errorf("read embedded datasets: %w", err)
	}

	for _, e := range entries {
		if strings.TrimSuffix(e.Name(), path.Ext(e.Name())) != name {
			continue
		}

		format, err := FormatOf(e.Name())
		if err != nil {
			return nil, err
		}
		data, err := embedded.ReadFile(path.Join("datasets", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read embedded dataset %s: %w", name, err)
		}
		return Parse(data, format)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// LoadFile reads a dataset file from disk. Files larger than maxSize bytes are
// rejected; a maxSize of zero disables the limit.
func LoadFile(name string, maxSize int64) (*Dataset, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, maxSize)
	}

	return Parse(data, format)
}

// Parse decodes a dataset and normalizes it. Unknown fields are rejected so
// that typos in seed files surface as errors instead of silently missing data.
func Parse(data []byte, format Format) (*Dataset, error) {
	var d Dataset

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, fmt.Errorf("%w: trailing content after JSON dataset", ErrFormat)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		if err := dec.Decode(new(yaml.Node)); err != io.EOF {
			return nil, fmt.Errorf("%w: more than one YAML document", ErrFormat)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, format)
	}

	d.Normalize()
	return &d, nil
}
