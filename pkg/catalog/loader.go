package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

var (
	defaultOnce    sync.Once
	defaultCatalog model.Catalog
	defaultErr     error
)

// Default returns the embedded canonical catalog. The result is parsed once
// and a fresh copy is returned on every call.
func Default() (model.Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(EmbeddedFS(), DefaultName)
	})
	if defaultErr != nil {
		return model.Catalog{}, defaultErr
	}
	return clone(defaultCatalog), nil
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() model.Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}
	return cat
}

// LoadFS reads and validates a catalog file from fsys.
func LoadFS(fsys fs.FS, name string) (model.Catalog, error) {
	if fsys == nil {
		return model.Catalog{}, errors.New("catalog: filesystem is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Catalog{}, errors.New("catalog: file name is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// LoadFile reads a catalog from the local filesystem.
func LoadFile(path string) (model.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return model.Catalog{}, errors.New("catalog: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML catalog document and validates it. source only
// labels error messages.
func Parse(data []byte, source string) (model.Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Catalog{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		cat = model.Catalog{}
		if yamlErr := yaml.Unmarshal(data, &cat); yamlErr != nil {
			return model.Catalog{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := cat.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("catalog: %s: %w", source, err)
	}
	return cat, nil
}

func clone(in model.Catalog) model.Catalog {
	return model.Catalog{
		ContentTypes: append([]model.ContentType(nil), in.ContentTypes...),
		Attestations: append([]model.AttestationOption(nil), in.Attestations...),
	}
}
