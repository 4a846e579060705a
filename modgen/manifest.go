package modgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modgraph/account"
)

const (
	// ManifestFile is the manifest name inside a package directory.
	ManifestFile = "package.yaml"
	// SourcesDir holds the module sources.
	SourcesDir = "sources"
	// SourceExt is the module source file extension.
	SourceExt = ".move"
	// InitialVersion is the version written into every fresh manifest.
	InitialVersion = "1.0.0"
	// EntryFunction is the name of the generated entry point.
	EntryFunction = "foo_entry"
	// AbortCode is raised by the entry point when foo() differs from its argument.
	AbortCode uint64 = 42
)

// Manifest is the package.yaml layout.
type Manifest struct {
	Package      PackageSection `yaml:"package"`
	Dependencies []string       `yaml:"dependencies,omitempty"`
}

// PackageSection names the package and its publisher.
type PackageSection struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Address string `yaml:"address"`
}

// ReadManifest parses a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modgen: read manifest: %w", err)
	}
	var m Manifest
	if err = yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("modgen: parse manifest %s: %w", path, err)
	}

	return &m, nil
}

func newManifest(id account.ModuleID, deps []account.ModuleID) Manifest {
	m := Manifest{
		Package: PackageSection{
			Name:    id.Name,
			Version: InitialVersion,
			Address: id.Address.String(),
		},
	}
	seen := make(map[account.ModuleID]bool, len(deps))
	for _, d := range deps {
		if seen[d] {
			continue
		}
		seen[d] = true
		m.Dependencies = append(m.Dependencies, d.String())
	}

	return m
}
