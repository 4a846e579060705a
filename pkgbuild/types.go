package pkgbuild

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/katalvlaran/modgraph/account"
)

// ErrBuild is wrapped by every build failure.
var ErrBuild = errors.New("pkgbuild: build failed")

// ErrDecode indicates a malformed code or metadata blob.
var ErrDecode = errors.New("pkgbuild: decode failed")

// CompiledModule is the loadable form of one module.
type CompiledModule struct {
	ID            account.ModuleID   `json:"id"`
	SelfValue     uint64             `json:"self_value"`
	Calls         []account.ModuleID `json:"calls,omitempty"` // one per call site, in source order
	EntryFunction string             `json:"entry_function"`
	AbortCode     uint64             `json:"abort_code"`
}

// Dependencies returns the distinct modules Calls refers to, first occurrence first.
func (m *CompiledModule) Dependencies() []account.ModuleID {
	seen := make(map[account.ModuleID]bool, len(m.Calls))
	var out []account.ModuleID
	for _, c := range m.Calls {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	return out
}

// DecodeModule parses a code blob produced by ExtractCode.
func DecodeModule(b []byte) (*CompiledModule, error) {
	var m CompiledModule
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: module: %v", ErrDecode, err)
	}

	return &m, nil
}

// PackageMetadata describes a published package.
type PackageMetadata struct {
	Name          string             `json:"name"`
	Version       string             `json:"version"`
	UpgradeNumber uint64             `json:"upgrade_number"`
	Modules       []string           `json:"modules"`
	Deps          []account.ModuleID `json:"deps,omitempty"`
	SourceDigest  string             `json:"source_digest"`
}

// SemVer parses Version.
func (m *PackageMetadata) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", ErrDecode, m.Version, err)
	}

	return v, nil
}

// Encode serializes the metadata for a publish payload.
func (m *PackageMetadata) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeMetadata parses a metadata blob produced by Encode.
func DecodeMetadata(b []byte) (*PackageMetadata, error) {
	var m PackageMetadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrDecode, err)
	}

	return &m, nil
}

// BuiltPackage is the result of Build.
type BuiltPackage struct {
	path     string
	metadata PackageMetadata
	modules  []*CompiledModule
	code     [][]byte
}

// Path returns the package directory that was built.
func (p *BuiltPackage) Path() string { return p.path }

// Modules returns the compiled modules.
func (p *BuiltPackage) Modules() []*CompiledModule { return p.modules }

// ExtractCode returns one code blob per module.
func (p *BuiltPackage) ExtractCode() [][]byte {
	out := make([][]byte, len(p.code))
	for i, c := range p.code {
		out[i] = append([]byte(nil), c...)
	}

	return out
}

// ExtractMetadata returns a copy of the package metadata.
func (p *BuiltPackage) ExtractMetadata() PackageMetadata {
	m := p.metadata
	m.Modules = append([]string(nil), p.metadata.Modules...)
	m.Deps = append([]account.ModuleID(nil), p.metadata.Deps...)

	return m
}
