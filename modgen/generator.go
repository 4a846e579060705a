package modgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modgraph/account"
)

// ErrEmptyBaseDir is returned by NewGenerator for an empty base directory.
var ErrEmptyBaseDir = errors.New("modgen: base directory is empty")

const sourceTemplate = `module {{.ID.Address}}::{{.ID.Name}} {
{{- range .Uses}}
    use {{.}};
{{- end}}

    public fun foo(): u64 {
        let sum: u64 = {{.SelfValue}};
{{- range .Calls}}
        sum = sum + {{.}}::foo();
{{- end}}
        sum
    }

    public entry fun {{.Entry}}(expected_value: u64) {
        assert!(foo() == expected_value, {{.AbortCode}});
    }
}
`

var tmpl = template.Must(template.New("module").Parse(sourceTemplate))

type sourceData struct {
	ID        account.ModuleID
	Uses      []string
	Calls     []string
	SelfValue uint64
	Entry     string
	AbortCode uint64
}

// Generator writes module packages under a base directory.
type Generator struct {
	baseDir string
}

// NewGenerator returns a Generator rooted at baseDir. The directory is
// created on first use.
func NewGenerator(baseDir string) (*Generator, error) {
	if baseDir == "" {
		return nil, ErrEmptyBaseDir
	}

	return &Generator{baseDir: baseDir}, nil
}

// BaseDir returns the root directory of generated packages.
func (g *Generator) BaseDir() string { return g.baseDir }

// PackageDir returns the directory Generate uses for id.
func (g *Generator) PackageDir(id account.ModuleID) string {
	return filepath.Join(g.baseDir, id.Address.String()+"_"+id.Name)
}

// Generate writes the package for id and returns its directory.
// deps lists one entry per dependency edge, in edge order.
func (g *Generator) Generate(id account.ModuleID, deps []account.ModuleID, selfValue uint64) (string, error) {
	if !account.ValidIdentifier(id.Name) {
		return "", fmt.Errorf("modgen: %w: %q", account.ErrInvalidIdentifier, id.Name)
	}
	dir := g.PackageDir(id)
	srcDir := filepath.Join(dir, SourcesDir)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return "", fmt.Errorf("modgen: create %s: %w", srcDir, err)
	}

	manifest, err := yaml.Marshal(newManifest(id, deps))
	if err != nil {
		return "", fmt.Errorf("modgen: encode manifest: %w", err)
	}
	if err = os.WriteFile(filepath.Join(dir, ManifestFile), manifest, 0o644); err != nil {
		return "", fmt.Errorf("modgen: write manifest: %w", err)
	}

	src, err := Render(id, deps, selfValue)
	if err != nil {
		return "", err
	}
	if err = os.WriteFile(filepath.Join(srcDir, id.Name+SourceExt), src, 0o644); err != nil {
		return "", fmt.Errorf("modgen: write source: %w", err)
	}

	return dir, nil
}

// Render returns the module source without touching the filesystem.
func Render(id account.ModuleID, deps []account.ModuleID, selfValue uint64) ([]byte, error) {
	data := sourceData{
		ID:        id,
		SelfValue: selfValue,
		Entry:     EntryFunction,
		AbortCode: AbortCode,
	}
	seen := make(map[account.ModuleID]bool, len(deps))
	for _, d := range deps {
		data.Calls = append(data.Calls, d.Name)
		if !seen[d] {
			seen[d] = true
			data.Uses = append(data.Uses, d.String())
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("modgen: render %s: %w", id.Name, err)
	}

	return buf.Bytes(), nil
}
