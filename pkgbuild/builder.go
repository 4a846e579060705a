package pkgbuild

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/crypto/sha3"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/modgen"
)

const ident = `[A-Za-z][A-Za-z0-9_]*`

var (
	headerRe = regexp.MustCompile(`^module (0x[0-9a-f]{64})::(` + ident + `) \{$`)
	useRe    = regexp.MustCompile(`^use (0x[0-9a-f]{64}::` + ident + `);$`)
	letRe    = regexp.MustCompile(`^let sum: u64 = ([0-9]+);$`)
	callRe   = regexp.MustCompile(`^sum = sum \+ (` + ident + `)::foo\(\);$`)
	entryRe  = regexp.MustCompile(`^public entry fun (` + ident + `)\(expected_value: u64\) \{$`)
	assertRe = regexp.MustCompile(`^assert!\(foo\(\) == expected_value, ([0-9]+)\);$`)
)

// Builder compiles generated packages.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() *Builder { return &Builder{} }

// Build compiles the package in dir.
func (b *Builder) Build(dir string) (*BuiltPackage, error) {
	manifest, err := modgen.ReadManifest(filepath.Join(dir, modgen.ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	version, err := semver.NewVersion(manifest.Package.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest version %q: %v", ErrBuild, manifest.Package.Version, err)
	}
	addr, err := account.ParseAddress(manifest.Package.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrBuild, err)
	}
	declared := make(map[string]bool, len(manifest.Dependencies))
	deps := make([]account.ModuleID, 0, len(manifest.Dependencies))
	for _, d := range manifest.Dependencies {
		id, err := account.ParseModuleID(d)
		if err != nil {
			return nil, fmt.Errorf("%w: manifest dependency: %v", ErrBuild, err)
		}
		declared[d] = true
		deps = append(deps, id)
	}

	srcPath := filepath.Join(dir, modgen.SourcesDir, manifest.Package.Name+modgen.SourceExt)
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	mod, err := compile(src, declared)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBuild, srcPath, err)
	}
	if mod.ID.Address != addr || mod.ID.Name != manifest.Package.Name {
		return nil, fmt.Errorf("%w: source declares %s, manifest %s::%s",
			ErrBuild, mod.ID, manifest.Package.Address, manifest.Package.Name)
	}

	code, err := json.Marshal(mod)
	if err != nil {
		return nil, fmt.Errorf("%w: encode module: %v", ErrBuild, err)
	}
	digest := sha3.Sum256(src)

	return &BuiltPackage{
		path: dir,
		metadata: PackageMetadata{
			Name:         manifest.Package.Name,
			Version:      version.String(),
			Modules:      []string{mod.ID.Name},
			Deps:         deps,
			SourceDigest: hex.EncodeToString(digest[:]),
		},
		modules: []*CompiledModule{mod},
		code:    [][]byte{code},
	}, nil
}

// compile parses one module source. declared holds the dependencies the
// manifest allows the module to use.
func compile(src []byte, declared map[string]bool) (*CompiledModule, error) {
	var (
		mod      CompiledModule
		aliases  = make(map[string]account.ModuleID)
		header   bool
		selfSeen bool
		inEntry  bool
		line     int
	)
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
		case !header:
			m := headerRe.FindStringSubmatch(text)
			if m == nil {
				return nil, fmt.Errorf("line %d: expected module header", line)
			}
			addr, err := account.ParseAddress(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			mod.ID = account.ModuleID{Address: addr, Name: m[2]}
			header = true
		case useRe.MatchString(text):
			full := useRe.FindStringSubmatch(text)[1]
			if !declared[full] {
				return nil, fmt.Errorf("line %d: %s not declared in manifest", line, full)
			}
			id, err := account.ParseModuleID(full)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			if prev, ok := aliases[id.Name]; ok && prev != id {
				return nil, fmt.Errorf("line %d: alias %s bound twice", line, id.Name)
			}
			aliases[id.Name] = id
		case letRe.MatchString(text):
			v, err := strconv.ParseUint(letRe.FindStringSubmatch(text)[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: self value: %v", line, err)
			}
			mod.SelfValue = v
			selfSeen = true
		case callRe.MatchString(text):
			alias := callRe.FindStringSubmatch(text)[1]
			id, ok := aliases[alias]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown alias %s", line, alias)
			}
			mod.Calls = append(mod.Calls, id)
		case entryRe.MatchString(text):
			mod.EntryFunction = entryRe.FindStringSubmatch(text)[1]
			inEntry = true
		case assertRe.MatchString(text):
			if !inEntry {
				return nil, fmt.Errorf("line %d: assertion outside entry function", line)
			}
			code, err := strconv.ParseUint(assertRe.FindStringSubmatch(text)[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: abort code: %v", line, err)
			}
			mod.AbortCode = code
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	switch {
	case !header:
		return nil, fmt.Errorf("missing module header")
	case !selfSeen:
		return nil, fmt.Errorf("missing self value")
	case mod.EntryFunction == "":
		return nil, fmt.Errorf("missing entry function")
	case mod.AbortCode == 0:
		return nil, fmt.Errorf("missing entry assertion")
	}

	return &mod, nil
}
