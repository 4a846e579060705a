package executor

import (
	"github.com/Masterminds/semver/v3"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/pkgbuild"
)

// publish installs or upgrades a package owned by sender.
func (e *FakeExecutor) publish(sender account.Address, p *account.PublishPackage) TransactionOutput {
	var gas uint64
	for _, c := range p.Code {
		gas += uint64(len(c))
	}
	fail := func(code StatusCode) TransactionOutput {
		return TransactionOutput{Status: keepFailure(code), GasUsed: gas}
	}

	meta, err := pkgbuild.DecodeMetadata(p.Metadata)
	if err != nil {
		return fail(CodeDeserializationError)
	}
	version, err := meta.SemVer()
	if err != nil {
		return fail(CodeDeserializationError)
	}
	mods := make([]*pkgbuild.CompiledModule, 0, len(p.Code))
	for _, blob := range p.Code {
		m, err := pkgbuild.DecodeModule(blob)
		if err != nil {
			return fail(CodeDeserializationError)
		}
		if m.ID.Address != sender {
			return fail(ModuleAddressMismatch)
		}
		mods = append(mods, m)
	}

	if prev, ok := e.packages[sender][meta.Name]; ok && !version.GreaterThan(prev.version) {
		return fail(PackageUpgradeNotAllowed)
	}

	// dependencies must already exist or ship in the same package
	local := make(map[account.ModuleID]bool, len(mods))
	for _, m := range mods {
		local[m.ID] = true
	}
	for _, m := range mods {
		for _, dep := range m.Dependencies() {
			if _, ok := e.modules[dep]; !ok && !local[dep] {
				return fail(LinkerError)
			}
		}
	}
	if e.createsCycle(mods) {
		return fail(CyclicModuleDependency)
	}

	e.install(sender, meta, version, mods)

	return TransactionOutput{Status: KeepSuccess(), GasUsed: gas}
}

// createsCycle reports whether installing mods would make some module
// reachable from itself.
func (e *FakeExecutor) createsCycle(mods []*pkgbuild.CompiledModule) bool {
	view := make(map[account.ModuleID]*pkgbuild.CompiledModule, len(e.modules)+len(mods))
	for id, m := range e.modules {
		view[id] = m
	}
	for _, m := range mods {
		view[m.ID] = m
	}

	const (
		white = iota
		gray
		black
	)
	state := make(map[account.ModuleID]int, len(view))
	var visit func(id account.ModuleID) bool
	visit = func(id account.ModuleID) bool {
		switch state[id] {
		case gray:
			return true
		case black:
			return false
		}
		state[id] = gray
		if m, ok := view[id]; ok {
			for _, dep := range m.Dependencies() {
				if visit(dep) {
					return true
				}
			}
		}
		state[id] = black

		return false
	}
	for _, m := range mods {
		if visit(m.ID) {
			return true
		}
	}

	return false
}

func (e *FakeExecutor) install(sender account.Address, meta *pkgbuild.PackageMetadata, version *semver.Version, mods []*pkgbuild.CompiledModule) {
	byName, ok := e.packages[sender]
	if !ok {
		byName = make(map[string]*publishedPackage)
		e.packages[sender] = byName
	}
	byName[meta.Name] = &publishedPackage{meta: meta, version: version}
	for _, m := range mods {
		e.modules[m.ID] = m
	}
	if e.invalidate {
		clear(e.cache)
	}
}
