package executor

import (
	"github.com/katalvlaran/modgraph/account"
)

// call runs an entry function.
func (e *FakeExecutor) call(p *account.EntryFunction) TransactionOutput {
	linked, code := e.load(p.Module, make(map[account.ModuleID]bool))
	if code != "" {
		return TransactionOutput{Status: keepFailure(code)}
	}
	if p.Function != linked.module.EntryFunction {
		return TransactionOutput{Status: keepFailure(FunctionResolutionFailure)}
	}
	if len(p.TyArgs) != 0 {
		return TransactionOutput{Status: keepFailure(NumberOfTypeArgumentMismatch)}
	}
	if len(p.Args) != 1 {
		return TransactionOutput{Status: keepFailure(NumberOfArgumentsMismatch)}
	}
	want, err := account.DecodeU64(p.Args[0])
	if err != nil {
		return TransactionOutput{Status: keepFailure(NumberOfArgumentsMismatch)}
	}

	out := TransactionOutput{GasUsed: linked.calls + 1}
	if linked.value != want {
		out.Status = keepAbort(linked.module.AbortCode)
		return out
	}
	out.Status = KeepSuccess()

	return out
}

// load returns the linked module for id, linking and caching it and its
// dependencies on a miss. A cached entry is returned as is, even if a
// dependency has been upgraded since it was linked.
func (e *FakeExecutor) load(id account.ModuleID, linking map[account.ModuleID]bool) (*linkedModule, StatusCode) {
	if l, ok := e.cache[id]; ok {
		return l, ""
	}
	m, ok := e.modules[id]
	if !ok {
		return nil, LinkerError
	}
	if linking[id] {
		return nil, CyclicModuleDependency
	}
	linking[id] = true
	defer delete(linking, id)

	l := &linkedModule{module: m, value: m.SelfValue}
	for _, callee := range m.Calls {
		dep, code := e.load(callee, linking)
		if code != "" {
			return nil, code
		}
		l.deps = append(l.deps, dep)
		l.value += dep.value
		l.calls += dep.calls + 1
	}
	e.cache[id] = l

	return l, ""
}
