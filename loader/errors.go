package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/executor"
)

var (
	// ErrConstruction is matched by every *ConstructionError.
	ErrConstruction = errors.New("loader: graph construction failed")

	// ErrSourceGenerationOrBuild is matched by every *BuildError.
	ErrSourceGenerationOrBuild = errors.New("loader: source generation or build failed")

	// ErrTopologicalSort is matched by every *TopologyError.
	ErrTopologicalSort = errors.New("loader: topological sort failed")

	// ErrExecutionStatusMismatch is matched by every *StatusMismatchError.
	ErrExecutionStatusMismatch = errors.New("loader: execution status mismatch")

	// ErrEmptyGraph is returned when a mutation is applied to a graph without nodes.
	ErrEmptyGraph = errors.New("loader: graph has no nodes")

	// ErrNodeNotFound is returned for a creation index outside the graph.
	ErrNodeNotFound = errors.New("loader: node not found")

	// ErrSenderOwnsModule is wrapped by the ConstructionError raised when the
	// sender's address also owns a module.
	ErrSenderOwnsModule = errors.New("loader: sender owns a module")
)

// ConstructionError reports a rejected node spec or edge attempt.
type ConstructionError struct {
	Index int    // position in the spec or attempt list
	Name  string // module name, empty for edge attempts
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("loader: construction: item %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("loader: construction: node %d (%q): %v", e.Index, e.Name, e.Err)
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }
func (e *ConstructionError) Unwrap() error        { return e.Err }

// BuildError reports a source generation or package build failure for one module.
type BuildError struct {
	Module account.ModuleID
	Stage  string // "generate", "build" or "encode"
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("loader: %s %s: %v", e.Stage, e.Module.Short(), e.Err)
}

func (e *BuildError) Is(target error) bool { return target == ErrSourceGenerationOrBuild }
func (e *BuildError) Unwrap() error        { return e.Err }

// TopologyError reports that the graph could not be ordered. Cycle holds the
// offending modules when one could be extracted.
type TopologyError struct {
	Cycle []account.ModuleID
	Err   error
}

func (e *TopologyError) Error() string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("loader: topological sort: %v", e.Err)
	}
	names := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		names[i] = id.Name
	}
	return fmt.Sprintf("loader: topological sort: %v: %s", e.Err, strings.Join(names, " -> "))
}

func (e *TopologyError) Is(target error) bool { return target == ErrTopologicalSort }
func (e *TopologyError) Unwrap() error        { return e.Err }

// StatusMismatchError reports the first transaction that did not succeed.
type StatusMismatchError struct {
	Position int                 // index in the submitted batch
	Kind     account.PayloadKind // publish or entry_function
	Module   account.ModuleID    // published or invoked module
	Status   executor.TransactionStatus
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("loader: transaction %d (%s %s): got %s, want Keep(Success)",
		e.Position, e.Kind, e.Module.Short(), e.Status)
}

func (e *StatusMismatchError) Is(target error) bool { return target == ErrExecutionStatusMismatch }
