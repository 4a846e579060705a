// Package executor is an in-memory reference ledger that runs the
// transactions emitted by the loader oracle.
//
// FakeExecutor keeps account state (public key, sequence number), the
// published packages, and a module cache of linked modules. An entry call
// loads its module through the cache, links every call site to the loaded
// dependency, evaluates foo() and aborts when the value differs from the
// argument.
//
// Publishing flushes the cache. WithCacheInvalidation(false) disables the
// flush, which turns the executor into a deliberately broken loader that keeps
// serving stale linked modules after an upgrade.
//
// Status model:
//
//   - Keep(Success)
//   - Keep(MoveAbort(code))
//   - Keep(ExecutionFailure(code)): LINKER_ERROR, CYCLIC_MODULE_DEPENDENCY,
//     MODULE_ADDRESS_DOES_NOT_MATCH_SENDER, PACKAGE_UPGRADE_NOT_ALLOWED, ...
//   - Discard(code): INVALID_SIGNATURE, SENDING_ACCOUNT_DOES_NOT_EXIST,
//     SEQUENCE_NUMBER_TOO_OLD, SEQUENCE_NUMBER_TOO_NEW
//
// Kept transactions advance the sender's sequence number; discarded ones do not.
package executor
