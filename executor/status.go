package executor

import "fmt"

// StatusCode names a failure or discard reason.
type StatusCode string

const (
	InvalidSignature             StatusCode = "INVALID_SIGNATURE"
	SendingAccountDoesNotExist   StatusCode = "SENDING_ACCOUNT_DOES_NOT_EXIST"
	SequenceNumberTooOld         StatusCode = "SEQUENCE_NUMBER_TOO_OLD"
	SequenceNumberTooNew         StatusCode = "SEQUENCE_NUMBER_TOO_NEW"
	UnknownPayload               StatusCode = "UNKNOWN_PAYLOAD"
	CodeDeserializationError     StatusCode = "CODE_DESERIALIZATION_ERROR"
	ModuleAddressMismatch        StatusCode = "MODULE_ADDRESS_DOES_NOT_MATCH_SENDER"
	PackageUpgradeNotAllowed     StatusCode = "PACKAGE_UPGRADE_NOT_ALLOWED"
	LinkerError                  StatusCode = "LINKER_ERROR"
	CyclicModuleDependency       StatusCode = "CYCLIC_MODULE_DEPENDENCY"
	FunctionResolutionFailure    StatusCode = "FUNCTION_RESOLUTION_FAILURE"
	NumberOfArgumentsMismatch    StatusCode = "NUMBER_OF_ARGUMENTS_MISMATCH"
	NumberOfTypeArgumentMismatch StatusCode = "NUMBER_OF_TYPE_ARGUMENTS_MISMATCH"
)

// Outcome is the top-level classification of a transaction.
type Outcome uint8

const (
	// Keep: the transaction was executed and its sequence number consumed.
	Keep Outcome = iota
	// Discard: the transaction was rejected before execution.
	Discard
)

// ExecutionKind refines a kept transaction.
type ExecutionKind uint8

const (
	Success ExecutionKind = iota
	MoveAbort
	ExecutionFailure
)

// TransactionStatus is the result of one transaction.
type TransactionStatus struct {
	Outcome   Outcome
	Kind      ExecutionKind // meaningful for Keep
	AbortCode uint64        // meaningful for MoveAbort
	Code      StatusCode    // meaningful for ExecutionFailure and Discard
}

// KeepSuccess is the only status the oracle accepts.
func KeepSuccess() TransactionStatus { return TransactionStatus{Outcome: Keep, Kind: Success} }

func keepAbort(code uint64) TransactionStatus {
	return TransactionStatus{Outcome: Keep, Kind: MoveAbort, AbortCode: code}
}

func keepFailure(code StatusCode) TransactionStatus {
	return TransactionStatus{Outcome: Keep, Kind: ExecutionFailure, Code: code}
}

func discard(code StatusCode) TransactionStatus {
	return TransactionStatus{Outcome: Discard, Code: code}
}

// IsSuccess reports Keep(Success).
func (s TransactionStatus) IsSuccess() bool { return s.Outcome == Keep && s.Kind == Success }

// String renders e.g. Keep(Success), Keep(MoveAbort(42)), Discard(SEQUENCE_NUMBER_TOO_NEW).
func (s TransactionStatus) String() string {
	if s.Outcome == Discard {
		return fmt.Sprintf("Discard(%s)", s.Code)
	}
	switch s.Kind {
	case Success:
		return "Keep(Success)"
	case MoveAbort:
		return fmt.Sprintf("Keep(MoveAbort(%d))", s.AbortCode)
	default:
		return fmt.Sprintf("Keep(ExecutionFailure(%s))", s.Code)
	}
}

// TransactionOutput is what ExecuteBlock returns per transaction.
type TransactionOutput struct {
	Status TransactionStatus
	// GasUsed is a deterministic work estimate: code bytes for publishes,
	// evaluated call sites for entry calls.
	GasUsed uint64
}
