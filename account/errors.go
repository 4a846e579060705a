package account

import "errors"

var (
	// ErrInvalidIdentifier indicates a module or function name that is not a valid identifier.
	ErrInvalidIdentifier = errors.New("account: invalid identifier")

	// ErrInvalidAddress indicates malformed address text.
	ErrInvalidAddress = errors.New("account: invalid address")

	// ErrMissingPayload indicates that a transaction was signed without a payload.
	ErrMissingPayload = errors.New("account: transaction has no payload")

	// ErrInvalidSignature indicates that a signed transaction does not verify.
	ErrInvalidSignature = errors.New("account: invalid signature")

	// ErrBadArgument indicates that an encoded argument has the wrong shape.
	ErrBadArgument = errors.New("account: bad argument encoding")
)
