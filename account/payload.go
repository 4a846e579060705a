package account

import (
	"encoding/binary"
	"fmt"
)

// PayloadKind discriminates transaction payloads.
type PayloadKind uint8

const (
	// KindPublish publishes or upgrades a package.
	KindPublish PayloadKind = iota + 1
	// KindEntryFunction calls an entry function.
	KindEntryFunction
)

// String returns the kind name used in logs and error messages.
func (k PayloadKind) String() string {
	switch k {
	case KindPublish:
		return "publish"
	case KindEntryFunction:
		return "entry_function"
	default:
		return fmt.Sprintf("PayloadKind(%d)", uint8(k))
	}
}

// Payload is the body of a transaction.
type Payload interface {
	Kind() PayloadKind
	// encode appends a canonical encoding used in the signing message.
	encode(dst []byte) []byte
}

// PublishPackage publishes (or upgrades) a package made of compiled modules.
type PublishPackage struct {
	Metadata []byte
	Code     [][]byte
}

// Kind implements Payload.
func (*PublishPackage) Kind() PayloadKind { return KindPublish }

func (p *PublishPackage) encode(dst []byte) []byte {
	dst = appendBytes(dst, p.Metadata)
	dst = binary.AppendUvarint(dst, uint64(len(p.Code)))
	for _, c := range p.Code {
		dst = appendBytes(dst, c)
	}

	return dst
}

// EntryFunction calls Module::Function with type arguments and encoded arguments.
type EntryFunction struct {
	Module   ModuleID
	Function string
	TyArgs   []string
	Args     [][]byte
}

// NewEntryFunction validates the function name and builds the payload.
func NewEntryFunction(module ModuleID, function string, tyArgs []string, args [][]byte) (*EntryFunction, error) {
	if !ValidIdentifier(function) {
		return nil, fmt.Errorf("%w: function %q", ErrInvalidIdentifier, function)
	}

	return &EntryFunction{Module: module, Function: function, TyArgs: tyArgs, Args: args}, nil
}

// Kind implements Payload.
func (*EntryFunction) Kind() PayloadKind { return KindEntryFunction }

func (e *EntryFunction) encode(dst []byte) []byte {
	dst = append(dst, e.Module.Address[:]...)
	dst = appendBytes(dst, []byte(e.Module.Name))
	dst = appendBytes(dst, []byte(e.Function))
	dst = binary.AppendUvarint(dst, uint64(len(e.TyArgs)))
	for _, t := range e.TyArgs {
		dst = appendBytes(dst, []byte(t))
	}
	dst = binary.AppendUvarint(dst, uint64(len(e.Args)))
	for _, a := range e.Args {
		dst = appendBytes(dst, a)
	}

	return dst
}

// EncodeU64 encodes v as 8 little-endian bytes.
func EncodeU64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), v)
}

// DecodeU64 is the inverse of EncodeU64.
func DecodeU64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: want 8 bytes, got %d", ErrBadArgument, len(b))
	}

	return binary.LittleEndian.Uint64(b), nil
}

func appendBytes(dst, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))
	return append(dst, b...)
}
