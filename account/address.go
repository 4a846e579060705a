package account

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 32

// singleKeyScheme is appended to the public key before hashing.
const singleKeyScheme byte = 0x00

// Address identifies an account. It is the sha3-256 digest of the account's
// public key followed by the scheme byte.
type Address [AddressLength]byte

// AddressFromPublicKey derives the address owned by pub.
func AddressFromPublicKey(pub ed25519.PublicKey) Address {
	buf := make([]byte, 0, len(pub)+1)
	buf = append(buf, pub...)
	buf = append(buf, singleKeyScheme)

	return Address(sha3.Sum256(buf))
}

// ParseAddress parses the "0x"-prefixed hex form produced by String.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, ok := strings.CutPrefix(s, "0x")
	if !ok || len(raw) != 2*AddressLength {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return a, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}

	return a, nil
}

// String renders the address as 0x followed by 64 lowercase hex digits.
func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// Short renders the first four bytes, for log lines.
func (a Address) Short() string { return "0x" + hex.EncodeToString(a[:4]) }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed

	return nil
}
