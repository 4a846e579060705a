// Package account models the on-chain identities that own modules and send
// transactions: ed25519 key pairs, sha3-256 derived addresses, sequence
// numbers, transaction payloads and signing.
//
// What:
//
//   - Account: key pair + derived Address.
//   - AccountData: an Account with a balance and a sequence counter.
//   - ModuleID: (Address, identifier) pair naming a published module.
//   - PublishPackage / EntryFunction: the two payloads the loader oracle emits.
//   - RawTransaction / SignedTransaction: sender, sequence number, payload,
//     signature.
//
// Determinism:
//
//   - Keys are derived from 32-byte seeds (ed25519.NewKeyFromSeed), so a seeded
//     *rand.Rand yields the same accounts on every run.
//   - The signing message is a fixed byte layout hashed with sha3-256.
//
// Errors:
//
//   - ErrInvalidIdentifier  module or function name is not [A-Za-z][A-Za-z0-9_]*
//   - ErrInvalidAddress     address text is not 0x + 64 hex digits
//   - ErrMissingPayload     Sign called before Payload
//   - ErrInvalidSignature   signature does not verify against the sender key
//   - ErrBadArgument        argument bytes are not a u64
package account
