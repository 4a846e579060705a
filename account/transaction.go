package account

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// signingSalt domain-separates transaction signatures.
var signingSalt = sha3.Sum256([]byte("MODGRAPH::RawTransaction"))

// RawTransaction is the unsigned body of a transaction.
type RawTransaction struct {
	Sender         Address
	SequenceNumber uint64
	Payload        Payload
}

// SigningMessage returns the bytes covered by the signature:
// salt || sender || seq (LE) || kind || payload encoding.
func (r *RawTransaction) SigningMessage() []byte {
	msg := make([]byte, 0, 128)
	msg = append(msg, signingSalt[:]...)
	msg = append(msg, r.Sender[:]...)
	msg = binary.LittleEndian.AppendUint64(msg, r.SequenceNumber)
	msg = append(msg, byte(r.Payload.Kind()))

	return r.Payload.encode(msg)
}

// SignedTransaction is a RawTransaction plus the sender's public key and signature.
type SignedTransaction struct {
	Raw       RawTransaction
	PublicKey ed25519.PublicKey
	Signature []byte
}

// Sender returns the sending address.
func (t *SignedTransaction) Sender() Address { return t.Raw.Sender }

// SequenceNumber returns the sequence number the transaction carries.
func (t *SignedTransaction) SequenceNumber() uint64 { return t.Raw.SequenceNumber }

// Payload returns the transaction body.
func (t *SignedTransaction) Payload() Payload { return t.Raw.Payload }

// Verify checks that the public key owns the sender address and that the
// signature covers the signing message.
func (t *SignedTransaction) Verify() error {
	if len(t.PublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: bad public key length %d", ErrInvalidSignature, len(t.PublicKey))
	}
	if AddressFromPublicKey(t.PublicKey) != t.Raw.Sender {
		return fmt.Errorf("%w: key does not own sender %s", ErrInvalidSignature, t.Raw.Sender.Short())
	}
	if t.Raw.Payload == nil || !ed25519.Verify(t.PublicKey, t.Raw.SigningMessage(), t.Signature) {
		return ErrInvalidSignature
	}

	return nil
}

// TransactionBuilder assembles and signs a transaction:
//
//	txn, err := data.Transaction().SequenceNumber(n).Payload(p).Sign()
type TransactionBuilder struct {
	sender  *Account
	seq     uint64
	payload Payload
}

// SequenceNumber overrides the sequence number.
func (b *TransactionBuilder) SequenceNumber(n uint64) *TransactionBuilder {
	b.seq = n
	return b
}

// Payload sets the transaction body.
func (b *TransactionBuilder) Payload(p Payload) *TransactionBuilder {
	b.payload = p
	return b
}

// Sign produces the signed transaction.
func (b *TransactionBuilder) Sign() (*SignedTransaction, error) {
	if b.payload == nil {
		return nil, ErrMissingPayload
	}
	raw := RawTransaction{
		Sender:         b.sender.address,
		SequenceNumber: b.seq,
		Payload:        b.payload,
	}

	return &SignedTransaction{
		Raw:       raw,
		PublicKey: b.sender.pub,
		Signature: b.sender.sign(raw.SigningMessage()),
	}, nil
}
