package account

import (
	"crypto/ed25519"
	"math/rand"
)

// Account is an ed25519 key pair and the address derived from it.
type Account struct {
	address Address
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey
}

// NewAccountFromSeed derives the key pair deterministically from seed.
func NewAccountFromSeed(seed [ed25519.SeedSize]byte) *Account {
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)

	return &Account{
		address: AddressFromPublicKey(pub),
		priv:    priv,
		pub:     pub,
	}
}

// NewRandomAccount draws a seed from r and derives an account from it.
func NewRandomAccount(r *rand.Rand) *Account {
	var seed [ed25519.SeedSize]byte
	_, _ = r.Read(seed[:]) // math/rand Read never fails

	return NewAccountFromSeed(seed)
}

// Address returns the account address.
func (a *Account) Address() Address { return a.address }

// PublicKey returns the verifying key.
func (a *Account) PublicKey() ed25519.PublicKey { return a.pub }

// sign signs msg with the private key.
func (a *Account) sign(msg []byte) []byte { return ed25519.Sign(a.priv, msg) }

// AccountData is an Account together with its ledger state: balance and the
// sequence number the next transaction must carry.
type AccountData struct {
	account *Account
	balance uint64
	seq     uint64
}

// NewAccountData wraps acct with a starting balance and sequence number zero.
func NewAccountData(acct *Account, balance uint64) *AccountData {
	return &AccountData{account: acct, balance: balance}
}

// NewRandomAccountData draws a fresh account with the given balance.
func NewRandomAccountData(r *rand.Rand, balance uint64) *AccountData {
	return NewAccountData(NewRandomAccount(r), balance)
}

// Account returns the owned key pair.
func (d *AccountData) Account() *Account { return d.account }

// Address is shorthand for Account().Address().
func (d *AccountData) Address() Address { return d.account.address }

// Balance returns the starting balance.
func (d *AccountData) Balance() uint64 { return d.balance }

// SequenceNumber returns the sequence number of the next transaction.
func (d *AccountData) SequenceNumber() uint64 { return d.seq }

// IncrementSequenceNumber advances the counter by one.
func (d *AccountData) IncrementSequenceNumber() { d.seq++ }

// Transaction starts a transaction signed by this account.
// The sequence number defaults to the current counter; the counter itself is
// not advanced.
func (d *AccountData) Transaction() *TransactionBuilder {
	return &TransactionBuilder{
		sender: d.account,
		seq:    d.seq,
	}
}
