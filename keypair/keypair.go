// Package keypair provides Ed25519 keypairs addressed by strkey: full
// keypairs that can sign, and address-only keys that can verify.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/stellarkit/sep7-go/strkey"
)

// Full is an Ed25519 keypair that can both sign and verify.
type Full struct {
	seed []byte
	priv ed25519.PrivateKey
}

// Random generates a new keypair from crypto/rand.
func Random() (*Full, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to read entropy: %w", err)
	}
	return FromRawSeed(seed), nil
}

// FromRawSeed builds a keypair from a raw 32-byte Ed25519 seed.
func FromRawSeed(seed [32]byte) *Full {
	s := make([]byte, 32)
	copy(s, seed[:])
	return &Full{
		seed: s,
		priv: ed25519.NewKeyFromSeed(s),
	}
}

// ParseSeed builds a keypair from a strkey-encoded seed ("S...").
func ParseSeed(seed string) (*Full, error) {
	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	var s [32]byte
	copy(s[:], raw)
	return FromRawSeed(s), nil
}

// Address returns the strkey account address ("G...") for the public key.
func (f *Full) Address() string {
	pub := f.priv.Public().(ed25519.PublicKey)
	addr, err := strkey.Encode(strkey.VersionByteAccountID, pub)
	if err != nil {
		// Unreachable: the public key is always 32 bytes.
		panic(err)
	}
	return addr
}

// Seed returns the strkey-encoded seed ("S...").
func (f *Full) Seed() string {
	s, err := strkey.Encode(strkey.VersionByteSeed, f.seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Sign returns the Ed25519 signature of input.
func (f *Full) Sign(input []byte) []byte {
	return ed25519.Sign(f.priv, input)
}

// Verify reports whether sig is a valid signature of input by this keypair.
func (f *Full) Verify(input, sig []byte) bool {
	pub := f.priv.Public().(ed25519.PublicKey)
	return len(sig) == ed25519.SignatureSize && ed25519.Verify(pub, input, sig)
}

// FromAddress is the verify-only half of a keypair, parsed from an account
// address.
type FromAddress struct {
	pub ed25519.PublicKey
}

// ParseAddress builds a verify-only key from a strkey account address ("G...").
func ParseAddress(address string) (*FromAddress, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return nil, fmt.Errorf("invalid account address: %w", err)
	}
	return &FromAddress{pub: ed25519.PublicKey(raw)}, nil
}

// Address returns the strkey account address ("G...").
func (a *FromAddress) Address() string {
	addr, err := strkey.Encode(strkey.VersionByteAccountID, a.pub)
	if err != nil {
		panic(err)
	}
	return addr
}

// Verify reports whether sig is a valid signature of input by this key.
func (a *FromAddress) Verify(input, sig []byte) bool {
	return len(sig) == ed25519.SignatureSize && ed25519.Verify(a.pub, input, sig)
}
