package keypair

import (
	"strings"
	"testing"
)

func TestRandomProducesDistinctKeypairs(t *testing.T) {
	a, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	b, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	if a.Address() == b.Address() {
		t.Error("two random keypairs share an address")
	}
	if !strings.HasPrefix(a.Address(), "G") {
		t.Errorf("Address() = %q, want G prefix", a.Address())
	}
	if !strings.HasPrefix(a.Seed(), "S") {
		t.Errorf("Seed() = %q, want S prefix", a.Seed())
	}
}

func TestSeedRoundTrip(t *testing.T) {
	kp, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	restored, err := ParseSeed(kp.Seed())
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}
	if restored.Address() != kp.Address() {
		t.Errorf("restored address = %q, want %q", restored.Address(), kp.Address())
	}
}

func TestParseSeedRejectsInvalidInput(t *testing.T) {
	tests := []string{
		"",
		"not a seed",
		"GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ", // address, not seed
	}
	for _, input := range tests {
		if _, err := ParseSeed(input); err == nil {
			t.Errorf("ParseSeed(%q) succeeded, want error", input)
		}
	}
}

func TestSignAndVerify(t *testing.T) {
	kp, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	other, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	msg := []byte("payload under test")
	sig := kp.Sign(msg)

	if !kp.Verify(msg, sig) {
		t.Error("keypair does not verify its own signature")
	}
	if other.Verify(msg, sig) {
		t.Error("unrelated keypair verifies a foreign signature")
	}
	if kp.Verify([]byte("different payload"), sig) {
		t.Error("signature verifies against a different payload")
	}
	if kp.Verify(msg, sig[:10]) {
		t.Error("truncated signature verifies")
	}

	verifier, err := ParseAddress(kp.Address())
	if err != nil {
		t.Fatalf("ParseAddress() error = %v", err)
	}
	if !verifier.Verify(msg, sig) {
		t.Error("address-derived key does not verify the signature")
	}
	if verifier.Address() != kp.Address() {
		t.Errorf("verifier address = %q, want %q", verifier.Address(), kp.Address())
	}
}

func TestParseAddressRejectsInvalidInput(t *testing.T) {
	kp, err := Random()
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	tests := []string{
		"",
		"garbage",
		kp.Seed(), // seed, not address
	}
	for _, input := range tests {
		if _, err := ParseAddress(input); err == nil {
			t.Errorf("ParseAddress(%q) succeeded, want error", input)
		}
	}
}
