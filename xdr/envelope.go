// Package xdr provides a lightweight oracle over the binary transaction
// envelope format: it checks that a base64 value decodes to a structurally
// plausible envelope and can re-serialize it, without decoding the full
// transaction body.
package xdr

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EnvelopeType is the union discriminant at the head of a serialized
// transaction envelope.
type EnvelopeType int32

const (
	EnvelopeTypeTxV0      EnvelopeType = 0
	EnvelopeTypeTx        EnvelopeType = 2
	EnvelopeTypeTxFeeBump EnvelopeType = 5
)

// String returns the wire name of the envelope type.
func (t EnvelopeType) String() string {
	switch t {
	case EnvelopeTypeTxV0:
		return "ENVELOPE_TYPE_TX_V0"
	case EnvelopeTypeTx:
		return "ENVELOPE_TYPE_TX"
	case EnvelopeTypeTxFeeBump:
		return "ENVELOPE_TYPE_TX_FEE_BUMP"
	default:
		return fmt.Sprintf("EnvelopeType(%d)", int32(t))
	}
}

// Envelope is an opaque transaction envelope: its discriminant plus the raw
// serialized bytes. The transaction body is not decoded here.
type Envelope struct {
	Type EnvelopeType
	Raw  []byte
}

// ParseEnvelope decodes a base64 transaction envelope and checks its
// structure: strict base64, XDR 4-byte alignment, and a known envelope type
// discriminant.
func ParseEnvelope(b64 string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("envelope is not valid base64: %w", err)
	}
	if len(raw) < 8 || len(raw)%4 != 0 {
		return nil, fmt.Errorf("envelope has invalid length %d", len(raw))
	}

	t := EnvelopeType(int32(binary.BigEndian.Uint32(raw[:4])))
	switch t {
	case EnvelopeTypeTxV0, EnvelopeTypeTx, EnvelopeTypeTxFeeBump:
	default:
		return nil, fmt.Errorf("unknown envelope type discriminant %d", int32(t))
	}

	return &Envelope{Type: t, Raw: raw}, nil
}

// Base64 re-serializes the envelope to its base64 wire form.
func (e *Envelope) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Raw)
}
