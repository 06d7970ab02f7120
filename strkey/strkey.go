// Package strkey implements the checksummed base32 text encoding used for
// Stellar addresses and seeds: a version byte, the raw payload, and a CRC16
// checksum, base32-encoded without padding.
package strkey

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
)

// VersionByte selects the strkey form being encoded or decoded.
type VersionByte byte

const (
	// VersionByteAccountID is an Ed25519 public key (address, "G...").
	VersionByteAccountID VersionByte = 6 << 3
	// VersionByteMuxedAccount is an Ed25519 public key plus a 64-bit ID ("M...").
	VersionByteMuxedAccount VersionByte = 12 << 3
	// VersionByteSeed is an Ed25519 private seed ("S...").
	VersionByteSeed VersionByte = 18 << 3
	// VersionByteContract is a contract ID ("C...").
	VersionByteContract VersionByte = 2 << 3
)

// payload sizes in bytes per version byte
const (
	rawKeySize   = 32
	rawMuxedSize = 40 // 32-byte key followed by a big-endian 64-bit ID
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode returns the strkey encoding of src under the given version byte.
// It fails if src is not the exact payload size for that version byte.
func Encode(version VersionByte, src []byte) (string, error) {
	if err := checkPayloadSize(version, len(src)); err != nil {
		return "", err
	}

	raw := make([]byte, 0, 1+len(src)+2)
	raw = append(raw, byte(version))
	raw = append(raw, src...)

	var sum [2]byte
	binary.LittleEndian.PutUint16(sum[:], checksum(raw))
	raw = append(raw, sum[:]...)

	return b32.EncodeToString(raw), nil
}

// Decode parses a strkey string, verifying the checksum and that the version
// byte matches the expected one, and returns the raw payload.
func Decode(expected VersionByte, address string) ([]byte, error) {
	raw, err := b32.DecodeString(address)
	if err != nil {
		return nil, fmt.Errorf("base32 decode failed: %w", err)
	}
	if len(raw) < 3 {
		return nil, fmt.Errorf("decoded address is too short: %d bytes", len(raw))
	}

	// Reject non-canonical encodings (stray bits in the final symbol).
	if b32.EncodeToString(raw) != address {
		return nil, fmt.Errorf("address is not canonical base32")
	}

	data := raw[:len(raw)-2]
	want := binary.LittleEndian.Uint16(raw[len(raw)-2:])
	if checksum(data) != want {
		return nil, fmt.Errorf("checksum mismatch")
	}

	if VersionByte(data[0]) != expected {
		return nil, fmt.Errorf("unexpected version byte: %d", data[0])
	}

	payload := data[1:]
	if err := checkPayloadSize(expected, len(payload)); err != nil {
		return nil, err
	}
	return payload, nil
}

// IsValidEd25519PublicKey reports whether address is a well-formed "G..."
// account address.
func IsValidEd25519PublicKey(address string) bool {
	_, err := Decode(VersionByteAccountID, address)
	return err == nil
}

// IsValidMuxedAccount reports whether address is a well-formed "M..." muxed
// account address.
func IsValidMuxedAccount(address string) bool {
	_, err := Decode(VersionByteMuxedAccount, address)
	return err == nil
}

// IsValidContract reports whether address is a well-formed "C..." contract
// address.
func IsValidContract(address string) bool {
	_, err := Decode(VersionByteContract, address)
	return err == nil
}

// IsValidSeed reports whether s is a well-formed "S..." Ed25519 seed.
func IsValidSeed(s string) bool {
	_, err := Decode(VersionByteSeed, s)
	return err == nil
}

// IsValidAddress reports whether address is any of the address forms a
// payment destination may take: account, muxed account, or contract.
func IsValidAddress(address string) bool {
	return IsValidEd25519PublicKey(address) ||
		IsValidMuxedAccount(address) ||
		IsValidContract(address)
}

func checkPayloadSize(version VersionByte, n int) error {
	want := rawKeySize
	if version == VersionByteMuxedAccount {
		want = rawMuxedSize
	}
	if n != want {
		return fmt.Errorf("invalid payload size %d, want %d", n, want)
	}
	return nil
}

// checksum is CRC16-XModem (poly 0x1021, zero initial value).
func checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
