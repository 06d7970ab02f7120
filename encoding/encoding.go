// Package encoding parses the individual field types carried in protocol URI
// parameters: assets, memos, replace specifications, amounts, and booleans.
// The encode direction lives with the types themselves in the root package.
package encoding

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	sep7 "github.com/stellarkit/sep7-go"
	"github.com/stellarkit/sep7-go/strkey"
)

// memoTextMaxBytes is the byte budget of a text memo on the wire.
const memoTextMaxBytes = 28

// memoHashSize is the fixed size of hash and return memos. Shorter base64
// inputs are zero-right-padded to this size.
const memoHashSize = 32

// amountPrecision is the number of fixed-point decimal places of an amount.
const amountPrecision = 7

// ParseAsset decodes "native" or "CODE:ISSUER" into an asset reference.
func ParseAsset(s string) (sep7.Asset, error) {
	if s == "native" {
		return sep7.NativeAsset(), nil
	}

	code, issuer, found := strings.Cut(s, ":")
	if !found {
		return sep7.Asset{}, fmt.Errorf("invalid asset %q, want \"native\" or \"CODE:ISSUER\"", s)
	}
	if len(code) < 1 || len(code) > 12 {
		return sep7.Asset{}, fmt.Errorf("asset code %q must be 1 to 12 characters", code)
	}
	if !strkey.IsValidEd25519PublicKey(issuer) {
		return sep7.Asset{}, fmt.Errorf("asset issuer %q is not a valid account address", issuer)
	}
	return sep7.CreditAsset(code, issuer), nil
}

// ParseMemo decodes a memo parameter value under the given memo type tag.
// Hash and return memos shorter than 32 bytes are zero-right-padded; longer
// or non-base64 values are rejected.
func ParseMemo(value string, memoType sep7.MemoType) (sep7.Memo, error) {
	switch memoType {
	case sep7.MemoTypeText:
		if len(value) > memoTextMaxBytes {
			return sep7.Memo{}, fmt.Errorf("memo of type %s is too long, must be at most %d bytes", memoType, memoTextMaxBytes)
		}
		if !utf8.ValidString(value) {
			return sep7.Memo{}, fmt.Errorf("memo of type %s must be valid UTF-8", memoType)
		}
		return sep7.MemoText(value), nil

	case sep7.MemoTypeID:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return sep7.Memo{}, fmt.Errorf("memo of type %s must be a non-negative 64-bit integer", memoType)
		}
		return sep7.MemoID(id), nil

	case sep7.MemoTypeHash, sep7.MemoTypeReturn:
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return sep7.Memo{}, fmt.Errorf("memo of type %s must be valid base64", memoType)
		}
		if len(raw) > memoHashSize {
			return sep7.Memo{}, fmt.Errorf("memo of type %s must decode to at most %d bytes", memoType, memoHashSize)
		}
		var hash [memoHashSize]byte
		copy(hash[:], raw)
		if memoType == sep7.MemoTypeHash {
			return sep7.MemoHash(hash), nil
		}
		return sep7.MemoReturn(hash), nil

	default:
		return sep7.Memo{}, fmt.Errorf("memo type %s is not supported", memoType)
	}
}

// ParseReplacements decodes the wire form
// "path1:id1,path2:id2;id1:hint1,id2:hint2" into an ordered replace
// specification, re-attaching the shared hint to every path with the same ID.
func ParseReplacements(s string) (sep7.Replacements, error) {
	if s == "" {
		return nil, nil
	}

	pathsPart, hintsPart, _ := strings.Cut(s, ";")

	hints := make(map[string]string)
	if hintsPart != "" {
		for _, pair := range strings.Split(hintsPart, ",") {
			id, hint, found := strings.Cut(pair, ":")
			if !found || id == "" {
				return nil, fmt.Errorf("invalid replacement hint %q, want \"id:hint\"", pair)
			}
			hints[id] = hint
		}
	}

	var rs sep7.Replacements
	for _, pair := range strings.Split(pathsPart, ",") {
		path, id, found := strings.Cut(pair, ":")
		if !found || path == "" || id == "" {
			return nil, fmt.Errorf("invalid replacement path %q, want \"path:id\"", pair)
		}
		rs = append(rs, sep7.Replacement{ID: id, Path: path, Hint: hints[id]})
	}
	return rs, nil
}

// ParseAmount converts a decimal amount string to fixed-point integer units
// (7 decimal places). It rejects negative values and values with more
// precision than the ledger carries.
func ParseAmount(amount string) (int64, error) {
	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return 0, fmt.Errorf("invalid amount format: %s", amount)
	}
	if r.Sign() < 0 {
		return 0, fmt.Errorf("amount must not be negative, got: %s", amount)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(amountPrecision), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", amount, amountPrecision)
	}
	if !r.Num().IsInt64() {
		return 0, fmt.Errorf("amount %s is out of range", amount)
	}
	return r.Num().Int64(), nil
}

// FormatAmount converts fixed-point integer units back to a decimal string
// with trailing zeros trimmed.
func FormatAmount(units int64) string {
	r := new(big.Rat).SetFrac64(units, 1e7)
	s := r.FloatString(amountPrecision)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ParseBool decodes a boolean parameter value. Only the literals "true" and
// "false" are accepted.
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", s)
	}
}

// FormatBool encodes a boolean parameter value.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
