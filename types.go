// Package sep7 implements the client side of the web+stellar URI signing
// protocol: building, parsing, validating, signing, and verifying intent URIs
// that ask a counterparty to authorize a transaction or payment.
package sep7

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// Scheme is the fixed URI scheme token, including the trailing colon.
const Scheme = "web+stellar:"

// OperationKind identifies which of the two supported operations a URI
// requests.
type OperationKind string

const (
	// OperationTx carries a pre-built transaction envelope to sign.
	OperationTx OperationKind = "tx"

	// OperationPay carries a destination/amount/asset payment request.
	OperationPay OperationKind = "pay"
)

// Parameter names defined by the protocol.
const (
	ParamXDR               = "xdr"
	ParamReplace           = "replace"
	ParamCallback          = "callback"
	ParamPubkey            = "pubkey"
	ParamChain             = "chain"
	ParamMsg               = "msg"
	ParamNetworkPassphrase = "network_passphrase"
	ParamOriginDomain      = "origin_domain"
	ParamSignature         = "signature"
	ParamDestination       = "destination"
	ParamAmount            = "amount"
	ParamAssetCode         = "asset_code"
	ParamAssetIssuer       = "asset_issuer"
	ParamMemo              = "memo"
	ParamMemoType          = "memo_type"
)

// Result is the structured outcome of a validation or verification pass.
// Callers branch on Valid; Reason carries the first failure encountered.
type Result struct {
	// Valid reports whether the URI passed every check.
	Valid bool

	// Reason describes the first failed check. Empty when Valid is true.
	Reason string
}

// Asset is a reference to either the native asset or a credit asset issued
// by an account. The zero value is the native asset.
type Asset struct {
	// Code is the asset code, 1 to 12 characters. Empty for native.
	Code string

	// Issuer is the issuing account address. Empty for native.
	Issuer string
}

// NativeAsset returns a reference to the native asset.
func NativeAsset() Asset {
	return Asset{}
}

// CreditAsset returns a reference to a credit asset.
func CreditAsset(code, issuer string) Asset {
	return Asset{Code: code, Issuer: issuer}
}

// IsNative reports whether the reference is the native asset.
func (a Asset) IsNative() bool {
	return a.Code == "" && a.Issuer == ""
}

// String serializes the reference to "native" or "CODE:ISSUER".
func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer
}

// MemoType tags the interpretation of a memo value.
type MemoType string

const (
	MemoTypeText   MemoType = "MEMO_TEXT"
	MemoTypeID     MemoType = "MEMO_ID"
	MemoTypeHash   MemoType = "MEMO_HASH"
	MemoTypeReturn MemoType = "MEMO_RETURN"
)

// Memo is a tagged memo value attached to a payment request.
type Memo struct {
	// Type selects which of the value fields below is meaningful.
	Type MemoType

	// Text holds the value for MemoTypeText, at most 28 bytes of UTF-8.
	Text string

	// ID holds the value for MemoTypeID.
	ID uint64

	// Hash holds the value for MemoTypeHash and MemoTypeReturn.
	Hash [32]byte
}

// MemoText returns a text memo.
func MemoText(text string) Memo {
	return Memo{Type: MemoTypeText, Text: text}
}

// MemoID returns an ID memo.
func MemoID(id uint64) Memo {
	return Memo{Type: MemoTypeID, ID: id}
}

// MemoHash returns a hash memo.
func MemoHash(hash [32]byte) Memo {
	return Memo{Type: MemoTypeHash, Hash: hash}
}

// MemoReturn returns a return-hash memo.
func MemoReturn(hash [32]byte) Memo {
	return Memo{Type: MemoTypeReturn, Hash: hash}
}

// Params returns the memo and memo_type parameter values for this memo.
// Hash and return memos serialize as standard base64.
func (m Memo) Params() (value string, memoType MemoType) {
	switch m.Type {
	case MemoTypeID:
		return strconv.FormatUint(m.ID, 10), m.Type
	case MemoTypeHash, MemoTypeReturn:
		return base64.StdEncoding.EncodeToString(m.Hash[:]), m.Type
	default:
		return m.Text, MemoTypeText
	}
}

// Replacement names one field of the referenced transaction envelope that the
// recipient is expected to fill in before signing. Multiple replacements may
// share an ID when a single supplied value replaces several paths.
type Replacement struct {
	// ID is the short token tying paths to a hint.
	ID string

	// Path is the dotted/indexed field path into the envelope,
	// e.g. "operations[0].destination".
	Path string

	// Hint describes to the recipient what value is expected.
	Hint string
}

// Replacements is an ordered replace specification.
type Replacements []Replacement

// String serializes the specification to the wire form
// "path1:id1,path2:id2;id1:hint1,id2:hint2". Hints for a shared ID are
// recorded once, at the position of its first path.
func (rs Replacements) String() string {
	if len(rs) == 0 {
		return ""
	}

	paths := make([]string, 0, len(rs))
	hints := make([]string, 0, len(rs))
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		paths = append(paths, r.Path+":"+r.ID)
		if !seen[r.ID] {
			seen[r.ID] = true
			hints = append(hints, r.ID+":"+r.Hint)
		}
	}
	return strings.Join(paths, ",") + ";" + strings.Join(hints, ",")
}
