package sep7

import (
	"net/url"
	"strings"
)

// TransactionParams is the typed parameter bundle for a tx operation URI.
type TransactionParams struct {
	// XDR is the base64 transaction envelope to be reviewed and signed.
	XDR string

	// Replace names envelope fields the recipient should fill in.
	Replace Replacements

	// Callback is where the signed result should be submitted, e.g.
	// "url:https://example.com/callback". Empty means submit to the network.
	Callback string

	// Pubkey hints which key the recipient should sign with.
	Pubkey string

	// Chain embeds the prior URI of a sequential approval chain.
	Chain string

	// Msg is shown to the recipient during review, at most 300 characters.
	Msg string

	NetworkPassphrase string
	OriginDomain      string
	Signature         string
}

// PayParams is the typed parameter bundle for a pay operation URI.
type PayParams struct {
	// Destination is the account, muxed account, or contract address to pay.
	Destination string

	// Amount is the decimal amount to pay. Empty lets the payer choose.
	Amount string

	// Asset is the asset to pay in. The zero value (native) emits no asset
	// parameters.
	Asset Asset

	// Memo is attached to the payment. Nil emits no memo parameters.
	Memo *Memo

	Callback          string
	Msg               string
	NetworkPassphrase string
	OriginDomain      string
	Signature         string
}

// BuildTransactionURI assembles a tx operation URI. It is pure and emits
// parameters in a fixed order, so byte-identical inputs always produce
// byte-identical output; semantic validation is the Validator's job.
func BuildTransactionURI(p TransactionParams) string {
	var b uriBuilder
	b.start(OperationTx)
	b.add(ParamXDR, p.XDR)
	if len(p.Replace) > 0 {
		b.add(ParamReplace, p.Replace.String())
	}
	b.addNonEmpty(ParamCallback, p.Callback)
	b.addNonEmpty(ParamPubkey, p.Pubkey)
	b.addNonEmpty(ParamChain, p.Chain)
	b.addNonEmpty(ParamMsg, p.Msg)
	b.addNonEmpty(ParamNetworkPassphrase, p.NetworkPassphrase)
	b.addNonEmpty(ParamOriginDomain, p.OriginDomain)
	b.addNonEmpty(ParamSignature, p.Signature)
	return b.String()
}

// BuildPayURI assembles a pay operation URI with the same determinism
// guarantees as BuildTransactionURI.
func BuildPayURI(p PayParams) string {
	var b uriBuilder
	b.start(OperationPay)
	b.add(ParamDestination, p.Destination)
	b.addNonEmpty(ParamAmount, p.Amount)
	if !p.Asset.IsNative() {
		b.add(ParamAssetCode, p.Asset.Code)
		b.add(ParamAssetIssuer, p.Asset.Issuer)
	}
	if p.Memo != nil {
		value, memoType := p.Memo.Params()
		b.add(ParamMemo, value)
		b.add(ParamMemoType, string(memoType))
	}
	b.addNonEmpty(ParamCallback, p.Callback)
	b.addNonEmpty(ParamMsg, p.Msg)
	b.addNonEmpty(ParamNetworkPassphrase, p.NetworkPassphrase)
	b.addNonEmpty(ParamOriginDomain, p.OriginDomain)
	b.addNonEmpty(ParamSignature, p.Signature)
	return b.String()
}

// uriBuilder accumulates a protocol URI with percent-encoded values.
type uriBuilder struct {
	sb    strings.Builder
	first bool
}

func (b *uriBuilder) start(kind OperationKind) {
	b.sb.WriteString(Scheme)
	b.sb.WriteString(string(kind))
	b.first = true
}

func (b *uriBuilder) add(name, value string) {
	if b.first {
		b.sb.WriteByte('?')
		b.first = false
	} else {
		b.sb.WriteByte('&')
	}
	b.sb.WriteString(name)
	b.sb.WriteByte('=')
	b.sb.WriteString(escapeParam(value))
}

func (b *uriBuilder) addNonEmpty(name, value string) {
	if value != "" {
		b.add(name, value)
	}
}

func (b *uriBuilder) String() string {
	return b.sb.String()
}

// escapeParam percent-encodes a parameter value. Spaces become %20, not "+",
// so the emitted string is stable under RFC 3986 decoding and usable as
// signature payload material.
func escapeParam(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
