// Package validation enforces the full protocol grammar over a parsed URI:
// the permitted parameter set per operation kind, the syntactic and semantic
// constraints of each parameter, and the bounded chain-nesting depth.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	sep7 "github.com/stellarkit/sep7-go"
	"github.com/stellarkit/sep7-go/encoding"
	"github.com/stellarkit/sep7-go/strkey"
	"github.com/stellarkit/sep7-go/xdr"
)

// maxChainedLevels bounds how many URIs may be embedded beneath the
// outermost one. Seven chained levels (eight linked URIs in total) pass;
// an eighth embedding is rejected.
const maxChainedLevels = 7

// msgMaxChars is the character budget of the msg parameter.
const msgMaxChars = 300

// fqdnRegex matches fully qualified domain names: dot-separated labels of
// letters, digits, and interior hyphens.
var fqdnRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// permitted parameter sets per operation kind
var (
	txParams = map[string]bool{
		sep7.ParamXDR:               true,
		sep7.ParamReplace:           true,
		sep7.ParamCallback:          true,
		sep7.ParamPubkey:            true,
		sep7.ParamChain:             true,
		sep7.ParamMsg:               true,
		sep7.ParamNetworkPassphrase: true,
		sep7.ParamOriginDomain:      true,
		sep7.ParamSignature:         true,
	}

	payParams = map[string]bool{
		sep7.ParamDestination:       true,
		sep7.ParamAmount:            true,
		sep7.ParamAssetCode:         true,
		sep7.ParamAssetIssuer:       true,
		sep7.ParamMemo:              true,
		sep7.ParamMemoType:          true,
		sep7.ParamCallback:          true,
		sep7.ParamMsg:               true,
		sep7.ParamNetworkPassphrase: true,
		sep7.ParamOriginDomain:      true,
		sep7.ParamSignature:         true,
	}
)

// Validator checks protocol URIs. The zero value is ready to use.
type Validator struct {
	// ParseEnvelope overrides the transaction-envelope oracle used for the
	// xdr parameter. Nil uses xdr.ParseEnvelope.
	ParseEnvelope func(string) (*xdr.Envelope, error)
}

// Validate checks a URI with a zero-value Validator.
func Validate(uri string) sep7.Result {
	var v Validator
	return v.Validate(uri)
}

// IsValid reports whether the URI passes validation.
func IsValid(uri string) bool {
	return Validate(uri).Valid
}

// Validate runs the full grammar over the URI, short-circuiting on the first
// failure. Chained URIs are validated recursively with a bounded depth.
func (v *Validator) Validate(uri string) sep7.Result {
	return v.validate(uri, 0)
}

func (v *Validator) validate(uri string, depth int) sep7.Result {
	parsed, ok := sep7.ParseURI(uri)
	if !ok {
		return reject("URI path must consist of exactly one segment")
	}

	op, known := parsed.Operation()
	if !known {
		return reject(fmt.Sprintf("operation type %s is not supported", parsed.Kind))
	}

	permitted := payParams
	if op == sep7.OperationTx {
		permitted = txParams
	}
	seen := make(map[string]bool, len(parsed.Params))
	for _, p := range parsed.Params {
		if !permitted[p.Name] {
			return reject("Unsupported parameter: " + p.Name)
		}
		// Lookups elsewhere are first-match, so a repeated name could smuggle
		// a second unvalidated value past the checks below.
		if seen[p.Name] {
			return reject("Duplicate parameter: " + p.Name)
		}
		seen[p.Name] = true
	}

	if res := v.validateRequired(parsed, op); !res.Valid {
		return res
	}

	if code, ok := parsed.GetParam(sep7.ParamAssetCode); ok && len(code) > 12 {
		return reject("asset code too long, must be at most 12 characters")
	}
	if issuer, ok := parsed.GetParam(sep7.ParamAssetIssuer); ok && !strkey.IsValidEd25519PublicKey(issuer) {
		return reject("invalid Stellar address in asset_issuer parameter")
	}
	if pubkey, ok := parsed.GetParam(sep7.ParamPubkey); ok && !strkey.IsValidEd25519PublicKey(pubkey) {
		return reject("invalid public key in pubkey parameter")
	}
	if msg, ok := parsed.GetParam(sep7.ParamMsg); ok && utf8.RuneCountInString(msg) > msgMaxChars {
		return reject(fmt.Sprintf("msg parameter must not exceed %d characters", msgMaxChars))
	}

	if res := validateMemo(parsed); !res.Valid {
		return res
	}

	if domain, ok := parsed.GetParam(sep7.ParamOriginDomain); ok && !fqdnRegex.MatchString(domain) {
		return reject("origin_domain is not a fully qualified domain name")
	}

	if chain, ok := parsed.GetParam(sep7.ParamChain); ok {
		if depth >= maxChainedLevels {
			return reject(fmt.Sprintf("chaining more than %d nested levels is not allowed", maxChainedLevels))
		}
		if res := v.validate(chain, depth+1); !res.Valid {
			return res
		}
	}

	return sep7.Result{Valid: true}
}

// validateRequired checks the kind-specific required parameter: a
// deserializable envelope for tx, a syntactically valid destination for pay.
func (v *Validator) validateRequired(parsed *sep7.ParsedURI, op sep7.OperationKind) sep7.Result {
	if op == sep7.OperationTx {
		envelope, ok := parsed.GetParam(sep7.ParamXDR)
		if !ok || envelope == "" {
			return reject("missing parameter 'xdr'")
		}
		parse := v.ParseEnvelope
		if parse == nil {
			parse = xdr.ParseEnvelope
		}
		if _, err := parse(envelope); err != nil {
			return reject("invalid transaction envelope in xdr parameter")
		}
		return sep7.Result{Valid: true}
	}

	destination, ok := parsed.GetParam(sep7.ParamDestination)
	if !ok || destination == "" {
		return reject("missing parameter 'destination'")
	}
	if !strkey.IsValidAddress(destination) {
		return reject("invalid Stellar address in destination parameter")
	}
	return sep7.Result{Valid: true}
}

// validateMemo checks the memo_type tag and the memo value under it. A memo
// without a memo_type is treated as text.
func validateMemo(parsed *sep7.ParsedURI) sep7.Result {
	memoType, hasType := parsed.GetParam(sep7.ParamMemoType)
	memoValue, hasValue := parsed.GetParam(sep7.ParamMemo)
	if !hasType && !hasValue {
		return sep7.Result{Valid: true}
	}

	tag := sep7.MemoTypeText
	if hasType {
		switch sep7.MemoType(memoType) {
		case sep7.MemoTypeText, sep7.MemoTypeID, sep7.MemoTypeHash, sep7.MemoTypeReturn:
			tag = sep7.MemoType(memoType)
		default:
			return reject(fmt.Sprintf("memo type %s is not supported", memoType))
		}
	}

	if _, err := encoding.ParseMemo(memoValue, tag); err != nil {
		return reject(err.Error())
	}
	return sep7.Result{Valid: true}
}

func reject(reason string) sep7.Result {
	return sep7.Result{Reason: reason}
}

// CheckURISchemeIsValid checks a URI against the protocol grammar.
//
// Deprecated: Use Validate.
func CheckURISchemeIsValid(uri string) sep7.Result {
	return Validate(uri)
}
