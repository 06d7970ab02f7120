package sep7

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/stellarkit/sep7-go/keypair"
)

// signaturePayloadTag is the protocol's domain-separation text. The full
// signature payload is a 36-byte prefix (35 zero bytes then 0x04), this tag,
// and the URI with the signature parameter removed.
const signaturePayloadTag = "stellar.sep.7 - URI Scheme"

// SignaturePayload returns the exact byte sequence that is hashed and signed
// for the given URI. The signature parameter, if present, is removed wherever
// it appears; every other parameter stays in the payload with its original
// encoding, so nothing can be appended to a signed URI without breaking the
// signature.
func SignaturePayload(uri string) []byte {
	base := stripSignatureParam(uri)

	payload := make([]byte, 36, 36+len(signaturePayloadTag)+len(base))
	payload[35] = 4
	payload = append(payload, signaturePayloadTag...)
	payload = append(payload, base...)
	return payload
}

// stripSignatureParam removes signature parameters from the query string,
// keeping the remaining pairs in order and untouched.
func stripSignatureParam(uri string) string {
	head, query, found := strings.Cut(uri, "?")
	if !found {
		return uri
	}

	pairs := strings.Split(query, "&")
	kept := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name, _, _ := strings.Cut(pair, "=")
		if name == ParamSignature {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == 0 {
		return head
	}
	return head + "?" + strings.Join(kept, "&")
}

// Sign appends a signature parameter to the URI: the base64 Ed25519
// signature over SHA-256 of the signature payload. Signing does not require
// the URI to pass validation first, but it fails with ErrAlreadySigned if a
// signature parameter is already present.
func Sign(uri string, kp *keypair.Full) (string, error) {
	if hasSignatureParam(uri) {
		return "", ErrAlreadySigned
	}

	digest := sha256.Sum256(SignaturePayload(uri))
	sig := kp.Sign(digest[:])

	sep := "&"
	if !strings.Contains(uri, "?") {
		sep = "?"
	}
	return uri + sep + ParamSignature + "=" + escapeParam(base64.StdEncoding.EncodeToString(sig)), nil
}

func hasSignatureParam(uri string) bool {
	if parsed, ok := ParseURI(uri); ok {
		return parsed.HasParam(ParamSignature)
	}
	// Unparseable input still gets the textual check so that signing stays
	// one-shot regardless of URI well-formedness.
	return strings.Contains(uri, "?"+ParamSignature+"=") ||
		strings.Contains(uri, "&"+ParamSignature+"=")
}

// SignURI signs a URI with the given keypair.
//
// Deprecated: Use Sign.
func SignURI(uri string, kp *keypair.Full) (string, error) {
	return Sign(uri, kp)
}
