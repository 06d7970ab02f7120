package sep7

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/stellarkit/sep7-go/keypair"
	"github.com/stellarkit/sep7-go/strkey"
	"github.com/stellarkit/sep7-go/toml"
)

// VerifyWithKey checks the URI's signature parameter against the given
// account address. It never errors: an unparseable URI, a missing signature,
// a malformed address, or a cryptographic mismatch all yield false.
func VerifyWithKey(uri, accountID string) bool {
	parsed, ok := ParseURI(uri)
	if !ok {
		return false
	}
	sigValue, ok := parsed.GetParam(ParamSignature)
	if !ok || sigValue == "" {
		return false
	}

	key, err := keypair.ParseAddress(accountID)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(sigValue)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(SignaturePayload(uri))
	return key.Verify(digest[:], sig)
}

// DomainVerifier resolves signing authority from a URI's origin domain and
// verifies the URI's signature against the key that domain publishes.
type DomainVerifier struct {
	// Resolver fetches domain configuration documents. Nil uses a zero-value
	// resolver with default client-identification headers.
	Resolver *toml.Resolver
}

// NewDomainVerifier returns a verifier whose resolver sends the default
// client-identification headers.
func NewDomainVerifier() *DomainVerifier {
	return &DomainVerifier{
		Resolver: &toml.Resolver{
			Headers: map[string]string{
				HeaderClientName:    ClientName,
				HeaderClientVersion: ClientVersion,
			},
		},
	}
}

// VerifyForDomain verifies the URI's signature against the signing key
// published by its origin_domain. Transport and document failures are folded
// into the structured result rather than returned as errors, so verification
// always completes with an answer.
func (v *DomainVerifier) VerifyForDomain(ctx context.Context, uri string) Result {
	parsed, ok := ParseURI(uri)
	if !ok {
		return Result{Reason: "could not parse URI"}
	}
	if sig, ok := parsed.GetParam(ParamSignature); !ok || sig == "" {
		return Result{Reason: "missing parameter 'signature'"}
	}
	domain, ok := parsed.GetParam(ParamOriginDomain)
	if !ok || domain == "" {
		return Result{Reason: "missing parameter 'origin_domain'"}
	}

	cfg, err := v.resolver().Resolve(ctx, domain)
	if err != nil {
		return Result{Reason: fmt.Sprintf("stellar.toml not found for origin domain %s", domain)}
	}

	signingKey := cfg.URIRequestSigningKey
	if signingKey == "" {
		signingKey = cfg.SigningKey
	}
	if signingKey == "" {
		return Result{Reason: fmt.Sprintf("No signing key found in the stellar.toml of %s", domain)}
	}
	if !strkey.IsValidEd25519PublicKey(signingKey) {
		return Result{Reason: fmt.Sprintf("signing key in the stellar.toml of %s is not valid", domain)}
	}

	if !VerifyWithKey(uri, signingKey) {
		return Result{Reason: fmt.Sprintf("Signature is not from the signing key of %s", domain)}
	}
	return Result{Valid: true}
}

func (v *DomainVerifier) resolver() *toml.Resolver {
	if v.Resolver != nil {
		return v.Resolver
	}
	return NewDomainVerifier().Resolver
}

// VerifySignedURI checks a signed URI against an account address.
//
// Deprecated: Use VerifyWithKey.
func VerifySignedURI(uri, accountID string) bool {
	return VerifyWithKey(uri, accountID)
}
