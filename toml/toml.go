// Package toml fetches and parses a domain's published configuration
// document (stellar.toml), which delegates signing authority for URI
// requests originating from that domain.
package toml

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// WellKnownPath is where a domain publishes its configuration document.
const WellKnownPath = "/.well-known/stellar.toml"

// maxResponseSize caps the accepted document size at 100 KiB.
const maxResponseSize = 100 * 1024

// DomainConfig is the subset of a stellar.toml document this client reads.
type DomainConfig struct {
	// NetworkPassphrase identifies the network the domain operates on.
	NetworkPassphrase string `toml:"NETWORK_PASSPHRASE"`

	// URIRequestSigningKey is the key URI request signatures are delegated
	// to. SigningKey is the older field spelling still published by some
	// domains; callers should fall back to it when this one is absent.
	URIRequestSigningKey string `toml:"URI_REQUEST_SIGNING_KEY"`

	// SigningKey is the domain's general signing key.
	SigningKey string `toml:"SIGNING_KEY"`

	// WebAuthEndpoint is the domain's web-authentication URL.
	WebAuthEndpoint string `toml:"WEB_AUTH_ENDPOINT"`

	// FederationServer is the domain's federation URL.
	FederationServer string `toml:"FEDERATION_SERVER"`

	// Currencies lists assets issued under this domain.
	Currencies []Currency `toml:"CURRENCIES"`
}

// Currency describes one asset entry of a domain configuration document.
type Currency struct {
	Code   string `toml:"code"`
	Issuer string `toml:"issuer"`
	Name   string `toml:"name"`
}

// Resolver fetches domain configuration documents over HTTPS. The zero value
// is usable; all fields are optional.
//
// A Resolver performs exactly one outbound request per Resolve call. It does
// not retry, cache, or impose its own timeout: deadlines belong to the
// caller's context and the injected client.
type Resolver struct {
	// Client is the HTTP client used for fetches. Nil means
	// http.DefaultClient. Tests inject a client with a stub transport.
	Client *http.Client

	// Headers are set on every request, e.g. client identification.
	Headers map[string]string

	// Logger receives fetch diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

// Resolve fetches and parses https://{domain}/.well-known/stellar.toml.
func (r *Resolver) Resolve(ctx context.Context, domain string) (*DomainConfig, error) {
	url := "https://" + domain + WellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stellar.toml request: %w", err)
	}
	for name, value := range r.Headers {
		req.Header.Set(name, value)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		r.log().Debug().Str("domain", domain).Err(err).Msg("stellar.toml fetch failed")
		return nil, fmt.Errorf("failed to fetch stellar.toml from %s: %w", domain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log().Debug().Str("domain", domain).Int("status", resp.StatusCode).Msg("stellar.toml fetch rejected")
		return nil, fmt.Errorf("stellar.toml request to %s returned status %d", domain, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read stellar.toml from %s: %w", domain, err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("stellar.toml from %s exceeds %d bytes", domain, maxResponseSize)
	}

	var cfg DomainConfig
	if err := toml.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stellar.toml from %s: %w", domain, err)
	}

	r.log().Debug().Str("domain", domain).Msg("resolved stellar.toml")
	return &cfg, nil
}

func (r *Resolver) log() *zerolog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
