package sep7

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarkit/sep7-go/toml"
)

// roundTripFunc stubs an HTTP transport with a canned handler.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func tomlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func stubVerifier(handler roundTripFunc) *DomainVerifier {
	v := NewDomainVerifier()
	v.Resolver.Client = &http.Client{Transport: handler}
	return v
}

func TestVerifyWithKey(t *testing.T) {
	kp := mustKeypair(t)
	other := mustKeypair(t)
	uri := BuildPayURI(PayParams{Destination: kp.Address(), Amount: "100"})

	signed, err := Sign(uri, kp)
	require.NoError(t, err)

	t.Run("matching key", func(t *testing.T) {
		assert.True(t, VerifyWithKey(signed, kp.Address()))
	})
	t.Run("other key", func(t *testing.T) {
		assert.False(t, VerifyWithKey(signed, other.Address()))
	})
	t.Run("missing signature", func(t *testing.T) {
		assert.False(t, VerifyWithKey(uri, kp.Address()))
	})
	t.Run("malformed key", func(t *testing.T) {
		assert.False(t, VerifyWithKey(signed, "not a key"))
	})
	t.Run("unparseable URI", func(t *testing.T) {
		assert.False(t, VerifyWithKey("mailto:someone@example.com", kp.Address()))
	})
	t.Run("mutated signature", func(t *testing.T) {
		parsed, ok := ParseURI(signed)
		require.True(t, ok)
		sigValue, ok := parsed.GetParam(ParamSignature)
		require.True(t, ok)

		sig, err := base64.StdEncoding.DecodeString(sigValue)
		require.NoError(t, err)

		for i := range sig {
			mutated := append([]byte(nil), sig...)
			mutated[i] ^= 0x01
			mutatedURI := uri + "&signature=" + escapeParam(base64.StdEncoding.EncodeToString(mutated))
			if VerifyWithKey(mutatedURI, kp.Address()) {
				t.Fatalf("signature with byte %d mutated still verifies", i)
			}
		}
	})
}

func TestVerifyForDomain(t *testing.T) {
	kp := mustKeypair(t)
	other := mustKeypair(t)

	signedURI := func(t *testing.T) string {
		uri := BuildPayURI(PayParams{
			Destination:  kp.Address(),
			Amount:       "25",
			OriginDomain: "example.com",
		})
		signed, err := Sign(uri, kp)
		require.NoError(t, err)
		return signed
	}

	t.Run("valid with URI_REQUEST_SIGNING_KEY", func(t *testing.T) {
		var gotURL string
		v := stubVerifier(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			assert.Equal(t, ClientName, req.Header.Get(HeaderClientName))
			assert.Equal(t, ClientVersion, req.Header.Get(HeaderClientVersion))
			return tomlResponse(200, fmt.Sprintf("URI_REQUEST_SIGNING_KEY = %q\n", kp.Address())), nil
		})

		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.True(t, result.Valid, result.Reason)
		assert.Equal(t, "https://example.com/.well-known/stellar.toml", gotURL)
	})

	t.Run("falls back to SIGNING_KEY", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return tomlResponse(200, fmt.Sprintf("SIGNING_KEY = %q\n", kp.Address())), nil
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.True(t, result.Valid, result.Reason)
	})

	t.Run("toml unreachable", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("connection refused")
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "not found")
	})

	t.Run("toml missing", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return tomlResponse(404, "nothing here"), nil
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "not found")
	})

	t.Run("no signing key in toml", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return tomlResponse(200, "FEDERATION_SERVER = \"https://example.com/federation\"\n"), nil
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "No signing key")
	})

	t.Run("signing key not valid", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return tomlResponse(200, "URI_REQUEST_SIGNING_KEY = \"GNOTAKEY\"\n"), nil
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "not valid")
	})

	t.Run("signature from a different key", func(t *testing.T) {
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			return tomlResponse(200, fmt.Sprintf("URI_REQUEST_SIGNING_KEY = %q\n", other.Address())), nil
		})
		result := v.VerifyForDomain(context.Background(), signedURI(t))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "Signature is not from")
	})

	t.Run("missing origin_domain", func(t *testing.T) {
		uri := BuildPayURI(PayParams{Destination: kp.Address()})
		signed, err := Sign(uri, kp)
		require.NoError(t, err)

		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			t.Fatal("no request expected")
			return nil, nil
		})
		result := v.VerifyForDomain(context.Background(), signed)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "origin_domain")
	})

	t.Run("missing signature", func(t *testing.T) {
		uri := BuildPayURI(PayParams{Destination: kp.Address(), OriginDomain: "example.com"})
		v := stubVerifier(func(*http.Request) (*http.Response, error) {
			t.Fatal("no request expected")
			return nil, nil
		})
		result := v.VerifyForDomain(context.Background(), uri)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, "signature")
	})

	t.Run("nil resolver uses defaults", func(t *testing.T) {
		v := &DomainVerifier{}
		result := v.VerifyForDomain(context.Background(), "web+stellar:pay?destination=GABC")
		assert.False(t, result.Valid)
	})
}

func TestVerifyForDomainSupportsTomlResolverInjection(t *testing.T) {
	// The resolver is an ordinary struct value; callers can supply their own
	// headers alongside the stubbed transport.
	kp := mustKeypair(t)
	uri := BuildPayURI(PayParams{Destination: kp.Address(), OriginDomain: "anchor.example"})
	signed, err := Sign(uri, kp)
	require.NoError(t, err)

	var gotHeader string
	v := &DomainVerifier{Resolver: &toml.Resolver{
		Client: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotHeader = req.Header.Get("X-Request-Source")
			return tomlResponse(200, fmt.Sprintf("URI_REQUEST_SIGNING_KEY = %q\n", kp.Address())), nil
		})},
		Headers: map[string]string{"X-Request-Source": "integration-test"},
	}}

	result := v.VerifyForDomain(context.Background(), signed)
	assert.True(t, result.Valid, result.Reason)
	assert.Equal(t, "integration-test", gotHeader)
}
