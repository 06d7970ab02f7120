package sep7

import (
	"net/url"
	"strings"
)

// QueryParam is a single name/value pair from a URI's query string. Values
// are percent-decoded.
type QueryParam struct {
	Name  string
	Value string
}

// ParsedURI is the result of splitting a protocol URI: the raw path segment
// (the operation kind, not yet checked against the known kinds), the query
// parameters in their original order, and the raw input for payload
// recomputation.
type ParsedURI struct {
	// Kind is the single path segment following the scheme. The parser is
	// lenient about its value; the Validator rejects unknown kinds.
	Kind string

	// Params holds the query parameters in insertion order.
	Params []QueryParam

	// Raw is the unmodified input string.
	Raw string
}

// ParseURI splits a protocol URI into its operation kind and ordered query
// parameters. It is total: any input that does not carry the scheme prefix,
// has other than exactly one path segment, or contains an undecodable value
// yields ok == false rather than an error.
func ParseURI(input string) (*ParsedURI, bool) {
	rest, found := strings.CutPrefix(input, Scheme)
	if !found {
		return nil, false
	}

	path, query, _ := strings.Cut(rest, "?")
	if path == "" || strings.Contains(path, "/") {
		return nil, false
	}

	parsed := &ParsedURI{Kind: path, Raw: input}
	if query == "" {
		return parsed, true
	}

	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			return nil, false
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, false
		}
		parsed.Params = append(parsed.Params, QueryParam{Name: decodedName, Value: decodedValue})
	}
	return parsed, true
}

// GetParam returns the value of the first parameter with the given name.
func (p *ParsedURI) GetParam(name string) (string, bool) {
	for _, q := range p.Params {
		if q.Name == name {
			return q.Value, true
		}
	}
	return "", false
}

// HasParam reports whether a parameter with the given name is present.
func (p *ParsedURI) HasParam(name string) bool {
	_, ok := p.GetParam(name)
	return ok
}

// Operation resolves the path segment to a known operation kind.
func (p *ParsedURI) Operation() (OperationKind, bool) {
	switch OperationKind(p.Kind) {
	case OperationTx, OperationPay:
		return OperationKind(p.Kind), true
	default:
		return "", false
	}
}
