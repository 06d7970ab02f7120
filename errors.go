package sep7

import "errors"

var (
	// ErrAlreadySigned indicates a signing attempt on a URI that already
	// carries a signature parameter. Signing is one-shot, not idempotent.
	ErrAlreadySigned = errors.New("URI already contains a signature")
)
