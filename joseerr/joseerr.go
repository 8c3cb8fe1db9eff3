// Package joseerr holds the error taxonomy shared by the Algorithm
// Registry, Key Abstraction, and JWS Engine. Call sites compare
// against these sentinels with errors.Is; constructors wrap a
// sentinel with call-specific context the way pktoken.Verify wraps
// its errors in the teacher.
package joseerr

import "errors"

var (
	// ErrMalformedInput means the input bytes cannot be parsed as any
	// recognized JWS form.
	ErrMalformedInput = errors.New("malformed input")

	// ErrAlgorithmMissing means no alg was present in either header.
	ErrAlgorithmMissing = errors.New("alg header missing")

	// ErrUnknownAlgorithm means alg is not registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrKeyNotFound means no supplied key matches the required
	// (algorithm, kid).
	ErrKeyNotFound = errors.New("no matching key found")

	// ErrOperationNotAllowed means verification was attempted with
	// alg=none, or a key could not be encoded (e.g. hardware-resident
	// private material).
	ErrOperationNotAllowed = errors.New("operation not allowed")

	// ErrAuthenticationFailure means a signature did not verify, or
	// the signature set was empty.
	ErrAuthenticationFailure = errors.New("signature verification failed")

	// ErrUnsupported means a key does not implement the requested
	// algorithm.
	ErrUnsupported = errors.New("key does not support algorithm")
)
