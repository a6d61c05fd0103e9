// Package amberr defines the typed error taxonomy shared across the core:
// field, curve, symmetric, key-derivation, AEAD, and signature packages all
// return one of these sentinels (or a wrapped form of one) instead of ad-hoc
// strings, so callers can discriminate failures with errors.Is.
package amberr

import "errors"

var (
	// ErrBadPoint is returned when a compressed point encoding fails to
	// decode to a valid curve point, or decodes to the identity where the
	// identity is forbidden.
	ErrBadPoint = errors.New("amber: invalid point encoding")

	// ErrBadTag is returned when AEAD authentication fails. It is always
	// returned before any plaintext is released to the caller.
	ErrBadTag = errors.New("amber: authentication tag mismatch")

	// ErrBadScalar is returned when a signature's S component is not
	// reduced modulo the group order, or a scalar input fails a range
	// check.
	ErrBadScalar = errors.New("amber: scalar out of range")

	// ErrSmallOrder is returned by checked Diffie-Hellman when the peer's
	// contribution lies on the twist or in a small-order subgroup.
	ErrSmallOrder = errors.New("amber: small-order or twist point rejected")

	// ErrShortInput is returned when a decode routine runs out of input
	// bytes before it can finish.
	ErrShortInput = errors.New("amber: input too short")
)
