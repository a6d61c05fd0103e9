// Package sig implements spec.md §4.F's signing entry points (sey, the
// Ed25519-compatible variant; bmx, the Curve25519-native variant hashing
// with BLAKE2b; and its SHA-512 sha variant) plus the qDSA ladder-only verification path and
// Elligator2-masked keygen/DH, grounded on zoobc-zed25519's zed package
// structure (Secret/Public/Sign/Verify) and ok-john-edwards25519's
// scalar-handling idiom, rebuilt on filippo.io/edwards25519 via curve.
package sig

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/curve"
)

// Signature is spec.md §6's 64-byte R‖S layout.
type Signature [64]byte

// decodeCanonicalScalar implements spec.md §4.F verify step 1: "reject if
// S >= ℓ (prevents malleability)". curve.ScalarFromCanonical already
// enforces this, so verifiers share this helper rather than re-deriving
// the range check.
func decodeCanonicalScalar(s [32]byte) (*curve.Scalar, error) {
	sc, err := curve.ScalarFromCanonical(s[:])
	if err != nil {
		return nil, amberr.ErrBadScalar
	}
	return sc, nil
}
