package sig

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/curve"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// domainSep builds spec.md §4.F's "null-terminated prefix string prepended
// to every hash invocation" for the bmx/sha variants.
func domainSep(prefix string) []byte {
	b := make([]byte, len(prefix)+1)
	copy(b, prefix)
	return b
}

// SecretBmx is the bmx (Curve25519-native) private key: the scalar IS the
// raw X25519 scalar (no seed hashing step), with a BLAKE2b-derived prefix
// for nonce generation, spec.md §4.F's bmx row.
type SecretBmx struct {
	scalar *curve.Scalar
	prefix [64]byte
}

// PublicBmx is the bmx public key: the Edwards point A encoded as
// Montgomery-u-with-sign (mxs).
type PublicBmx struct {
	point *curve.Point
}

// NewSecretBmx builds a SecretBmx directly from a 32-byte X25519-masked
// scalar. The prefix is BLAKE2b(domainSep(prefixLabel) ‖ scalar).
func NewSecretBmx(prefixLabel string, rawScalar curve.Sec) (*SecretBmx, error) {
	masked := curve.MaskX25519(rawScalar)
	// The clamped value is always >= ℓ (bit 254 is set), so it is reduced.
	scalar := curve.ReduceMod(masked[:])
	sk := &SecretBmx{scalar: scalar}
	sk.prefix = symcrypto.Blake2bSum(domainSep(prefixLabel), masked[:])
	return sk, nil
}

// Public returns the bmx public key A = scalar*B.
func (sk *SecretBmx) Public() *PublicBmx {
	return &PublicBmx{point: curve.ScalarBaseMult(sk.scalar)}
}

// Key returns the mxs-encoded public key bytes.
func (pk *PublicBmx) Key() curve.Mon {
	return curve.EdwardsToMxs(pk.point)
}

// PublicBmxFromKey decodes a 32-byte mxs-encoded public key.
func PublicBmxFromKey(key curve.Mon) (*PublicBmx, error) {
	p, err := curve.MxsToEdwards(key, false)
	if err != nil {
		return nil, err
	}
	return &PublicBmx{point: p}, nil
}

// Sign implements spec.md §4.F's common sign algorithm for the bmx
// variant: BLAKE2b hashing, every invocation prefixed by domainSep(label),
// R encoded as mxs, and the final step ORing A's sign bit into S's high
// bit (step 5, this module's chosen canonical bmx encoding — see
// DESIGN.md's Open Question decision).
func (sk *SecretBmx) Sign(prefixLabel string, msg []byte) Signature {
	sep := domainSep(prefixLabel)
	pk := sk.Public()
	As := pk.Key()

	rHash := symcrypto.Blake2bSum(sep, sk.prefix[:], msg)
	r := curve.ReduceMod(rHash[:])

	R := curve.ScalarBaseMult(r)
	Rs := curve.EdwardsToMxs(R)

	hHash := symcrypto.Blake2bSum(sep, Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	s := h.MultiplyAdd(sk.scalar, r)
	sBytes := s.Bytes()
	if As[31]&0x80 != 0 {
		sBytes[31] |= 0x80
	}

	var sig Signature
	copy(sig[:32], Rs[:])
	copy(sig[32:], sBytes[:])
	return sig
}

// Verify implements spec.md §4.F's common verify algorithm for the bmx
// variant, recovering A's sign from S's high bit before decoding A (the
// "decode A, negate it" step spec.md's verify algorithm describes).
func (pk *PublicBmx) Verify(prefixLabel string, msg []byte, sig Signature) error {
	sep := domainSep(prefixLabel)

	ASign := sig[63] & 0x80
	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	sBytes[31] &^= 0x80
	s, err := decodeCanonicalScalar(sBytes)
	if err != nil {
		return err
	}

	var Rs curve.Mon
	copy(Rs[:], sig[:32])
	R, err := curve.MxsToEdwards(Rs, false)
	if err != nil {
		return amberr.ErrBadPoint
	}

	As := pk.Key()
	if As[31]&0x80 != ASign {
		// The sign bit folded into S must match the public key's own mxs
		// sign bit; a mismatch means a malformed or forged signature.
		return amberr.ErrBadScalar
	}

	hHash := symcrypto.Blake2bSum(sep, Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	negA := pk.point.Negate()
	Rcheck := curve.ScalarMultWnaf2(h, negA, s)

	if !R.Equal(Rcheck) {
		return amberr.ErrBadPoint
	}
	return nil
}
