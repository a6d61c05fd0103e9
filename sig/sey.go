package sig

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/curve"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// SecretSey is the sey (Ed25519-compatible) private key, derived from a
// 32-byte seed per RFC 8032: the clamped scalar "a" and the nonce "prefix",
// both taken from SHA-512(seed), spec.md §4.F's sey row.
type SecretSey struct {
	scalar *curve.Scalar
	prefix [32]byte
}

// PublicSey is the sey public key: the Edwards point A encoded as eys.
type PublicSey struct {
	point *curve.Point
}

// NewSecretSey derives a SecretSey from a 32-byte seed, matching
// zoobc-zed25519's SecretFromSeed: scalar/prefix ← SHA-512(seed), scalar
// clamped per X25519.
func NewSecretSey(seed [32]byte) *SecretSey {
	h := symcrypto.Sha512Sum(seed[:])
	var rawScalar curve.Sec
	copy(rawScalar[:], h[:32])
	rawScalar = curve.MaskX25519(rawScalar)

	// The X25519 clamp sets bit 254, so the clamped value is always >= ℓ;
	// it is reduced mod ℓ, which leaves scalar*B unchanged.
	scalar := curve.ReduceMod(rawScalar[:])

	sk := &SecretSey{scalar: scalar}
	copy(sk.prefix[:], h[32:])
	return sk
}

// Public returns the sey public key A = scalar*B.
func (sk *SecretSey) Public() *PublicSey {
	return &PublicSey{point: curve.ScalarBaseMult(sk.scalar)}
}

// Key returns the eys-encoded public key bytes.
func (pk *PublicSey) Key() curve.Eys {
	return curve.EdwardsToEys(pk.point)
}

// PublicSeyFromKey decodes a 32-byte eys-encoded public key.
func PublicSeyFromKey(key curve.Eys) (*PublicSey, error) {
	p, err := curve.EysToEdwards(key)
	if err != nil {
		return nil, err
	}
	return &PublicSey{point: p}, nil
}

// Sign implements spec.md §4.F's common sign algorithm for the sey
// variant: no domain-separation prefix, SHA-512 throughout.
func (sk *SecretSey) Sign(msg []byte) Signature {
	pk := sk.Public()
	As := pk.Key()

	rHash := symcrypto.Sha512Sum(sk.prefix[:], msg)
	r := curve.ReduceMod(rHash[:])

	R := curve.ScalarBaseMult(r)
	Rs := curve.EdwardsToEys(R)

	hHash := symcrypto.Sha512Sum(Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	s := h.MultiplyAdd(sk.scalar, r)

	var sig Signature
	copy(sig[:32], Rs[:])
	copy(sig[32:], s.Bytes()[:])
	return sig
}

// Verify implements spec.md §4.F's common verify algorithm for the sey
// variant, using ScalarMultWnaf2 (variable-time, verification only) for
// the combined S·B + h·(-A) check.
func (pk *PublicSey) Verify(msg []byte, sig Signature) error {
	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	s, err := decodeCanonicalScalar(sBytes)
	if err != nil {
		return err
	}

	var Rs curve.Eys
	copy(Rs[:], sig[:32])
	R, err := curve.EysToEdwards(Rs)
	if err != nil {
		return amberr.ErrBadPoint
	}

	As := pk.Key()
	hHash := symcrypto.Sha512Sum(Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	negA := pk.point.Negate()
	Rcheck := curve.ScalarMultWnaf2(h, negA, s)

	if !R.Equal(Rcheck) {
		return amberr.ErrBadPoint
	}
	return nil
}
