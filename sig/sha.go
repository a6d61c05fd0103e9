package sig

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/curve"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// SecretSha is the sha variant's private key: a direct (unhashed) scalar,
// domain-separated like bmx but encoding R/A with Ristretto by default
// (spec.md §4.F's "sha (Ed25519 + Ris)" row: "SHA-512/BLAKE2b, direct
// scalar, Ristretto or Edwards-y").
type SecretSha struct {
	scalar *curve.Scalar
	prefix [64]byte
}

// PublicSha is the sha public key, encoded in Ristretto form.
type PublicSha struct {
	point *curve.Point
}

// NewSecretSha builds a SecretSha directly from an unmasked 32-byte
// scalar (Ristretto signing uses the unmasked policy, spec.md §3).
func NewSecretSha(prefixLabel string, rawScalar curve.Sec) *SecretSha {
	scalar := curve.ReduceMod(rawScalar[:])
	sk := &SecretSha{scalar: scalar}
	sk.prefix = symcrypto.Blake2bSum(domainSep(prefixLabel), rawScalar[:])
	return sk
}

// Public returns the sha public key A = scalar*B, Ristretto-encoded.
func (sk *SecretSha) Public() *PublicSha {
	return &PublicSha{point: curve.ScalarBaseMult(sk.scalar)}
}

// Key returns the Ristretto-encoded public key bytes.
func (pk *PublicSha) Key() curve.Ris {
	return curve.EdwardsToRistretto(pk.point)
}

// PublicShaFromKey decodes a 32-byte Ristretto-encoded public key.
func PublicShaFromKey(key curve.Ris) (*PublicSha, error) {
	p, err := curve.RistrettoToEdwards(key)
	if err != nil {
		return nil, err
	}
	return &PublicSha{point: p}, nil
}

// Sign implements spec.md §4.F's common sign algorithm for the sha
// variant, hashing with BLAKE2b and encoding R with Ristretto.
func (sk *SecretSha) Sign(prefixLabel string, msg []byte) Signature {
	sep := domainSep(prefixLabel)
	pk := sk.Public()
	As := pk.Key()

	rHash := symcrypto.Blake2bSum(sep, sk.prefix[:], msg)
	r := curve.ReduceMod(rHash[:])

	R := curve.ScalarBaseMult(r)
	Rs := curve.EdwardsToRistretto(R)

	hHash := symcrypto.Blake2bSum(sep, Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	s := h.MultiplyAdd(sk.scalar, r)

	var sig Signature
	copy(sig[:32], Rs[:])
	copy(sig[32:], s.Bytes()[:])
	return sig
}

// Verify implements spec.md §4.F's common verify algorithm for the sha
// variant.
func (pk *PublicSha) Verify(prefixLabel string, msg []byte, sig Signature) error {
	sep := domainSep(prefixLabel)

	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	s, err := decodeCanonicalScalar(sBytes)
	if err != nil {
		return err
	}

	var Rs curve.Ris
	copy(Rs[:], sig[:32])
	R, err := curve.RistrettoToEdwards(Rs)
	if err != nil {
		return amberr.ErrBadPoint
	}

	As := pk.Key()
	hHash := symcrypto.Blake2bSum(sep, Rs[:], As[:], msg)
	h := curve.ReduceMod(hHash[:])

	negA := pk.point.Negate()
	Rcheck := curve.ScalarMultWnaf2(h, negA, s)

	if !curve.RistrettoEqual(R, Rcheck) {
		return amberr.ErrBadPoint
	}
	return nil
}
