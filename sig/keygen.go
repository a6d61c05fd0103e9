package sig

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/curve"
	"gitlab.com/bernedogit/amberlite/field25519"
	"gitlab.com/bernedogit/amberlite/kdf"
)

// maxKeygenAttempts bounds the elligator2_gen retry loop. Roughly half of
// all Montgomery points admit an Elligator2 representative, so a handful
// of +8 steps succeeds with overwhelming probability; this bound exists
// only to turn a hypothetical run of bad luck into a returned error
// instead of an infinite loop.
const maxKeygenAttempts = 1024

// ElligatorKeyPair bundles the outputs of Elligator2MaskedKeygen: a
// scalar, its corresponding mxs-encoded public key, and an Elligator2
// representative of that public key indistinguishable from uniform bytes.
type ElligatorKeyPair struct {
	Scalar curve.Sec
	Public curve.Mon
	Rep    curve.Ell
}

// Elligator2MaskedKeygen implements spec.md §4.F's `elligator2_gen`: masks
// the caller-supplied seed per X25519, steps the scalar by 8 (clearing the
// cofactor-adjacent bits) until the resulting public point admits an
// Elligator2 representative, then fills the representative's top two bits
// with fresh randomness before returning it.
func Elligator2MaskedKeygen(seed [32]byte) (*ElligatorKeyPair, error) {
	scalarBytes := curve.MaskX25519(curve.Sec(seed))
	scalarBytes = decrementByEight(scalarBytes)

	for i := 0; i < maxKeygenAttempts; i++ {
		scalarBytes = incrementByEight(scalarBytes)

		scalar := curve.ReduceMod(scalarBytes[:])

		point := curve.ScalarBaseMult(scalar)
		u, v := curve.EdwardsToMontgomeryUV(point)

		rep, ok := curve.P2R(u, field25519.IsNegative(v))
		if !ok {
			continue
		}

		var randBits [1]byte
		kdf.RandomBytes(randBits[:])
		rep[31] = (rep[31] &^ 0xc0) | (randBits[0] & 0xc0)

		return &ElligatorKeyPair{
			Scalar: scalarBytes,
			Public: curve.MxsFromUV(u, v),
			Rep:    rep,
		}, nil
	}
	return nil, amberr.ErrBadPoint
}

// ElligatorRev recovers the mxs-encoded public key from an Elligator2
// representative, spec.md's `elligator2_rev`, used by scenario 5 (§8) to
// verify indistinguishable DH: the caller must drop the sign bit before
// comparing against a public key produced directly by keygen, since the
// representative alone does not carry Edwards-x parity.
func ElligatorRev(rep curve.Ell) curve.Mon {
	u := curve.R2U(rep)
	var out curve.Mon
	copy(out[:], field25519.Encode(u))
	return out
}

// SharedSecretUnchecked implements spec.md §4.F's plain X25519: the
// unchecked Diffie-Hellman variant.
func SharedSecretUnchecked(scalar curve.Sec, peerU curve.Mon) curve.Mon {
	return curve.Mon(curve.MontgomeryLadder([32]byte(scalar), [32]byte(peerU)))
}

// SharedSecretChecked implements spec.md §4.F's
// `cu25519_shared_secret_checked`: runs the ladder and rejects an output
// u-coordinate that is zero (small-order) or not a square in the field,
// returning amberr.ErrSmallOrder in either case.
func SharedSecretChecked(scalar curve.Sec, peerU curve.Mon) (curve.Mon, error) {
	out := curve.MontgomeryLadder([32]byte(scalar), [32]byte(peerU))

	ufe, err := field25519.Decode(out[:])
	if err != nil {
		return curve.Mon{}, amberr.ErrSmallOrder
	}
	if field25519.IsZero(ufe) == 1 {
		return curve.Mon{}, amberr.ErrSmallOrder
	}
	if _, ok := field25519.InvSqrt(ufe); !ok {
		return curve.Mon{}, amberr.ErrSmallOrder
	}
	return curve.Mon(out), nil
}

func incrementByEight(s curve.Sec) curve.Sec {
	carry := uint16(8)
	for i := 0; i < 32 && carry != 0; i++ {
		sum := uint16(s[i]) + carry
		s[i] = byte(sum)
		carry = sum >> 8
	}
	return s
}

func decrementByEight(s curve.Sec) curve.Sec {
	borrow := int16(8)
	for i := 0; i < 32; i++ {
		v := int16(s[i]) - borrow
		if v < 0 {
			v += 256
			borrow = 1
		} else {
			borrow = 0
		}
		s[i] = byte(v)
		if borrow == 0 {
			break
		}
	}
	return s
}
