package curve

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/field25519"
	"gitlab.com/bernedogit/amberlite/internal/montgomery"

	"golang.org/x/crypto/curve25519"
)

// MontgomeryLadder implements spec.md §4.B's `montgomery_ladder`: a
// constant-time, u-only X25519 scalar multiplication. x/crypto's X25519
// clamps scalar as MaskX25519 does before running the ladder, so the
// result is always for the clamped scalar; an unclamped scalar is not
// multiplied as given.
func MontgomeryLadder(scalar, u [32]byte) [32]byte {
	var out [32]byte
	dst, err := curve25519.X25519(scalar[:], u[:])
	if err != nil {
		// x/crypto/curve25519.X25519 only errors on a low-order input
		// point; sig.SharedSecretChecked is where that gets surfaced as
		// ErrSmallOrder instead of silently zeroing.
		return out
	}
	copy(out[:], dst)
	return out
}

// MontgomeryLadderBase computes scalar*9 (the X25519 base point), per
// RFC 7748.
func MontgomeryLadderBase(scalar [32]byte) [32]byte {
	var out [32]byte
	dst, err := curve25519.X25519(scalar[:], curve25519.Basepoint)
	if err != nil {
		return out
	}
	copy(out[:], dst)
	return out
}

// MontgomeryLadderUV returns u and a v for the scalar multiple of the
// point with u-coordinate u. It computes u via MontgomeryLadder (so the
// scalar is clamped) and recovers v from the Montgomery curve equation
// v^2 = u^3 + A*u^2 + u, returning the non-negative root. It does not run
// an Okeya-Sakurai recovery: the sign of v is not matched to the actual
// scalar multiple, so the result may be the negation of that point.
func MontgomeryLadderUV(scalar Sec, u field25519.Element) (*field25519.Element, *field25519.Element, error) {
	var uBytes [32]byte
	copy(uBytes[:], field25519.Encode(&u))
	outU := MontgomeryLadder(scalar, uBytes)

	ufe, err := field25519.Decode(outU[:])
	if err != nil {
		return nil, nil, err
	}

	a := field25519.MontgomeryA()
	u2 := new(field25519.Element).Multiply(ufe, ufe)
	u3 := new(field25519.Element).Multiply(u2, ufe)
	au2 := new(field25519.Element).Multiply(a, u2)
	rhs := new(field25519.Element).Add(u3, au2)
	rhs.Add(rhs, ufe)

	v, ok := field25519.Sqrt(rhs)
	if !ok {
		return nil, nil, amberr.ErrBadPoint
	}
	return ufe, v, nil
}

// EdwardsToMontgomeryUV converts an Edwards point to its corresponding
// Montgomery (u, v) coordinates, the birational map spec.md §4.B names.
// Used by Elligator2-masked keygen (sig.Elligator2MaskedKeygen) to recover
// v, which the Edwards-only API surface otherwise discards.
func EdwardsToMontgomeryUV(p *Point) (u, v *field25519.Element) {
	return montgomery.FromEdwardsPoint(p.p)
}

// MxsFromUV encodes a Montgomery (u, v) pair into the mxs compressed form,
// combining the affine point with the Edwards-x parity spec.md requires
// for the sign bit by routing through the birational map.
func MxsFromUV(u, v *field25519.Element) Mon {
	p := montgomery.ToEdwardsPoint(u, v)
	return EdwardsToMxs(&Point{p})
}
