package curve

import (
	"gitlab.com/bernedogit/amberlite/field25519"
	"gitlab.com/bernedogit/amberlite/internal/montgomery"
)

// Ell is the 32-byte encoding of an Elligator2 representative: a field
// element less than (p-1)/2, with the top two bits of the wire form
// carrying caller-supplied randomness so the encoding is indistinguishable
// from a uniform string.
type Ell [32]byte

// ElligatorMontgomeryFlavor implements spec.md §4.A's Elligator2 map in
// its (u, v) Montgomery form, adapted from the teacher's
// ell2MontgomeryFlavor (h2c.go), which this reuses almost verbatim since
// the underlying map does not change between the h2c and DH use cases.
func ElligatorMontgomeryFlavor(r *field25519.Element) (*field25519.Element, *field25519.Element) {
	one := field25519.One()
	a := field25519.MontgomeryA()
	negA := new(field25519.Element).Negate(a)

	t1 := new(field25519.Element).Multiply(r, r)
	t1.Multiply(t1, constTwo)

	u := new(field25519.Element).Add(t1, one)
	t2 := new(field25519.Element).Multiply(u, u)

	aSquared := new(field25519.Element).Multiply(a, a)
	t3 := new(field25519.Element).Multiply(aSquared, t1)
	t3.Add(t3, new(field25519.Element).Negate(t2))
	t3.Multiply(t3, a)

	t1.Multiply(t2, u)
	t1.Multiply(t1, t3)
	t1, isSquare := field25519.SqrtRatioM1(one, t1)
	square := 1
	if isSquare == 1 {
		square = 0
	}

	u.Multiply(r, r)
	u.Multiply(u, montgomery.U_FACTOR)

	v := new(field25519.Element).Multiply(r, montgomery.V_FACTOR)

	u = field25519.Select(one, u, square)
	v = field25519.Select(one, v, square)

	v.Multiply(v, t3)
	v.Multiply(v, t1)

	t1.Multiply(t1, t1)

	u.Multiply(u, negA)
	u.Multiply(u, t3)
	u.Multiply(u, t2)
	u.Multiply(u, t1)

	negV := new(field25519.Element).Negate(v)
	signFix := field25519.IsNegative(v)
	if square == 0 {
		signFix ^= 1
	}
	v = field25519.Select(negV, v, signFix)

	return u, v
}

// ElligatorEdwardsFlavor maps a field-element representative to an
// Edwards point, matching the teacher's ell2EdwardsFlavor.
func ElligatorEdwardsFlavor(r *field25519.Element) *Point {
	u, v := ElligatorMontgomeryFlavor(r)

	x := field25519.Invert(v)
	x.Multiply(x, u)
	x.Multiply(x, sqrtNegAPlusTwo)

	uMinusOne := new(field25519.Element).Add(u, new(field25519.Element).Negate(field25519.One()))
	uPlusOne := new(field25519.Element).Add(u, field25519.One())
	uPlusOneIsZero := field25519.IsZero(uPlusOne)

	uPlusOne = field25519.Invert(uPlusOne)
	y := new(field25519.Element).Multiply(uMinusOne, uPlusOne)

	resultUndefined := field25519.IsZero(v) | uPlusOneIsZero
	x = field25519.Select(field25519.Zero(), x, resultUndefined)
	y = field25519.Select(field25519.One(), y, resultUndefined)

	p, err := fromXY(x, y)
	if err != nil {
		panic("curve: elligator2 edwards flavor produced an invalid point")
	}
	return p
}

// P2R implements spec.md's point-to-representative map on a decoded
// Montgomery u-coordinate and the sign of v, returning false if u does not
// admit a representative. Callers MUST OR two random bits into positions
// 253-254 of the returned Ell before transmitting it.
func P2R(u *field25519.Element, vIsNegative int) (Ell, bool) {
	v := field25519.Select(new(field25519.Element).Negate(field25519.One()), field25519.One(), vIsNegative)
	r, ok := field25519.P2R(u, v)
	if !ok {
		return Ell{}, false
	}
	var out Ell
	copy(out[:], field25519.Encode(r))
	return out, true
}

// R2U implements spec.md's representative-to-point map, recovering the
// Montgomery u-coordinate from a 32-byte Elligator2 representative.
func R2U(rep Ell) *field25519.Element {
	masked := rep
	masked[31] &= 0x3f // top two bits are caller randomness, not field data
	r, err := field25519.Decode(masked[:])
	if err != nil {
		// Decode only rejects wrong-length input; masked is always 32
		// bytes, so this cannot happen for well-formed Ell values.
		panic("curve: R2U: " + err.Error())
	}
	return field25519.R2U(r)
}
