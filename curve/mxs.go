package curve

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/field25519"
)

// Mon is the Montgomery-u-with-sign (mxs) compressed point encoding:
// the u-coordinate in 32 little-endian bytes, with bit 255 carrying the
// parity of the corresponding Edwards x-coordinate. Identity encodes as
// (u=0, sign=0).
type Mon [32]byte

var (
	constTwo         = new(field25519.Element).Add(field25519.One(), field25519.One())
	constNegAPlusTwo = negAPlusTwo()
	sqrtNegAPlusTwo  = sqrtOrPanic(constNegAPlusTwo)
)

func negAPlusTwo() *field25519.Element {
	a := field25519.MontgomeryA()
	r := new(field25519.Element).Add(a, constTwo)
	return r.Negate(r)
}

func sqrtOrPanic(fe *field25519.Element) *field25519.Element {
	r, ok := field25519.Sqrt(fe)
	if !ok {
		panic("curve: -(A+2) is not a square, broken build constant")
	}
	return r
}

// EdwardsToMxs implements spec.md §4.B's `edwards_to_mxs`: u = (Z+Y)/(Z-Y)
// in affine terms u=(1+y)/(1-y), sign bit = parity of the Edwards
// x-coordinate.
func EdwardsToMxs(p *Point) Mon {
	X, Y, Z, _ := p.ExtendedCoordinates()

	zInv := field25519.Invert(Z)
	x := new(field25519.Element).Multiply(X, zInv)
	y := new(field25519.Element).Multiply(Y, zInv)

	onePlusY := new(field25519.Element).Add(field25519.One(), y)
	oneMinusY := new(field25519.Element).Add(field25519.One(), new(field25519.Element).Negate(y))
	u := field25519.Invert(oneMinusY)
	u.Multiply(u, onePlusY)

	var out Mon
	copy(out[:], field25519.Encode(u))
	if field25519.IsNegative(x) == 1 {
		out[31] |= 0x80
	}
	return out
}

// MxsToEdwards implements spec.md §4.B's `mxs_to_edwards`: reconstruct
// y = (u-1)/(u+1) and x from the curve's biquadratic relation between u
// and x (so no v-coordinate is needed — the stored sign bit stands in for
// the sign v would otherwise have fixed), taking the square root of the
// ratio after one inversion. negate, if true, flips the
// reconstructed x (used by signature verification's "decode A, negate it"
// step).
func MxsToEdwards(m Mon, negate bool) (*Point, error) {
	sign := int(m[31]>>7) & 1
	masked := m
	masked[31] &= 0x7f

	u, err := field25519.Decode(masked[:])
	if err != nil {
		return nil, err
	}

	a := field25519.MontgomeryA()
	uu := new(field25519.Element).Multiply(u, u)
	au := new(field25519.Element).Multiply(a, u)
	denom := new(field25519.Element).Add(uu, au)
	denom.Add(denom, field25519.One())

	numer := new(field25519.Element).Multiply(constNegAPlusTwo, u)
	// numer above used -(A+2); spec wants x^2 = -(A+2)*u / (u^2+A*u+1).

	x, isSquare := field25519.Sqrt(new(field25519.Element).Multiply(numer, field25519.Invert(denom)))
	if !isSquare {
		return nil, amberr.ErrBadPoint
	}
	x = field25519.Select(new(field25519.Element).Negate(x), x, boolToCond(field25519.IsNegative(x) != sign))
	if negate {
		x = new(field25519.Element).Negate(x)
	}

	uMinusOne := new(field25519.Element).Add(u, new(field25519.Element).Negate(field25519.One()))
	uPlusOne := new(field25519.Element).Add(u, field25519.One())
	y := new(field25519.Element).Multiply(uMinusOne, field25519.Invert(uPlusOne))

	return fromXY(x, y)
}

func boolToCond(b bool) int {
	if b {
		return 1
	}
	return 0
}
