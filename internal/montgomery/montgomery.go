// Package montgomery converts between Edwards25519 extended coordinates
// and Montgomery (u, v) coordinates, per RFC 7748 §4.1. It is adapted from
// the teacher's h2c/montgomery.go (which implemented the same birational
// map as an unexported montgomeryPoint type local to package h2c) into a
// standalone internal package so curve can reuse it directly.
package montgomery

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

var (
	ONE = new(field.Element).One()
	TWO = new(field.Element).Add(ONE, ONE)

	A     = feFromUint64(486662)
	NEG_A = new(field.Element).Negate(A)

	SQRT_M1 = feFromBytes([]byte{
		0xb0, 0xa0, 0x0e, 0x4a, 0x27, 0x1b, 0xee, 0xc4, 0x78, 0xe4, 0x2f, 0xad, 0x06, 0x18, 0x43, 0x2f,
		0xa7, 0xd7, 0xfb, 0x3d, 0x99, 0x00, 0x4d, 0x2b, 0x0b, 0xdf, 0xc1, 0x4f, 0x80, 0x24, 0x83, 0x2b,
	})

	SQRT_NEG_A_PLUS_TWO = sqrtNegAPlusTwo()

	U_FACTOR = uFactor()
	V_FACTOR = vFactor()
)

func feFromBytes(b []byte) *field.Element {
	fe, err := new(field.Element).SetBytes(b)
	if err != nil {
		panic("montgomery: bad constant: " + err.Error())
	}
	return fe
}

func feFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return feFromBytes(b[:])
}

func sqrtNegAPlusTwo() *field.Element {
	t := new(field.Element).Add(NEG_A, new(field.Element).Negate(TWO))
	r, _ := new(field.Element).SqrtRatio(t, ONE)
	return r
}

func uFactor() *field.Element {
	r := new(field.Element).Negate(TWO)
	return r.Multiply(r, SQRT_M1)
}

func vFactor() *field.Element {
	r, _ := new(field.Element).SqrtRatio(ONE, new(field.Element).Invert(U_FACTOR))
	return r
}

func feIsZero(fe *field.Element) int {
	return fe.Equal(new(field.Element).Zero())
}

// FromEdwardsPoint converts an Edwards point to Montgomery (u, v)
// coordinates: (u, v) = ((1+y)/(1-y), sqrt(-486664)*u/x).
func FromEdwardsPoint(p *edwards25519.Point) (*field.Element, *field.Element) {
	xExt, yExt, zExt, _ := p.ExtendedCoordinates()

	zInv := new(field.Element).Invert(zExt)
	x := new(field.Element).Multiply(xExt, zInv)
	y := new(field.Element).Multiply(yExt, zInv)

	onePlusY := new(field.Element).Add(ONE, y)
	oneMinusY := new(field.Element).Subtract(ONE, y)
	u := new(field.Element).Invert(oneMinusY)
	u.Multiply(onePlusY, u)

	v := new(field.Element).Invert(x)
	v.Multiply(v, SQRT_NEG_A_PLUS_TWO)
	v.Multiply(v, u)

	u.Select(new(field.Element).Zero(), u, feIsZero(x))

	return u, v
}

// ToEdwardsPoint converts Montgomery (u, v) coordinates back to an
// Edwards point: (x, y) = (sqrt(-486664)*u/v, (u-1)/(u+1)). Exceptional
// cases (v == 0 or u == -1) map to the Edwards identity, per RFC 7748.
func ToEdwardsPoint(u, v *field.Element) *edwards25519.Point {
	x := new(field.Element).Invert(v)
	x.Multiply(x, u)
	x.Multiply(x, SQRT_NEG_A_PLUS_TWO)

	uMinusOne := new(field.Element).Subtract(u, ONE)
	uPlusOne := new(field.Element).Add(u, ONE)
	uPlusOneIsZero := feIsZero(uPlusOne)

	uPlusOne.Invert(uPlusOne)
	y := new(field.Element).Multiply(uMinusOne, uPlusOne)

	resultUndefined := feIsZero(v) | uPlusOneIsZero
	x.Select(new(field.Element).Zero(), x, resultUndefined)
	y.Select(ONE, y, resultUndefined)

	z := new(field.Element).One()
	t := new(field.Element).Multiply(x, y)
	pt, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, z, t)
	if err != nil {
		panic("montgomery: failed to build edwards point: " + err.Error())
	}
	return pt
}
