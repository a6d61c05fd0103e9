package curve

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/field25519"
)

// Ris is the Ristretto255 compressed point encoding: 32 bytes, no sign
// bit, the unique canonical representative of a coset of the Edwards
// group modulo its small-order subgroup. Identity encodes as all-zero
// bytes.
type Ris [32]byte

var (
	edwardsD = computeD()

	oneMinusDSq = computeOneMinusDSq()
	dMinusOneSq = computeDMinusOneSq()

	// sqrtADMinusOne = sqrt(a*d - 1), with a = -1 for edwards25519. The
	// Ristretto255 map uses the negative (odd) root, so the non-negative
	// root Sqrt returns is negated.
	sqrtADMinusOne = new(field25519.Element).Negate(sqrtOrPanic(func() *field25519.Element {
		r := new(field25519.Element).Negate(edwardsD)
		return r.Add(r, new(field25519.Element).Negate(field25519.One()))
	}()))

	// invSqrtAMinusD = 1/sqrt(a-d) = 1/sqrt(-1-d).
	invSqrtAMinusD = invSqrtOrPanic(func() *field25519.Element {
		r := new(field25519.Element).Negate(edwardsD)
		return r.Add(r, new(field25519.Element).Negate(field25519.One()))
	}())
)

func computeD() *field25519.Element {
	num := mustFe(121665)
	den := mustFe(121666)
	d := new(field25519.Element).Multiply(num, field25519.Invert(den))
	return d.Negate(d)
}

func mustFe(x uint64) *field25519.Element {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(x >> (8 * i))
	}
	fe, err := field25519.Decode(b[:])
	if err != nil {
		panic("curve: bad ristretto constant")
	}
	return fe
}

func computeOneMinusDSq() *field25519.Element {
	dd := new(field25519.Element).Multiply(edwardsD, edwardsD)
	return new(field25519.Element).Add(field25519.One(), new(field25519.Element).Negate(dd))
}

func computeDMinusOneSq() *field25519.Element {
	dm1 := new(field25519.Element).Add(edwardsD, new(field25519.Element).Negate(field25519.One()))
	return new(field25519.Element).Multiply(dm1, dm1)
}

func invSqrtOrPanic(fe *field25519.Element) *field25519.Element {
	r, ok := field25519.InvSqrt(fe)
	if !ok {
		panic("curve: ristretto build constant is not invertible-square")
	}
	return r
}

// EdwardsToRistretto implements spec.md §4.B's Ristretto encode algorithm.
func EdwardsToRistretto(p *Point) Ris {
	x0, y0, z0, t0 := p.ExtendedCoordinates()

	u1 := new(field25519.Element).Add(z0, y0)
	tmp := new(field25519.Element).Add(z0, new(field25519.Element).Negate(y0))
	u1.Multiply(u1, tmp)

	u2 := new(field25519.Element).Multiply(x0, y0)

	u2Sq := new(field25519.Element).Multiply(u2, u2)
	invDen := new(field25519.Element).Multiply(u1, u2Sq)
	invsqrt, _ := field25519.SqrtRatioM1(field25519.One(), invDen)

	den1 := new(field25519.Element).Multiply(invsqrt, u1)
	den2 := new(field25519.Element).Multiply(invsqrt, u2)
	zInv := new(field25519.Element).Multiply(den1, den2)
	zInv.Multiply(zInv, t0)

	ix0 := new(field25519.Element).Multiply(x0, field25519.SqrtM1())
	iy0 := new(field25519.Element).Multiply(y0, field25519.SqrtM1())

	enchantedDenom := new(field25519.Element).Multiply(den1, invSqrtAMinusD)

	rotate := field25519.IsNegative(new(field25519.Element).Multiply(t0, zInv))

	x := field25519.Select(iy0, x0, rotate)
	y := field25519.Select(ix0, y0, rotate)
	denInv := field25519.Select(enchantedDenom, den2, rotate)

	xTimesZinv := new(field25519.Element).Multiply(x, zInv)
	negY := new(field25519.Element).Negate(y)
	y = field25519.Select(negY, y, field25519.IsNegative(xTimesZinv))

	s := new(field25519.Element).Add(z0, new(field25519.Element).Negate(y))
	s.Multiply(denInv, s)

	neg := new(field25519.Element).Negate(s)
	s = field25519.Select(neg, s, field25519.IsNegative(s))

	var out Ris
	copy(out[:], field25519.Encode(s))
	return out
}

// RistrettoToEdwards implements spec.md §4.B's Ristretto decode algorithm.
// Decode rejects s < 0 (non-canonical sign), s >= p, a non-square
// discriminant, and a non-zero parity failure, returning the unique
// representative on success.
func RistrettoToEdwards(r Ris) (*Point, error) {
	s, err := field25519.Decode(r[:])
	if err != nil {
		return nil, err
	}
	if field25519.IsNegative(s) == 1 {
		return nil, amberr.ErrBadPoint
	}
	if !bytesEqual32(field25519.Encode(s), r[:]) {
		return nil, amberr.ErrBadPoint // s was not a canonical encoding (s >= p)
	}

	ss := new(field25519.Element).Multiply(s, s)
	u1 := new(field25519.Element).Add(field25519.One(), new(field25519.Element).Negate(ss))
	u2 := new(field25519.Element).Add(field25519.One(), ss)
	u2Sq := new(field25519.Element).Multiply(u2, u2)

	u1Sq := new(field25519.Element).Multiply(u1, u1)
	v := new(field25519.Element).Multiply(edwardsD, u1Sq)
	v.Negate(v)
	v.Add(v, new(field25519.Element).Negate(u2Sq))

	invDen := new(field25519.Element).Multiply(v, u2Sq)
	invsqrt, wasSquare := field25519.SqrtRatioM1(field25519.One(), invDen)
	if wasSquare == 1 { // our flag convention: 1 means "non-square branch taken"
		return nil, amberr.ErrBadPoint
	}

	denX := new(field25519.Element).Multiply(invsqrt, u2)
	denY := new(field25519.Element).Multiply(invsqrt, denX)
	denY.Multiply(denY, v)

	x := new(field25519.Element).Multiply(constTwo, s)
	x.Multiply(x, denX)
	negX := new(field25519.Element).Negate(x)
	x = field25519.Select(negX, x, field25519.IsNegative(x))

	y := new(field25519.Element).Multiply(u1, denY)

	t := new(field25519.Element).Multiply(x, y)

	if field25519.IsNegative(t) == 1 || field25519.IsZero(y) == 1 {
		return nil, amberr.ErrBadPoint
	}

	return fromXY(x, y)
}

func bytesEqual32(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RistrettoEqual reports whether two Edwards points are equal modulo the
// small-order subgroup, i.e. whether they encode to the same Ristretto
// bytes. spec.md §8 requires this for points that differ only by a
// small-order element.
func RistrettoEqual(p, q *Point) bool {
	return EdwardsToRistretto(p) == EdwardsToRistretto(q)
}

// ristrettoElligator is the Ristretto-specific variant of the Elligator2
// map used by RistrettoFromUniform, distinct from ElligatorEdwardsFlavor
// because Ristretto's hash-to-group needs a map into the *full* Edwards
// group (not just the prime-order subgroup) using different constants
// (ONE_MINUS_D_SQ, D_MINUS_ONE_SQ, SQRT_AD_MINUS_ONE), per spec.md §4.B.
func ristrettoElligator(r0 *field25519.Element) *Point {
	r := new(field25519.Element).Multiply(field25519.SqrtM1(), r0)
	r.Multiply(r, r0)

	u := new(field25519.Element).Add(r, field25519.One())
	u.Multiply(u, oneMinusDSq)

	negOneMinusRD := new(field25519.Element).Multiply(r, edwardsD)
	negOneMinusRD.Add(negOneMinusRD, field25519.One())
	negOneMinusRD.Negate(negOneMinusRD)
	rPlusD := new(field25519.Element).Add(r, edwardsD)
	v := new(field25519.Element).Multiply(negOneMinusRD, rPlusD)

	s, wasSquare := field25519.SqrtRatioM1(u, v)
	square := 1
	if wasSquare == 1 {
		square = 0
	}

	sPrime := new(field25519.Element).Multiply(s, r0)
	negSPrime := new(field25519.Element).Negate(sPrime)
	sPrime = field25519.Select(negSPrime, sPrime, 1-field25519.IsNegative(sPrime))

	s = field25519.Select(s, sPrime, square)
	c := field25519.Select(new(field25519.Element).Negate(field25519.One()), r, square)

	rMinusOne := new(field25519.Element).Add(r, new(field25519.Element).Negate(field25519.One()))
	n := new(field25519.Element).Multiply(c, rMinusOne)
	n.Multiply(n, dMinusOneSq)
	n.Add(n, new(field25519.Element).Negate(v))

	s2 := new(field25519.Element).Multiply(s, s)
	w0 := new(field25519.Element).Multiply(constTwo, s)
	w0.Multiply(w0, v)
	w1 := new(field25519.Element).Multiply(n, sqrtADMinusOne)
	w2 := new(field25519.Element).Add(field25519.One(), new(field25519.Element).Negate(s2))
	w3 := new(field25519.Element).Add(field25519.One(), s2)

	X := new(field25519.Element).Multiply(w0, w3)
	Y := new(field25519.Element).Multiply(w2, w1)
	Z := new(field25519.Element).Multiply(w3, w1)
	T := new(field25519.Element).Multiply(w0, w2)

	p, err := FromExtendedCoordinates(X, Y, Z, T)
	if err != nil {
		panic("curve: ristretto elligator produced an invalid point")
	}
	return p
}

// RistrettoFromUniform implements spec.md §4.B's
// `ristretto_from_uniform(b[64])`: maps 64 uniform bytes to a group
// element by splitting them into two field elements, applying the
// Ristretto-specific Elligator2-like map to each, and adding the results.
func RistrettoFromUniform(b [64]byte) (*Point, error) {
	r0, err := field25519.Decode(b[:32])
	if err != nil {
		return nil, err
	}
	r1, err := field25519.Decode(b[32:])
	if err != nil {
		return nil, err
	}
	p1 := ristrettoElligator(r0)
	p2 := ristrettoElligator(r1)
	return p1.Add(p2), nil
}
