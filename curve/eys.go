package curve

import (
	"gitlab.com/bernedogit/amberlite/amberr"

	"filippo.io/edwards25519"
)

// Eys is the Edwards-y-with-sign (eys) compressed point encoding: the
// RFC 8032 format, y-coordinate with bit 255 carrying the parity of x.
// Identity encodes as (y=1, sign=0).
type Eys [32]byte

// EdwardsToEys implements spec.md §4.B's `edwards_to_eys`. This is exactly
// the RFC 8032 point encoding filippo.io/edwards25519 already implements,
// so no new arithmetic is needed here.
func EdwardsToEys(p *Point) Eys {
	var out Eys
	copy(out[:], p.p.Bytes())
	return out
}

// EysToEdwards implements spec.md §4.B's `eys_to_edwards`, rejecting
// encodings that do not decode to a valid curve point.
func EysToEdwards(e Eys) (*Point, error) {
	p, err := new(edwards25519.Point).SetBytes(e[:])
	if err != nil {
		return nil, amberr.ErrBadPoint
	}
	return &Point{p}, nil
}
