package curve

import (
	"gitlab.com/bernedogit/amberlite/amberr"

	"filippo.io/edwards25519"
)

// Sec is the 32-byte little-endian wire representation of a scalar,
// per spec.md §3 and §6's typed-wrapper surface. It carries no policy of
// its own; ReduceMod, MaskX25519, and ShiftBy8 below apply one of the
// three policies spec.md requires callers to keep distinct.
type Sec [32]byte

// ReduceMod interprets b as an "unmasked" raw 256-bit (or shorter,
// zero-extended) little-endian integer and reduces it mod ℓ, matching
// spec.md's `modL` (ported in spirit from the Tweet-NaCl carry chain, here
// delegated to the library's equivalent wide reduction).
func ReduceMod(b []byte) *Scalar {
	var wide [64]byte
	copy(wide[:], b)
	s, err := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only fails on wrong-length input; wide is always
		// exactly 64 bytes, so this is an invariant violation, not a
		// caller-triggerable error.
		panic("curve: SetUniformBytes: " + err.Error())
	}
	return &Scalar{s}
}

// ScalarFromCanonical decodes a scalar known to already be < ℓ. Returns
// ErrBadScalar if it is not reduced (signature verification's malleability
// check, spec.md §4.F step 1, is exactly "reject if !ScalarFromCanonical").
func ScalarFromCanonical(b []byte) (*Scalar, error) {
	if len(b) != 32 {
		return nil, amberr.ErrShortInput
	}
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(b)
	if err != nil {
		return nil, amberr.ErrBadScalar
	}
	return &Scalar{s}, nil
}

// MaskX25519 applies the RFC 7748 X25519 clamp (bits 0-2 cleared, bit 255
// cleared, bit 254 set) to a raw scalar. Unlike ReduceMod this does not
// reduce mod ℓ: the masked bytes feed the Montgomery ladder directly.
func MaskX25519(sec Sec) Sec {
	sec[0] &= 248
	sec[31] &= 127
	sec[31] |= 64
	return sec
}

// ShiftBy8 returns 8*s mod ℓ, spec.md's cofactor-clearing policy used
// before a Ristretto-ladder DH against an arbitrary peer scalar.
func ShiftBy8(s *Scalar) *Scalar {
	r := new(edwards25519.Scalar).Add(s.s, s.s)
	r.Add(r, r)
	r.Add(r, r)
	return &Scalar{r}
}

// Negate returns ℓ - s mod ℓ.
func (s *Scalar) Negate() *Scalar {
	return &Scalar{new(edwards25519.Scalar).Negate(s.s)}
}

// Add returns s + t mod ℓ.
func (s *Scalar) Add(t *Scalar) *Scalar {
	return &Scalar{new(edwards25519.Scalar).Add(s.s, t.s)}
}

// Multiply returns s * t mod ℓ.
func (s *Scalar) Multiply(t *Scalar) *Scalar {
	return &Scalar{new(edwards25519.Scalar).Multiply(s.s, t.s)}
}

// MultiplyAdd returns s*t + u mod ℓ.
func (s *Scalar) MultiplyAdd(t, u *Scalar) *Scalar {
	return &Scalar{new(edwards25519.Scalar).MultiplyAdd(s.s, t.s, u.s)}
}

// Equal reports whether s and t are the same residue mod ℓ.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.s.Equal(t.s) == 1
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() Sec {
	var out Sec
	copy(out[:], s.s.Bytes())
	return out
}
