package sig

import (
	"gitlab.com/bernedogit/amberlite/curve"
	"gitlab.com/bernedogit/amberlite/field25519"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// QdsaVerify implements spec.md §4.F's `curverify_mont`: a third
// verification path using only the Montgomery ladder and the biquadratic
// identity
//
//	4·(u1+u2+u3+A)·(u1u2u3) = (1 − u1u2 − u2u3 − u3u1)²
//
// to test whether R = ±S·B ± h·A without reconstructing Edwards y. A is
// the signer's mxs-encoded public key; sig is a bmx-style signature
// (sig[63]'s high bit, carrying A's Edwards-x sign, is masked off here
// since qDSA's u-only check is sign-agnostic by construction).
func QdsaVerify(prefixLabel string, msg []byte, pub curve.Mon, sig Signature) bool {
	sep := domainSep(prefixLabel)

	var Rs curve.Mon
	copy(Rs[:], sig[:32])

	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	sBytes[31] &^= 0x80
	s, err := curve.ScalarFromCanonical(sBytes[:])
	if err != nil {
		return false
	}

	hHash := symcrypto.Blake2bSum(sep, Rs[:], pub[:], msg)
	h := curve.ReduceMod(hHash[:])

	u1Bytes := curve.MontgomeryLadderBase([32]byte(s.Bytes()))
	u2Bytes := curve.MontgomeryLadder([32]byte(h.Bytes()), [32]byte(pub))

	u1, err := field25519.Decode(u1Bytes[:])
	if err != nil {
		return false
	}
	u2, err := field25519.Decode(u2Bytes[:])
	if err != nil {
		return false
	}
	u3, err := field25519.Decode(Rs[:])
	if err != nil {
		return false
	}

	return biquadraticHolds(u1, u2, u3)
}

// RistrettoQdsaVerify is the Ristretto-encoded counterpart of QdsaVerify,
// spec.md's `ristretto_qdsa_verify`: scalars are pre-multiplied by 8 to
// clear cofactor ambiguity, and the decoded Ristretto u-coordinate is
// squared before the ladder check, since the Ristretto encoding
// effectively stores 1/s² and s² is an element of the expected coset.
func RistrettoQdsaVerify(prefixLabel string, msg []byte, pub curve.Ris, sig Signature) bool {
	sep := domainSep(prefixLabel)

	var Rs curve.Ris
	copy(Rs[:], sig[:32])

	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	s, err := curve.ScalarFromCanonical(sBytes[:])
	if err != nil {
		return false
	}
	s8 := curve.ShiftBy8(s)

	hHash := symcrypto.Blake2bSum(sep, Rs[:], pub[:], msg)
	h := curve.ReduceMod(hHash[:])
	h8 := curve.ShiftBy8(h)

	pubMon, err := ristrettoToMxsU(pub)
	if err != nil {
		return false
	}
	rMon, err := ristrettoToMxsU(Rs)
	if err != nil {
		return false
	}

	u1Bytes := curve.MontgomeryLadderBase([32]byte(s8.Bytes()))
	u2Bytes := curve.MontgomeryLadder([32]byte(h8.Bytes()), pubMon)

	u1, err := field25519.Decode(u1Bytes[:])
	if err != nil {
		return false
	}
	u2, err := field25519.Decode(u2Bytes[:])
	if err != nil {
		return false
	}
	u3raw, err := field25519.Decode(rMon[:])
	if err != nil {
		return false
	}
	u3 := new(field25519.Element).Multiply(u3raw, u3raw)

	return biquadraticHolds(u1, u2, u3)
}

// ristrettoToMxsU decodes a Ristretto255 encoding to its Edwards point and
// re-derives the raw (unsigned) Montgomery u-coordinate bytes.
func ristrettoToMxsU(r curve.Ris) ([32]byte, error) {
	p, err := curve.RistrettoToEdwards(r)
	if err != nil {
		return [32]byte{}, err
	}
	u, _ := curve.EdwardsToMontgomeryUV(p)
	var out [32]byte
	copy(out[:], field25519.Encode(u))
	return out, nil
}

// biquadraticHolds tests spec.md's Kummer-line identity for three
// Montgomery u-coordinates.
func biquadraticHolds(u1, u2, u3 *field25519.Element) bool {
	a := field25519.MontgomeryA()

	sum := new(field25519.Element).Add(u1, u2)
	sum.Add(sum, u3)
	sum.Add(sum, a)

	prod := new(field25519.Element).Multiply(u1, u2)
	prod.Multiply(prod, u3)

	lhs := new(field25519.Element).Multiply(sum, prod)
	four := new(field25519.Element).Add(field25519.One(), field25519.One())
	four.Add(four, four)
	lhs.Multiply(lhs, four)

	u1u2 := new(field25519.Element).Multiply(u1, u2)
	u2u3 := new(field25519.Element).Multiply(u2, u3)
	u3u1 := new(field25519.Element).Multiply(u3, u1)

	rhsBase := new(field25519.Element).Add(u1u2, u2u3)
	rhsBase.Add(rhsBase, u3u1)
	rhsBase.Negate(rhsBase)
	rhsBase.Add(rhsBase, field25519.One())

	rhs := new(field25519.Element).Multiply(rhsBase, rhsBase)

	return field25519.IsZero(new(field25519.Element).Subtract(lhs, rhs)) == 1
}
