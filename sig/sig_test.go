package sig

import (
	"bytes"
	"encoding/hex"
	"testing"

	"gitlab.com/bernedogit/amberlite/curve"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

func TestSeyRFC8032Vector1(t *testing.T) {
	// spec.md §8 scenario 2.
	seedBytes := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPk := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	wantSig := mustHex(t,
		"e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155"+
			"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")

	var seed [32]byte
	copy(seed[:], seedBytes)
	sk := NewSecretSey(seed)
	pk := sk.Public()

	pkBytes := pk.Key()
	if !bytes.Equal(pkBytes[:], wantPk) {
		t.Fatalf("sey public key: got %x, want %x", pkBytes, wantPk)
	}

	sig := sk.Sign(nil)
	if !bytes.Equal(sig[:], wantSig) {
		t.Fatalf("sey signature: got %x, want %x", sig, wantSig)
	}

	if err := pk.Verify(nil, sig); err != nil {
		t.Fatalf("sey verify of its own signature: %v", err)
	}
}

func TestSeySignVerifyRoundTrip(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i * 7)
	}
	sk := NewSecretSey(seed)
	pk := sk.Public()

	msg := []byte("arbitrary message content")
	sig := sk.Sign(msg)
	if err := pk.Verify(msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tampered := sig
	tampered[0] ^= 1
	if err := pk.Verify(msg, tampered); err == nil {
		t.Fatal("Verify accepted a tampered signature")
	}
	if err := pk.Verify([]byte("different message"), sig); err == nil {
		t.Fatal("Verify accepted a signature over a different message")
	}
}

func TestBmxSignVerifyRoundTrip(t *testing.T) {
	var raw curve.Sec
	for i := range raw {
		raw[i] = byte(i * 13)
	}
	sk, err := NewSecretBmx("amberlite-test", raw)
	if err != nil {
		t.Fatalf("NewSecretBmx: %v", err)
	}
	pk := sk.Public()

	msg := []byte("bmx message")
	sig := sk.Sign("amberlite-test", msg)
	if err := pk.Verify("amberlite-test", msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if err := pk.Verify("other-label", msg, sig); err == nil {
		t.Fatal("Verify accepted a signature under the wrong domain label")
	}
}

func TestShaSignVerifyRoundTrip(t *testing.T) {
	var raw curve.Sec
	for i := range raw {
		raw[i] = byte(i*3 + 1)
	}
	sk := NewSecretSha("amberlite-sha-test", raw)
	pk := sk.Public()

	msg := []byte("ristretto-backed message")
	sig := sk.Sign("amberlite-sha-test", msg)
	if err := pk.Verify("amberlite-sha-test", msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestElligator2MaskedKeygenAndRev(t *testing.T) {
	// spec.md §8 scenario 5.
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	kp, err := Elligator2MaskedKeygen(seed)
	if err != nil {
		t.Fatalf("Elligator2MaskedKeygen: %v", err)
	}

	rev := ElligatorRev(kp.Rep)
	gotU := kp.Public
	gotU[31] &^= 0x80
	revU := rev
	revU[31] &^= 0x80
	if gotU != revU {
		t.Fatalf("ElligatorRev mismatch: got %x, want %x", revU, gotU)
	}

	var peerSeed [32]byte
	for i := range peerSeed {
		peerSeed[i] = byte(200 - i)
	}
	peerScalar := curve.MaskX25519(curve.Sec(peerSeed))

	direct := SharedSecretUnchecked(peerScalar, kp.Public)
	viaRev := SharedSecretUnchecked(peerScalar, rev)
	if direct != viaRev {
		t.Fatal("shared secret via the Elligator2 representative differs from the direct public key")
	}
}

func TestQdsaVerifyAgreesWithBmxVerify(t *testing.T) {
	var raw curve.Sec
	for i := range raw {
		raw[i] = byte(i*5 + 3)
	}
	sk, err := NewSecretBmx("amberlite-qdsa-test", raw)
	if err != nil {
		t.Fatalf("NewSecretBmx: %v", err)
	}
	pk := sk.Public()
	msg := []byte("qdsa test message")
	sig := sk.Sign("amberlite-qdsa-test", msg)

	if err := pk.Verify("amberlite-qdsa-test", msg, sig); err != nil {
		t.Fatalf("bmx Verify: %v", err)
	}
	if !QdsaVerify("amberlite-qdsa-test", msg, pk.Key(), sig) {
		t.Fatal("QdsaVerify rejected a signature bmx Verify accepted")
	}
}
