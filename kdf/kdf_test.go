package kdf

import (
	"bytes"
	"crypto/sha256"
	"hash"
	"testing"
)

func newSha256() hash.Hash { return sha256.New() }

func TestMixHashInitThenMixHashDeterministic(t *testing.T) {
	ck1, h1 := MixHashInit([]byte("Noise_NN_25519_ChaChaPoly_BLAKE2s"), []byte("prologue"))
	ck2, h2 := MixHashInit([]byte("Noise_NN_25519_ChaChaPoly_BLAKE2s"), []byte("prologue"))
	if ck1 != ck2 || h1 != h2 {
		t.Fatal("MixHashInit is not deterministic")
	}

	h3 := MixHash(h1, []byte("message 1"))
	h4 := MixHash(h1, []byte("message 1"))
	if h3 != h4 {
		t.Fatal("MixHash is not deterministic")
	}
	if h3 == h1 {
		t.Fatal("MixHash did not change the transcript hash")
	}
}

func TestMixKeyTwoOutputsDiffer(t *testing.T) {
	var ck ChainKey
	for i := range ck {
		ck[i] = byte(i)
	}
	ckOut, k := MixKey(ck, []byte("shared secret"), true)
	if ckOut == (ChainKey{}) {
		t.Fatal("MixKey produced a zero chaining key")
	}
	if ChainKey(k) == ckOut {
		t.Fatal("MixKey's two outputs should not be equal")
	}
}

func TestHKDFDeterministicAndLengthRespected(t *testing.T) {
	out1 := make([]byte, 48)
	out2 := make([]byte, 48)
	if err := HKDF(newSha256, []byte("secret"), []byte("salt"), []byte("info"), out1); err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if err := HKDF(newSha256, []byte("secret"), []byte("salt"), []byte("info"), out2); err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatal("HKDF is not deterministic")
	}
}

func TestScryptBlake2bDeterministicKAT(t *testing.T) {
	// Spec.md §8 scenario 6: pwd="password", salt="salt", shifts=14, r=8,
	// p=1, dklen=64 must be deterministic across runs.
	params := ScryptParams{Shifts: 14, R: 8, P: 1, DKLen: 64}
	out1, err := ScryptBlake2b([]byte("password"), []byte("salt"), params)
	if err != nil {
		t.Fatalf("ScryptBlake2b: %v", err)
	}
	out2, err := ScryptBlake2b([]byte("password"), []byte("salt"), params)
	if err != nil {
		t.Fatalf("ScryptBlake2b: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatal("ScryptBlake2b is not deterministic")
	}
	if len(out1) != params.DKLen {
		t.Fatalf("ScryptBlake2b: got %d bytes, want %d", len(out1), params.DKLen)
	}

	otherSalt, err := ScryptBlake2b([]byte("password"), []byte("pepper"), params)
	if err != nil {
		t.Fatalf("ScryptBlake2b: %v", err)
	}
	if bytes.Equal(out1, otherSalt) {
		t.Fatal("ScryptBlake2b produced identical output for different salts")
	}
}

func TestScryptBlake2bRejectsBadParams(t *testing.T) {
	if _, err := ScryptBlake2b([]byte("p"), []byte("s"), ScryptParams{}); err == nil {
		t.Fatal("expected an error for the zero-value ScryptParams")
	}
}

func TestRandomBytesVaries(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	RandomBytes(a)
	RandomBytes(b)
	if bytes.Equal(a, b) {
		t.Fatal("two successive RandomBytes draws produced identical output")
	}
}
