// Package kdf implements the key-derivation layer spec.md §4.D names: the
// Noise mix_hash/mix_key triad, generic HKDF, scrypt-BLAKE2b, and the
// process-wide CSPRNG singleton.
package kdf

import (
	"golang.org/x/crypto/hkdf"

	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// ChainKey is the Noise protocol's 32-byte chaining key ck.
type ChainKey [32]byte

// HandshakeHash is the Noise protocol's 32-byte running transcript hash h.
type HandshakeHash [32]byte

// MixHashInit implements spec.md §4.D's `mix_hash_init`: it derives h from
// the UTF-8 protocol name (padded with zeros to 32 bytes if shorter, else
// hashed down to 32 bytes), copies h into ck, then mix_hashes the
// prologue into h.
func MixHashInit(protocolName, prologue []byte) (ck ChainKey, h HandshakeHash) {
	if len(protocolName) <= 32 {
		copy(h[:], protocolName)
	} else {
		h = HandshakeHash(symcrypto.Blake2sSum(protocolName))
	}
	ck = ChainKey(h)
	h = MixHash(h, prologue)
	return ck, h
}

// MixHash implements spec.md §4.D's `mix_hash`: h ← H(h ‖ data).
func MixHash(h HandshakeHash, data []byte) HandshakeHash {
	return HandshakeHash(symcrypto.Blake2sSum(h[:], data))
}

// MixKey implements spec.md §4.D's `mix_key`: HKDF with BLAKE2s over ck
// and input keying material, producing one or two 32-byte outputs. With
// one output, only ck' is meaningful; with two, the second return value is
// k. The HKDF PRK replaces ck; the first expand block becomes ck', the
// second (if requested) becomes k.
func MixKey(ck ChainKey, ikm []byte, wantTwo bool) (ckOut ChainKey, k [32]byte) {
	outLen := 32
	if wantTwo {
		outLen = 64
	}
	r := hkdf.New(newBlake2s, ikm, ck[:], nil)
	out := make([]byte, outLen)
	if _, err := readFull(r, out); err != nil {
		panic("kdf: MixKey HKDF expand failed: " + err.Error())
	}
	copy(ckOut[:], out[:32])
	if wantTwo {
		copy(k[:], out[32:64])
	}
	return ckOut, k
}
