package aead

import (
	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// maxLeb128Len is the widest a LEB128-encoded u64 header can be,
// spec.md §6's "leb128(u) : 1..10".
const maxLeb128Len = 10

// EncryptPacket implements spec.md §4.E/§6's packet-with-header variant:
// the plaintext fed to the multi-recipient AEAD is
// leb128(u) ‖ payload ‖ filler, where filler is padLen zero bytes drawn
// from the same stream (the caller picks padLen to obscure payload
// length).
func EncryptPacket(ke symcrypto.Chakey, nonce uint64, ad []byte, head uint64, payload []byte, padLen int, ka []symcrypto.Chakey) []byte {
	header := encodeLeb128(head)
	plain := make([]byte, 0, len(header)+len(payload)+padLen)
	plain = append(plain, header...)
	plain = append(plain, payload...)
	plain = append(plain, make([]byte, padLen)...)
	return EncryptMulti(ke, nonce, ad, plain, ka)
}

// DecryptPacket implements spec.md §4.E/§6's packet-with-header decrypt:
// runs the full authenticated DecryptMulti first, then parses the header
// and returns the payload with the trailing filler stripped. Callers must
// already know payloadLen (recovered out of band, e.g. from the
// container format) since the filler length is otherwise ambiguous.
func DecryptPacket(ke symcrypto.Chakey, nonce uint64, ad, packed []byte, kaIka symcrypto.Chakey, ika, n int, payloadLen int) (head uint64, payload []byte, err error) {
	plain, err := DecryptMulti(ke, nonce, ad, packed, kaIka, ika, n)
	if err != nil {
		return 0, nil, err
	}
	head, headerLen, err := decodeLeb128(plain)
	if err != nil {
		return 0, nil, err
	}
	if headerLen+payloadLen > len(plain) {
		return 0, nil, amberr.ErrShortInput
	}
	payload = plain[headerLen : headerLen+payloadLen]
	return head, payload, nil
}

// PeekHead implements spec.md §4.E's `peek_head`: recovers the LEB128
// header by peeking keystream bytes without authenticating. Callers MUST
// NOT act on the peeked value beyond routing, and MUST authenticate via
// DecryptPacket before trusting it, per spec.md §4.E.
func PeekHead(ke symcrypto.Chakey, nonce uint64, packed []byte) (uint64, error) {
	n := maxLeb128Len
	if n > len(packed) {
		n = len(packed)
	}
	var keystream [maxLeb128Len]byte
	symcrypto.Stream(ke, nonce, 1, keystream[:n])

	peeked := make([]byte, n)
	for i := 0; i < n; i++ {
		peeked[i] = packed[i] ^ keystream[i]
	}
	head, _, err := decodeLeb128(peeked)
	return head, err
}

// encodeLeb128 encodes u as an unsigned LEB128 varint, spec.md §6.
func encodeLeb128(u uint64) []byte {
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if u == 0 {
			break
		}
	}
	return out
}

// decodeLeb128 decodes an unsigned LEB128 varint from the front of b,
// returning the value and the number of bytes consumed.
func decodeLeb128(b []byte) (uint64, int, error) {
	var u uint64
	for i := 0; i < len(b) && i < maxLeb128Len; i++ {
		u |= uint64(b[i]&0x7f) << (7 * i)
		if b[i]&0x80 == 0 {
			return u, i + 1, nil
		}
	}
	return 0, 0, amberr.ErrShortInput
}
