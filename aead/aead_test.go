package aead

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"gitlab.com/bernedogit/amberlite/symcrypto"
)

func TestMultiRecipientAEADScenario(t *testing.T) {
	// spec.md §8 scenario 3.
	var ke, ka0, ka1 symcrypto.Chakey
	m := []byte("hello")

	packed := EncryptMulti(ke, 1, nil, m, []symcrypto.Chakey{ka0, ka1})
	if len(packed) != len(m)+2*tagSize {
		t.Fatalf("EncryptMulti: got %d bytes, want %d", len(packed), len(m)+2*tagSize)
	}

	tag0 := packed[len(m) : len(m)+tagSize]
	tag1 := packed[len(m)+tagSize:]
	if bytes.Equal(tag0, tag1) {
		t.Fatal("recipient tags must differ (distinct block indices)")
	}

	m0, err := DecryptMulti(ke, 1, nil, packed, ka0, 0, 2)
	if err != nil || !bytes.Equal(m0, m) {
		t.Fatalf("recipient 0 decrypt: m=%q err=%v", m0, err)
	}
	m1, err := DecryptMulti(ke, 1, nil, packed, ka1, 1, 2)
	if err != nil || !bytes.Equal(m1, m) {
		t.Fatalf("recipient 1 decrypt: m=%q err=%v", m1, err)
	}

	tampered := append([]byte(nil), packed...)
	tampered[len(tampered)-1] ^= 0xff
	if _, err := DecryptMulti(ke, 1, nil, tampered, ka1, 1, 2); err == nil {
		t.Fatal("tampering tag_1's last byte should make ika=1 decryption fail")
	}
	if _, err := DecryptMulti(ke, 1, nil, tampered, ka0, 0, 2); err != nil {
		t.Fatal("tampering tag_1 should not affect ika=0 decryption")
	}
}

func TestMultiRecipientRejectsBitFlips(t *testing.T) {
	var ke, ka symcrypto.Chakey
	m := []byte("authenticate everything")
	packed := EncryptMulti(ke, 7, []byte("associated"), m, []symcrypto.Chakey{ka})

	ciphertextFlip := append([]byte(nil), packed...)
	ciphertextFlip[0] ^= 1
	if _, err := DecryptMulti(ke, 7, []byte("associated"), ciphertextFlip, ka, 0, 1); err == nil {
		t.Fatal("flipped ciphertext byte should fail authentication")
	}

	adFlip := append([]byte(nil), packed...)
	if _, err := DecryptMulti(ke, 7, []byte("associatee"), adFlip, ka, 0, 1); err == nil {
		t.Fatal("mismatched associated data should fail authentication")
	}
}

func TestPacketHeaderRoundTrip(t *testing.T) {
	var ke, ka symcrypto.Chakey
	payload := []byte("packet payload")
	packed := EncryptPacket(ke, 3, nil, 42, payload, 4, []symcrypto.Chakey{ka})

	peeked, err := PeekHead(ke, 3, packed)
	if err != nil || peeked != 42 {
		t.Fatalf("PeekHead: got (%d, %v), want (42, nil)", peeked, err)
	}

	head, got, err := DecryptPacket(ke, 3, nil, packed, ka, 0, 1, len(payload))
	if err != nil {
		t.Fatalf("DecryptPacket: %v", err)
	}
	if head != 42 || !bytes.Equal(got, payload) {
		t.Fatalf("DecryptPacket: got (%d, %q), want (42, %q)", head, got, payload)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	var ke, ka symcrypto.Chakey
	var buf bytes.Buffer

	w := NewStreamWriter(&buf, ke, []symcrypto.Chakey{ka}, StreamConfig{RecordSize: 8})
	plaintext := []byte("this message spans multiple fixed-size records")
	if _, err := w.Write(plaintext); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := NewStreamReader(bytes.NewReader(buf.Bytes()), ke, ka, 0, 1)
	got, err := readAllStream(r)
	if err != nil {
		t.Fatalf("stream read: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("stream round trip: got %q, want %q", got, plaintext)
	}
}

func TestStreamDetectsTruncation(t *testing.T) {
	var ke, ka symcrypto.Chakey
	var buf bytes.Buffer

	w := NewStreamWriter(&buf, ke, []symcrypto.Chakey{ka}, StreamConfig{RecordSize: 8})
	if _, err := w.Write([]byte("this message spans multiple fixed-size records")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()-20]
	r := NewStreamReader(bytes.NewReader(truncated), ke, ka, 0, 1)
	if _, err := readAllStream(r); err == nil {
		t.Fatal("truncated stream should not read cleanly")
	}
}

func readAllStream(r *StreamReader) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
	}
}
