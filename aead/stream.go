package aead

import (
	"encoding/binary"
	"io"

	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// finalRecordBit is spec.md §4.E's "final record sets bit 63 of the
// nonce so that 'last block' is an AD-covered decision and truncation is
// detected".
const finalRecordBit = uint64(1) << 63

// StreamConfig bundles the streaming record layer's literal config,
// following the teacher's plain-struct-of-constants pattern (spec.md §2.3).
type StreamConfig struct {
	// RecordSize is the plaintext payload size per record before the
	// final, possibly-short record.
	RecordSize int
}

// StreamWriter implements spec.md §4.E's streaming layered format as an
// io.Writer: fixed-size records each encrypted with EncryptPacket, using
// nonces 1, 2, 3, …, with the final short record's nonce carrying
// finalRecordBit. There is no teacher streaming API to imitate directly,
// so this follows the ambient Go idiom of an io.Writer framing adapter.
type StreamWriter struct {
	w      io.Writer
	ke     symcrypto.Chakey
	ka     []symcrypto.Chakey
	cfg    StreamConfig
	nonce  uint64
	buf    []byte
	err    error
	closed bool
}

// NewStreamWriter returns a StreamWriter that encrypts written bytes into
// the multi-recipient record stream described by spec.md §4.E, keyed by
// ke for payload encryption and ka for the per-recipient tags.
func NewStreamWriter(w io.Writer, ke symcrypto.Chakey, ka []symcrypto.Chakey, cfg StreamConfig) *StreamWriter {
	if cfg.RecordSize <= 0 {
		cfg.RecordSize = 64 * 1024
	}
	return &StreamWriter{w: w, ke: ke, ka: ka, cfg: cfg}
}

// Write buffers p and flushes full RecordSize records as they fill.
func (sw *StreamWriter) Write(p []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	total := len(p)
	sw.buf = append(sw.buf, p...)
	for len(sw.buf) >= sw.cfg.RecordSize {
		chunk := sw.buf[:sw.cfg.RecordSize]
		if err := sw.flushRecord(chunk, false); err != nil {
			sw.err = err
			return 0, err
		}
		sw.buf = sw.buf[sw.cfg.RecordSize:]
	}
	return total, nil
}

// Close flushes the final (possibly short or empty) record with
// finalRecordBit set in its nonce, per spec.md §4.E.
func (sw *StreamWriter) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true
	if sw.err != nil {
		return sw.err
	}
	return sw.flushRecord(sw.buf, true)
}

func (sw *StreamWriter) flushRecord(payload []byte, final bool) error {
	sw.nonce++
	nonce := sw.nonce
	if final {
		nonce |= finalRecordBit
	}
	packed := EncryptPacket(sw.ke, nonce, nil, uint64(len(payload)), payload, 0, sw.ka)

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(packed)))
	if _, err := sw.w.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err := sw.w.Write(packed)
	return err
}

// StreamReader is the io.Reader counterpart of StreamWriter: it decrypts
// each record, rejecting the whole stream on any tag mismatch (spec.md
// §4.E's "any tag miscompare is a hard reject for the whole stream"), and
// detects truncation because the final record's finalRecordBit is itself
// authenticated.
type StreamReader struct {
	r       io.Reader
	ke      symcrypto.Chakey
	kaIka   symcrypto.Chakey
	ika, n  int
	nonce   uint64
	pending []byte
	done    bool
	err     error
}

// NewStreamReader returns a StreamReader decrypting records written by a
// StreamWriter, authenticating as recipient index ika of n.
func NewStreamReader(r io.Reader, ke, kaIka symcrypto.Chakey, ika, n int) *StreamReader {
	return &StreamReader{r: r, ke: ke, kaIka: kaIka, ika: ika, n: n}
}

// Read implements io.Reader, returning io.EOF only after the
// authenticated final record has been consumed, so truncation before the
// final record is an error (amberr.ErrShortInput, io.ErrUnexpectedEOF or
// amberr.ErrBadTag), never a silent io.EOF. Once a record fails, every
// later Read returns that same error.
func (sr *StreamReader) Read(p []byte) (int, error) {
	if sr.err != nil {
		return 0, sr.err
	}
	for len(sr.pending) == 0 && !sr.done {
		if err := sr.readRecord(); err != nil {
			sr.err = err
			return 0, err
		}
	}
	if len(sr.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, sr.pending)
	sr.pending = sr.pending[n:]
	return n, nil
}

func (sr *StreamReader) readRecord() error {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(sr.r, lenPrefix[:]); err != nil {
		if err == io.EOF {
			// A clean end-of-input before a final record was ever
			// authenticated is a truncation, not a valid end of stream.
			return amberr.ErrShortInput
		}
		return err
	}
	recLen := binary.BigEndian.Uint32(lenPrefix[:])
	packed := make([]byte, recLen)
	if _, err := io.ReadFull(sr.r, packed); err != nil {
		return io.ErrUnexpectedEOF
	}

	sr.nonce++
	if payload, final, err := sr.tryDecrypt(packed, sr.nonce, recLen); err == nil {
		sr.pending = payload
		sr.done = final
		return nil
	}
	payload, final, err := sr.tryDecrypt(packed, sr.nonce|finalRecordBit, recLen)
	if err != nil {
		return amberr.ErrBadTag
	}
	sr.pending = payload
	sr.done = final
	return nil
}

func (sr *StreamReader) tryDecrypt(packed []byte, nonce uint64, recLen uint32) ([]byte, bool, error) {
	head, headerLen, err := peekPacketHeader(sr.ke, nonce, packed)
	if err != nil {
		return nil, false, err
	}
	_, payload, err := DecryptPacket(sr.ke, nonce, nil, packed, sr.kaIka, sr.ika, sr.n, int(head))
	if err != nil {
		return nil, false, err
	}
	final := nonce&finalRecordBit != 0
	_ = headerLen
	return payload, final, nil
}

func peekPacketHeader(ke symcrypto.Chakey, nonce uint64, packed []byte) (uint64, int, error) {
	head, err := PeekHead(ke, nonce, packed)
	if err != nil {
		return 0, 0, err
	}
	return head, len(encodeLeb128(head)), nil
}
