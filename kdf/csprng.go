package kdf

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"gitlab.com/bernedogit/amberlite/symcrypto"
)

// refreshThreshold is spec.md §4.D's "10^6 bytes" refresh trigger.
const refreshThreshold = 1_000_000

// Csprng is spec.md §3's CSPRNG state: a process-wide, mutex-guarded
// ChaCha20 generator, refreshed with OS entropy on creation, every 10^6
// drawn bytes, and (via Refresh) after fork(). crypto/rand.Reader supplies
// the actual OS entropy; this wraps it with the DJB "forget past" rekey
// schedule and byte-count-triggered refresh spec.md requires, which
// crypto/rand alone does not provide — see DESIGN.md.
type Csprng struct {
	mu      sync.Mutex
	key     symcrypto.Chakey
	nonce   uint64
	drawn   uint64
	unready bool
}

// globalCsprng is the process-wide singleton spec.md §5 describes.
var globalCsprng = newCsprng()

func newCsprng() *Csprng {
	c := &Csprng{}
	c.refreshLocked()
	return c
}

// RandomBytes implements spec.md's `randombytes_buf`: draws len(out) bytes
// from the process-wide CSPRNG singleton.
func RandomBytes(out []byte) {
	globalCsprng.Draw(out)
}

// Refresh reseeds the process-wide CSPRNG from OS entropy, callable after
// fork() per spec.md §5's fork-handler requirement (Go does not expose a
// fork hook, so callers in a forking host process must call this
// explicitly in the child).
func Refresh() {
	globalCsprng.mu.Lock()
	defer globalCsprng.mu.Unlock()
	globalCsprng.refreshLocked()
}

// Draw produces len(out) bytes of output in 64-byte ChaCha20 blocks,
// incrementing the nonce-position word after each block, then
// overwrites the key with a fresh ChaCha20 output (DJB's forget-past
// rule) before releasing the lock. Refreshes automatically once the
// per-session byte counter crosses refreshThreshold.
func (c *Csprng) Draw(out []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := out
	for len(remaining) > 0 {
		var block [64]byte
		symcrypto.Stream(c.key, c.nonce, 1, block[:])
		n := copy(remaining, block[:])
		remaining = remaining[n:]
		c.nonce++
	}

	var fresh [32]byte
	symcrypto.Stream(c.key, c.nonce, 1, fresh[:])
	c.key = symcrypto.Chakey(fresh)
	c.nonce++

	c.drawn += uint64(len(out))
	if c.drawn > refreshThreshold {
		c.refreshLocked()
	}
}

// refreshLocked mixes fresh OS entropy with the current time into a new
// ChaCha20 state, per spec.md §4.D. Caller must hold c.mu.
func (c *Csprng) refreshLocked() {
	var seed [48]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand.Reader already falls back across platform entropy
		// sources internally; a failure here means both are gone, which
		// spec.md §7 calls a fatal process-level condition.
		panic("kdf: OS entropy source unavailable: " + err.Error())
	}

	var timeBuf [16]byte
	binary.LittleEndian.PutUint64(timeBuf[:8], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint64(timeBuf[8:], uint64(time.Now().UnixNano()))

	mixed := symcrypto.Blake2bSum(seed[:], timeBuf[:])
	copy(c.key[:], mixed[:32])
	c.nonce = binary.LittleEndian.Uint64(mixed[32:40])
	c.drawn = 0
}
