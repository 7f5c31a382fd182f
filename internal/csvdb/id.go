package csvdb

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// ID structure (64 bits):
// - Bit 63: sign (always 0, keeps int64 positive)
// - Bits 62-20: milliseconds since Epoch (43 bits = ~278 years)
// - Bits 19-4: random (16 bits = 65536 values per ms)
// - Bits 3-0: version (4 bits)

const (
	// Epoch is 2024-01-01 00:00:00 UTC in milliseconds.
	Epoch int64 = 1704067200000

	// IDVersion is the current ID schema version.
	IDVersion uint64 = 1

	// idEncodedLen is the fixed length of encoded IDs.
	// 64 bits / 6 bits per char = 10.67, rounded up to 11.
	idEncodedLen = 11
)

// sortableAlphabet is a base64 alphabet in ASCII order for lexicographic
// sorting. None of its characters collide with the record delimiters, so an
// encoded ID never needs quoting.
const sortableAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// decodeMap maps ASCII characters back to their 6-bit values.
var decodeMap [128]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = 0xFF // invalid
	}
	for i, c := range sortableAlphabet {
		decodeMap[c] = byte(i)
	}
}

// ID is a time-sortable 64-bit record identifier.
type ID uint64

var (
	idMu      sync.Mutex
	idLastMs  int64
	idCounter uint16
)

// NewID generates a new time-based ID with collision avoidance.
// IDs are monotonically increasing within a process.
func NewID() ID {
	idMu.Lock()
	defer idMu.Unlock()

	ms := time.Now().UnixMilli() - Epoch
	if ms < 0 {
		ms = 0
	}

	if ms > idLastMs {
		// New millisecond: reset with a random value.
		idLastMs = ms
		var b [2]byte
		_, _ = rand.Read(b[:])
		idCounter = binary.BigEndian.Uint16(b[:])
	} else {
		// Same millisecond, or the clock stepped backwards: increment the
		// counter, spilling into the next millisecond on wrap-around.
		idCounter++
		if idCounter == 0 {
			idLastMs++
		}
	}
	return newIDFromParts(uint64(idLastMs), uint64(idCounter), IDVersion)
}

// NewIDAt generates an ID at a specific time. Useful for tests and seeding.
func NewIDAt(t time.Time) ID {
	ms := t.UnixMilli() - Epoch
	if ms < 0 {
		ms = 0
	}
	var b [2]byte
	_, _ = rand.Read(b[:])
	return newIDFromParts(uint64(ms), uint64(binary.BigEndian.Uint16(b[:])), IDVersion)
}

func newIDFromParts(ms, randBits, version uint64) ID {
	return ID((ms << 20) | (randBits << 4) | (version & 0xF))
}

// String returns the fixed-width 11-character encoding using the sortable
// alphabet: if id1 < id2, then id1.String() < id2.String().
func (id ID) String() string {
	var buf [idEncodedLen]byte
	v := uint64(id)
	for i := idEncodedLen - 1; i >= 0; i-- {
		buf[i] = sortableAlphabet[v&0x3F]
		v >>= 6
	}
	return string(buf[:])
}

// Time extracts the timestamp from an ID.
func (id ID) Time() time.Time {
	return time.UnixMilli(int64(id>>20) + Epoch)
}

// DecodeID parses an 11-character encoded string back to an ID.
func DecodeID(s string) (ID, error) {
	if len(s) != idEncodedLen {
		return 0, fmt.Errorf("invalid ID length: got %d, want %d", len(s), idEncodedLen)
	}
	var v uint64
	for i := 0; i < idEncodedLen; i++ {
		c := s[i]
		if c >= 128 || decodeMap[c] == 0xFF {
			return 0, fmt.Errorf("invalid ID character at position %d: %c", i, c)
		}
		v = (v << 6) | uint64(decodeMap[c])
	}
	return ID(v), nil
}
