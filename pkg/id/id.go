package id

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Token is a 128-bit, lexicographically sortable identifier encoded as 16
// bytes big-endian: [8 bytes ms timestamp][8 bytes sequence].
type Token [16]byte

// Zero is the zero token.
var Zero Token

// Bytes returns the raw 16-byte representation.
func (t Token) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, t[:])
	return b
}

// String returns the 32-character hex form.
func (t Token) String() string { return hex.EncodeToString(t[:]) }

// Time returns the creation timestamp carried in the token.
func (t Token) Time() time.Time {
	ms := int64(binary.BigEndian.Uint64(t[0:8]))
	return time.UnixMilli(ms)
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool { return t == Zero }

// Parse decodes the 32-character hex form produced by String.
func Parse(s string) (Token, error) {
	var t Token
	if len(s) != 32 {
		return Zero, fmt.Errorf("id: token must be 32 hex characters, got %d", len(s))
	}
	if _, err := hex.Decode(t[:], []byte(s)); err != nil {
		return Zero, fmt.Errorf("id: %w", err)
	}
	return t, nil
}

// Generator produces monotonically increasing tokens per process.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// nowMs is swappable in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new token strictly greater than every token this generator
// has returned before. A backwards clock step reuses the last timestamp and
// keeps incrementing the sequence instead.
func (g *Generator) Next() Token {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := nowMs()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.seq++
	} else {
		g.seq = 0
	}
	g.lastMs = ms

	var t Token
	binary.BigEndian.PutUint64(t[0:8], uint64(ms))
	binary.BigEndian.PutUint64(t[8:16], g.seq)
	return t
}
