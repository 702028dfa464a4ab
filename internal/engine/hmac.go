package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
)

// SourceHMAC names the HMAC-SHA256 byte stream source
const SourceHMAC = "hmac_sha256"

// hmacClientSeed is the fixed message prefix mixed into every round
const hmacClientSeed = "casino-sim"

// HMACStream draws bytes from HMAC-SHA256(key, "client:nonce:round") blocks.
// The key is the decimal seed, so a run can be re-derived by anyone holding
// the seed with nothing but a standard HMAC implementation.
type HMACStream struct {
	key        []byte
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	buffer     [sha256.Size]byte
}

// NewHMACStream creates a stream keyed by seed
func NewHMACStream(seed uint64) *HMACStream {
	s := &HMACStream{
		key:        []byte(strconv.FormatUint(seed, 10)),
		clientSeed: hmacClientSeed,
	}
	s.generateRound()
	return s
}

func (s *HMACStream) generateRound() {
	h := hmac.New(sha256.New, s.key)
	fmt.Fprintf(h, "%s:%d:%d", s.clientSeed, s.nonce, s.round)
	copy(s.buffer[:], h.Sum(nil))
	s.pos = 0
}

// next returns the next byte, advancing to a fresh round when the block is spent
func (s *HMACStream) next() byte {
	if s.pos >= len(s.buffer) {
		s.round++
		s.generateRound()
	}
	b := s.buffer[s.pos]
	s.pos++
	return b
}

// Uint64 reads the next eight bytes big-endian
func (s *HMACStream) Uint64() uint64 {
	var b [8]byte
	for i := range b {
		b[i] = s.next()
	}
	return binary.BigEndian.Uint64(b[:])
}

// UniformInt returns an integer in [lo, hi]. Panics if lo > hi.
func (s *HMACStream) UniformInt(lo, hi int) int {
	return uniformInt(s.Uint64, lo, hi)
}

// UniformReal01 returns a float in [0, 1)
func (s *HMACStream) UniformReal01() float64 {
	return uniformReal01(s.Uint64)
}
