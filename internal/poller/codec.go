// internal/poller/codec.go
package poller

import (
	"fmt"
	"math"
)

// DecodeF32 reinterprets two big-endian registers as an IEEE-754 float.
// words[0] holds the high 16 bits, words[1] the low 16 bits.
func DecodeF32(words []uint16) (float32, error) {
	if len(words) != 2 {
		return 0, fmt.Errorf("poller: decode f32: want 2 registers, got %d", len(words))
	}
	return math.Float32frombits(uint32(words[0])<<16 | uint32(words[1])), nil
}
