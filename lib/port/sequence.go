package port

import "math"

// SequenceNumber is a change counter which
//   - starts at 0,
//   - can only be incremented by 1 and
//   - wraps around to 1 when exceeding math.MaxUint32.
type SequenceNumber uint32

// Increment advances the counter, skipping 0 on wrap-around.
func (s *SequenceNumber) Increment() {
	if *s < math.MaxUint32 {
		*s++
	} else {
		*s = 1
	}
}

// Value returns the current count.
func (s SequenceNumber) Value() uint32 {
	return uint32(s)
}
