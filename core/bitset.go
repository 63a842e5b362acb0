package core

import (
	"iter"
	"math/bits"
)

// BitSetBits is the universe size of a BitSet32. Every modeled slot universe
// (city blocks, racket slots, plot slots) must stay within it.
const BitSetBits = 32

// BitSet32 is a fixed set over indices 0..31 backed by a single uint32.
// All operations are O(1) or O(32) and never allocate.
type BitSet32 uint32

// Contains reports whether bit i is set. Out-of-range indices are not set.
func (b BitSet32) Contains(i int) bool {
	if i < 0 || i >= BitSetBits {
		return false
	}
	return b&(1<<uint(i)) != 0
}

// Insert sets bit i, failing with ErrIndexOutOfRange for i outside 0..31
func (b *BitSet32) Insert(i int) error {
	if i < 0 || i >= BitSetBits {
		return ErrIndexOutOfRange
	}
	*b |= 1 << uint(i)
	return nil
}

// Remove clears bit i, failing with ErrIndexOutOfRange for i outside 0..31
func (b *BitSet32) Remove(i int) error {
	if i < 0 || i >= BitSetBits {
		return ErrIndexOutOfRange
	}
	*b &^= 1 << uint(i)
	return nil
}

// Union returns the set of bits in b or other
func (b BitSet32) Union(other BitSet32) BitSet32 {
	return b | other
}

// Intersect returns the set of bits in both b and other
func (b BitSet32) Intersect(other BitSet32) BitSet32 {
	return b & other
}

// Complement returns the set of bits not in b
func (b BitSet32) Complement() BitSet32 {
	return ^b
}

// Count returns the number of set bits
func (b BitSet32) Count() int {
	return bits.OnesCount32(uint32(b))
}

// Empty reports whether no bits are set
func (b BitSet32) Empty() bool {
	return b == 0
}

// Bits yields the set bit indices in ascending order. The sequence is lazy,
// finite, and restartable; b is copied so concurrent mutation of the source
// set does not affect a running iteration.
func (b BitSet32) Bits() iter.Seq[int] {
	return func(yield func(int) bool) {
		v := uint32(b)
		for v != 0 {
			i := bits.TrailingZeros32(v)
			if !yield(i) {
				return
			}
			v &^= 1 << uint(i)
		}
	}
}
