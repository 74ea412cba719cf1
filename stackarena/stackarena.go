// Package stackarena implements the pure address arithmetic and
// byte-level copy/zero operations over the fixed grid of equal-sized
// per-process stacks described in spec.md §3 and §4.C.
package stackarena

// Arena is a contiguous region of bytes partitioned into equal-sized
// stacks. Stack i occupies [Top(i)-size, Top(i)) with its logical top at
// Top(i); slot index i of the process table owns stack i.
//
// Arena holds no addresses of its own — it is a view over a caller-owned
// byte slice, the way the original source's stacks are carved out of a
// linker-provided memory region rather than allocated by the kernel.
type Arena struct {
	mem  []byte
	size uint32
}

// New wraps mem as an arena of equal-sized stacks of size bytes. mem's
// length must be a multiple of size; the caller owns mem's lifetime.
func New(mem []byte, size uint32) *Arena {
	return &Arena{mem: mem, size: size}
}

// top returns the arena-relative offset of the top of the region, i.e.
// len(mem) treated as "arena_top" in spec.md's address-arithmetic terms.
func (a *Arena) top() uint32 {
	return uint32(len(a.mem))
}

// Top returns stack i's logical top address, expressed as an offset from
// the start of the arena: arena_top - i*S.
func (a *Arena) Top(i int) uint32 {
	return a.top() - uint32(i)*a.size
}

// Base returns stack i's base address: Top(i) - S.
func (a *Arena) Base(i int) uint32 {
	return a.Top(i) - a.size
}

// Size returns S, the configured per-stack size.
func (a *Arena) Size() uint32 {
	return a.size
}

// slice returns the byte range backing stack i.
func (a *Arena) slice(i int) []byte {
	top := a.top() - uint32(i)*a.size
	base := top - a.size
	return a.mem[base:top]
}

// Copy duplicates stack src's bytes onto stack dst verbatim, so relative
// stack-pointer offsets captured before the copy remain valid afterward.
// This implements the fork invariant in spec.md §3.
func (a *Arena) Copy(dst, src int) {
	copy(a.slice(dst), a.slice(src))
}

// Zero clears stack i's bytes, implementing exec's stack-reset contract
// in spec.md §4.F.
func (a *Arena) Zero(i int) {
	s := a.slice(i)
	for j := range s {
		s[j] = 0
	}
}

// Contains reports whether sp lies within stack i's bounds
// [Base(i), Top(i)), the invariant spec.md §8 requires of every Ready or
// Executing process's saved stack pointer.
func (a *Arena) Contains(i int, sp uint32) bool {
	return sp >= a.Base(i) && sp < a.Top(i)
}
