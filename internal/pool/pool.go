// Package pool provides a fixed-block byte allocator backed by one arena.
//
// All blocks are carved from a single slice allocated by New, so Get and
// Put never touch the Go heap. The pool hands out at most BlockCount
// blocks; Get reports exhaustion instead of growing.
package pool

import (
	"errors"
	"sync"
	"unsafe"
)

var (
	// ErrInvalidSize is returned by New for a block size or count below 1.
	ErrInvalidSize = errors.New("pool: block size and count must be >= 1")
	// ErrForeignBlock is returned by Put for a slice not handed out by Get.
	ErrForeignBlock = errors.New("pool: block does not belong to this pool")
	// ErrDoubleFree is returned by Put for a block that is already free.
	ErrDoubleFree = errors.New("pool: block already released")
)

// Pool hands out fixed-size blocks of one arena. Safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	arena     []byte
	blockSize int
	free      []int32 // stack of free block indices
	inUse     []bool
}

// New allocates blockCount blocks of blockSize bytes each.
func New(blockSize, blockCount int) (*Pool, error) {
	if blockSize < 1 || blockCount < 1 {
		return nil, ErrInvalidSize
	}

	p := &Pool{
		arena:     make([]byte, blockSize*blockCount),
		blockSize: blockSize,
		free:      make([]int32, blockCount),
		inUse:     make([]bool, blockCount),
	}
	// Lowest index on top so blocks go out in address order.
	for i := range p.free {
		p.free[i] = int32(blockCount - 1 - i)
	}
	return p, nil
}

// Get returns a free block with len and cap equal to BlockSize.
// Returns false when every block is in use.
func (p *Pool) Get() ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.inUse[idx] = true

	off := int(idx) * p.blockSize
	return p.arena[off : off+p.blockSize : off+p.blockSize], true
}

// Put returns b to the pool. b must start at a block boundary; its length
// is ignored, so a block resliced to [:k] can be returned as is.
func (p *Pool) Put(b []byte) error {
	idx, ok := p.index(b)
	if !ok {
		return ErrForeignBlock
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inUse[idx] {
		return ErrDoubleFree
	}
	p.inUse[idx] = false
	p.free = append(p.free, int32(idx))
	return nil
}

// Owns reports whether b points into the arena.
func (p *Pool) Owns(b []byte) bool {
	_, ok := p.offset(b)
	return ok
}

// Available returns the number of free blocks.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// BlockSize returns the size of every block.
func (p *Pool) BlockSize() int { return p.blockSize }

// BlockCount returns the total number of blocks.
func (p *Pool) BlockCount() int { return len(p.inUse) }

// offset returns where b's first byte sits in the arena.
func (p *Pool) offset(b []byte) (int, bool) {
	if cap(b) == 0 {
		return 0, false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(p.arena)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if ptr < start || ptr >= start+uintptr(len(p.arena)) {
		return 0, false
	}
	return int(ptr - start), true
}

// index maps b to its block index if b starts on a block boundary.
func (p *Pool) index(b []byte) (int, bool) {
	off, ok := p.offset(b)
	if !ok || off%p.blockSize != 0 {
		return 0, false
	}
	return off / p.blockSize, true
}
