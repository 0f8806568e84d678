// Bitmap code allocator

package compression

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/textcompressor"
)

// CodeAllocator hands out the dynamic codes 129..255 in ascending order. The
// seeded codes and the end-of-stream marker are marked as allocated from the
// start and can never be handed out.
type CodeAllocator struct {
	AllocationBitmap bitmap.Bitmap
	nextFree         int
}

// NewCodeAllocator creates an allocator with only the seeded codes and the
// end-of-stream marker in use.
func NewCodeAllocator() *CodeAllocator {
	alloc := &CodeAllocator{
		AllocationBitmap: bitmap.New(TotalCodes),
		nextFree:         FirstDynamicCode,
	}

	for i := 0; i < FirstDynamicCode; i++ {
		alloc.AllocationBitmap.Set(i, true)
	}
	return alloc
}

// AllocateSingle allocates the lowest free code and returns it. Once all codes
// are in use it fails with [textcompressor.ErrDictionaryFull].
func (alloc *CodeAllocator) AllocateSingle() (Code, error) {
	code, ok := alloc.Peek()
	if !ok {
		return 0, textcompressor.ErrDictionaryFull.WithMessage(
			fmt.Sprintf("all %d dynamic codes are in use", DynamicCodes))
	}

	alloc.AllocationBitmap.Set(int(code), true)
	alloc.nextFree = int(code) + 1
	return code, nil
}

// Peek returns the code the next call to [CodeAllocator.AllocateSingle] would
// return, without allocating it. The boolean is false if no codes are left.
func (alloc *CodeAllocator) Peek() (Code, bool) {
	for i := alloc.nextFree; i < TotalCodes; i++ {
		if !alloc.AllocationBitmap.Get(i) {
			alloc.nextFree = i
			return Code(i), true
		}
	}

	alloc.nextFree = TotalCodes
	return 0, false
}

// IsAllocated reports whether `code` is in use, either because it was seeded
// or because it was handed out.
func (alloc *CodeAllocator) IsAllocated(code Code) bool {
	return alloc.AllocationBitmap.Get(int(code))
}

// Exhausted returns true if every code has been allocated.
func (alloc *CodeAllocator) Exhausted() bool {
	_, ok := alloc.Peek()
	return !ok
}

// Allocated gives the number of dynamic codes handed out so far.
func (alloc *CodeAllocator) Allocated() int {
	total := 0
	for i := FirstDynamicCode; i < TotalCodes; i++ {
		if alloc.AllocationBitmap.Get(i) {
			total++
		}
	}
	return total
}
