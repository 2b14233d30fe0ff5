// Package cache implements the address keyed memo of decoded instructions.
package cache

import (
	"github.com/retroenv/retrochip8/internal/instruction"
)

// instructionSize is the number of memory bytes covered by one cached instruction.
const instructionSize = 2

// DecodeFunc decodes the instruction stored at the given address.
type DecodeFunc func(address uint16) (instruction.Instruction, error)

// Cache memoizes decoded instructions by program counter address.
// A disabled cache decodes on every access and never stores entries.
type Cache struct {
	entries  map[uint16]instruction.Instruction
	disabled bool
}

// New returns a new instruction cache.
func New(disabled bool) *Cache {
	return &Cache{
		entries:  make(map[uint16]instruction.Instruction),
		disabled: disabled,
	}
}

// GetOrDecode returns the cached instruction at the address, decoding and storing it
// on a miss. Failed decodes are not stored.
func (c *Cache) GetOrDecode(address uint16, decode DecodeFunc) (instruction.Instruction, error) {
	if ins, ok := c.entries[address]; ok {
		return ins, nil
	}

	ins, err := decode(address)
	if err != nil {
		return nil, err
	}
	if !c.disabled {
		c.entries[address] = ins
	}
	return ins, nil
}

// Lookup returns the cached instruction at the address without decoding it.
func (c *Cache) Lookup(address uint16) (instruction.Instruction, bool) {
	ins, ok := c.entries[address]
	return ins, ok
}

// Invalidate evicts every entry whose instruction bytes overlap the byte range
// [start, end). An entry at address A covers the bytes A and A+1, so an entry
// starting one byte before the range is evicted as well.
func (c *Cache) Invalidate(start, end int) {
	if start >= end || len(c.entries) == 0 {
		return
	}
	for address := range c.entries {
		first := int(address)
		last := first + instructionSize
		if first < end && last > start {
			delete(c.entries, address)
		}
	}
}

// Flush evicts all entries and returns the number of evicted entries.
func (c *Cache) Flush() int {
	n := len(c.entries)
	clear(c.entries)
	return n
}

// Len returns the number of cached instructions.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Disabled returns whether the cache is a pass-through.
func (c *Cache) Disabled() bool {
	return c.disabled
}
