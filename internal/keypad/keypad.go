// Package keypad tracks the state of the 16 key hexadecimal CHIP-8 keypad.
package keypad

import (
	"github.com/retroenv/retrogolib/set"
)

// Keys is the number of keys on the keypad.
const Keys = 16

// State is a snapshot of all keys, indexed by key value 0x0-0xF.
type State [Keys]bool

// Keypad stores the most recent key snapshot and the keys that transitioned to
// pressed with it.
type Keypad struct {
	state   State
	pressed set.Set[uint8]
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{
		pressed: set.New[uint8](),
	}
}

// Update replaces the key snapshot. Only keys that are down now but were up in
// the previous snapshot count as pressed, keys held across snapshots do not.
func (k *Keypad) Update(state State) {
	k.pressed.Clear()
	for key := range uint8(Keys) {
		if state[key] && !k.state[key] {
			k.pressed.Add(key)
		}
	}
	k.state = state
}

// Down returns whether the key is held in the current snapshot. Only the low
// nibble of the key is used.
func (k *Keypad) Down(key uint8) bool {
	return k.state[key&0x0F]
}

// PressedKey consumes and returns the lowest key that transitioned to pressed.
func (k *Keypad) PressedKey() (uint8, bool) {
	for key := range uint8(Keys) {
		if k.pressed.Contains(key) {
			k.pressed.Remove(key)
			return key, true
		}
	}
	return 0, false
}

// State returns the current key snapshot.
func (k *Keypad) State() State {
	return k.state
}

// Reset releases all keys and forgets pending presses.
func (k *Keypad) Reset() {
	k.state = State{}
	k.pressed.Clear()
}
