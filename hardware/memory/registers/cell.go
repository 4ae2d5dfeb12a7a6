// This file is part of avrsim.
//
// avrsim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// avrsim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with avrsim.  If not, see <https://www.gnu.org/licenses/>.

package registers

import (
	"sync"
	"sync/atomic"
)

// Data is the set of register widths found in the simulated device. The
// peripheral registers are 8-bit; the baud registers are 16-bit.
type Data interface {
	~uint8 | ~uint16
}

// Cell is a single addressable unit of simulated peripheral state with
// optional read/write interception.
//
// The zero value is not usable. Cells are created by the Table on first
// lookup and live for the lifetime of the process. A cell is never renamed.
type Cell[T Data] struct {
	name string

	// the value is widened to a uint32 so that sync/atomic can be used
	// whatever the width of the cell. readers and writers of the raw value
	// never observe a torn value
	value uint32

	// crit guards the override pointers, preventing an override being
	// swapped out mid-installation. the overrides themselves run outside of
	// the critical section - an override is free to touch other cells
	crit    sync.Mutex
	onRead  func() T
	onWrite func(T)
}

// Name of the register. Immutable after creation.
func (c *Cell[T]) Name() string {
	return c.name
}

// Value returns the result of reading the register. If a read override is
// installed the override alone determines the result; it may also mutate
// other cells as a side effect ("read clears flag" and the like). Without an
// override the last stored value is returned.
func (c *Cell[T]) Value() T {
	c.crit.Lock()
	f := c.onRead
	c.crit.Unlock()

	if f != nil {
		return f()
	}
	return c.Raw()
}

// SetValue writes the register. If a write override is installed it is
// solely responsible for deciding what, if anything, is stored. Without an
// override the value simply replaces the stored value.
func (c *Cell[T]) SetValue(v T) {
	c.crit.Lock()
	f := c.onWrite
	c.crit.Unlock()

	if f != nil {
		f(v)
		return
	}
	c.RawStore(v)
}

// Raw returns the stored value, bypassing any read override.
func (c *Cell[T]) Raw() T {
	return T(atomic.LoadUint32(&c.value))
}

// RawStore replaces the stored value, bypassing any write override.
func (c *Cell[T]) RawStore(v T) {
	atomic.StoreUint32(&c.value, uint32(v))
}

// BitOr ORs v with the current raw value and routes the result through
// SetValue(), meaning any write override fires.
func (c *Cell[T]) BitOr(v T) {
	c.SetValue(c.Raw() | v)
}

// BitAnd ANDs v with the current raw value and routes the result through
// SetValue(), meaning any write override fires.
func (c *Cell[T]) BitAnd(v T) {
	c.SetValue(c.Raw() & v)
}

// SetOnRead installs the read override. At most one override is active; a
// second call replaces the first. A nil argument removes the override.
func (c *Cell[T]) SetOnRead(f func() T) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.onRead = f
}

// SetOnWrite installs the write override. At most one override is active; a
// second call replaces the first. A nil argument removes the override.
func (c *Cell[T]) SetOnWrite(f func(T)) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.onWrite = f
}
