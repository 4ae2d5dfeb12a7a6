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
	"sort"
	"sync"
)

// Table is the name-keyed collection of every register cell in the simulated
// device. The 8-bit and 16-bit registers occupy separate namespaces,
// mirroring the two register widths of the device itself.
//
// The table only ever grows. Cells are never removed or renamed.
type Table struct {
	crit sync.Mutex
	r8   map[string]*Cell[uint8]
	r16  map[string]*Cell[uint16]
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{
		r8:  make(map[string]*Cell[uint8]),
		r16: make(map[string]*Cell[uint16]),
	}
}

// Reg8 returns the 8-bit cell for name, creating it with a value of zero if
// it does not yet exist. Safe for concurrent callers.
func (tbl *Table) Reg8(name string) *Cell[uint8] {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	c, ok := tbl.r8[name]
	if !ok {
		c = &Cell[uint8]{name: name}
		tbl.r8[name] = c
	}
	return c
}

// Reg16 returns the 16-bit cell for name, creating it with a value of zero
// if it does not yet exist. Safe for concurrent callers.
func (tbl *Table) Reg16(name string) *Cell[uint16] {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	c, ok := tbl.r16[name]
	if !ok {
		c = &Cell[uint16]{name: name}
		tbl.r16[name] = c
	}
	return c
}

// Names8 returns the sorted names of every 8-bit cell created so far.
func (tbl *Table) Names8() []string {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	names := make([]string, 0, len(tbl.r8))
	for n := range tbl.r8 {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Names16 returns the sorted names of every 16-bit cell created so far.
func (tbl *Table) Names16() []string {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	names := make([]string, 0, len(tbl.r16))
	for n := range tbl.r16 {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
