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

// Package registers implements the virtual memory-mapped registers of the
// simulated device.
//
// A Cell is a single named register. Reading and writing a cell through the
// Value()/SetValue() functions triggers any override that has been installed
// on the cell; this is how peripheral side-effects (status flags rising and
// falling, bytes moving to and from the outside world) are modelled. The
// Raw()/RawStore() functions bypass overrides entirely and are used by the
// peripheral implementations to manipulate underlying state without
// re-triggering their own side-effects.
//
// The Table is the name-keyed collection of every cell in the simulated
// device. Cells are created lazily on first lookup: an unknown register name
// is never an error, it simply resolves to a fresh zero-valued cell. Callers
// at the register-alias boundary are responsible for using correct names.
package registers
