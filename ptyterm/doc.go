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

// Package ptyterm connects the simulated serial peripherals to a real
// OS-level endpoint. The Bridge owns the master side of a pseudo-terminal
// pair; an external test harness opens the slave side as a standard serial
// device and exchanges bytes with the simulated firmware exactly as it would
// with real hardware.
//
// The master descriptor is non-blocking throughout: "no data available" and
// "write would block" are immediate empty results, never a stall. If the
// pseudo-terminal cannot be allocated the bridge is inert - no bytes are
// ever available and nothing is ever sent - allowing register-level tests to
// run in environments without pty support.
package ptyterm
