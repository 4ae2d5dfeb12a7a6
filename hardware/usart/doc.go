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

// Package usart implements the behaviour of the simulated serial
// peripherals. It installs read/write overrides on the register cells that
// represent each channel's data and status registers; everything the
// firmware observes - status flags rising and falling, bytes moving through
// the pseudo-terminal, misconfigured channels going silent - happens inside
// those overrides.
//
// Two peripheral generations are supported, selected once at initialisation
// through the Family interface. The register naming scheme is uniform across
// all channels of a build and stable across builds for a given family.
//
// Transmission is deliberately not instantaneous. A write to the transmit
// data register clears the data-register-empty flag; the flag rises again at
// some later status poll, at random. Firmware that assumes single-pass
// completion instead of polling the flag will misbehave here in exactly the
// way it would on real hardware.
package usart
