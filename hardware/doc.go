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

// Package hardware is the base package for the device simulation. It and its
// sub-packages contain everything required for a headless simulation.
//
// The Simulator type is the root of the simulation and contains references to
// all the simulated sub-systems. There is no package-level simulator state:
// several Simulator instances can coexist in a single process, which the
// tests rely on.
package hardware
