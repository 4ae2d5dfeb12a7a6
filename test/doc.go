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

// Package test contains helper functions to remove common boilerplate from
// the testable units in the project.
//
// The Expect functions cause a test failure to be recorded while the Demand
// functions treat a failed expectation as a test fatality. The Demand
// functions are particularly useful when the tested value is used in further
// tests and so must be correct.
//
// All functions accept optional tags which are printed alongside any failure
// message. Useful when the same expectation is made repeatedly in a loop.
package test
