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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Random is a random number generator for the simulation. Each simulator
// instance owns one.
type Random struct {
	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be
	// predictable
	//
	// must be set before the first call to Intn()
	ZeroSeed bool

	rng *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{}
}

// RNG creation is lazy so that the ZeroSeed field can be set after
// initialisation but before the simulation starts
func (rnd *Random) rand() *rand.Rand {
	if rnd.rng == nil {
		if rnd.ZeroSeed {
			rnd.rng = rand.New(rand.NewSource(0))
		} else {
			rnd.rng = rand.New(rand.NewSource(baseSeed))
		}
	}
	return rnd.rng
}

// Intn returns a random number between 0 and n.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}
