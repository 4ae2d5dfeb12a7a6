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

// Package environment provides context to a simulator instance. There is no
// package-level simulator state anywhere in the project: everything a
// component needs arrives through the Environment reference it was built
// with. This means several simulators can coexist in a single (test)
// process.
package environment

import (
	"github.com/hostavr/avrsim/hardware/preferences"
	"github.com/hostavr/avrsim/random"
)

// Label is used to name the environment.
type Label string

// Environment is used to provide context for a simulation. Particularly
// useful when running multiple simulations in a single process.
type Environment struct {
	Label Label

	// any randomisation required by the simulation should be retrieved
	// through this structure
	Random *random.Random

	// the simulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created. Providing a non-nil value allows the preferences of more than one
// simulation to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Random: random.NewRandom(),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// testing where initial conditions must be the same for every run of the
// test.
func (env *Environment) Normalise() error {
	env.Random.ZeroSeed = true
	return env.Prefs.SetDefaults()
}

// IsMainSimulation returns true if the environment is intended for the main
// simulation in the process.
func (env *Environment) IsMainSimulation() bool {
	return env.Label == ""
}

// AllowLogging implements the logger.Permission interface. Secondary
// simulations (thumbnail instances in tests, for example) do not write to
// the central log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainSimulation()
}
