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

// Package preferences gathers the tunable values of the simulation in one
// place.
package preferences

import (
	"github.com/hostavr/avrsim/curated"
	"github.com/hostavr/avrsim/prefs"
)

// Preferences for the simulation. The values affect timing behaviour only,
// never the bit patterns of the simulated registers.
type Preferences struct {
	// the chance (percent, per status poll) that a pending transmission
	// completes. the exact value is not load-bearing - it only needs to be
	// low enough that firmware cannot assume single-pass completion and high
	// enough that a polling loop terminates quickly
	//
	// set to 100 for deterministic single-poll completion in tests
	TXCompleteChance prefs.Int

	// when enabled every byte that crosses the terminal bridge is noted in
	// the central log
	TraceBytes prefs.Bool
}

const (
	txCompleteChance = 5
	traceBytes       = false
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	err := p.SetDefaults()
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

// SetDefaults revert all preferences to default values.
func (p *Preferences) SetDefaults() error {
	if err := p.TXCompleteChance.Set(txCompleteChance); err != nil {
		return err
	}
	return p.TraceBytes.Set(traceBytes)
}
