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

package hardware

import (
	"github.com/hostavr/avrsim/curated"
	"github.com/hostavr/avrsim/environment"
	"github.com/hostavr/avrsim/hardware/memory/registers"
	"github.com/hostavr/avrsim/hardware/usart"
	"github.com/hostavr/avrsim/logger"
	"github.com/hostavr/avrsim/ptyterm"
	"github.com/hostavr/avrsim/serialconfig"
)

// Simulator is the root of the simulated device. All simulated state hangs
// off the register table; the USART value exists only to keep the behaviour
// wiring (and its family strategy) reachable.
type Simulator struct {
	Env *environment.Environment

	// the simulated sub-systems
	Regs  *registers.Table
	Term  *ptyterm.Bridge
	USART *usart.USART
}

// NewSimulator creates all the simulated sub-systems and connects them
// together. Register content starts from power-on defaults; nothing persists
// between instances.
//
// A failure to allocate the pseudo-terminal is not fatal. The simulation
// continues with an inert terminal: transmitted bytes go nowhere and nothing
// is ever received.
func NewSimulator(env *environment.Environment, cfg serialconfig.Config) (*Simulator, error) {
	sim := &Simulator{
		Env:  env,
		Regs: registers.NewTable(),
		Term: &ptyterm.Bridge{},
	}

	if err := sim.Term.Open(); err != nil {
		logger.Logf(env, "simulator", "%v", err)
		logger.Log(env, "simulator", "continuing with an inert terminal")
	}

	var err error
	sim.USART, err = usart.New(env, sim.Regs, sim.Term, cfg)
	if err != nil {
		_ = sim.Term.Close()
		return nil, curated.Errorf("simulator: %v", err)
	}

	return sim, nil
}

// End cleanly closes down the simulation.
func (sim *Simulator) End() error {
	if err := sim.Term.Close(); err != nil {
		return curated.Errorf("simulator: %v", err)
	}
	return nil
}

// Path returns the slave device path of the pseudo-terminal, for publication
// to an external harness. The empty string if the terminal is inert.
func (sim *Simulator) Path() string {
	return sim.Term.Path()
}

// WriteTX writes a byte to the transmit data register of channel ch. This is
// pure dispatch: all transmit behaviour lives in the installed overrides.
func (sim *Simulator) WriteTX(ch int, data uint8) {
	sim.Regs.Reg8(sim.USART.Family().TxData(ch)).SetValue(data)
}

// ReadRX reads the receive data register of channel ch.
func (sim *Simulator) ReadRX(ch int) uint8 {
	return sim.Regs.Reg8(sim.USART.Family().RxData(ch)).Value()
}

// ReadStatus reads the status register of channel ch.
func (sim *Simulator) ReadStatus(ch int) uint8 {
	return sim.Regs.Reg8(sim.USART.Family().Status(ch)).Value()
}
