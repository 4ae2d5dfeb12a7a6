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

package usart

import (
	"fmt"

	"github.com/hostavr/avrsim/curated"
	"github.com/hostavr/avrsim/hardware/memory/registers"
	"github.com/hostavr/avrsim/serialconfig"
)

// NumChannels is the number of USART channels in the simulated device.
const NumChannels = 4

// Status flag bit positions. The two families use different register names
// but the same bit positions for the three flags the simulation models.
const (
	// a received byte is available in the receive data register
	FlagRxComplete = 0x80

	// the most recently written byte has left the transmit shift register
	FlagTxComplete = 0x40

	// the transmit data register can accept a new byte
	FlagDataRegEmpty = 0x20
)

// Family describes one generation of the USART peripheral: how its registers
// are named, what the registers contain after reset, and what a correctly
// configured channel looks like.
//
// A Family is selected once at initialisation. There are no family branches
// anywhere else in the simulation.
type Family interface {
	Label() serialconfig.FamilyLabel

	// register names for channel ch. for the Classic family TxData and
	// RxData return the same name - the data register is shared
	TxData(ch int) string
	RxData(ch int) string
	Status(ch int) string
	Baud(ch int) string

	// the expected baud-register value for the given clock frequency and
	// baud rate
	Divisor(clock uint32, baud uint32) uint16

	// PowerOn stores the post-reset register values for channel ch
	PowerOn(regs *registers.Table, ch int)

	// Validate compares live register state for channel ch against the
	// build's expected configuration. A nil return means the channel is
	// correctly configured
	Validate(regs *registers.Table, ch int, cfg serialconfig.Config) error
}

// sentinel error for the Validate() implementations.
const FailedValidation = "validate: channel %d: %v"

// sentinel error returned by SelectFamily for a label it does not recognise.
const unsupportedFamily = "usart: unsupported family: %v"

// SelectFamily returns the Family implementation for the label.
func SelectFamily(label serialconfig.FamilyLabel) (Family, error) {
	switch label {
	case serialconfig.Classic:
		return ClassicFamily{}, nil
	case serialconfig.Mega0:
		return Mega0Family{}, nil
	}
	return nil, curated.Errorf(unsupportedFamily, label)
}

// DirReg returns the name of the data-direction register for a port letter.
// Common to both families.
func DirReg(port string) string {
	return fmt.Sprintf("PORT%s_DIR", port)
}

// pin direction checks are common to both families. rx must be an input
// (direction bit clear), tx must be an output (direction bit set)
func validatePins(regs *registers.Table, ch int, cfg serialconfig.Config) error {
	rxDir := regs.Reg8(DirReg(cfg.RXPort)).Raw()
	if rxDir&(1<<cfg.RXPin) != 0 {
		return curated.Errorf(FailedValidation, ch, "RX pin is not an input")
	}

	txDir := regs.Reg8(DirReg(cfg.TXPort)).Raw()
	if txDir&(1<<cfg.TXPin) == 0 {
		return curated.Errorf(FailedValidation, ch, "TX pin is not an output")
	}

	return nil
}
