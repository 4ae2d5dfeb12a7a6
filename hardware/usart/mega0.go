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

// Mega0Family is the newer USART generation: split transmit/receive data
// registers, a 16-bit baud register, pin routing through PORTMUX and a
// system clock prescaler that can starve the peripheral if left enabled.
type Mega0Family struct{}

// Label implements the Family interface.
func (fam Mega0Family) Label() serialconfig.FamilyLabel {
	return serialconfig.Mega0
}

// TxData implements the Family interface.
func (fam Mega0Family) TxData(ch int) string {
	return fmt.Sprintf("USART%d_TXDATAL", ch)
}

// RxData implements the Family interface.
func (fam Mega0Family) RxData(ch int) string {
	return fmt.Sprintf("USART%d_RXDATAL", ch)
}

// Status implements the Family interface.
func (fam Mega0Family) Status(ch int) string {
	return fmt.Sprintf("USART%d_STATUS", ch)
}

// Baud implements the Family interface.
func (fam Mega0Family) Baud(ch int) string {
	return fmt.Sprintf("USART%d_BAUD", ch)
}

func (fam Mega0Family) ctrlA(ch int) string {
	return fmt.Sprintf("USART%d_CTRLA", ch)
}

func (fam Mega0Family) ctrlB(ch int) string {
	return fmt.Sprintf("USART%d_CTRLB", ch)
}

func (fam Mega0Family) ctrlC(ch int) string {
	return fmt.Sprintf("USART%d_CTRLC", ch)
}

// Divisor implements the Family interface. The peripheral samples at 16x the
// baud rate with a fractional accumulator, giving the doubling formula:
//
//	BAUD = (8 * clock) / (2 * baud)
//
// rounded to the nearest integer, as the configuration generator rounds.
func (fam Mega0Family) Divisor(clock uint32, baud uint32) uint16 {
	if baud == 0 {
		return 0
	}
	return uint16((8*uint64(clock) + uint64(baud)) / (2 * uint64(baud)))
}

// PowerOn implements the Family interface. After reset the transmitter is
// idle: transmit-complete and data-register-empty are both set.
func (fam Mega0Family) PowerOn(regs *registers.Table, ch int) {
	regs.Reg8(fam.Status(ch)).RawStore(FlagTxComplete | FlagDataRegEmpty)
}

// Validate implements the Family interface.
func (fam Mega0Family) Validate(regs *registers.Table, ch int, cfg serialconfig.Config) error {
	baud := regs.Reg16(fam.Baud(ch)).Raw()
	if expected := fam.Divisor(cfg.Clock, cfg.Baud); baud != expected {
		return curated.Errorf(FailedValidation, ch,
			fmt.Sprintf("baud mismatch: %d expected %d", baud, expected))
	}

	if err := validatePins(regs, ch, cfg); err != nil {
		return err
	}

	portmux := regs.Reg8("PORTMUX_USARTROUTEA").Raw()
	if portmux&^cfg.MuxAndMask != cfg.MuxOrMask {
		return curated.Errorf(FailedValidation, ch, "pin routing mismatch")
	}

	ctrlb := regs.Reg8(fam.ctrlB(ch)).Raw()
	if ctrlb&0xc0 != 0xc0 {
		return curated.Errorf(FailedValidation, ch, "receiver/transmitter not enabled")
	}
	if ctrlb&0x07 != 0x00 {
		return curated.Errorf(FailedValidation, ch, "receiver not in normal mode")
	}

	// asynchronous, 8 data bits, no parity, 1 stop bit
	ctrlc := regs.Reg8(fam.ctrlC(ch)).Raw()
	if ctrlc != 0x03 {
		return curated.Errorf(FailedValidation, ch, "frame format is not asynchronous 8N1")
	}

	clk := regs.Reg8("CLKCTRL_MCLKCTRLB").Raw()
	if clk != 0x00 {
		return curated.Errorf(FailedValidation, ch, "system clock prescaler in use")
	}

	return nil
}
