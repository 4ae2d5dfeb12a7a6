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

// ClassicFamily is the original AVR USART. A single data register (UDRn) is
// shared between the transmitter and the receiver - reading and writing the
// same address reach different physical registers on real silicon, which the
// simulation reproduces with read and write overrides on the one cell.
type ClassicFamily struct{}

// Label implements the Family interface.
func (fam ClassicFamily) Label() serialconfig.FamilyLabel {
	return serialconfig.Classic
}

// TxData implements the Family interface.
func (fam ClassicFamily) TxData(ch int) string {
	return fmt.Sprintf("UDR%d", ch)
}

// RxData implements the Family interface. The same register as TxData.
func (fam ClassicFamily) RxData(ch int) string {
	return fmt.Sprintf("UDR%d", ch)
}

// Status implements the Family interface.
func (fam ClassicFamily) Status(ch int) string {
	return fmt.Sprintf("UCSR%dA", ch)
}

// Baud implements the Family interface.
func (fam ClassicFamily) Baud(ch int) string {
	return fmt.Sprintf("UBRR%d", ch)
}

func (fam ClassicFamily) ctrlB(ch int) string {
	return fmt.Sprintf("UCSR%dB", ch)
}

func (fam ClassicFamily) ctrlC(ch int) string {
	return fmt.Sprintf("UCSR%dC", ch)
}

// Divisor implements the Family interface. 16x oversampling:
//
//	UBRR = clock / (16 * baud) - 1
//
// rounded to the nearest integer, as the configuration generator rounds.
func (fam ClassicFamily) Divisor(clock uint32, baud uint32) uint16 {
	if baud == 0 {
		return 0
	}
	return uint16((uint64(clock)+8*uint64(baud))/(16*uint64(baud)) - 1)
}

// PowerOn implements the Family interface. After reset data-register-empty
// is set and the frame format already describes 8N1 - the reset values of
// UCSRnC mean a classic part only needs baud, pin direction and the enable
// bits to be programmed.
func (fam ClassicFamily) PowerOn(regs *registers.Table, ch int) {
	regs.Reg8(fam.Status(ch)).RawStore(FlagDataRegEmpty)
	regs.Reg8(fam.ctrlB(ch)).RawStore(0x00)
	regs.Reg8(fam.ctrlC(ch)).RawStore(0x06)
}

// Validate implements the Family interface.
func (fam ClassicFamily) Validate(regs *registers.Table, ch int, cfg serialconfig.Config) error {
	baud := regs.Reg16(fam.Baud(ch)).Raw()
	if expected := fam.Divisor(cfg.Clock, cfg.Baud); baud != expected {
		return curated.Errorf(FailedValidation, ch,
			fmt.Sprintf("baud mismatch: %d expected %d", baud, expected))
	}

	if err := validatePins(regs, ch, cfg); err != nil {
		return err
	}

	// normal speed, no multi-processor communication mode
	status := regs.Reg8(fam.Status(ch)).Raw()
	if status&0x03 != 0x00 {
		return curated.Errorf(FailedValidation, ch, "double speed or multi-processor mode in use")
	}

	ctrlb := regs.Reg8(fam.ctrlB(ch)).Raw()
	if ctrlb&0x1c != 0x18 {
		return curated.Errorf(FailedValidation, ch, "receiver/transmitter not enabled")
	}

	// asynchronous, 8 data bits, no parity, 1 stop bit
	ctrlc := regs.Reg8(fam.ctrlC(ch)).Raw()
	if ctrlc != 0x06 {
		return curated.Errorf(FailedValidation, ch, "frame format is not asynchronous 8N1")
	}

	return nil
}
