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
	"github.com/hostavr/avrsim/curated"
	"github.com/hostavr/avrsim/environment"
	"github.com/hostavr/avrsim/hardware/memory/registers"
	"github.com/hostavr/avrsim/logger"
	"github.com/hostavr/avrsim/ptyterm"
	"github.com/hostavr/avrsim/serialconfig"
)

// USART is the behavioural wiring for every channel of the active family.
// Creating a USART installs the read/write overrides; from then on all
// behaviour is driven by register access.
type USART struct {
	env  *environment.Environment
	regs *registers.Table
	term *ptyterm.Bridge
	fam  Family
	vld  *Validator
}

// New wires the USART behaviour into the register table. Register cells are
// seeded with their power-on values and every channel of the active family
// has its overrides installed.
func New(env *environment.Environment, regs *registers.Table,
	term *ptyterm.Bridge, cfg serialconfig.Config) (*USART, error) {

	fam, err := SelectFamily(cfg.Family)
	if err != nil {
		return nil, curated.Errorf("usart: %v", err)
	}

	u := &USART{
		env:  env,
		regs: regs,
		term: term,
		fam:  fam,
	}
	u.vld = NewValidator(env, regs, fam, cfg)

	for ch := 0; ch < NumChannels; ch++ {
		fam.PowerOn(regs, ch)
		u.attach(ch)
	}

	return u, nil
}

// Family returns the active family strategy. Useful for deriving register
// names at the dispatch boundary.
func (u *USART) Family() Family {
	return u.fam
}

// Validator returns the configuration validator for the wired channels.
func (u *USART) Validator() *Validator {
	return u.vld
}

// install the overrides for one channel. for the Classic family the TxData
// and RxData names resolve to the same cell, which therefore carries both a
// write and a read override
func (u *USART) attach(ch int) {
	// the baud register must exist in the 16-bit namespace before anything
	// else can look it up by name
	u.regs.Reg16(u.fam.Baud(ch))

	u.regs.Reg8(u.fam.TxData(ch)).SetOnWrite(func(data uint8) {
		u.transmit(ch, data)
	})

	u.regs.Reg8(u.fam.RxData(ch)).SetOnRead(func() uint8 {
		return u.receive(ch)
	})

	u.regs.Reg8(u.fam.Status(ch)).SetOnRead(func() uint8 {
		return u.statusPoll(ch)
	})
}

// poll raises the receive flag if the bridge is holding bytes. a channel
// that fails validation hears nothing - its receive flag never rises
func (u *USART) poll(ch int) {
	if u.vld.Validate(ch) != nil {
		return
	}

	if u.term.Available() > 0 {
		status := u.regs.Reg8(u.fam.Status(ch))
		status.RawStore(status.Raw() | FlagRxComplete)
	}
}

// the write path for the transmit data cell
func (u *USART) transmit(ch int, data uint8) {
	// the byte lands in the data cell whether or not it goes anywhere
	u.regs.Reg8(u.fam.TxData(ch)).RawStore(data)

	// the transmitter is now busy. data-register-empty rises again at a
	// later status poll
	status := u.regs.Reg8(u.fam.Status(ch))
	status.RawStore(status.Raw() &^ FlagDataRegEmpty)

	// a misconfigured channel swallows the byte. the validator has logged
	// the reason
	if u.vld.Validate(ch) != nil {
		return
	}

	if u.env.Prefs.TraceBytes.Get().(bool) {
		logger.Logf(u.env, "usart", "ch %d tx 0x%02x", ch, data)
	}

	u.term.Send(data)
}

// the read path for the status cell
func (u *USART) statusPoll(ch int) uint8 {
	// poll before any flag is tested. a single status read can legitimately
	// surface a receive transition and a transmit transition together
	u.poll(ch)

	status := u.regs.Reg8(u.fam.Status(ch))

	if u.vld.Validate(ch) == nil && status.Raw()&FlagDataRegEmpty == 0x00 {
		// the pending transmission completes at some unpredictable later
		// poll. chance is a percentage per poll
		chance := u.env.Prefs.TXCompleteChance.Get().(int)
		if u.env.Random.Intn(100) < chance {
			status.RawStore(status.Raw() | FlagTxComplete | FlagDataRegEmpty)
		}
	}

	return status.Raw()
}

// the read path for the receive data cell
func (u *USART) receive(ch int) uint8 {
	rx := u.regs.Reg8(u.fam.RxData(ch))

	// the previously received byte (or, for the Classic family, the most
	// recently written byte) is the fallback result
	data := rx.Raw()

	if u.vld.Validate(ch) != nil {
		return data
	}

	if v, ok := u.term.Recv(); ok {
		data = v
		rx.RawStore(data)

		status := u.regs.Reg8(u.fam.Status(ch))
		status.RawStore(status.Raw() &^ FlagRxComplete)

		if u.env.Prefs.TraceBytes.Get().(bool) {
			logger.Logf(u.env, "usart", "ch %d rx 0x%02x", ch, data)
		}
	}

	// a follow-on byte may already be waiting. make sure the next status
	// read sees it without an intervening poll
	u.poll(ch)

	return data
}
