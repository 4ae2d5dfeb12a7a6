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
	"github.com/hostavr/avrsim/environment"
	"github.com/hostavr/avrsim/hardware/memory/registers"
	"github.com/hostavr/avrsim/logger"
	"github.com/hostavr/avrsim/serialconfig"
)

// Validator compares live register state against the build's expected serial
// configuration. A channel that fails validation transfers nothing: writes
// are swallowed and received bytes never surface. Failure is channel-local
// and never fatal.
type Validator struct {
	env  *environment.Environment
	regs *registers.Table
	fam  Family
	cfg  serialconfig.Config
}

// NewValidator is the preferred method of initialisation for the Validator
// type.
func NewValidator(env *environment.Environment, regs *registers.Table,
	fam Family, cfg serialconfig.Config) *Validator {
	return &Validator{
		env:  env,
		regs: regs,
		fam:  fam,
		cfg:  cfg,
	}
}

// Validate returns nil if channel ch is correctly configured. The reason for
// a failed validation is added to the central log; repeated identical
// failures fold into a single log entry so per-poll validation does not
// flood the log.
func (vld *Validator) Validate(ch int) error {
	err := vld.fam.Validate(vld.regs, ch, vld.cfg)
	if err != nil {
		logger.Logf(vld.env, "usart", "%v", err)
	}
	return err
}
