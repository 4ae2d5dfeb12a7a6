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

// Package monitor implements a line-oriented register monitor for the
// simulated device. It is as simple as simple can be: read a line, run the
// command, print the result. Bytes and register values can be given in any
// base understood by the strconv package (0x prefix for hexadecimal).
//
// The monitor works on the register cells through the same dispatch layer
// that firmware uses, meaning a POKE of a data register fires the installed
// overrides exactly as a firmware write would.
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hostavr/avrsim/hardware"
	"github.com/hostavr/avrsim/hardware/usart"
	"github.com/hostavr/avrsim/logger"
	"golang.org/x/term"
)

const prompt = "avrsim > "

// Monitor is a simple interactive frontend to a simulator instance.
type Monitor struct {
	sim    *hardware.Simulator
	input  io.Reader
	output io.Writer

	// the prompt is only printed when input is an interactive terminal. a
	// scripted monitor session does not want prompts interleaved with
	// command output
	interactive bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(sim *hardware.Simulator, input io.Reader, output io.Writer) *Monitor {
	mon := &Monitor{
		sim:    sim,
		input:  input,
		output: output,
	}

	if f, ok := input.(*os.File); ok {
		mon.interactive = term.IsTerminal(int(f.Fd()))
	}

	return mon
}

// Run reads and services commands until QUIT or the end of the input stream.
func (mon *Monitor) Run() error {
	scanner := bufio.NewScanner(mon.input)

	for {
		if mon.interactive {
			fmt.Fprint(mon.output, prompt)
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		if mon.service(scanner.Text()) {
			return nil
		}
	}
}

// service one command line. the returned value is true if the session should
// end
func (mon *Monitor) service(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error

	switch strings.ToUpper(fields[0]) {
	case "PEEK":
		err = mon.peek(fields[1:])
	case "POKE":
		err = mon.poke(fields[1:])
	case "TX":
		err = mon.tx(fields[1:])
	case "RX":
		err = mon.rx(fields[1:])
	case "STATUS":
		err = mon.status(fields[1:])
	case "LIST":
		mon.list()
	case "LOG":
		logger.Write(mon.output)
	case "TRACE":
		err = mon.trace(fields[1:])
	case "HELP":
		mon.help()
	case "QUIT":
		return true
	default:
		err = fmt.Errorf("unknown command: %s (try HELP)", fields[0])
	}

	if err != nil {
		fmt.Fprintf(mon.output, "* %v\n", err)
	}

	return false
}

func (mon *Monitor) help() {
	fmt.Fprint(mon.output, `PEEK <register>
POKE <register> <value>
TX <channel> <byte>
RX <channel>
STATUS <channel>
LIST
LOG
TRACE [ON|OFF]
QUIT
`)
}

// a register named in a command is resolved against the 16-bit namespace
// first. a name not present in either namespace is an 8-bit cell, consistent
// with how the firmware boundary resolves unknown names
func (mon *Monitor) is16bit(name string) bool {
	for _, n := range mon.sim.Regs.Names16() {
		if n == name {
			return true
		}
	}
	return false
}

func (mon *Monitor) peek(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("PEEK requires a register name")
	}

	name := strings.ToUpper(args[0])
	if mon.is16bit(name) {
		fmt.Fprintf(mon.output, "%s = 0x%04x\n", name, mon.sim.Regs.Reg16(name).Value())
	} else {
		fmt.Fprintf(mon.output, "%s = 0x%02x\n", name, mon.sim.Regs.Reg8(name).Value())
	}
	return nil
}

func (mon *Monitor) poke(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("POKE requires a register name and a value")
	}

	name := strings.ToUpper(args[0])
	v, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		return fmt.Errorf("POKE: %v", err)
	}

	if mon.is16bit(name) {
		mon.sim.Regs.Reg16(name).SetValue(uint16(v))
	} else {
		if v > 0xff {
			return fmt.Errorf("POKE: value too large for 8-bit register: %#x", v)
		}
		mon.sim.Regs.Reg8(name).SetValue(uint8(v))
	}
	return nil
}

func (mon *Monitor) channel(arg string) (int, error) {
	ch, err := strconv.Atoi(arg)
	if err != nil || ch < 0 || ch >= usart.NumChannels {
		return 0, fmt.Errorf("channel must be 0 to %d", usart.NumChannels-1)
	}
	return ch, nil
}

func (mon *Monitor) tx(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("TX requires a channel and a byte")
	}

	ch, err := mon.channel(args[0])
	if err != nil {
		return fmt.Errorf("TX: %v", err)
	}

	v, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return fmt.Errorf("TX: %v", err)
	}

	mon.sim.WriteTX(ch, uint8(v))
	return nil
}

func (mon *Monitor) rx(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("RX requires a channel")
	}

	ch, err := mon.channel(args[0])
	if err != nil {
		return fmt.Errorf("RX: %v", err)
	}

	fmt.Fprintf(mon.output, "0x%02x\n", mon.sim.ReadRX(ch))
	return nil
}

func (mon *Monitor) status(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("STATUS requires a channel")
	}

	ch, err := mon.channel(args[0])
	if err != nil {
		return fmt.Errorf("STATUS: %v", err)
	}

	v := mon.sim.ReadStatus(ch)

	flags := []string{}
	if v&usart.FlagRxComplete != 0 {
		flags = append(flags, "RXC")
	}
	if v&usart.FlagTxComplete != 0 {
		flags = append(flags, "TXC")
	}
	if v&usart.FlagDataRegEmpty != 0 {
		flags = append(flags, "DRE")
	}

	fmt.Fprintf(mon.output, "0x%02x %s\n", v, strings.Join(flags, " "))
	return nil
}

// byte tracing is a preference so the simulation side picks the change up
// atomically. with no argument the current setting is printed
func (mon *Monitor) trace(args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintf(mon.output, "trace = %s\n", mon.sim.Env.Prefs.TraceBytes.String())
		return nil
	case 1:
		switch strings.ToUpper(args[0]) {
		case "ON":
			return mon.sim.Env.Prefs.TraceBytes.Set(true)
		case "OFF":
			return mon.sim.Env.Prefs.TraceBytes.Set(false)
		}
	}
	return fmt.Errorf("TRACE takes ON or OFF")
}

// list every register the table knows about. raw values: listing the table
// must not disturb the simulation with read side effects
func (mon *Monitor) list() {
	for _, n := range mon.sim.Regs.Names8() {
		fmt.Fprintf(mon.output, "%s = 0x%02x\n", n, mon.sim.Regs.Reg8(n).Raw())
	}
	for _, n := range mon.sim.Regs.Names16() {
		fmt.Fprintf(mon.output, "%s = 0x%04x\n", n, mon.sim.Regs.Reg16(n).Raw())
	}
}
