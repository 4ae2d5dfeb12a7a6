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

package main

import (
	"fmt"
	"os"

	"github.com/hostavr/avrsim/environment"
	"github.com/hostavr/avrsim/hardware"
	"github.com/hostavr/avrsim/logger"
	"github.com/hostavr/avrsim/modalflag"
	"github.com/hostavr/avrsim/monitor"
	"github.com/hostavr/avrsim/resources"
	"github.com/hostavr/avrsim/serialconfig"
	"github.com/hostavr/avrsim/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	config := md.AddString("config", "", "serial configuration file (JSON). default configuration if empty")
	ptyfile := md.AddString("ptyfile", "pty_slave.txt", "file to publish the pseudo-terminal path to")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	trace := md.AddBool("trace", false, "log every byte crossing the terminal bridge")
	txchance := md.AddInt("txchance", 0, "transmit completion chance per status poll (percent, 0 = default)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	cfg := serialconfig.Default()
	if *config != "" {
		f, err := os.Open(*config)
		if err != nil {
			return err
		}
		cfg, err = serialconfig.Load(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	// the empty label marks this as the main simulation in the process
	env, err := environment.NewEnvironment("", nil)
	if err != nil {
		return err
	}

	if *txchance > 0 {
		if err := env.Prefs.TXCompleteChance.Set(*txchance); err != nil {
			return err
		}
	}

	if *trace {
		if err := env.Prefs.TraceBytes.Set(true); err != nil {
			return err
		}
	}

	sim, err := hardware.NewSimulator(env, cfg)
	if err != nil {
		return err
	}
	defer sim.End()

	// publish the slave path so an external harness can find the terminal
	if sim.Path() != "" {
		pf, err := resources.JoinPath(*ptyfile)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pf, []byte(sim.Path()+"\n"), 0644); err != nil {
			return err
		}
		logger.Logf(env, "main", "pseudo-terminal at %s", sim.Path())
		fmt.Printf("pseudo-terminal: %s (published to %s)\n", sim.Path(), pf)
	}

	return monitor.NewMonitor(sim, os.Stdin, os.Stdout).Run()
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	vers, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, vers)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
