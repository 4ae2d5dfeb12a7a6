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

// Package serialconfig carries the expected serial configuration of the
// simulated board: the values the firmware is supposed to program into the
// USART registers. The configuration validator compares live register state
// against these values before permitting a byte transfer.
//
// The values are produced by the board's configuration generator and are
// opaque to the simulation engine - nothing here interprets the underlying
// device tables. They never change at runtime.
package serialconfig

import (
	"encoding/json"
	"io"

	"github.com/hostavr/avrsim/curated"
)

// FamilyLabel distinguishes the two supported USART generations.
type FamilyLabel string

// The two supported USART families. Classic is the original AVR USART with
// the single shared data register (UDRn). Mega0 is the newer generation with
// split transmit/receive data registers and pin routing through PORTMUX.
const (
	Classic FamilyLabel = "classic"
	Mega0   FamilyLabel = "mega0"
)

// sentinel errors returned when decoding a configuration.
const (
	FailedLoad    = "serialconfig: %v"
	UnknownFamily = "serialconfig: unknown family: %v"
)

// Config is the set of build-derived constants for one board.
type Config struct {
	// which register naming scheme and validation rules apply. selected once
	// at startup and uniform across all channels
	Family FamilyLabel `json:"family"`

	// target clock frequency (Hz) and baud rate from which the expected
	// baud-register value is derived
	Clock uint32 `json:"clock"`
	Baud  uint32 `json:"baud"`

	// the channel the firmware is expected to use. the simulation wires all
	// channels regardless; this value is a convenience for tooling
	Channel int `json:"usart"`

	// pin assignment. ports are single letters (A, B, C, ...), pins are bit
	// numbers within the port
	RXPort string `json:"rx_port"`
	RXPin  int    `json:"rx_pin"`
	TXPort string `json:"tx_port"`
	TXPin  int    `json:"tx_pin"`

	// pin routing check for the Mega0 family:
	//
	//	PORTMUX_USARTROUTEA &^ MuxAndMask == MuxOrMask
	MuxAndMask uint8 `json:"mux_and_mask"`
	MuxOrMask  uint8 `json:"mux_or_mask"`
}

// Default returns the configuration of the reference board: an ATmega4809
// style part at 16MHz with USART3 on PORTB (TX pin 4, RX pin 5, default pin
// routing) running at 9600 baud.
func Default() Config {
	return Config{
		Family:     Mega0,
		Clock:      16000000,
		Baud:       9600,
		Channel:    3,
		RXPort:     "B",
		RXPin:      5,
		TXPort:     "B",
		TXPin:      4,
		MuxAndMask: 0x3f,
		MuxOrMask:  0x00,
	}
}

// Load reads a configuration from a JSON document, as written by the board
// configuration generator. Fields that are absent from the document keep
// their Default() values.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	d := json.NewDecoder(r)
	if err := d.Decode(&cfg); err != nil {
		return Config{}, curated.Errorf(FailedLoad, err)
	}

	switch cfg.Family {
	case Classic:
	case Mega0:
	default:
		return Config{}, curated.Errorf(UnknownFamily, cfg.Family)
	}

	return cfg, nil
}
