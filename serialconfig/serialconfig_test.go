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

package serialconfig_test

import (
	"strings"
	"testing"

	"github.com/hostavr/avrsim/curated"
	"github.com/hostavr/avrsim/serialconfig"
	"github.com/hostavr/avrsim/test"
)

func TestLoad(t *testing.T) {
	doc := `{
		"family": "classic",
		"clock": 8000000,
		"baud": 115200,
		"usart": 0,
		"rx_port": "D", "rx_pin": 0,
		"tx_port": "D", "tx_pin": 1
	}`

	cfg, err := serialconfig.Load(strings.NewReader(doc))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, cfg.Family, serialconfig.Classic)
	test.ExpectEquality(t, cfg.Clock, uint32(8000000))
	test.ExpectEquality(t, cfg.Baud, uint32(115200))
	test.ExpectEquality(t, cfg.Channel, 0)
	test.ExpectEquality(t, cfg.RXPort, "D")
	test.ExpectEquality(t, cfg.TXPin, 1)
}

func TestLoadPartial(t *testing.T) {
	// absent fields keep their default values
	cfg, err := serialconfig.Load(strings.NewReader(`{"baud": 19200}`))
	test.DemandSuccess(t, err)

	def := serialconfig.Default()
	test.ExpectEquality(t, cfg.Baud, uint32(19200))
	test.ExpectEquality(t, cfg.Family, def.Family)
	test.ExpectEquality(t, cfg.Channel, def.Channel)
}

func TestLoadErrors(t *testing.T) {
	_, err := serialconfig.Load(strings.NewReader(`not json`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, serialconfig.FailedLoad))

	_, err = serialconfig.Load(strings.NewReader(`{"family": "xmega"}`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, serialconfig.UnknownFamily))
}
