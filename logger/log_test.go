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

package logger_test

import (
	"strings"
	"testing"

	"github.com/hostavr/avrsim/logger"
	"github.com/hostavr/avrsim/test"
)

func TestLog(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "test", "this is a test")

	s := strings.Builder{}
	logger.Write(&s)
	test.ExpectEquality(t, s.String(), "test: this is a test\n")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "test", "same entry")
	logger.Log(logger.Allow, "test", "same entry")
	logger.Log(logger.Allow, "test", "same entry")

	s := strings.Builder{}
	logger.Write(&s)
	test.ExpectEquality(t, s.String(), "test: same entry (repeat x3)\n")

	// a different entry breaks the fold
	logger.Log(logger.Allow, "test", "new entry")
	s.Reset()
	logger.Tail(&s, 1)
	test.ExpectEquality(t, s.String(), "test: new entry\n")
}

type deny struct{}

func (_ deny) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	logger.Clear()

	logger.Log(deny{}, "test", "should not appear")

	s := strings.Builder{}
	logger.Write(&s)
	test.ExpectEquality(t, s.String(), "")
}

func TestEcho(t *testing.T) {
	logger.Clear()

	s := strings.Builder{}
	logger.SetEcho(&s, false)
	defer logger.SetEcho(nil, false)

	logger.Logf(logger.Allow, "test", "echo %d", 1)
	test.ExpectEquality(t, s.String(), "test: echo 1\n")
}
