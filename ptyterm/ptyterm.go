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

package ptyterm

import (
	"os"

	"github.com/hostavr/avrsim/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// sentinel error returned by the Open() function.
const FailedOpen = "ptyterm: %v"

// Bridge is the connection between the simulated peripherals and the host
// side pseudo-terminal. The zero value is an inert bridge: every operation
// is a no-op until Open() succeeds.
//
// Once opened, the master descriptor is never recreated for the life of the
// process.
type Bridge struct {
	pty *os.File
	tty *os.File

	// the file descriptor of the master side. File.Fd() puts the descriptor
	// back into blocking mode so the raw descriptor is retrieved once, made
	// non-blocking, and used for all subsequent IO
	fd int

	path string
}

// Open allocates the pseudo-terminal pair. The slave side line discipline is
// made raw so bytes pass through the terminal unmangled (and, importantly,
// are not echoed straight back at the master).
func (b *Bridge) Open() error {
	if b.pty != nil {
		return curated.Errorf(FailedOpen, "bridge is already open")
	}

	pty, tty, err := termios.Pty()
	if err != nil {
		return curated.Errorf(FailedOpen, err)
	}

	// raw line discipline on the slave side
	var attr unix.Termios
	if err := termios.Tcgetattr(tty.Fd(), &attr); err != nil {
		pty.Close()
		tty.Close()
		return curated.Errorf(FailedOpen, err)
	}
	termios.Cfmakeraw(&attr)
	if err := termios.Tcsetattr(tty.Fd(), termios.TCIFLUSH, &attr); err != nil {
		pty.Close()
		tty.Close()
		return curated.Errorf(FailedOpen, err)
	}

	fd := int(pty.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		pty.Close()
		tty.Close()
		return curated.Errorf(FailedOpen, err)
	}

	b.pty = pty
	b.tty = tty
	b.fd = fd
	b.path = tty.Name()

	return nil
}

// Path returns the slave device path for an external harness to open. The
// empty string if the bridge is not open.
func (b *Bridge) Path() string {
	return b.path
}

// Available returns the count of unread bytes ready on the master side. Zero
// if there are none or if the bridge is inert.
func (b *Bridge) Available() int {
	if b.pty == nil {
		return 0
	}

	// TIOCINQ is the input-queue count ioctl (FIONREAD on other platforms)
	n, err := unix.IoctlGetInt(b.fd, unix.TIOCINQ)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Recv removes and returns exactly one byte from the master side. The second
// return value is false if no byte is available.
func (b *Bridge) Recv() (uint8, bool) {
	if b.pty == nil {
		return 0, false
	}

	buf := make([]byte, 1)
	n, err := unix.Read(b.fd, buf)
	if err != nil || n != 1 {
		return 0, false
	}
	return buf[0], true
}

// Send writes exactly one byte to the master side. Best effort: a real
// asynchronous transmitter surfaces no back-pressure information at this
// level so neither does the bridge.
func (b *Bridge) Send(data uint8) {
	if b.pty == nil {
		return
	}
	_, _ = unix.Write(b.fd, []byte{data})
}

// Close releases both sides of the pseudo-terminal pair. The bridge is inert
// afterwards.
func (b *Bridge) Close() error {
	if b.pty == nil {
		return nil
	}

	err := b.pty.Close()
	if e := b.tty.Close(); err == nil {
		err = e
	}

	b.pty = nil
	b.tty = nil
	b.fd = -1
	b.path = ""

	if err != nil {
		return curated.Errorf("ptyterm: close: %v", err)
	}
	return nil
}
