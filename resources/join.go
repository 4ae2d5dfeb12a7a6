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

package resources

import (
	"os"
	"path/filepath"
)

// JoinPath joins the supplied path elements and makes sure every folder on
// the way to the final element exists. It does not otherwise touch or create
// the file.
//
// A bare filename passes through unchanged, meaning the file lands in the
// working directory. An external harness looks for the published
// pseudo-terminal path there by default.
func JoinPath(path ...string) (string, error) {
	p := filepath.Join(path...)

	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", err
		}
	}

	return p, nil
}
