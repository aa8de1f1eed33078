// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

// convert a version into JSON
func (version Version) MarshalText() ([]byte, error) {
	return toString(version)
}

// convert a version string to a version enumeration value from JSON
func (version *Version) UnmarshalText(s []byte) error {
	v, err := fromString(string(s))
	if nil != err {
		return err
	}
	*version = v
	return nil
}
