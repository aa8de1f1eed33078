// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pstrecord

// Modifiable - V2 construction permission bitfield
//
// unassigned bits are carried unchanged for forward compatibility
type Modifiable uint8

// assigned bits
const (
	ModifiableInputs        Modifiable = 0x01 // inputs may still be added
	ModifiableOutputs       Modifiable = 0x02 // outputs may still be added
	ModifiableSighashSingle Modifiable = 0x04 // a signature covers only a single input
)

// InputsModifiable - true if inputs may still be added
func (m Modifiable) InputsModifiable() bool {
	return 0 != m&ModifiableInputs
}

// OutputsModifiable - true if outputs may still be added
func (m Modifiable) OutputsModifiable() bool {
	return 0 != m&ModifiableOutputs
}

// HasSighashSingle - true if a SIGHASH_SINGLE signature is present
func (m Modifiable) HasSighashSingle() bool {
	return 0 != m&ModifiableSighashSingle
}
