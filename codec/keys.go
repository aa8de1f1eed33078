// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

// key-type registries for the three map kinds
//
// the V0 and V2 registries overlap and are merged here: the codec
// parses every recognized key into its typed field regardless of the
// declared version and leaves version consistency to the validator;
// key types outside these sets are preserved verbatim as unknown

// GlobalKeyType - key types of the global map
type GlobalKeyType byte

// assigned global key types
const (
	GlobalUnsignedTx       GlobalKeyType = 0x00 // V0: network-serialized unsigned transaction
	GlobalTxVersion        GlobalKeyType = 0x02 // V2: 32-bit little endian signed
	GlobalFallbackLocktime GlobalKeyType = 0x03 // V2: 32-bit little endian unsigned
	GlobalInputCount       GlobalKeyType = 0x04 // V2: compact size, frames the input maps
	GlobalOutputCount      GlobalKeyType = 0x05 // V2: compact size, frames the output maps
	GlobalTxModifiable     GlobalKeyType = 0x06 // V2: single bitfield byte
	GlobalVersion          GlobalKeyType = 0xfb // 32-bit little endian unsigned, absent means V0
	GlobalProprietary      GlobalKeyType = 0xfc // opaque
)

// InputKeyType - key types of one input map
type InputKeyType byte

// assigned input key types
const (
	InputNonWitnessUtxo         InputKeyType = 0x00 // network-serialized previous transaction
	InputWitnessUtxo            InputKeyType = 0x01 // 64-bit little endian value then script
	InputPartialSig             InputKeyType = 0x02 // key data is the public key
	InputSighashType            InputKeyType = 0x03 // 32-bit little endian unsigned
	InputRedeemScript           InputKeyType = 0x04
	InputWitnessScript          InputKeyType = 0x05
	InputFinalScriptSig         InputKeyType = 0x07
	InputFinalWitness           InputKeyType = 0x08 // compact size count then items
	InputPreviousTxId           InputKeyType = 0x0e // V2: 32 bytes
	InputOutputIndex            InputKeyType = 0x0f // V2: 32-bit little endian unsigned
	InputSequence               InputKeyType = 0x10 // V2: 32-bit little endian unsigned
	InputRequiredTimeLocktime   InputKeyType = 0x11 // V2: 32-bit little endian unsigned
	InputRequiredHeightLocktime InputKeyType = 0x12 // V2: 32-bit little endian unsigned
	InputProprietary            InputKeyType = 0xfc // opaque
)

// OutputKeyType - key types of one output map
type OutputKeyType byte

// assigned output key types
const (
	OutputRedeemScript  OutputKeyType = 0x00
	OutputWitnessScript OutputKeyType = 0x01
	OutputAmount        OutputKeyType = 0x03 // V2: 64-bit little endian signed
	OutputScript        OutputKeyType = 0x04 // V2
	OutputProprietary   OutputKeyType = 0xfc // opaque
)
