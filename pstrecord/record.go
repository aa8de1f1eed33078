// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pstrecord - the per-slot record containers of a partially
// signed transaction
//
// One Global record, one Input record per transaction input and one
// Output record per transaction output.  Every field that only one
// format generation permits is representable as absent, so the same
// record types serve both V0 and V2.  The records are plain data:
// nothing here decides whether a populated field is permitted, that is
// the validator's job.
package pstrecord

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Global - the transaction-wide record
//
// UnsignedTx is required for V0 and forbidden for V2; TxVersion and
// FallbackLocktime are the reverse; TxModifiable is V2 only and its
// absence means "not modifiable"
type Global struct {
	UnsignedTx       *wire.MsgTx `json:"unsignedTx"`       // V0: the embedded unsigned transaction
	TxVersion        *int32      `json:"txVersion"`        // V2: version of the eventual transaction
	FallbackLocktime *uint32     `json:"fallbackLocktime"` // V2: locktime when no input requires one
	TxModifiable     *Modifiable `json:"txModifiable"`     // V2: construction permission flags
	Proprietary      KeyValues   `json:"proprietary"`      // opaque, preserved verbatim
	Unknown          KeyValues   `json:"unknown"`          // opaque, preserved verbatim
}

// Input - the record for one transaction input
//
// the first block of fields is common to both generations, the second
// block is V2 only
type Input struct {
	NonWitnessUtxo *wire.MsgTx    `json:"nonWitnessUtxo"` // full previous transaction
	WitnessUtxo    *wire.TxOut    `json:"witnessUtxo"`    // just the spent output
	PartialSigs    []PartialSig   `json:"partialSigs"`    // opaque key/signature pairs
	SighashType    *uint32        `json:"sighashType"`    // signatures must commit to this
	RedeemScript   Script         `json:"redeemScript"`   // hex
	WitnessScript  Script         `json:"witnessScript"`  // hex
	FinalScriptSig Script         `json:"finalScriptSig"` // hex
	FinalWitness   wire.TxWitness `json:"finalWitness"`   // finalised witness stack
	Proprietary    KeyValues      `json:"proprietary"`    // opaque, preserved verbatim
	Unknown        KeyValues      `json:"unknown"`        // opaque, preserved verbatim

	PreviousTxId           *chainhash.Hash `json:"previousTxId"`           // V2: outpoint transaction id
	OutputIndex            *uint32         `json:"outputIndex"`            // V2: outpoint index
	Sequence               *uint32         `json:"sequence"`               // V2: optional, default is final
	RequiredTimeLocktime   *uint32         `json:"requiredTimeLocktime"`   // V2: unix time constraint
	RequiredHeightLocktime *uint32         `json:"requiredHeightLocktime"` // V2: block height constraint
}

// Output - the record for one transaction output
//
// Amount and Script are required for V2 and forbidden for V0 where
// they live in the embedded transaction's output list
type Output struct {
	RedeemScript  Script    `json:"redeemScript"`  // hex
	WitnessScript Script    `json:"witnessScript"` // hex
	Proprietary   KeyValues `json:"proprietary"`   // opaque, preserved verbatim
	Unknown       KeyValues `json:"unknown"`       // opaque, preserved verbatim

	Amount *btcutil.Amount `json:"amount"` // V2: value of this output
	Script Script          `json:"script"` // V2: spending condition script
}

// duplicate an optional scalar field
func dup[T any](p *T) *T {
	if nil == p {
		return nil
	}
	v := *p
	return &v
}

// duplicate an opaque byte field
func dupBytes(b []byte) []byte {
	if nil == b {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// duplicate a witness stack
func dupWitness(w wire.TxWitness) wire.TxWitness {
	if nil == w {
		return nil
	}
	c := make(wire.TxWitness, len(w))
	for i, item := range w {
		c[i] = dupBytes(item)
	}
	return c
}

// Copy - deep copy so a caller holding the original cannot reach
// through into a validated container
func (global *Global) Copy() *Global {
	if nil == global {
		return nil
	}
	g := &Global{
		TxVersion:        dup(global.TxVersion),
		FallbackLocktime: dup(global.FallbackLocktime),
		TxModifiable:     dup(global.TxModifiable),
		Proprietary:      global.Proprietary.Copy(),
		Unknown:          global.Unknown.Copy(),
	}
	if nil != global.UnsignedTx {
		g.UnsignedTx = global.UnsignedTx.Copy()
	}
	return g
}

// Copy - deep copy of one input record
func (in *Input) Copy() *Input {
	if nil == in {
		return nil
	}
	c := &Input{
		SighashType:            dup(in.SighashType),
		RedeemScript:           Script(dupBytes(in.RedeemScript)),
		WitnessScript:          Script(dupBytes(in.WitnessScript)),
		FinalScriptSig:         Script(dupBytes(in.FinalScriptSig)),
		FinalWitness:           dupWitness(in.FinalWitness),
		Proprietary:            in.Proprietary.Copy(),
		Unknown:                in.Unknown.Copy(),
		PreviousTxId:           dup(in.PreviousTxId),
		OutputIndex:            dup(in.OutputIndex),
		Sequence:               dup(in.Sequence),
		RequiredTimeLocktime:   dup(in.RequiredTimeLocktime),
		RequiredHeightLocktime: dup(in.RequiredHeightLocktime),
	}
	if nil != in.NonWitnessUtxo {
		c.NonWitnessUtxo = in.NonWitnessUtxo.Copy()
	}
	if nil != in.WitnessUtxo {
		c.WitnessUtxo = wire.NewTxOut(in.WitnessUtxo.Value, dupBytes(in.WitnessUtxo.PkScript))
	}
	if nil != in.PartialSigs {
		c.PartialSigs = make([]PartialSig, len(in.PartialSigs))
		for i, sig := range in.PartialSigs {
			c.PartialSigs[i] = sig.Copy()
		}
	}
	return c
}

// Copy - deep copy of one output record
func (out *Output) Copy() *Output {
	if nil == out {
		return nil
	}
	return &Output{
		RedeemScript:  Script(dupBytes(out.RedeemScript)),
		WitnessScript: Script(dupBytes(out.WitnessScript)),
		Proprietary:   out.Proprietary.Copy(),
		Unknown:       out.Unknown.Copy(),
		Amount:        dup(out.Amount),
		Script:        Script(dupBytes(out.Script)),
	}
}

// CopyInputs - deep copy of an input record list
func CopyInputs(inputs []*Input) []*Input {
	if nil == inputs {
		return nil
	}
	c := make([]*Input, len(inputs))
	for i, in := range inputs {
		c[i] = in.Copy()
	}
	return c
}

// CopyOutputs - deep copy of an output record list
func CopyOutputs(outputs []*Output) []*Output {
	if nil == outputs {
		return nil
	}
	c := make([]*Output, len(outputs))
	for i, out := range outputs {
		c[i] = out.Copy()
	}
	return c
}
