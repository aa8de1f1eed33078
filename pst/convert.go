// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pst

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// ToV2 - upgrade to the per-field generation
//
// identity when already V2; otherwise each input record gains the
// outpoint and sequence of the embedded transaction's input at the
// same index, each output record gains amount and script, the global
// record gains the transaction's version and locktime, and the
// embedded transaction itself is dropped
//
// modification flags are left absent: absence already means "not
// modifiable" and the V0 source never granted any permissions
func (p *Pst) ToV2() (*Pst, error) {
	if version.V2 == p.version {
		return p, nil
	}

	tx := p.global.UnsignedTx
	if nil == tx || len(p.inputs) != len(tx.TxIn) || len(p.outputs) != len(tx.TxOut) {
		return nil, fault.ErrConversionImpossible
	}

	global := p.global.Copy()
	global.UnsignedTx = nil
	txVersion := tx.Version
	global.TxVersion = &txVersion
	fallback := tx.LockTime
	global.FallbackLocktime = &fallback

	inputs := make([]*pstrecord.Input, len(p.inputs))
	for i, in := range p.inputs {
		c := in.Copy()
		hash := tx.TxIn[i].PreviousOutPoint.Hash
		index := tx.TxIn[i].PreviousOutPoint.Index
		sequence := tx.TxIn[i].Sequence
		c.PreviousTxId = &hash
		c.OutputIndex = &index
		c.Sequence = &sequence
		inputs[i] = c
	}

	outputs := make([]*pstrecord.Output, len(p.outputs))
	for i, out := range p.outputs {
		c := out.Copy()
		amount := btcutil.Amount(tx.TxOut[i].Value)
		c.Amount = &amount
		c.Script = make(pstrecord.Script, len(tx.TxOut[i].PkScript))
		copy(c.Script, tx.TxOut[i].PkScript)
		outputs[i] = c
	}

	err := Validate(version.V2, global, inputs, outputs)
	if nil != err {
		return nil, fault.ErrConversionImpossible
	}
	return &Pst{
		version: version.V2,
		global:  global,
		inputs:  inputs,
		outputs: outputs,
	}, nil
}

// ToV0 - downgrade to the embedded-transaction generation
//
// identity when already V0; otherwise an unsigned transaction is
// synthesized from the records in positional order, so downgrading
// and re-upgrading reproduces the same input and output ordering
//
// an absent sequence is substituted with the final sequence value,
// the protocol default; the transaction locktime is the unified
// resolution of all input requirements, falling back to the global
// fallback locktime; the V2-only fields are dropped, this loss is
// expected and not an error
func (p *Pst) ToV0() (*Pst, error) {
	if version.V0 == p.version {
		return p, nil
	}

	lockTime, err := resolveLocktime(p.global, p.inputs)
	if nil != err {
		return nil, fault.ErrConversionImpossible
	}

	tx := wire.NewMsgTx(*p.global.TxVersion)
	tx.LockTime = lockTime

	inputs := make([]*pstrecord.Input, len(p.inputs))
	for i, in := range p.inputs {
		hash := *in.PreviousTxId
		txIn := wire.NewTxIn(wire.NewOutPoint(&hash, *in.OutputIndex), nil, nil)
		if nil != in.Sequence {
			txIn.Sequence = *in.Sequence
		} else {
			txIn.Sequence = wire.MaxTxInSequenceNum
		}
		tx.AddTxIn(txIn)

		c := in.Copy()
		c.PreviousTxId = nil
		c.OutputIndex = nil
		c.Sequence = nil
		c.RequiredTimeLocktime = nil
		c.RequiredHeightLocktime = nil
		inputs[i] = c
	}

	outputs := make([]*pstrecord.Output, len(p.outputs))
	for i, out := range p.outputs {
		script := make([]byte, len(out.Script))
		copy(script, out.Script)
		tx.AddTxOut(wire.NewTxOut(int64(*out.Amount), script))

		c := out.Copy()
		c.Amount = nil
		c.Script = nil
		outputs[i] = c
	}

	global := p.global.Copy()
	global.UnsignedTx = tx
	global.TxVersion = nil
	global.FallbackLocktime = nil
	global.TxModifiable = nil

	err = Validate(version.V0, global, inputs, outputs)
	if nil != err {
		return nil, fault.ErrConversionImpossible
	}
	return &Pst{
		version: version.V0,
		global:  global,
		inputs:  inputs,
		outputs: outputs,
	}, nil
}
