// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pst_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/Subhra264/psbt-poc/pst"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

func u32(v uint32) *uint32 { return &v }

func i32(v int32) *int32 { return &v }

func amount(v int64) *btcutil.Amount {
	a := btcutil.Amount(v)
	return &a
}

func hashOf(b byte) *chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		h[i] = b
	}
	return &h
}

// minimal acceptable V2 global record
func v2Global() *pstrecord.Global {
	return &pstrecord.Global{
		TxVersion:        i32(2),
		FallbackLocktime: u32(0),
	}
}

// V2 input spending output index of the transaction tagged b
func v2Input(b byte, index uint32) *pstrecord.Input {
	return &pstrecord.Input{
		PreviousTxId: hashOf(b),
		OutputIndex:  u32(index),
	}
}

// V2 output paying value to a one byte script
func v2Output(value int64, script byte) *pstrecord.Output {
	return &pstrecord.Output{
		Amount: amount(value),
		Script: pstrecord.Script{script},
	}
}

// V0 global with an embedded unsigned transaction of one input
// (outpoint tag 0xaa index 1, sequence as given) and one output
func v0Global(sequence uint32) *pstrecord.Global {
	tx := wire.NewMsgTx(2)
	txIn := wire.NewTxIn(wire.NewOutPoint(hashOf(0xaa), 1), nil, nil)
	txIn.Sequence = sequence
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))
	return &pstrecord.Global{UnsignedTx: tx}
}

// build a valid one input, one output V0 container
func makeV0(t *testing.T) *pst.Pst {
	t.Helper()
	p, err := pst.FromRecords(version.V0, v0Global(0xfffffffd), []*pstrecord.Input{{}}, []*pstrecord.Output{{}})
	if nil != err {
		t.Fatalf("from records error: %s", err)
	}
	return p
}

// build a valid one input, one output V2 container
func makeV2(t *testing.T) *pst.Pst {
	t.Helper()
	p, err := pst.FromRecords(version.V2, v2Global(),
		[]*pstrecord.Input{v2Input(0xaa, 1)},
		[]*pstrecord.Output{v2Output(1000, 0x51)})
	if nil != err {
		t.Fatalf("from records error: %s", err)
	}
	return p
}
