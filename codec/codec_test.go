// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/Subhra264/psbt-poc/codec"
	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

func u32(v uint32) *uint32 { return &v }

func concat(parts ...[]byte) []byte {
	b := []byte{}
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

var prevHash = bytes.Repeat([]byte{0xaa}, 32)

// one input spending output 5 of prevHash, one output of 1000 to a
// single byte script
var v2Stream = concat(
	[]byte("psbt\xff"),
	// global map
	[]byte{0x01, 0x02, 0x04, 0x02, 0x00, 0x00, 0x00}, // transaction version = 2
	[]byte{0x01, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}, // fallback locktime = 0
	[]byte{0x01, 0x04, 0x01, 0x01},                   // input count = 1
	[]byte{0x01, 0x05, 0x01, 0x01},                   // output count = 1
	[]byte{0x01, 0xfb, 0x04, 0x02, 0x00, 0x00, 0x00}, // version = 2
	[]byte{0x00},
	// input map
	[]byte{0x01, 0x0e, 0x20}, prevHash, // previous txid
	[]byte{0x01, 0x0f, 0x04, 0x05, 0x00, 0x00, 0x00}, // output index = 5
	[]byte{0x00},
	// output map
	[]byte{0x01, 0x03, 0x08, 0xe8, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // amount = 1000
	[]byte{0x01, 0x04, 0x01, 0x51},                                           // script
	[]byte{0x00},
)

// the same transaction as an embedded unsigned transaction: version 1,
// 61 bytes serialized
var v0Stream = concat(
	[]byte("psbt\xff"),
	// global map: just the embedded transaction
	[]byte{0x01, 0x00, 0x3d},
	[]byte{0x01, 0x00, 0x00, 0x00}, // tx version
	[]byte{0x01}, prevHash, // one input
	[]byte{0x05, 0x00, 0x00, 0x00},                         // output index = 5
	[]byte{0x00},                                           // empty signature script
	[]byte{0xff, 0xff, 0xff, 0xff},                         // final sequence
	[]byte{0x01},                                           // one output
	[]byte{0xe8, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // value = 1000
	[]byte{0x01, 0x51},                                     // script
	[]byte{0x00, 0x00, 0x00, 0x00},                         // locktime
	[]byte{0x00},
	// empty input and output maps
	[]byte{0x00},
	[]byte{0x00},
)

func TestUnpackV2(t *testing.T) {

	ver, global, inputs, outputs, err := codec.Unpack(v2Stream)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if version.V2 != ver {
		t.Fatalf("version: %s  expected: %s", ver, version.V2)
	}
	if nil == global.TxVersion || 2 != *global.TxVersion {
		t.Errorf("transaction version: %v", global.TxVersion)
	}
	if nil == global.FallbackLocktime || 0 != *global.FallbackLocktime {
		t.Errorf("fallback locktime: %v", global.FallbackLocktime)
	}
	if nil != global.UnsignedTx {
		t.Errorf("unexpected embedded transaction")
	}

	if 1 != len(inputs) || 1 != len(outputs) {
		t.Fatalf("map counts: %d in %d out", len(inputs), len(outputs))
	}
	if nil == inputs[0].PreviousTxId || !bytes.Equal(prevHash, inputs[0].PreviousTxId[:]) {
		t.Errorf("previous txid: %v", inputs[0].PreviousTxId)
	}
	if nil == inputs[0].OutputIndex || 5 != *inputs[0].OutputIndex {
		t.Errorf("output index: %v", inputs[0].OutputIndex)
	}
	if nil == outputs[0].Amount || 1000 != int64(*outputs[0].Amount) {
		t.Errorf("amount: %v", outputs[0].Amount)
	}
	if !bytes.Equal([]byte{0x51}, outputs[0].Script) {
		t.Errorf("script: %x", outputs[0].Script)
	}

	// re-encoding a decoded stream is byte identical
	packed, err := codec.Pack(ver, global, inputs, outputs)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(v2Stream, packed) {
		t.Errorf("re-encoding differs\nactual:   %x\nexpected: %x", packed, v2Stream)
	}
}

func TestUnpackV0(t *testing.T) {

	ver, global, inputs, outputs, err := codec.Unpack(v0Stream)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if version.V0 != ver {
		t.Fatalf("version: %s  expected: %s", ver, version.V0)
	}

	tx := global.UnsignedTx
	if nil == tx {
		t.Fatal("no embedded transaction")
	}
	if 1 != tx.Version || 0 != tx.LockTime {
		t.Errorf("transaction header: version %d locktime %d", tx.Version, tx.LockTime)
	}
	if 1 != len(tx.TxIn) || 1 != len(tx.TxOut) {
		t.Fatalf("transaction shape: %d in %d out", len(tx.TxIn), len(tx.TxOut))
	}
	if !bytes.Equal(prevHash, tx.TxIn[0].PreviousOutPoint.Hash[:]) ||
		5 != tx.TxIn[0].PreviousOutPoint.Index {
		t.Errorf("outpoint: %v", tx.TxIn[0].PreviousOutPoint)
	}
	if 1000 != tx.TxOut[0].Value || !bytes.Equal([]byte{0x51}, tx.TxOut[0].PkScript) {
		t.Errorf("output: %d %x", tx.TxOut[0].Value, tx.TxOut[0].PkScript)
	}

	// the record counts are framed by the transaction
	if 1 != len(inputs) || 1 != len(outputs) {
		t.Fatalf("map counts: %d in %d out", len(inputs), len(outputs))
	}

	packed, err := codec.Pack(ver, global, inputs, outputs)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(v0Stream, packed) {
		t.Errorf("re-encoding differs\nactual:   %x\nexpected: %x", packed, v0Stream)
	}
}

// unrecognized and proprietary pairs round trip verbatim in order
func TestUnknownKeyPreservation(t *testing.T) {

	global := &pstrecord.Global{
		TxVersion:        new(int32),
		FallbackLocktime: u32(0),
		Proprietary: pstrecord.KeyValues{
			{Key: []byte{0xfc, 0x70, 0x73}, Value: []byte{0x09}},
		},
		Unknown: pstrecord.KeyValues{
			{Key: []byte{0xf0}, Value: []byte{0x01, 0x02}},
			{Key: []byte{0xe0, 0x55}, Value: []byte{}},
		},
	}
	*global.TxVersion = 2
	in := &pstrecord.Input{
		PreviousTxId: (*chainhash.Hash)(prevHash),
		OutputIndex:  u32(0),
		Unknown: pstrecord.KeyValues{
			{Key: []byte{0x7f}, Value: []byte{0xde, 0xad}},
		},
	}
	amount := btcutil.Amount(1)
	out := &pstrecord.Output{
		Amount: &amount,
		Script: pstrecord.Script{0x51},
		Proprietary: pstrecord.KeyValues{
			{Key: []byte{0xfc, 0x01}, Value: []byte{0x00}},
		},
	}

	b, err := codec.Pack(version.V2, global,
		[]*pstrecord.Input{in}, []*pstrecord.Output{out})
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	_, g2, in2, out2, err := codec.Unpack(b)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(global.Proprietary, g2.Proprietary) {
		t.Errorf("global proprietary pairs: %v  expected: %v", g2.Proprietary, global.Proprietary)
	}
	if !reflect.DeepEqual(global.Unknown, g2.Unknown) {
		t.Errorf("global unknown pairs: %v  expected: %v", g2.Unknown, global.Unknown)
	}
	if !reflect.DeepEqual(in.Unknown, in2[0].Unknown) {
		t.Errorf("input unknown pairs: %v  expected: %v", in2[0].Unknown, in.Unknown)
	}
	if !reflect.DeepEqual(out.Proprietary, out2[0].Proprietary) {
		t.Errorf("output proprietary pairs: %v  expected: %v", out2[0].Proprietary, out.Proprietary)
	}

	b2, err := codec.Pack(version.V2, g2, in2, out2)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(b, b2) {
		t.Errorf("re-encoding differs\nactual:   %x\nexpected: %x", b2, b)
	}
}

// the common signing fields round trip through one V0 input
func TestSigningFieldsRoundTrip(t *testing.T) {

	unsigned := wire.NewMsgTx(2)
	unsigned.AddTxIn(wire.NewTxIn(
		wire.NewOutPoint((*chainhash.Hash)(prevHash), 0), nil, nil))
	unsigned.AddTxOut(wire.NewTxOut(900, []byte{0x51}))
	global := &pstrecord.Global{UnsignedTx: unsigned}

	prev := wire.NewMsgTx(1)
	prev.AddTxIn(wire.NewTxIn(
		wire.NewOutPoint((*chainhash.Hash)(bytes.Repeat([]byte{0xbb}, 32)), 3),
		[]byte{0x00}, nil))
	prev.AddTxOut(wire.NewTxOut(1000, []byte{0x76, 0xa9}))

	in := &pstrecord.Input{
		NonWitnessUtxo: prev,
		WitnessUtxo:    wire.NewTxOut(1000, []byte{0x00, 0x14}),
		PartialSigs: []pstrecord.PartialSig{
			{PubKey: bytes.Repeat([]byte{0x02}, 33), Signature: []byte{0x30, 0x06, 0x01}},
		},
		SighashType:    u32(1),
		RedeemScript:   pstrecord.Script{0x52},
		WitnessScript:  pstrecord.Script{0x53},
		FinalScriptSig: pstrecord.Script{0x54},
		FinalWitness:   wire.TxWitness{{0x30, 0x07}, {0x02, 0x21}},
	}

	b, err := codec.Pack(version.V0, global,
		[]*pstrecord.Input{in}, []*pstrecord.Output{{}})
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	_, _, in2, _, err := codec.Unpack(b)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	got := in2[0]

	if nil == got.NonWitnessUtxo ||
		1000 != got.NonWitnessUtxo.TxOut[0].Value ||
		!bytes.Equal([]byte{0x76, 0xa9}, got.NonWitnessUtxo.TxOut[0].PkScript) {
		t.Errorf("non-witness utxo: %v", got.NonWitnessUtxo)
	}
	if nil == got.WitnessUtxo ||
		1000 != got.WitnessUtxo.Value ||
		!bytes.Equal([]byte{0x00, 0x14}, got.WitnessUtxo.PkScript) {
		t.Errorf("witness utxo: %v", got.WitnessUtxo)
	}
	if !reflect.DeepEqual(in.PartialSigs, got.PartialSigs) {
		t.Errorf("partial signatures: %v", got.PartialSigs)
	}
	if nil == got.SighashType || 1 != *got.SighashType {
		t.Errorf("sighash type: %v", got.SighashType)
	}
	if !bytes.Equal(in.RedeemScript, got.RedeemScript) ||
		!bytes.Equal(in.WitnessScript, got.WitnessScript) ||
		!bytes.Equal(in.FinalScriptSig, got.FinalScriptSig) {
		t.Errorf("scripts: %x %x %x", got.RedeemScript, got.WitnessScript, got.FinalScriptSig)
	}
	if !reflect.DeepEqual(in.FinalWitness, got.FinalWitness) {
		t.Errorf("final witness: %v", got.FinalWitness)
	}

	// byte identity past the first encoding
	b2, err := codec.Pack(version.V0, global,
		[]*pstrecord.Input{got}, []*pstrecord.Output{{}})
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(b, b2) {
		t.Errorf("re-encoding differs\nactual:   %x\nexpected: %x", b2, b)
	}
}

func TestUnpackRejects(t *testing.T) {

	// one global map holding more distinct unknown pairs than one map
	// may carry, no sentinel needed since the limit fires first
	tooManyEntries := []byte("psbt\xff")
	for i := 0; i <= 10000; i += 1 {
		tooManyEntries = append(tooManyEntries,
			0x03, 0xe0, byte(i>>8), byte(i), 0x00)
	}

	testList := []struct {
		name string
		b    []byte
		err  error
	}{
		{"empty", []byte{}, fault.ErrInvalidMagic},
		{"bad magic", []byte("psbt\xfe\x00\x00\x00"), fault.ErrInvalidMagic},
		{"no unsigned tx", concat([]byte("psbt\xff"), []byte{0x00}), fault.ErrNoUnsignedTx},
		{"no map counts", concat([]byte("psbt\xff"),
			[]byte{0x01, 0xfb, 0x04, 0x02, 0x00, 0x00, 0x00, 0x00}), fault.ErrNoMapCounts},
		{"unsupported version", concat([]byte("psbt\xff"),
			[]byte{0x01, 0xfb, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00}), fault.ErrUnsupportedVersion},
		{"duplicate key", concat([]byte("psbt\xff"),
			[]byte{0x01, 0x02, 0x04, 0x02, 0x00, 0x00, 0x00},
			[]byte{0x01, 0x02, 0x04, 0x03, 0x00, 0x00, 0x00}), fault.ErrDuplicateKey},
		{"key too long", concat([]byte("psbt\xff"),
			[]byte{0xfd, 0xe9, 0x03}), fault.ErrKeyTooLong},
		{"value too long", concat([]byte("psbt\xff"),
			[]byte{0x01, 0x02, 0xfe, 0x01, 0x00, 0x40, 0x00}), fault.ErrValueTooLong},
		{"too many map entries", tooManyEntries, fault.ErrTooManyMapEntries},
		// v0Stream without its two empty trailing maps, then an input
		// map whose final witness declares 501 items
		{"witness overflow", concat(v0Stream[:len(v0Stream)-2],
			[]byte{0x01, 0x08, 0x03, 0xfd, 0xf5, 0x01}), fault.ErrWitnessItemOverflow},
		{"too many maps", concat([]byte("psbt\xff"),
			[]byte{0x01, 0x04, 0x03, 0xfd, 0x20, 0x4e},
			[]byte{0x01, 0x05, 0x01, 0x00},
			[]byte{0x01, 0xfb, 0x04, 0x02, 0x00, 0x00, 0x00, 0x00}), fault.ErrTooManyMaps},
		{"truncated", v2Stream[:len(v2Stream)-5], fault.ErrMalformedMap},
		{"trailing data", concat(v0Stream, []byte{0x00}), fault.ErrTrailingData},
		{"oversize", make([]byte, 8<<20+1), fault.ErrEncodingTooLarge},
	}

	for _, item := range testList {
		_, _, _, _, err := codec.Unpack(item.b)
		if item.err != err {
			t.Errorf("%s: error: %v  expected: %v", item.name, err, item.err)
		}
		if !fault.IsErrMalformed(err) && !fault.IsErrVersion(err) {
			t.Errorf("%s: unexpected error class: %v", item.name, err)
		}
	}
}

func TestTextArmor(t *testing.T) {

	s, err := codec.PackText(version.V0,
		&pstrecord.Global{UnsignedTx: decodedTx(t)}, []*pstrecord.Input{{}}, []*pstrecord.Output{{}})
	if nil != err {
		t.Fatalf("pack text error: %s", err)
	}

	ver, global, inputs, outputs, err := codec.UnpackText(s)
	if nil != err {
		t.Fatalf("unpack text error: %s", err)
	}
	if version.V0 != ver || nil == global.UnsignedTx ||
		1 != len(inputs) || 1 != len(outputs) {
		t.Errorf("armored round trip lost data")
	}

	_, _, _, _, err = codec.UnpackText("not*base64*at*all")
	if fault.ErrMalformedText != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrMalformedText)
	}
}

// the embedded transaction of v0Stream, obtained by decoding it
func decodedTx(t *testing.T) *wire.MsgTx {
	t.Helper()
	_, global, _, _, err := codec.Unpack(v0Stream)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	return global.UnsignedTx
}
