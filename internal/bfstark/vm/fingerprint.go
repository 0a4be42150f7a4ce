package vm

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// TraceFingerprint hashes a set of Tables into a single digest, binding
// every row of every table, so two traces can be told apart without
// comparing them row by row. pkg/bfstark exposes it as Fingerprint, and
// VerifyTrace derives its lookup challenges from it.
func TraceFingerprint(tables Tables) []byte {
	h := sha3.New256()

	writeUint64 := func(v uint64) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for _, r := range tables.Processor {
		writeUint64(r.Clk)
		h.Write(r.Ip.Bytes())
		h.Write(r.Ci.Bytes())
		h.Write(r.Ni.Bytes())
		h.Write(r.Mp.Bytes())
		h.Write(r.Mv.Bytes())
		h.Write(r.Mvi.Bytes())
	}
	for _, r := range tables.Memory {
		writeUint64(r.Clk)
		h.Write(r.Mp.Bytes())
		h.Write(r.Mv.Bytes())
	}
	for _, r := range tables.Instruction {
		h.Write(r.Ip.Bytes())
		h.Write(r.Ci.Bytes())
		h.Write(r.Ni.Bytes())
	}
	for _, r := range tables.Input {
		writeUint64(r.Clk)
		h.Write(r.Value.Bytes())
	}
	for _, r := range tables.Output {
		writeUint64(r.Clk)
		h.Write(r.Value.Bytes())
	}

	return h.Sum(nil)
}
