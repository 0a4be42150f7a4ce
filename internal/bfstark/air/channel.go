package air

import (
	"encoding/binary"
	"math/big"

	"github.com/bfstark/bfstark/internal/bfstark/core"
	"golang.org/x/crypto/sha3"
)

// Channel implements the Fiat-Shamir transform: a verifier's random
// challenges are derived deterministically from everything the prover
// has sent so far, by hashing the running transcript with SHA3-256. This
// mirrors the teacher codebase's proof-channel pattern, swapped from its
// generic proof-state hashing to this package's field.
type Channel struct {
	field     *core.Field
	state     []byte
	proof     [][]byte
	hashFunc  func([]byte) []byte
	nextIndex uint64
}

// NewChannel creates a Channel over field, seeded with an initial
// absorption of seed (typically a fingerprint of the full execution
// trace — see vm.TraceFingerprint).
func NewChannel(field *core.Field, seed []byte) *Channel {
	c := &Channel{
		field: field,
		hashFunc: func(b []byte) []byte {
			h := sha3.New256()
			h.Write(b)
			return h.Sum(nil)
		},
	}
	c.state = c.hashFunc(seed)
	return c
}

// Send absorbs prover-sent data into the transcript, updating the
// channel's state and recording the data in the proof log.
func (c *Channel) Send(data []byte) {
	c.proof = append(c.proof, append([]byte(nil), data...))
	c.state = c.hashFunc(append(append([]byte(nil), c.state...), data...))
}

// ReceiveFieldElement derives the next verifier challenge as a field
// element, advancing the channel's internal counter so repeated calls
// never return the same value from the same state.
func (c *Channel) ReceiveFieldElement() core.FieldElement {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], c.nextIndex)
	c.nextIndex++

	digest := c.hashFunc(append(append([]byte(nil), c.state...), counter[:]...))
	return c.field.NewElement(new(big.Int).SetBytes(digest))
}

// ReceiveFieldElements derives n independent verifier challenges.
func (c *Channel) ReceiveFieldElements(n int) []core.FieldElement {
	out := make([]core.FieldElement, n)
	for i := range out {
		out[i] = c.ReceiveFieldElement()
	}
	return out
}

// Proof returns everything sent over the channel so far, in order.
func (c *Channel) Proof() [][]byte {
	return c.proof
}
