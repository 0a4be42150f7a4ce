// Package core provides the finite-field substrate the arithmetization is
// built over: the BN254 scalar field. The field arithmetic itself is treated
// as an external collaborator (spec: the BN254 field implementation is out
// of scope), so this is a thin, generic modular-arithmetic wrapper around
// math/big rather than an optimized limb representation — every table and
// constraint in this module only ever needs Add/Sub/Mul/Inv/Equal.
package core

import (
	"fmt"
	"math/big"
)

// Field represents a prime field given by its modulus.
type Field struct {
	modulus *big.Int
}

// FieldElement is an element of a Field, always kept reduced mod the
// field's modulus.
type FieldElement struct {
	field *Field
	value *big.Int
}

// bn254ScalarModulus is the order of the BN254 elliptic curve's scalar
// field: r = 21888242871839275222246405745257275088548364400416034343698204186575808495617.
var bn254ScalarModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// BN254 is the scalar field this arithmetization is defined over.
var BN254 = &Field{modulus: new(big.Int).Set(bn254ScalarModulus)}

// NewField creates a field with the given modulus.
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// Modulus returns the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equals reports whether two fields share a modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement reduces value mod the field's modulus and wraps it.
func (f *Field) NewElement(value *big.Int) FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return FieldElement{field: f, value: normalized}
}

// NewElementFromInt64 wraps a signed integer.
func (f *Field) NewElementFromInt64(value int64) FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 wraps an unsigned integer.
func (f *Field) NewElementFromUint64(value uint64) FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// Zero returns the additive identity.
func (f *Field) Zero() FieldElement {
	return FieldElement{field: f, value: big.NewInt(0)}
}

// One returns the multiplicative identity.
func (f *Field) One() FieldElement {
	return FieldElement{field: f, value: big.NewInt(1)}
}

// Field returns the field this element belongs to.
func (fe FieldElement) Field() *Field {
	return fe.field
}

// Big returns the element's canonical representative as a big.Int.
func (fe FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Add returns fe + other.
func (fe FieldElement) Add(other FieldElement) FieldElement {
	if !fe.field.Equals(other.field) {
		panic("core: add across different fields")
	}
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value))
}

// Sub returns fe - other.
func (fe FieldElement) Sub(other FieldElement) FieldElement {
	if !fe.field.Equals(other.field) {
		panic("core: sub across different fields")
	}
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value))
}

// Neg returns -fe.
func (fe FieldElement) Neg() FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Mul returns fe * other.
func (fe FieldElement) Mul(other FieldElement) FieldElement {
	if !fe.field.Equals(other.field) {
		panic("core: mul across different fields")
	}
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value))
}

// Inv returns the multiplicative inverse of fe. It is an error to invert
// zero; callers that need "inverse, or zero if the input is zero" (the
// mvi register) should check IsZero first, as the Tracer does.
func (fe FieldElement) Inv() (FieldElement, error) {
	if fe.IsZero() {
		return FieldElement{}, fmt.Errorf("core: cannot invert zero")
	}
	inv := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if inv == nil {
		return FieldElement{}, fmt.Errorf("core: no inverse exists for %s", fe.value.String())
	}
	return fe.field.NewElement(inv), nil
}

// Equal reports value equality within the same field.
func (fe FieldElement) Equal(other FieldElement) bool {
	if fe.field == nil || other.field == nil {
		return fe.value == nil && other.value == nil
	}
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero reports whether fe is the additive identity.
func (fe FieldElement) IsZero() bool {
	return fe.value == nil || fe.value.Sign() == 0
}

// String renders the element's canonical integer representative.
func (fe FieldElement) String() string {
	if fe.value == nil {
		return "<nil>"
	}
	return fe.value.String()
}

// Bytes returns the big-endian encoding of the canonical representative.
func (fe FieldElement) Bytes() []byte {
	return fe.value.Bytes()
}
