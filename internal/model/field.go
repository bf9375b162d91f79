package model

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Nullable is a PATCH field that tells an absent key apart from an explicit
// null. Set is true whenever the key was present; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Present returns a Nullable holding v.
func Present[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable for an explicit null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON records presence and decodes the value unless it is null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// Amount is a decimal request value, given as a JSON number or numeric string.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) *Amount {
	return &Amount{Decimal: d}
}

// UnmarshalJSON reports unparsable amounts as type errors so the decoder
// attributes them to the field.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if err := a.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{Value: jsonValueKind(data), Type: decimalType}
	}
	return nil
}

func jsonValueKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}
