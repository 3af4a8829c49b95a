package types

import (
	"fmt"
	"reflect"

	"github.com/garbleio/circuits/components"
)

// Native enumerates the Go types representable on wires. The set is closed:
// adding a width means touching this constraint, the Kind enum, and the
// scalar families on both the value and wire side.
type Native interface {
	bool | uint8 | uint16 | uint32 | uint64 | Uint128
}

// BitLen returns the width of T in bits.
func BitLen[T Native]() int {
	return New[T]().Len()
}

// NewRepr packages nodes as the wire representation of the scalar type T.
// len(nodes) must equal BitLen[T]() exactly.
func NewRepr[T Native](nodes []components.Node) (BinaryRepr, error) {
	return New[T]().ToBinaryRepr(nodes)
}

// NewArrayRepr packages nodes as the wire representation of a fixed array of
// size elements of T. len(nodes) must equal BitLen[T]()*size exactly.
func NewArrayRepr[T Native](nodes []components.Node, size int) (BinaryRepr, error) {
	if size < 1 {
		return nil, ErrEmptyArray
	}
	return NewArray[T](size).ToBinaryRepr(nodes)
}

// NewSliceRepr packages nodes as the wire representation of a dynamically
// sized sequence of T. len(nodes) must be a whole non-zero multiple of
// BitLen[T](); the result has len(nodes)/BitLen[T]() elements. On a length
// that is not a multiple of the width the reported Expected length is the
// next multiple up.
func NewSliceRepr[T Native](nodes []components.Node) (BinaryRepr, error) {
	w := BitLen[T]()
	if len(nodes) == 0 {
		return nil, ErrEmptyArray
	}
	if r := len(nodes) % w; r != 0 {
		return nil, &InvalidLengthError{Expected: len(nodes) + w - r, Actual: len(nodes)}
	}
	return NewArray[T](len(nodes) / w).ToBinaryRepr(nodes)
}

// ValueOf converts a native Go value into a Value. Supported inputs are
// bool, uint8, uint16, uint32, uint64, Uint128, any Value, and non-empty
// slices or arrays of supported inputs.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return BitValue(x), nil
	case uint8:
		return U8Value(x), nil
	case uint16:
		return U16Value(x), nil
	case uint32:
		return U32Value(x), nil
	case uint64:
		return U64Value(x), nil
	case Uint128:
		return U128Value(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil, ErrEmptyArray
		}
		elems := make([]Value, rv.Len())
		for i := range elems {
			e, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return NewArrayValue(elems)
	default:
		return nil, fmt.Errorf("types: unsupported value %T", v)
	}
}

// As narrows a Value to the native type T, failing with UnexpectedTypeError
// when the value's variant does not match.
func As[T Native](v Value) (T, error) {
	var native any
	switch x := v.(type) {
	case BitValue:
		native = bool(x)
	case U8Value:
		native = uint8(x)
	case U16Value:
		native = uint16(x)
	case U32Value:
		native = uint32(x)
	case U64Value:
		native = uint64(x)
	case U128Value:
		native = Uint128(x)
	}
	if t, ok := native.(T); ok {
		return t, nil
	}
	var zero T
	return zero, &UnexpectedTypeError{Expected: New[T](), Actual: typeOf(v)}
}

// AsSlice narrows an array value to a slice of the native type T, failing
// with UnexpectedTypeError when v is not an array or an element does not
// match.
func AsSlice[T Native](v Value) ([]T, error) {
	a, ok := v.(ArrayValue)
	if !ok {
		return nil, &UnexpectedTypeError{Expected: ArrayType(New[T](), 1), Actual: typeOf(v)}
	}
	out := make([]T, len(a))
	for i, e := range a {
		t, err := As[T](e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
