package codec

import "fmt"

// Binary encoding used for points, ciphertexts and keyrings.
// Use codec.Marshal(...) and codec.Unmarshal(...) for marshaling and unmarshaling. Implementations of MarshalTo and
// UnmarshalFrom signal malformed input by panicking; the top-level functions recover and return an error instead.

// IntSize is the encoded size of integers (lengths) in bytes.
const IntSize = 4

type Marshaler interface {
	MarshalTo(target Target)
}

type MarshalerWithNilSupport interface {
	Marshaler

	// IsNil returns true if the object is nil.
	IsNil() bool
}

type Unmarshaler[T any] interface {
	UnmarshalFrom(source Source) T
}

type Codec[T any] interface {
	MarshalerWithNilSupport
	Unmarshaler[T]
}

type Target = *target
type Source = *source

// Marshals the given (non-nil) object into a byte slice.
// Panics during marshaling are recovered and returned as errors.
func Marshal(object MarshalerWithNilSupport) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("recovered panic during marshaling: %v", r)
		}
	}()

	if object == nil || object.IsNil() {
		return nil, fmt.Errorf("cannot marshal nil object")
	}
	t := &target{}
	object.MarshalTo(t)
	return t.buffer, nil
}

// Unmarshal the given byte slice using the provided unmarshaler. Panics during unmarshaling are recovered and returned
// as errors. All input bytes must be consumed, trailing data is reported as an error.
func Unmarshal[T any](data []byte, unmarshaler Unmarshaler[T]) (result T, err error) {
	src := &source{data}
	result, err = UnmarshalFromSource(src, unmarshaler)
	if err != nil {
		return result, err
	}
	if src.Available() > 0 {
		var zero T
		return zero, fmt.Errorf("unmarshaling did not consume all bytes, %d bytes remaining", src.Available())
	}
	return result, nil
}

// Read the next object of type T from the given source using the provided unmarshaler. Panics during unmarshaling are
// recovered and returned as errors. Additional data remaining in the source is not considered an error.
func UnmarshalFromSource[T any](source Source, obj Unmarshaler[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, fmt.Errorf("recovered panic while unmarshaling: %v", r)
		}
	}()
	return obj.UnmarshalFrom(source), nil
}

// Wrapper to read an object of type T from the given source using the provided unmarshaler.
func ReadObject[T any](s Source, u Unmarshaler[T]) T {
	return u.UnmarshalFrom(s)
}
