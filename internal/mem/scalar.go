package mem

import (
	"encoding/binary"
	"unsafe"
)

// Scalar is a fixed-size integer or floating-point kind.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sizeof returns the encoded size of T in bytes.
func Sizeof[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Put writes v to the start of b. b must hold at least Sizeof[T]() bytes.
func Put[T Scalar](b []byte, v T) {
	p := unsafe.Pointer(&v) //nolint:gosec // reinterpret the bits of an aligned local
	switch unsafe.Sizeof(v) {
	case 1:
		b[0] = *(*uint8)(p)
	case 2:
		binary.LittleEndian.PutUint16(b, *(*uint16)(p))
	case 4:
		binary.LittleEndian.PutUint32(b, *(*uint32)(p))
	case 8:
		binary.LittleEndian.PutUint64(b, *(*uint64)(p))
	}
}

// Get reads a T from the start of b. b must hold at least Sizeof[T]() bytes.
func Get[T Scalar](b []byte) T {
	var v T
	p := unsafe.Pointer(&v) //nolint:gosec // reinterpret the bits of an aligned local
	switch unsafe.Sizeof(v) {
	case 1:
		*(*uint8)(p) = b[0]
	case 2:
		*(*uint16)(p) = binary.LittleEndian.Uint16(b)
	case 4:
		*(*uint32)(p) = binary.LittleEndian.Uint32(b)
	case 8:
		*(*uint64)(p) = binary.LittleEndian.Uint64(b)
	}
	return v
}
