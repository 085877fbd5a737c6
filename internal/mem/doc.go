// Package mem encodes fixed-size scalar values into byte buffers.
//
// Arena memory carries no alignment guarantee, so values are never read
// through a typed pointer into it. Instead each value is copied in and out
// in little-endian order. The scalar's bits are reinterpreted through a local
// variable, which is always aligned.
package mem
