package util

import "encoding/binary"

// Uint64Bytes encodes val as 8 big-endian bytes.
func Uint64Bytes(val uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, val)
	return buf
}

// BytesUint64 decodes an 8-byte big-endian counter value. Anything
// shorter, including nil, decodes to zero.
func BytesUint64(buf []byte) uint64 {
	if len(buf) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(buf)
}

// Increment returns the big-endian successor of a counter value, so an
// absent value increments to 1.
func Increment(old []byte) []byte {
	return Uint64Bytes(BytesUint64(old) + 1)
}
