package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ByteOrder reads and appends fixed-width integers
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Order maps an endian name to its byte order. The empty name means little.
func Order(name string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown endian %q (want little or big)", name)
}

// Uint reads a size-byte unsigned integer from the front of buf.
// size must be 1, 2, 4 or 8 and buf must hold at least size bytes.
func Uint(buf []byte, size int, order ByteOrder) uint64 {
	switch size {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	}
	panic(fmt.Sprintf("wire: unsupported integer size %d", size))
}

// AppendUint appends v as a size-byte unsigned integer
func AppendUint(buf []byte, v uint64, size int, order ByteOrder) []byte {
	switch size {
	case 1:
		return append(buf, byte(v))
	case 2:
		return order.AppendUint16(buf, uint16(v))
	case 4:
		return order.AppendUint32(buf, uint32(v))
	case 8:
		return order.AppendUint64(buf, v)
	}
	panic(fmt.Sprintf("wire: unsupported integer size %d", size))
}
