// Package endian selects the byte order used to decode binary result files.
//
// Cell-budget files are written by Fortran programs and carry no byte-order
// marker, so the order is part of the reader configuration. Little-endian is the
// default since virtually every model build targets x86/ARM.
//
//	engine, err := endian.Parse("big")
//	if err != nil {
//	    return err
//	}
//	kstp := int32(engine.Uint32(hdr[0:4]))
package endian

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it, so readers can
// decode headers and writers can append them through the same value.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order, in which case
// float payloads could be reinterpreted without swapping.
func IsNative(engine EndianEngine) bool {
	return engine == NativeEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Parse maps a configuration value ("little", "big", "native", or empty for
// little) to an engine.
func Parse(s string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	case "native":
		return NativeEngine(), nil
	default:
		return nil, fmt.Errorf("unknown byte order: %q", s)
	}
}

// Name returns the configuration name of engine.
func Name(engine EndianEngine) string {
	if engine == binary.BigEndian {
		return "big"
	}

	return "little"
}
