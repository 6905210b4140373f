// Package wire implements the typed framing layer: unauthenticated,
// length-prefixed typed records used only during the handshake (before
// a shared secret exists) and by low-level utility paths. Every record
// on the wire is `[type u32 big-endian][length u32 big-endian][payload]`.
package wire

import "github.com/velopayments/vcblockchain/vcerr"

// Type is one of the closed set of typed-framing tags.
type Type uint32

const (
	TypeInt8 Type = iota + 1
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeBool
	TypeString
	TypeData
	TypeAuthedPacket
	TypeBOM
	TypeEOM
)

var typeNames = map[Type]string{
	TypeInt8:         "int8",
	TypeUint8:        "uint8",
	TypeInt16:        "int16",
	TypeUint16:       "uint16",
	TypeInt32:        "int32",
	TypeUint32:       "uint32",
	TypeInt64:        "int64",
	TypeUint64:       "uint64",
	TypeBool:         "bool",
	TypeString:       "string",
	TypeData:         "data",
	TypeAuthedPacket: "authed-packet",
	TypeBOM:          "bom",
	TypeEOM:          "eom",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown-type"
}

// Valid reports whether t is one of the closed set of recognized tags.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// headerSize is the size in bytes of the [type][length] record header.
const headerSize = 8

// MaxRecordSize bounds a single typed-framing record's payload, mirroring
// the authenticated-framing 250 MiB bound so a corrupt length field
// cannot trigger an unbounded allocation.
const MaxRecordSize = 250 * 1024 * 1024

func checkType(t Type, op string) error {
	if !t.Valid() {
		return vcerr.New(vcerr.UnexpectedValue, op)
	}
	return nil
}
