package wire

import (
	"encoding/binary"

	"github.com/velopayments/vcblockchain/bytestream"
	"github.com/velopayments/vcblockchain/vcerr"
)

// WriteRecord writes one typed-framing record: the 4-byte type tag,
// the 4-byte big-endian payload length, then the payload itself.
func WriteRecord(rw bytestream.ReadWriter, t Type, payload []byte) error {
	const op = "wire.WriteRecord"
	if err := checkType(t, op); err != nil {
		return err
	}
	header := make([]byte, headerSize)
	binary.BigEndian.PutUint32(header[0:4], uint32(t))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))
	if err := rw.WriteFull(header); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	return rw.WriteFull(payload)
}

// ReadRecord reads one typed-framing record and returns its type tag
// and payload. A type tag outside the closed set, or a declared length
// exceeding MaxRecordSize, is rejected before any payload bytes are
// read.
func ReadRecord(rw bytestream.ReadWriter) (Type, []byte, error) {
	const op = "wire.ReadRecord"
	header := make([]byte, headerSize)
	if err := rw.ReadFull(header); err != nil {
		return 0, nil, err
	}
	t := Type(binary.BigEndian.Uint32(header[0:4]))
	length := binary.BigEndian.Uint32(header[4:8])

	if err := checkType(t, op); err != nil {
		return 0, nil, err
	}
	if length > MaxRecordSize {
		return 0, nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	if length == 0 {
		return t, nil, nil
	}
	payload := make([]byte, length)
	if err := rw.ReadFull(payload); err != nil {
		return 0, nil, err
	}
	return t, payload, nil
}

// WriteDataPacket writes an unauthenticated typed data packet: this is
// how the handshake driver sends its Initiate and reads its Response
// message, both of which predate the shared secret that authenticated
// framing requires.
func WriteDataPacket(rw bytestream.ReadWriter, payload []byte) error {
	return WriteRecord(rw, TypeData, payload)
}

// ReadDataPacket reads an unauthenticated typed data packet and
// verifies its type tag is TypeData.
func ReadDataPacket(rw bytestream.ReadWriter) ([]byte, error) {
	const op = "wire.ReadDataPacket"
	t, payload, err := ReadRecord(rw)
	if err != nil {
		return nil, err
	}
	if t != TypeData {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	return payload, nil
}

// EncodeUint32 encodes a single uint32 as a typed scalar record.
func EncodeUint32(rw bytestream.ReadWriter, v uint32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return WriteRecord(rw, TypeUint32, buf)
}

// DecodeUint32 reads a typed scalar record and requires it tagged uint32.
func DecodeUint32(rw bytestream.ReadWriter) (uint32, error) {
	const op = "wire.DecodeUint32"
	t, payload, err := ReadRecord(rw)
	if err != nil {
		return 0, err
	}
	if t != TypeUint32 || len(payload) != 4 {
		return 0, vcerr.New(vcerr.UnexpectedValue, op)
	}
	return binary.BigEndian.Uint32(payload), nil
}

// EncodeString encodes a UTF-8 string as a typed string record.
func EncodeString(rw bytestream.ReadWriter, s string) error {
	return WriteRecord(rw, TypeString, []byte(s))
}

// DecodeString reads a typed string record.
func DecodeString(rw bytestream.ReadWriter) (string, error) {
	const op = "wire.DecodeString"
	t, payload, err := ReadRecord(rw)
	if err != nil {
		return "", err
	}
	if t != TypeString {
		return "", vcerr.New(vcerr.UnexpectedValue, op)
	}
	return string(payload), nil
}
