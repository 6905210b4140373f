// Package handshake implements the client state machine: the
// three-message exchange that authenticates the server, derives the
// session's shared secret, and seeds the two directional IV counters.
package handshake

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/vcerr"
)

// State is one node of the client handshake state machine.
type State int

const (
	Init State = iota
	AwaitingResponse
	AwaitingAck
	Open
	Failed
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case AwaitingResponse:
		return "awaiting-response"
	case AwaitingAck:
		return "awaiting-ack"
	case Open:
		return "open"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request ids of the handshake. The Initiate record and the server's
// Response both carry RequestIDInitiate over typed framing; the
// acknowledgement is an authenticated packet whose payload is the bare
// MAC tag, so RequestIDAck is not written on the wire.
const (
	RequestIDInitiate uint32 = 0x00000000
	RequestIDAck      uint32 = 0x00000001
)

// ProtocolVersion values.
const (
	ProtocolVersionDemo           uint32 = 0x00000001
	ProtocolVersionForwardSecrecy uint32 = 0x00000002
)

// initiateMessage is the client->server Handshake-Initiate record.
type initiateMessage struct {
	Offset               uint32
	ProtocolVersion      uint32
	SuiteID              uint32
	ClientUUID           uuid.UUID
	ClientKeyNonce       []byte
	ClientChallengeNonce []byte
}

func encodeInitiate(m *initiateMessage) []byte {
	size := 4 + 4 + 4 + 4 + 16 + len(m.ClientKeyNonce) + len(m.ClientChallengeNonce)
	buf := make([]byte, size)
	off := 0
	binary.BigEndian.PutUint32(buf[off:], RequestIDInitiate)
	off += 4
	binary.BigEndian.PutUint32(buf[off:], m.Offset)
	off += 4
	binary.BigEndian.PutUint32(buf[off:], m.ProtocolVersion)
	off += 4
	binary.BigEndian.PutUint32(buf[off:], m.SuiteID)
	off += 4
	copy(buf[off:], m.ClientUUID[:])
	off += 16
	copy(buf[off:], m.ClientKeyNonce)
	off += len(m.ClientKeyNonce)
	copy(buf[off:], m.ClientChallengeNonce)
	return buf
}

func decodeInitiate(buf []byte, nonceSize int) (*initiateMessage, error) {
	const op = "handshake.decodeInitiate"
	minSize := 4 + 4 + 4 + 4 + 16 + nonceSize + nonceSize
	if len(buf) != minSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	off := 0
	reqID := binary.BigEndian.Uint32(buf[off:])
	off += 4
	if reqID != RequestIDInitiate {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	m := &initiateMessage{}
	m.Offset = binary.BigEndian.Uint32(buf[off:])
	off += 4
	m.ProtocolVersion = binary.BigEndian.Uint32(buf[off:])
	off += 4
	m.SuiteID = binary.BigEndian.Uint32(buf[off:])
	off += 4
	copy(m.ClientUUID[:], buf[off:off+16])
	off += 16
	m.ClientKeyNonce = append([]byte{}, buf[off:off+nonceSize]...)
	off += nonceSize
	m.ClientChallengeNonce = append([]byte{}, buf[off:off+nonceSize]...)
	return m, nil
}

// responseMessage is the server->client Handshake-Response record.
type responseMessage struct {
	Offset uint32
	Status uint32

	// The remaining fields are populated only when Status == 0.
	ProtocolVersion      uint32
	SuiteID              uint32
	AgentUUID            uuid.UUID
	ServerPublicKey      []byte
	ServerKeyNonce       []byte
	ServerChallengeNonce []byte
	ServerCRHMAC         []byte

	// raw holds the exact bytes preceding the MAC field, needed to
	// recompute the response MAC during verification.
	raw []byte
}

const responseMinSize = 4 + 4 + 4 // request_id, offset, status

func decodeResponse(buf []byte, opts responseSizes) (*responseMessage, error) {
	const op = "handshake.decodeResponse"
	if len(buf) < responseMinSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	off := 0
	reqID := binary.BigEndian.Uint32(buf[off:])
	off += 4
	if reqID != RequestIDInitiate {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	m := &responseMessage{}
	m.Offset = binary.BigEndian.Uint32(buf[off:])
	off += 4
	m.Status = binary.BigEndian.Uint32(buf[off:])
	off += 4

	if m.Status != 0 {
		return m, nil
	}

	successSize := responseMinSize + 4 + 4 + 16 + opts.pubKeySize + opts.nonceSize + opts.nonceSize + opts.macSize
	if len(buf) != successSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}

	m.raw = append([]byte{}, buf[:successSize-opts.macSize]...)

	m.ProtocolVersion = binary.BigEndian.Uint32(buf[off:])
	off += 4
	m.SuiteID = binary.BigEndian.Uint32(buf[off:])
	off += 4
	copy(m.AgentUUID[:], buf[off:off+16])
	off += 16
	m.ServerPublicKey = append([]byte{}, buf[off:off+opts.pubKeySize]...)
	off += opts.pubKeySize
	m.ServerKeyNonce = append([]byte{}, buf[off:off+opts.nonceSize]...)
	off += opts.nonceSize
	m.ServerChallengeNonce = append([]byte{}, buf[off:off+opts.nonceSize]...)
	off += opts.nonceSize
	m.ServerCRHMAC = append([]byte{}, buf[off:off+opts.macSize]...)

	return m, nil
}

type responseSizes struct {
	pubKeySize int
	nonceSize  int
	macSize    int
}
