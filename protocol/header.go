package protocol

import (
	"encoding/binary"

	"github.com/velopayments/vcblockchain/vcerr"
)

// RequestHeaderSize is the size of the generic request header
// (request_id, offset), both big-endian u32.
const RequestHeaderSize = 8

// ResponseHeaderSize is the size of the generic response header
// (request_id, status, offset), each a big-endian u32 — note the
// field order differs from the request header.
const ResponseHeaderSize = 12

// RequestHeader is the (request_id, offset) pair common to every
// request.
type RequestHeader struct {
	RequestID RequestID
	Offset    uint32
}

// EncodeRequestHeader writes the generic request header into the
// first RequestHeaderSize bytes of a new buffer sized to hold header
// plus bodySize more bytes, and returns that buffer; the body starts
// at RequestHeaderSize.
func EncodeRequestHeader(h RequestHeader, bodySize int) []byte {
	buf := make([]byte, RequestHeaderSize+bodySize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(h.RequestID))
	binary.BigEndian.PutUint32(buf[4:8], h.Offset)
	return buf
}

// DecodeRequestHeader reads the generic request header from buf. buf
// must be at least RequestHeaderSize bytes.
func DecodeRequestHeader(buf []byte) (RequestHeader, error) {
	const op = "protocol.DecodeRequestHeader"
	if len(buf) < RequestHeaderSize {
		return RequestHeader{}, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return RequestHeader{
		RequestID: RequestID(binary.BigEndian.Uint32(buf[0:4])),
		Offset:    binary.BigEndian.Uint32(buf[4:8]),
	}, nil
}

// ResponseHeader is the (request_id, status, offset) triple common to
// every response.
type ResponseHeader struct {
	RequestID RequestID
	Status    uint32
	Offset    uint32
}

// EncodeResponseHeader writes the generic response header into a new
// buffer sized to hold header plus bodySize more bytes.
func EncodeResponseHeader(h ResponseHeader, bodySize int) []byte {
	buf := make([]byte, ResponseHeaderSize+bodySize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(h.RequestID))
	binary.BigEndian.PutUint32(buf[4:8], h.Status)
	binary.BigEndian.PutUint32(buf[8:12], h.Offset)
	return buf
}

// DecodeResponseHeader is the decode_resp_header helper: it
// never allocates and accepts any payload of length >= 12.
func DecodeResponseHeader(buf []byte) (ResponseHeader, error) {
	const op = "protocol.DecodeResponseHeader"
	if len(buf) < ResponseHeaderSize {
		return ResponseHeader{}, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return ResponseHeader{
		RequestID: RequestID(binary.BigEndian.Uint32(buf[0:4])),
		Status:    binary.BigEndian.Uint32(buf[4:8]),
		Offset:    binary.BigEndian.Uint32(buf[8:12]),
	}, nil
}
