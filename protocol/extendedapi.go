package protocol

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/vcerr"
)

// SendrecvRequest is the extended-api-sendrecv request body: the client
// asks the agent to forward request_body to another entity identified
// by entity_uuid, invoking the verb identified by verb_uuid, with a
// reply routed back to this client. The agent
// acknowledges with a status-only response; the forwarded reply
// arrives later as a ClientreqNotification.
type SendrecvRequest struct {
	Offset     uint32
	EntityID   uuid.UUID
	VerbID     uuid.UUID
	Body       []byte
}

const sendrecvFixedSize = uuidSize * 2

// EncodeSendrecvRequest encodes an extended-api-sendrecv request.
func EncodeSendrecvRequest(r SendrecvRequest) []byte {
	bodySize := sendrecvFixedSize + len(r.Body)
	buf := EncodeRequestHeader(RequestHeader{RequestID: RequestIDExtendedAPISendrecv, Offset: r.Offset}, bodySize)
	body := buf[RequestHeaderSize:]
	putUUID(body[0:uuidSize], r.EntityID)
	putUUID(body[uuidSize:2*uuidSize], r.VerbID)
	copy(body[sendrecvFixedSize:], r.Body)
	return buf
}

// DecodeSendrecvRequest decodes an extended-api-sendrecv request.
func DecodeSendrecvRequest(buf []byte) (*SendrecvRequest, error) {
	const op = "protocol.DecodeSendrecvRequest"
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.RequestID != RequestIDExtendedAPISendrecv {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	body := buf[RequestHeaderSize:]
	if len(body) < sendrecvFixedSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return &SendrecvRequest{
		Offset:   h.Offset,
		EntityID: getUUID(body[0:uuidSize]),
		VerbID:   getUUID(body[uuidSize : 2*uuidSize]),
		Body:     append([]byte{}, body[sendrecvFixedSize:]...),
	}, nil
}

// SendrespRequest is the extended-api-sendresp request: the client's
// answer to a previously delivered ClientreqNotification. Unlike every
// other request in this family it carries a 64-bit offset, because it
// must be able to address the larger notification offset space the
// agent hands out for pending forwarded calls.
type SendrespRequest struct {
	RequestOffset uint64
	Status        uint32
	Body          []byte
}

// sendrespHeaderSize is (request_id u32, offset u64, status u32).
const sendrespHeaderSize = 4 + 8 + 4

// EncodeSendrespRequest encodes an extended-api-sendresp request.
func EncodeSendrespRequest(r SendrespRequest) []byte {
	buf := make([]byte, sendrespHeaderSize+len(r.Body))
	binary.BigEndian.PutUint32(buf[0:4], uint32(RequestIDExtendedAPISendresp))
	binary.BigEndian.PutUint64(buf[4:12], r.RequestOffset)
	binary.BigEndian.PutUint32(buf[12:16], r.Status)
	copy(buf[sendrespHeaderSize:], r.Body)
	return buf
}

// DecodeSendrespRequest decodes an extended-api-sendresp request.
func DecodeSendrespRequest(buf []byte) (*SendrespRequest, error) {
	const op = "protocol.DecodeSendrespRequest"
	if len(buf) < sendrespHeaderSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	id := RequestID(binary.BigEndian.Uint32(buf[0:4]))
	if id != RequestIDExtendedAPISendresp {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	return &SendrespRequest{
		RequestOffset: binary.BigEndian.Uint64(buf[4:12]),
		Status:        binary.BigEndian.Uint32(buf[12:16]),
		Body:          append([]byte{}, buf[sendrespHeaderSize:]...),
	}, nil
}

// ClientreqNotification is the extended-api-clientreq message the
// agent pushes to a client unprompted: offset u64 |
// client_enc_pubkey_size u32 | client_sign_pubkey_size u32 |
// client_uuid | verb_uuid | client_enc_pubkey bytes |
// client_sign_pubkey bytes | request_body… It is not a reply to any
// request this client sent, so it has no RequestID/Status pair of its
// own beyond the fixed RequestIDExtendedAPIClientreq tag.
type ClientreqNotification struct {
	Offset             uint64
	ClientID           uuid.UUID
	VerbID             uuid.UUID
	ClientEncPublicKey []byte
	ClientSignPublicKey []byte
	Body               []byte
}

// clientreqFixedSize is (request_id u32, offset u64, enc_key_size u32,
// sign_key_size u32, client_uuid, verb_uuid).
const clientreqFixedSize = 4 + 8 + 4 + 4 + uuidSize*2

// EncodeClientreqNotification encodes an extended-api-clientreq
// notification.
func EncodeClientreqNotification(n ClientreqNotification) []byte {
	bodySize := clientreqFixedSize + len(n.ClientEncPublicKey) + len(n.ClientSignPublicKey) + len(n.Body)
	buf := make([]byte, bodySize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(RequestIDExtendedAPIClientreq))
	binary.BigEndian.PutUint64(buf[4:12], n.Offset)
	binary.BigEndian.PutUint32(buf[12:16], uint32(len(n.ClientEncPublicKey)))
	binary.BigEndian.PutUint32(buf[16:20], uint32(len(n.ClientSignPublicKey)))
	off := 20
	putUUID(buf[off:off+uuidSize], n.ClientID)
	off += uuidSize
	putUUID(buf[off:off+uuidSize], n.VerbID)
	off += uuidSize
	copy(buf[off:], n.ClientEncPublicKey)
	off += len(n.ClientEncPublicKey)
	copy(buf[off:], n.ClientSignPublicKey)
	off += len(n.ClientSignPublicKey)
	copy(buf[off:], n.Body)
	return buf
}

// DecodeClientreqNotification decodes an extended-api-clientreq
// notification.
func DecodeClientreqNotification(buf []byte) (*ClientreqNotification, error) {
	const op = "protocol.DecodeClientreqNotification"
	if len(buf) < clientreqFixedSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	id := RequestID(binary.BigEndian.Uint32(buf[0:4]))
	if id != RequestIDExtendedAPIClientreq {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	n := &ClientreqNotification{Offset: binary.BigEndian.Uint64(buf[4:12])}
	encSize := int(binary.BigEndian.Uint32(buf[12:16]))
	signSize := int(binary.BigEndian.Uint32(buf[16:20]))
	off := 20
	n.ClientID = getUUID(buf[off : off+uuidSize])
	off += uuidSize
	n.VerbID = getUUID(buf[off : off+uuidSize])
	off += uuidSize
	if off+encSize+signSize > len(buf) {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	n.ClientEncPublicKey = append([]byte{}, buf[off:off+encSize]...)
	off += encSize
	n.ClientSignPublicKey = append([]byte{}, buf[off:off+signSize]...)
	off += signSize
	n.Body = append([]byte{}, buf[off:]...)
	return n, nil
}
