package protocol

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/vcerr"
)

const uuidSize = 16

func putUUID(buf []byte, id uuid.UUID) {
	copy(buf, id[:])
}

func getUUID(buf []byte) uuid.UUID {
	var id uuid.UUID
	copy(id[:], buf)
	return id
}

// headerOnlyRequest bodies: latest-block-id-get, status-get, close,
// extended-api-enable, assert-latest-block-id-cancel all carry no
// body beyond the generic (request_id, offset) header.

// EncodeHeaderOnlyRequest encodes a request whose entire payload is
// the generic request header.
func EncodeHeaderOnlyRequest(id RequestID, offset uint32) []byte {
	return EncodeRequestHeader(RequestHeader{RequestID: id, Offset: offset}, 0)
}

// DecodeHeaderOnlyRequest decodes a header-only request and confirms
// no trailing bytes are present.
func DecodeHeaderOnlyRequest(buf []byte, want RequestID) (RequestHeader, error) {
	const op = "protocol.DecodeHeaderOnlyRequest"
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		return RequestHeader{}, err
	}
	if h.RequestID != want {
		return RequestHeader{}, vcerr.New(vcerr.UnexpectedValue, op)
	}
	if len(buf) != RequestHeaderSize {
		return RequestHeader{}, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return h, nil
}

// uuidBodyRequest bodies: block-by-id-get, block-id-get-next,
// block-id-get-prev, transaction-by-id-get, transaction-id-get-next,
// transaction-id-get-prev, transaction-id-get-block-id,
// artifact-first-txn, artifact-last-txn, assert-latest-block-id all
// carry a single UUID body (the block/transaction/artifact id the
// caller is asking about).

// EncodeUUIDBodyRequest encodes a request whose body is a single UUID.
func EncodeUUIDBodyRequest(id RequestID, offset uint32, subject uuid.UUID) []byte {
	buf := EncodeRequestHeader(RequestHeader{RequestID: id, Offset: offset}, uuidSize)
	putUUID(buf[RequestHeaderSize:], subject)
	return buf
}

// DecodeUUIDBodyRequest decodes a single-UUID-body request.
func DecodeUUIDBodyRequest(buf []byte, want RequestID) (RequestHeader, uuid.UUID, error) {
	const op = "protocol.DecodeUUIDBodyRequest"
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		return RequestHeader{}, uuid.UUID{}, err
	}
	if h.RequestID != want {
		return RequestHeader{}, uuid.UUID{}, vcerr.New(vcerr.UnexpectedValue, op)
	}
	if len(buf) != RequestHeaderSize+uuidSize {
		return RequestHeader{}, uuid.UUID{}, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return h, getUUID(buf[RequestHeaderSize:]), nil
}

// BlockIDByHeightRequest: block-id-by-height-get's body is a u64 height.

// EncodeBlockIDByHeightRequest encodes a block-id-by-height-get request.
func EncodeBlockIDByHeightRequest(offset uint32, height uint64) []byte {
	buf := EncodeRequestHeader(RequestHeader{RequestID: RequestIDBlockIDByHeightGet, Offset: offset}, 8)
	binary.BigEndian.PutUint64(buf[RequestHeaderSize:], height)
	return buf
}

// DecodeBlockIDByHeightRequest decodes a block-id-by-height-get request.
func DecodeBlockIDByHeightRequest(buf []byte) (RequestHeader, uint64, error) {
	const op = "protocol.DecodeBlockIDByHeightRequest"
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		return RequestHeader{}, 0, err
	}
	if h.RequestID != RequestIDBlockIDByHeightGet {
		return RequestHeader{}, 0, vcerr.New(vcerr.UnexpectedValue, op)
	}
	if len(buf) != RequestHeaderSize+8 {
		return RequestHeader{}, 0, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return h, binary.BigEndian.Uint64(buf[RequestHeaderSize:]), nil
}

// TransactionSubmitRequest is the transaction-submit request body:
// txn_uuid | artifact_uuid | certificate_bytes... (the remainder of
// the payload is the opaque certificate).
type TransactionSubmitRequest struct {
	Offset          uint32
	TransactionID   uuid.UUID
	ArtifactID      uuid.UUID
	CertificateData []byte
}

const transactionSubmitFixedSize = uuidSize + uuidSize

// EncodeTransactionSubmitRequest encodes a transaction-submit request.
func EncodeTransactionSubmitRequest(r TransactionSubmitRequest) []byte {
	bodySize := transactionSubmitFixedSize + len(r.CertificateData)
	buf := EncodeRequestHeader(RequestHeader{RequestID: RequestIDTransactionSubmit, Offset: r.Offset}, bodySize)
	body := buf[RequestHeaderSize:]
	putUUID(body[0:uuidSize], r.TransactionID)
	putUUID(body[uuidSize:2*uuidSize], r.ArtifactID)
	copy(body[transactionSubmitFixedSize:], r.CertificateData)
	return buf
}

// DecodeTransactionSubmitRequest decodes a transaction-submit request.
func DecodeTransactionSubmitRequest(buf []byte) (*TransactionSubmitRequest, error) {
	const op = "protocol.DecodeTransactionSubmitRequest"
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.RequestID != RequestIDTransactionSubmit {
		return nil, vcerr.New(vcerr.UnexpectedValue, op)
	}
	body := buf[RequestHeaderSize:]
	if len(body) < transactionSubmitFixedSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return &TransactionSubmitRequest{
		Offset:          h.Offset,
		TransactionID:   getUUID(body[0:uuidSize]),
		ArtifactID:      getUUID(body[uuidSize : 2*uuidSize]),
		CertificateData: append([]byte{}, body[transactionSubmitFixedSize:]...),
	}, nil
}
