package protocol

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/vcerr"
)

// EncodeStatusOnlyResponse encodes a response whose entire payload is
// the generic response header — transaction-submit, status-get, close,
// extended-api-enable and assert-latest-block-id-cancel all answer
// this way.
func EncodeStatusOnlyResponse(id RequestID, status, offset uint32) []byte {
	return EncodeResponseHeader(ResponseHeader{RequestID: id, Status: status, Offset: offset}, 0)
}

// UUIDResponse is the shape shared by every response whose success
// body is a single UUID: latest-block-id-get, block-id-get-next/prev,
// block-id-by-height-get, transaction-id-get-next/prev,
// transaction-id-get-block-id, artifact-first-txn, artifact-last-txn
// and assert-latest-block-id's eventual notification.
type UUIDResponse struct {
	Header ResponseHeader
	ID     uuid.UUID
}

// EncodeUUIDResponse encodes a successful single-UUID response.
func EncodeUUIDResponse(id RequestID, offset uint32, subject uuid.UUID) []byte {
	buf := EncodeResponseHeader(ResponseHeader{RequestID: id, Status: 0, Offset: offset}, uuidSize)
	putUUID(buf[ResponseHeaderSize:], subject)
	return buf
}

// DecodeUUIDResponse decodes a single-UUID response body. The body is
// always decoded regardless of Header.Status; callers should still
// check Header.Status before trusting ID.
func DecodeUUIDResponse(buf []byte) (*UUIDResponse, error) {
	const op = "protocol.DecodeUUIDResponse"
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		return nil, err
	}
	if len(buf) != ResponseHeaderSize+uuidSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	return &UUIDResponse{Header: h, ID: getUUID(buf[ResponseHeaderSize:])}, nil
}

// BlockResponse is the block-by-id-get success body: block_uuid |
// prev_block_uuid | next_block_uuid | first_txn_uuid | block_height u64
// | serialized_cert_size u64 | cert_bytes…
type BlockResponse struct {
	Header        ResponseHeader
	BlockID       uuid.UUID
	PrevBlockID   uuid.UUID
	NextBlockID   uuid.UUID
	FirstTxnID    uuid.UUID
	BlockHeight   uint64
	Certificate   []byte
}

const blockResponseFixedSize = uuidSize*4 + 8 + 8

// EncodeBlockResponse encodes a successful block-by-id-get response.
func EncodeBlockResponse(offset uint32, r BlockResponse) []byte {
	bodySize := blockResponseFixedSize + len(r.Certificate)
	buf := EncodeResponseHeader(ResponseHeader{RequestID: RequestIDBlockByIDGet, Status: 0, Offset: offset}, bodySize)
	body := buf[ResponseHeaderSize:]
	off := 0
	putUUID(body[off:off+uuidSize], r.BlockID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.PrevBlockID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.NextBlockID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.FirstTxnID)
	off += uuidSize
	binary.BigEndian.PutUint64(body[off:off+8], r.BlockHeight)
	off += 8
	binary.BigEndian.PutUint64(body[off:off+8], uint64(len(r.Certificate)))
	off += 8
	copy(body[off:], r.Certificate)
	return buf
}

// DecodeBlockResponse decodes a block-by-id-get response body. The
// body is always decoded regardless of Header.Status.
func DecodeBlockResponse(buf []byte) (*BlockResponse, error) {
	const op = "protocol.DecodeBlockResponse"
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		return nil, err
	}
	body := buf[ResponseHeaderSize:]
	if len(body) < blockResponseFixedSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	r := &BlockResponse{Header: h}
	off := 0
	r.BlockID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.PrevBlockID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.NextBlockID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.FirstTxnID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.BlockHeight = binary.BigEndian.Uint64(body[off : off+8])
	off += 8
	certSize := binary.BigEndian.Uint64(body[off : off+8])
	off += 8
	if uint64(len(body[off:])) != certSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	r.Certificate = append([]byte{}, body[off:]...)
	return r, nil
}

// TransactionResponse is the transaction-by-id-get success body:
// txn_uuid | prev_txn_uuid | next_txn_uuid | artifact_uuid |
// block_uuid | serialized_cert_size u64 | txn_state u32 | cert_bytes…
type TransactionResponse struct {
	Header       ResponseHeader
	TxnID        uuid.UUID
	PrevTxnID    uuid.UUID
	NextTxnID    uuid.UUID
	ArtifactID   uuid.UUID
	BlockID      uuid.UUID
	State        uint32
	Certificate  []byte
}

const transactionResponseFixedSize = uuidSize*5 + 8 + 4

// EncodeTransactionResponse encodes a successful transaction-by-id-get
// response.
func EncodeTransactionResponse(offset uint32, r TransactionResponse) []byte {
	bodySize := transactionResponseFixedSize + len(r.Certificate)
	buf := EncodeResponseHeader(ResponseHeader{RequestID: RequestIDTransactionByIDGet, Status: 0, Offset: offset}, bodySize)
	body := buf[ResponseHeaderSize:]
	off := 0
	putUUID(body[off:off+uuidSize], r.TxnID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.PrevTxnID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.NextTxnID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.ArtifactID)
	off += uuidSize
	putUUID(body[off:off+uuidSize], r.BlockID)
	off += uuidSize
	binary.BigEndian.PutUint64(body[off:off+8], uint64(len(r.Certificate)))
	off += 8
	binary.BigEndian.PutUint32(body[off:off+4], r.State)
	off += 4
	copy(body[off:], r.Certificate)
	return buf
}

// DecodeTransactionResponse decodes a transaction-by-id-get response
// body. The body is always decoded regardless of Header.Status.
func DecodeTransactionResponse(buf []byte) (*TransactionResponse, error) {
	const op = "protocol.DecodeTransactionResponse"
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		return nil, err
	}
	body := buf[ResponseHeaderSize:]
	if len(body) < transactionResponseFixedSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	r := &TransactionResponse{Header: h}
	off := 0
	r.TxnID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.PrevTxnID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.NextTxnID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.ArtifactID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	r.BlockID = getUUID(body[off : off+uuidSize])
	off += uuidSize
	certSize := binary.BigEndian.Uint64(body[off : off+8])
	off += 8
	r.State = binary.BigEndian.Uint32(body[off : off+4])
	off += 4
	if uint64(len(body[off:])) != certSize {
		return nil, vcerr.New(vcerr.UnexpectedPayloadSize, op)
	}
	r.Certificate = append([]byte{}, body[off:]...)
	return r, nil
}
