// Package protocol implements the request/response codec keyed by a
// 32-bit request id, plus the extended-API forwarding family used to
// push unsolicited client-request notifications from agent to client.
package protocol

// RequestID identifies a request/response pair's wire schema.
type RequestID uint32

const (
	RequestIDHandshakeInitiate RequestID = 0x00000000
	RequestIDHandshakeAck      RequestID = 0x00000001

	RequestIDLatestBlockIDGet      RequestID = 0x00000002
	RequestIDTransactionSubmit     RequestID = 0x00000003
	RequestIDBlockByIDGet          RequestID = 0x00000004
	RequestIDBlockIDGetNext        RequestID = 0x00000005
	RequestIDBlockIDGetPrev        RequestID = 0x00000006
	RequestIDBlockIDByHeightGet    RequestID = 0x00000007
	RequestIDTransactionByIDGet    RequestID = 0x00000010
	RequestIDTransactionIDGetNext  RequestID = 0x00000011
	RequestIDTransactionIDGetPrev  RequestID = 0x00000012
	RequestIDTransactionIDGetBlock RequestID = 0x00000013

	RequestIDArtifactFirstTxn RequestID = 0x00000020
	RequestIDArtifactLastTxn  RequestID = 0x00000021

	RequestIDAssertLatestBlockID       RequestID = 0x00000030
	RequestIDAssertLatestBlockIDCancel RequestID = 0x00000031

	// Extended-API ids are assigned sequentially after the last core
	// request id, following the convention of growing the id space
	// upward as features are added.
	RequestIDExtendedAPIEnable   RequestID = 0x00000040
	RequestIDExtendedAPISendrecv RequestID = 0x00000041
	RequestIDExtendedAPISendresp RequestID = 0x00000042
	RequestIDExtendedAPIClientreq RequestID = 0x00000043

	RequestIDStatusGet RequestID = 0x0000A000
	RequestIDClose     RequestID = 0x0000FFFF
)

// ProtocolVersion values re-exported here for convenience; the
// authoritative definitions live in package handshake.
const (
	ProtocolVersionDemo           uint32 = 0x00000001
	ProtocolVersionForwardSecrecy uint32 = 0x00000002
)

var requestIDNames = map[RequestID]string{
	RequestIDHandshakeInitiate:          "handshake-initiate",
	RequestIDHandshakeAck:               "handshake-ack",
	RequestIDLatestBlockIDGet:           "latest-block-id-get",
	RequestIDTransactionSubmit:          "transaction-submit",
	RequestIDBlockByIDGet:               "block-by-id-get",
	RequestIDBlockIDGetNext:             "block-id-get-next",
	RequestIDBlockIDGetPrev:             "block-id-get-prev",
	RequestIDBlockIDByHeightGet:         "block-id-by-height-get",
	RequestIDTransactionByIDGet:         "transaction-by-id-get",
	RequestIDTransactionIDGetNext:       "transaction-id-get-next",
	RequestIDTransactionIDGetPrev:       "transaction-id-get-prev",
	RequestIDTransactionIDGetBlock:      "transaction-id-get-block-id",
	RequestIDArtifactFirstTxn:           "artifact-first-txn",
	RequestIDArtifactLastTxn:            "artifact-last-txn",
	RequestIDAssertLatestBlockID:        "assert-latest-block-id",
	RequestIDAssertLatestBlockIDCancel:  "assert-latest-block-id-cancel",
	RequestIDExtendedAPIEnable:          "extended-api-enable",
	RequestIDExtendedAPISendrecv:        "extended-api-sendrecv",
	RequestIDExtendedAPISendresp:        "extended-api-sendresp",
	RequestIDExtendedAPIClientreq:       "extended-api-clientreq",
	RequestIDStatusGet:                  "status-get",
	RequestIDClose:                      "close",
}

func (r RequestID) String() string {
	if name, ok := requestIDNames[r]; ok {
		return name
	}
	return "unknown-request-id"
}
