package protocol

import (
	"testing"

	"github.com/velopayments/vcblockchain/vcerr"
)

func TestRequestHeaderRoundTrip(t *testing.T) {
	buf := EncodeRequestHeader(RequestHeader{RequestID: RequestIDStatusGet, Offset: 7}, 0)
	h, err := DecodeRequestHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.RequestID != RequestIDStatusGet || h.Offset != 7 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestRequestHeaderTooShort(t *testing.T) {
	_, err := DecodeRequestHeader(make([]byte, RequestHeaderSize-1))
	if !vcerr.Is(err, vcerr.UnexpectedPayloadSize) {
		t.Fatalf("expected UnexpectedPayloadSize, got %v", err)
	}
}

func TestResponseHeaderRoundTrip(t *testing.T) {
	buf := EncodeResponseHeader(ResponseHeader{RequestID: RequestIDLatestBlockIDGet, Status: 0, Offset: 3}, 0)
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.RequestID != RequestIDLatestBlockIDGet || h.Status != 0 || h.Offset != 3 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestResponseHeaderTooShort(t *testing.T) {
	_, err := DecodeResponseHeader(make([]byte, ResponseHeaderSize-1))
	if !vcerr.Is(err, vcerr.UnexpectedPayloadSize) {
		t.Fatalf("expected UnexpectedPayloadSize, got %v", err)
	}
}

// DecodeResponseHeader must accept any payload at least ResponseHeaderSize
// long, ignoring whatever trailing body bytes follow, and must not
// allocate to do so.
func TestResponseHeaderAcceptsTrailingBody(t *testing.T) {
	buf := EncodeResponseHeader(ResponseHeader{RequestID: RequestIDBlockByIDGet, Status: 0, Offset: 0}, 64)
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.RequestID != RequestIDBlockByIDGet {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestResponseHeaderNonzeroStatus(t *testing.T) {
	buf := EncodeResponseHeader(ResponseHeader{RequestID: RequestIDTransactionSubmit, Status: 1, Offset: 0}, 0)
	h, err := DecodeResponseHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.Status != 1 {
		t.Fatalf("expected status 1, got %d", h.Status)
	}
}
