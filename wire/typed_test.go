package wire

import (
	"bytes"
	"testing"

	"github.com/velopayments/vcblockchain/bytestream"
	"github.com/velopayments/vcblockchain/vcerr"
)

func TestDataPacketRoundTrip(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	payload := []byte("handshake initiate bytes")
	if err := WriteDataPacket(a, payload); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDataPacket(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q want %q", got, payload)
	}
}

func TestDataPacketEmptyPayload(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	if err := WriteDataPacket(a, nil); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDataPacket(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %v", got)
	}
}

func TestReadRecordRejectsUnknownType(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	// Hand-craft a record with an invalid type tag.
	header := make([]byte, 8)
	header[3] = 0xFF // type = 255, not in the closed set
	if err := a.WriteFull(header); err != nil {
		t.Fatal(err)
	}
	_, _, err := ReadRecord(b)
	if !vcerr.Is(err, vcerr.UnexpectedValue) {
		t.Fatalf("expected UnexpectedValue, got %v", err)
	}
}

func TestReadRecordRejectsOversizedLength(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	header := make([]byte, 8)
	header[3] = byte(TypeData)
	header[4] = 0xFF // absurdly large length
	header[5] = 0xFF
	header[6] = 0xFF
	header[7] = 0xFF
	if err := a.WriteFull(header); err != nil {
		t.Fatal(err)
	}
	_, _, err := ReadRecord(b)
	if !vcerr.Is(err, vcerr.UnexpectedPayloadSize) {
		t.Fatalf("expected UnexpectedPayloadSize, got %v", err)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	if err := EncodeUint32(a, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeUint32(b)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xdeadbeef {
		t.Fatalf("got %x want deadbeef", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	a, b := bytestream.NewPipe()
	defer a.Close()
	defer b.Close()

	if err := EncodeString(a, "hello"); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeString(b)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q want hello", got)
	}
}
