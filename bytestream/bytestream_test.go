package bytestream

import (
	"bytes"
	"testing"

	"github.com/velopayments/vcblockchain/vcerr"
)

func TestPipeRoundTrip(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	msg := []byte("hello blockchain agent")
	if err := a.WriteFull(msg); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(msg))
	if err := b.ReadFull(got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}

func TestPipeShortReadIsReadError(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	if err := a.WriteFull([]byte("short")); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 100)
	err := b.ReadFull(buf)
	if !vcerr.Is(err, vcerr.ReadError) {
		t.Fatalf("expected ReadError, got %v", err)
	}
}

func TestPipeCloseIsIdempotent(t *testing.T) {
	a, _ := NewPipe()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPipeWriteAfterCloseFails(t *testing.T) {
	a, _ := NewPipe()
	a.Close()
	err := a.WriteFull([]byte("x"))
	if !vcerr.Is(err, vcerr.WriteError) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}
