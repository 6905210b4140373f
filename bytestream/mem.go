package bytestream

import (
	"bytes"
	"sync"

	"github.com/velopayments/vcblockchain/vcerr"
)

// Pipe is an in-memory ReadWriter pair used by tests in place of a real
// socket: writes to one end become reads on the other.
type Pipe struct {
	mu     sync.Mutex
	toPeer *bytes.Buffer
	peer   *Pipe

	closed bool
}

// NewPipe returns two connected in-memory endpoints: bytes written to
// a are readable from b, and vice versa.
func NewPipe() (a, b *Pipe) {
	a = &Pipe{toPeer: &bytes.Buffer{}}
	b = &Pipe{toPeer: &bytes.Buffer{}}
	a.peer = b
	b.peer = a
	return a, b
}

func (p *Pipe) ReadFull(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return vcerr.New(vcerr.ReadError, "bytestream.Pipe.ReadFull")
	}
	// This endpoint reads from the buffer the peer has written into.
	return readFull(p.peer.toPeer, buf, "bytestream.Pipe.ReadFull")
}

func (p *Pipe) WriteFull(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return vcerr.New(vcerr.WriteError, "bytestream.Pipe.WriteFull")
	}
	p.toPeer.Write(buf)
	return nil
}

func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
