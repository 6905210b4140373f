// Package bytestream is the lowest layer of the client: exact-count
// reads and writes over an opaque transport handle. It owns no
// cryptographic state and imposes no framing of its own — every layer
// above it (wire, framing) builds structure on top of ReadFull/WriteFull.
package bytestream

import (
	"io"

	"github.com/velopayments/vcblockchain/vcerr"
)

// ReadWriter is the byte-stream abstraction: read exactly N bytes,
// write exactly N bytes, and a scoped-resource Close. Implementations
// must fail with a read/write error kind on short I/O or transport
// error rather than returning a partial result.
type ReadWriter interface {
	// ReadFull reads exactly len(buf) bytes into buf, or returns a
	// read-error.
	ReadFull(buf []byte) error

	// WriteFull writes every byte of buf, or returns a write-error.
	WriteFull(buf []byte) error

	// Close releases the underlying descriptor. Safe to call more
	// than once; only the first call has effect.
	Close() error
}

// readFull is the shared exact-read helper used by every adapter: it
// wraps io.ReadFull's short-read and EOF cases in the library's own
// error kind so callers never see a bare io.Error.
func readFull(r io.Reader, buf []byte, op string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return vcerr.Wrap(vcerr.ReadError, op, err)
	}
	return nil
}

// writeFull is the shared exact-write helper: io.Writer.Write is
// already required to either write all of p or return an error, but a
// defensive short-write check keeps that contract from silently
// regressing in the underlying transport.
func writeFull(w io.Writer, buf []byte, op string) error {
	n, err := w.Write(buf)
	if err != nil {
		return vcerr.Wrap(vcerr.WriteError, op, err)
	}
	if n != len(buf) {
		return vcerr.New(vcerr.WriteError, op)
	}
	return nil
}
