package bytestream

import (
	"errors"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/velopayments/vcblockchain/vcerr"
)

// TCPStream adapts a net.Conn (ordinarily a dialed TCP socket) to
// ReadWriter.
type TCPStream struct {
	conn net.Conn

	closeOnce sync.Once
	closeErr  error
}

// NewTCPStream wraps an already-connected net.Conn.
func NewTCPStream(conn net.Conn) *TCPStream {
	return &TCPStream{conn: conn}
}

// DialTCP connects to addr (a resolved "host:port" string) and returns
// a ReadWriter over the resulting socket. timeout of 0 means no dial
// deadline.
func DialTCP(addr string, timeout time.Duration) (*TCPStream, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		if isRefused(err) {
			return nil, vcerr.Wrap(vcerr.ConnectionRefused, "bytestream.DialTCP", err)
		}
		return nil, vcerr.Wrap(vcerr.SocketCreateFailed, "bytestream.DialTCP", err)
	}
	return NewTCPStream(conn), nil
}

func (t *TCPStream) ReadFull(buf []byte) error {
	return readFull(t.conn, buf, "bytestream.TCPStream.ReadFull")
}

func (t *TCPStream) WriteFull(buf []byte) error {
	return writeFull(t.conn, buf, "bytestream.TCPStream.WriteFull")
}

// Close releases the underlying socket exactly once.
func (t *TCPStream) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func isRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
