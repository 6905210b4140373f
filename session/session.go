// Package session implements the per-connection state produced
// by a successful handshake (shared secret, directional IV counters,
// agent identity) and the send/receive helpers that wrap authenticated
// framing with IV bookkeeping.
package session

import (
	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/bytestream"
	"github.com/velopayments/vcblockchain/framing"
	"github.com/velopayments/vcblockchain/secutil"
	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
)

// InitialClientIV is the IV the handshake acknowledgement is sent with;
// after the acknowledgement the session's ClientIV is one past it.
// InitialServerIV is the ServerIV the session starts receiving at.
const (
	InitialClientIV uint64 = 0x0000_0000_0000_0001
	InitialServerIV uint64 = 0x8000_0000_0000_0001
)

// Session is a live connection's mutable state: the shared secret and
// the two IV counters are its only mutable fields, and neither is ever
// shared outside the Session that owns them.
type Session struct {
	Suite    *suite.Options
	Secret   []byte
	ClientIV uint64
	ServerIV uint64
	AgentID  uuid.UUID

	stream bytestream.ReadWriter
	closed bool
}

// New wraps an already-handshaken stream and shared secret into a
// Session ready for SendRequest/RecvResponse. Callers normally reach
// this only through handshake.Client, not directly.
func New(stream bytestream.ReadWriter, opts *suite.Options, secret []byte, agentID uuid.UUID) *Session {
	return &Session{
		Suite:    opts,
		Secret:   secret,
		ClientIV: InitialClientIV,
		ServerIV: InitialServerIV,
		AgentID:  agentID,
		stream:   stream,
	}
}

// SendRequest authenticates and writes payload using the current
// client IV, then advances it. offset is not used by the framing
// layer itself — it is already embedded in payload by the request
// codec — and is accepted here only so a caller can log/trace which
// logical request this send corresponds to.
func (s *Session) SendRequest(offset uint32, payload []byte) error {
	const op = "session.Session.SendRequest"
	if s.closed {
		return vcerr.New(vcerr.InvalidArgument, op)
	}
	if err := framing.WriteAuthed(s.stream, s.ClientIV, payload, s.Suite, s.Secret); err != nil {
		return err
	}
	s.ClientIV++
	return nil
}

// RecvResponse reads, authenticates, and decrypts the next packet
// using the current server IV, then advances it.
func (s *Session) RecvResponse() ([]byte, error) {
	const op = "session.Session.RecvResponse"
	if s.closed {
		return nil, vcerr.New(vcerr.InvalidArgument, op)
	}
	cleartext, err := framing.ReadAuthed(s.stream, s.ServerIV, s.Suite, s.Secret)
	if err != nil {
		return nil, err
	}
	s.ServerIV++
	return cleartext, nil
}

// Close tears the session down: the underlying stream is closed and
// the shared secret is zeroed. Idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	secutil.Zero(s.Secret)
	return s.stream.Close()
}
