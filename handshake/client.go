package handshake

import (
	"crypto/hmac"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/bytestream"
	"github.com/velopayments/vcblockchain/framing"
	"github.com/velopayments/vcblockchain/session"
	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
	"github.com/velopayments/vcblockchain/wire"
)

// Client drives the three-message client-side handshake.
// It is single-use: once it reaches Open or Failed it must not
// be reused for another handshake.
//
// The handshake's key agreement runs over the client's own long-term
// key-agreement pair (ordinarily the private encryption key of the
// client's entity private certificate, see package entitycert) rather
// than a pair generated fresh per handshake: the Handshake-Initiate
// record carries no client public key field, so the server must
// already hold it out of band (e.g. via the client's previously
// registered entity certificate) — confirmed by the original C
// library's recvresp_handshake_request, which feeds client_privkey
// straight into the key-agreement primitive with no corresponding
// public key ever sent on the wire.
type Client struct {
	conn       bytestream.ReadWriter
	opts       *suite.Options
	clientUUID uuid.UUID
	clientKeys *suite.KeyPair

	state State

	clientKeyNonce       []byte
	clientChallengeNonce []byte

	serverPublicKey      []byte
	serverChallengeNonce []byte
	sharedSecret         []byte
	agentUUID            uuid.UUID

	// ServerStatus is set by RecvResponse when the server reports a
	// non-zero status; this is the server's own protocol-level error,
	// distinct from a Go error returned by these methods.
	ServerStatus uint32
}

// NewClient constructs a Client ready to run the handshake over conn,
// using clientKeys as the client's long-term key-agreement pair.
func NewClient(conn bytestream.ReadWriter, opts *suite.Options, clientUUID uuid.UUID, clientKeys *suite.KeyPair) *Client {
	return &Client{
		conn:       conn,
		opts:       opts,
		clientUUID: clientUUID,
		clientKeys: clientKeys,
		state:      Init,
	}
}

// State returns the client's current FSM state.
func (c *Client) State() State { return c.state }

// SendInitiate draws two nonces from the suite PRNG, builds the
// Handshake-Initiate record (client UUID and the two nonces; no public
// key), and writes it as an unauthenticated typed data packet.
func (c *Client) SendInitiate() error {
	const op = "handshake.Client.SendInitiate"
	if c.state != Init {
		return vcerr.New(vcerr.InvalidArgument, op)
	}

	keyNonce, err := suite.GeneratePRNGBytes(c.opts.NonceSize)
	if err != nil {
		c.state = Failed
		return err
	}
	challengeNonce, err := suite.GeneratePRNGBytes(c.opts.NonceSize)
	if err != nil {
		c.state = Failed
		return err
	}

	msg := &initiateMessage{
		Offset:               0,
		ProtocolVersion:      ProtocolVersionDemo,
		SuiteID:              uint32(c.opts.ID),
		ClientUUID:           c.clientUUID,
		ClientKeyNonce:       keyNonce,
		ClientChallengeNonce: challengeNonce,
	}

	if err := wire.WriteDataPacket(c.conn, encodeInitiate(msg)); err != nil {
		c.state = Failed
		return err
	}

	c.clientKeyNonce = keyNonce
	c.clientChallengeNonce = challengeNonce
	c.state = AwaitingResponse
	return nil
}

// RecvResponse reads the server's Handshake-Response record, validates
// its fixed fields, and (on server success) derives the shared secret
// and verifies the server's challenge-response MAC. A non-zero server
// status is surfaced through ServerStatus without itself being a Go
// error, since server protocol errors are conveyed through the
// response status field.
func (c *Client) RecvResponse() error {
	const op = "handshake.Client.RecvResponse"
	if c.state != AwaitingResponse {
		return vcerr.New(vcerr.InvalidArgument, op)
	}

	raw, err := wire.ReadDataPacket(c.conn)
	if err != nil {
		c.state = Failed
		return err
	}

	sizes := responseSizes{
		pubKeySize: c.opts.PublicKeySize,
		nonceSize:  c.opts.NonceSize,
		macSize:    c.opts.MACSize,
	}
	resp, err := decodeResponse(raw, sizes)
	if err != nil {
		c.state = Failed
		return err
	}

	if resp.Status != 0 {
		c.ServerStatus = resp.Status
		c.state = Failed
		return nil
	}

	if resp.ProtocolVersion != ProtocolVersionDemo || resp.SuiteID != uint32(c.opts.ID) {
		c.state = Failed
		return vcerr.New(vcerr.UnexpectedValue, op)
	}

	secret, err := suite.KeyAgreement(c.clientKeys.PrivateKey, resp.ServerPublicKey, resp.ServerKeyNonce, c.clientKeyNonce)
	if err != nil {
		c.state = Failed
		return err
	}

	mac := c.opts.NewMAC(secret)
	mac.Write(resp.raw)
	mac.Write(c.clientChallengeNonce)
	expected := mac.Sum(nil)

	if !hmac.Equal(expected, resp.ServerCRHMAC) {
		c.state = Failed
		return vcerr.New(vcerr.UnexpectedValue, op)
	}

	c.serverPublicKey = resp.ServerPublicKey
	c.serverChallengeNonce = resp.ServerChallengeNonce
	c.sharedSecret = secret
	c.agentUUID = resp.AgentUUID
	c.state = AwaitingAck
	return nil
}

// ServerPublicKey returns the server's key-agreement public key, once
// RecvResponse has succeeded. The handshake's MITM defence is out of
// band: a caller must compare this against a cached trust anchor
// before trusting the returned Session; this library performs no such
// check itself.
func (c *Client) ServerPublicKey() []byte { return c.serverPublicKey }

// SendAck computes the handshake acknowledgement, writes it as the
// first authenticated packet on the connection, and returns the
// resulting open Session.
func (c *Client) SendAck() (*session.Session, error) {
	const op = "handshake.Client.SendAck"
	if c.state != AwaitingAck {
		return nil, vcerr.New(vcerr.InvalidArgument, op)
	}

	mac := c.opts.NewMAC(c.sharedSecret)
	mac.Write(c.serverChallengeNonce)
	tag := mac.Sum(nil)

	if err := framing.WriteAuthed(c.conn, session.InitialClientIV, tag, c.opts, c.sharedSecret); err != nil {
		c.state = Failed
		return nil, err
	}

	sess := session.New(c.conn, c.opts, c.sharedSecret, c.agentUUID)
	sess.ClientIV = session.InitialClientIV + 1
	sess.ServerIV = session.InitialServerIV

	c.state = Open
	return sess, nil
}

// Run drives the full three-message handshake to completion and
// returns the resulting Session. If the server reports a non-zero
// status, Run returns a nil Session, a nil error, and ServerStatus is
// set — callers must check ServerStatus after a nil/nil return.
func (c *Client) Run() (*session.Session, error) {
	if err := c.SendInitiate(); err != nil {
		return nil, err
	}
	if err := c.RecvResponse(); err != nil {
		return nil, err
	}
	if c.ServerStatus != 0 {
		return nil, nil
	}
	return c.SendAck()
}
