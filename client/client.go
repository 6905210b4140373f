// Package client is the top-level façade: resolve, dial, handshake,
// and a method per request id, wrapping the lower-level bytestream,
// handshake, session and protocol packages into a single connection
// object.
package client

import (
	"context"
	"net"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/bytestream"
	"github.com/velopayments/vcblockchain/config"
	"github.com/velopayments/vcblockchain/entitycert"
	"github.com/velopayments/vcblockchain/handshake"
	"github.com/velopayments/vcblockchain/logging"
	"github.com/velopayments/vcblockchain/protocol"
	"github.com/velopayments/vcblockchain/resolve"
	"github.com/velopayments/vcblockchain/session"
	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
)

// Client is an open session to a blockchain agent.
type Client struct {
	sess   *session.Session
	log    *logging.Logger
	nextOffset uint32
}

// Connect resolves cfg's agent host, dials it, runs the handshake
// using privateCert's key-agreement pair, and returns an open Client.
// log may be nil.
func Connect(ctx context.Context, cfg *config.Config, clientUUID uuid.UUID, privateCert *entitycert.PrivateCert, log *logging.Logger) (*Client, error) {
	const op = "client.Connect"

	family := resolve.IPv4
	if cfg.Agent.AddressFamily == "ip6" {
		family = resolve.IPv6
	}

	resolver := &resolve.DefaultResolver{}
	addr, err := resolver.Resolve(ctx, cfg.Agent.Host, family)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.InetResolutionFailure, op, err)
	}

	dialAddr := addrWithPort(addr, cfg.Agent.Port)
	log.Info("dialing agent", logging.Fields{"addr": dialAddr})
	stream, err := bytestream.DialTCP(dialAddr, cfg.Agent.DialTimeout)
	if err != nil {
		return nil, err
	}

	return connectStream(stream, cfg, clientUUID, privateCert, log)
}

// connectStream runs the handshake over an already-established
// stream. Split out from Connect so tests can exercise it over an
// in-memory bytestream.Pipe instead of a real TCP dial.
func connectStream(stream bytestream.ReadWriter, cfg *config.Config, clientUUID uuid.UUID, privateCert *entitycert.PrivateCert, log *logging.Logger) (*Client, error) {
	const op = "client.connectStream"

	opts, err := suite.Lookup(suite.ID(cfg.Session.SuiteID))
	if err != nil {
		stream.Close()
		return nil, err
	}

	keys := privateCert.KeyAgreementPair()
	hc := handshake.NewClient(stream, opts, clientUUID, keys)

	if err := hc.SendInitiate(); err != nil {
		stream.Close()
		return nil, err
	}
	if err := hc.RecvResponse(); err != nil {
		stream.Close()
		return nil, err
	}
	if hc.State() == handshake.Failed {
		stream.Close()
		return nil, vcerr.New(vcerr.UnauthorizedPacket, op)
	}

	sess, err := hc.SendAck()
	if err != nil {
		stream.Close()
		return nil, err
	}
	log.Info("session open", logging.Fields{"agent_id": sess.AgentID.String()})

	return &Client{sess: sess, log: log}, nil
}

func addrWithPort(host string, port int) string {
	return net.JoinHostPort(host, itoa(port))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Close ends the session.
func (c *Client) Close() error {
	return c.sess.Close()
}

func (c *Client) offset() uint32 {
	o := c.nextOffset
	c.nextOffset++
	return o
}

func (c *Client) call(payload []byte) ([]byte, error) {
	if err := c.sess.SendRequest(0, payload); err != nil {
		return nil, err
	}
	return c.sess.RecvResponse()
}

// LatestBlockID returns the agent's current latest block id.
func (c *Client) LatestBlockID() (uuid.UUID, error) {
	req := protocol.EncodeHeaderOnlyRequest(protocol.RequestIDLatestBlockIDGet, c.offset())
	raw, err := c.call(req)
	if err != nil {
		return uuid.UUID{}, err
	}
	resp, err := protocol.DecodeUUIDResponse(raw)
	if err != nil {
		return uuid.UUID{}, err
	}
	if resp.Header.Status != 0 {
		return uuid.UUID{}, vcerr.New(vcerr.UnexpectedValue, "client.LatestBlockID")
	}
	return resp.ID, nil
}

// SubmitTransaction submits a signed transaction certificate.
func (c *Client) SubmitTransaction(txnID, artifactID uuid.UUID, certificate []byte) error {
	req := protocol.EncodeTransactionSubmitRequest(protocol.TransactionSubmitRequest{
		Offset:          c.offset(),
		TransactionID:   txnID,
		ArtifactID:      artifactID,
		CertificateData: certificate,
	})
	raw, err := c.call(req)
	if err != nil {
		return err
	}
	h, err := protocol.DecodeResponseHeader(raw)
	if err != nil {
		return err
	}
	if h.Status != 0 {
		return vcerr.New(vcerr.UnexpectedValue, "client.SubmitTransaction")
	}
	return nil
}

// BlockByID fetches a full block record by its UUID.
func (c *Client) BlockByID(blockID uuid.UUID) (*protocol.BlockResponse, error) {
	req := protocol.EncodeUUIDBodyRequest(protocol.RequestIDBlockByIDGet, c.offset(), blockID)
	raw, err := c.call(req)
	if err != nil {
		return nil, err
	}
	resp, err := protocol.DecodeBlockResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.Header.Status != 0 {
		return nil, vcerr.New(vcerr.UnexpectedValue, "client.BlockByID")
	}
	return resp, nil
}

// NextBlockID returns the block that follows blockID.
func (c *Client) NextBlockID(blockID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDBlockIDGetNext, blockID, "client.NextBlockID")
}

// PrevBlockID returns the block that precedes blockID.
func (c *Client) PrevBlockID(blockID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDBlockIDGetPrev, blockID, "client.PrevBlockID")
}

// BlockIDByHeight returns the UUID of the block at a given height.
func (c *Client) BlockIDByHeight(height uint64) (uuid.UUID, error) {
	req := protocol.EncodeBlockIDByHeightRequest(c.offset(), height)
	raw, err := c.call(req)
	if err != nil {
		return uuid.UUID{}, err
	}
	resp, err := protocol.DecodeUUIDResponse(raw)
	if err != nil {
		return uuid.UUID{}, err
	}
	if resp.Header.Status != 0 {
		return uuid.UUID{}, vcerr.New(vcerr.UnexpectedValue, "client.BlockIDByHeight")
	}
	return resp.ID, nil
}

// TransactionByID fetches a full transaction record by its UUID.
func (c *Client) TransactionByID(txnID uuid.UUID) (*protocol.TransactionResponse, error) {
	req := protocol.EncodeUUIDBodyRequest(protocol.RequestIDTransactionByIDGet, c.offset(), txnID)
	raw, err := c.call(req)
	if err != nil {
		return nil, err
	}
	resp, err := protocol.DecodeTransactionResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.Header.Status != 0 {
		return nil, vcerr.New(vcerr.UnexpectedValue, "client.TransactionByID")
	}
	return resp, nil
}

// NextTransactionID returns the transaction that follows txnID.
func (c *Client) NextTransactionID(txnID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDTransactionIDGetNext, txnID, "client.NextTransactionID")
}

// PrevTransactionID returns the transaction that precedes txnID.
func (c *Client) PrevTransactionID(txnID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDTransactionIDGetPrev, txnID, "client.PrevTransactionID")
}

// TransactionBlockID returns the block a transaction was recorded in.
func (c *Client) TransactionBlockID(txnID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDTransactionIDGetBlock, txnID, "client.TransactionBlockID")
}

// ArtifactFirstTransaction returns an artifact's first transaction id.
func (c *Client) ArtifactFirstTransaction(artifactID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDArtifactFirstTxn, artifactID, "client.ArtifactFirstTransaction")
}

// ArtifactLastTransaction returns an artifact's most recent transaction id.
func (c *Client) ArtifactLastTransaction(artifactID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDArtifactLastTxn, artifactID, "client.ArtifactLastTransaction")
}

func (c *Client) uuidForUUID(id protocol.RequestID, subject uuid.UUID, op string) (uuid.UUID, error) {
	req := protocol.EncodeUUIDBodyRequest(id, c.offset(), subject)
	raw, err := c.call(req)
	if err != nil {
		return uuid.UUID{}, err
	}
	resp, err := protocol.DecodeUUIDResponse(raw)
	if err != nil {
		return uuid.UUID{}, err
	}
	if resp.Header.Status != 0 {
		return uuid.UUID{}, vcerr.New(vcerr.UnexpectedValue, op)
	}
	return resp.ID, nil
}

// AssertLatestBlockID asks the agent to report when the chain tip
// advances past blockID. The call blocks on the transport until the
// agent answers or the connection is closed.
func (c *Client) AssertLatestBlockID(blockID uuid.UUID) (uuid.UUID, error) {
	return c.uuidForUUID(protocol.RequestIDAssertLatestBlockID, blockID, "client.AssertLatestBlockID")
}

// AssertLatestBlockIDCancel cancels a pending AssertLatestBlockID call.
func (c *Client) AssertLatestBlockIDCancel() error {
	req := protocol.EncodeHeaderOnlyRequest(protocol.RequestIDAssertLatestBlockIDCancel, c.offset())
	raw, err := c.call(req)
	if err != nil {
		return err
	}
	h, err := protocol.DecodeResponseHeader(raw)
	if err != nil {
		return err
	}
	if h.Status != 0 {
		return vcerr.New(vcerr.UnexpectedValue, "client.AssertLatestBlockIDCancel")
	}
	return nil
}

// Status asks the agent for a liveness acknowledgement.
func (c *Client) Status() error {
	req := protocol.EncodeHeaderOnlyRequest(protocol.RequestIDStatusGet, c.offset())
	raw, err := c.call(req)
	if err != nil {
		return err
	}
	h, err := protocol.DecodeResponseHeader(raw)
	if err != nil {
		return err
	}
	if h.Status != 0 {
		return vcerr.New(vcerr.UnexpectedValue, "client.Status")
	}
	return nil
}
