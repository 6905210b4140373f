// Package framing implements the authenticated boxed-packet
// codec: encrypt-then-MAC records keyed by a shared secret and a
// 64-bit IV that the caller (the session package) is responsible for
// advancing exactly once per successful call.
package framing

import (
	"crypto/hmac"
	"encoding/binary"

	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
)

// authedPacketType is the boxed packet's own type tag, distinct
// from the typed-framing tags in package wire: this value identifies
// the record at the encrypted-framing layer, before a handshake peer
// has any notion of wire.Type.
const authedPacketType uint32 = 0x30

// MaxPayloadSize bounds a single authenticated packet's payload, so a
// malformed length field can't force an unbounded allocation.
const MaxPayloadSize = 250 * 1024 * 1024

const headerSize = 8

// Writer is the minimal transport surface WriteAuthed needs;
// bytestream.ReadWriter satisfies it.
type Writer interface {
	WriteFull(buf []byte) error
}

// Reader is the minimal transport surface ReadAuthed needs.
type Reader interface {
	ReadFull(buf []byte) error
}

// WriteAuthed encrypts and MACs payload as a boxed packet at the given
// IV and writes it to w. secret must be opts.SharedSecretSize bytes.
func WriteAuthed(w Writer, iv uint64, payload []byte, opts *suite.Options, secret []byte) error {
	const op = "framing.WriteAuthed"

	if len(payload) > MaxPayloadSize {
		return vcerr.New(vcerr.InvalidArgument, op)
	}
	if len(secret) != opts.SharedSecretSize {
		return vcerr.New(vcerr.InvalidArgument, op)
	}

	stream, err := opts.NewStream(secret)
	if err != nil {
		return vcerr.Wrap(vcerr.CryptoFailure, op, err)
	}

	packet := make([]byte, headerSize+opts.MACSize+len(payload))

	plainHeader := make([]byte, headerSize)
	binary.BigEndian.PutUint32(plainHeader[0:4], authedPacketType)
	binary.BigEndian.PutUint32(plainHeader[4:8], uint32(len(payload)))

	if err := stream.XORKeyStreamAt(iv, packet[0:headerSize], plainHeader); err != nil {
		return vcerr.Wrap(vcerr.CryptoFailure, op, err)
	}
	if len(payload) > 0 {
		if err := stream.XORKeyStreamAt(iv+headerSize, packet[headerSize+opts.MACSize:], payload); err != nil {
			return vcerr.Wrap(vcerr.CryptoFailure, op, err)
		}
	}

	mac := opts.NewMAC(secret)
	mac.Write(packet[0:headerSize])
	mac.Write(packet[headerSize+opts.MACSize:])
	tag := mac.Sum(nil)
	copy(packet[headerSize:headerSize+opts.MACSize], tag)

	if err := w.WriteFull(packet); err != nil {
		return err
	}
	return nil
}

// ReadAuthed reads one boxed packet at the given IV from r, verifies
// its MAC in constant time, and returns the decrypted payload. On any
// error no buffer is returned.
func ReadAuthed(r Reader, iv uint64, opts *suite.Options, secret []byte) ([]byte, error) {
	const op = "framing.ReadAuthed"

	if len(secret) != opts.SharedSecretSize {
		return nil, vcerr.New(vcerr.InvalidArgument, op)
	}

	header := make([]byte, headerSize+opts.MACSize)
	if err := r.ReadFull(header); err != nil {
		return nil, err
	}

	stream, err := opts.NewStream(secret)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, op, err)
	}

	plainHeader := make([]byte, headerSize)
	if err := stream.XORKeyStreamAt(iv, plainHeader, header[0:headerSize]); err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, op, err)
	}

	packetType := binary.BigEndian.Uint32(plainHeader[0:4])
	length := binary.BigEndian.Uint32(plainHeader[4:8])

	if packetType != authedPacketType || length > MaxPayloadSize {
		return nil, vcerr.New(vcerr.UnauthorizedPacket, op)
	}

	ciphertext := make([]byte, length)
	if length > 0 {
		if err := r.ReadFull(ciphertext); err != nil {
			return nil, err
		}
	}

	mac := opts.NewMAC(secret)
	mac.Write(header[0:headerSize])
	mac.Write(ciphertext)
	expected := mac.Sum(nil)

	if !hmac.Equal(expected, header[headerSize:headerSize+opts.MACSize]) {
		return nil, vcerr.New(vcerr.UnauthorizedPacket, op)
	}

	if length == 0 {
		return []byte{}, nil
	}

	cleartext := make([]byte, length)
	if err := stream.XORKeyStreamAt(iv+headerSize, cleartext, ciphertext); err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, op, err)
	}
	return cleartext, nil
}
