package suite

import (
	"golang.org/x/crypto/chacha20"

	"github.com/velopayments/vcblockchain/vcerr"
)

// blockSize is chacha20's internal keystream block size in bytes.
const blockSize = 64

// StreamCipher produces keystream at an arbitrary byte offset. Plain
// cipher.Stream has no seek operation, so this wraps
// golang.org/x/crypto/chacha20's block-counter API (SetCounter) and
// discards the leading fraction of a block to reach byte granularity.
// This is what lets framing.WriteAuthed/ReadAuthed position the cipher
// at the session's 64-bit IV before encrypting a single boxed packet.
type StreamCipher interface {
	// XORKeyStreamAt XORs src with keystream starting at the given
	// byte offset from the start of the stream, writing the result to
	// dst. len(dst) must be >= len(src).
	XORKeyStreamAt(offset uint64, dst, src []byte) error
}

type chacha20Stream struct {
	key [32]byte
}

func newChaCha20Stream(secret []byte) (StreamCipher, error) {
	if len(secret) != 32 {
		return nil, vcerr.New(vcerr.InvalidArgument, "suite.newChaCha20Stream")
	}
	s := &chacha20Stream{}
	copy(s.key[:], secret)
	return s, nil
}

func (s *chacha20Stream) XORKeyStreamAt(offset uint64, dst, src []byte) error {
	if len(dst) < len(src) {
		return vcerr.New(vcerr.InvalidArgument, "chacha20Stream.XORKeyStreamAt")
	}
	if len(src) == 0 {
		return nil
	}

	// chacha20's nonce is fixed at zero: session keys are single-use
	// per direction for the lifetime of the connection, and the IV
	// (offset) already guarantees each byte of keystream is consumed
	// at most once.
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(s.key[:], nonce[:])
	if err != nil {
		return vcerr.Wrap(vcerr.CryptoFailure, "chacha20Stream.XORKeyStreamAt", err)
	}

	blockCounter := uint32(offset / blockSize)
	skip := int(offset % blockSize)
	c.SetCounter(blockCounter)

	if skip == 0 {
		c.XORKeyStream(dst[:len(src)], src)
		return nil
	}

	// Burn the leading `skip` bytes of this block's keystream, then
	// encrypt/decrypt the real payload starting mid-block.
	pad := make([]byte, skip+len(src))
	out := make([]byte, len(pad))
	copy(pad[skip:], src)
	c.XORKeyStream(out, pad)
	copy(dst[:len(src)], out[skip:])
	return nil
}
