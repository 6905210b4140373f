// Package suite is the explicit, caller-constructed cryptographic suite
// abstraction replacing a hidden global crypto registry: a
// value passed around rather than a process-wide registry. It fixes
// field sizes and primitive constructors for one negotiated suite id.
//
// Suite id 1 is the only suite implemented. Suite id 2 is a recognized
// protocol-version constant (see the protocol package) reserved for a
// future forward-secrecy suite; Lookup refuses it rather than guessing
// at an unimplemented primitive set.
package suite

import (
	"crypto/ecdh"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/velopayments/vcblockchain/vcerr"
)

// ID identifies a negotiated cryptographic suite.
type ID uint32

const (
	// Suite1 is the only implemented suite: X25519 key agreement,
	// HKDF-SHA256 derivation, a ChaCha20-keystream stream cipher, and
	// an HMAC-SHA256 MAC.
	Suite1 ID = 1

	// Suite2 is reserved for a future forward-secrecy suite. It is
	// recognized as a protocol version constant but has no
	// implementation in this repo (see DESIGN.md).
	Suite2 ID = 2
)

// Options fixes the field sizes and primitive constructors for one
// suite id. A *Options is immutable after Lookup returns it.
type Options struct {
	ID ID

	SharedSecretSize int
	MACSize          int
	NonceSize        int
	PublicKeySize    int
	PrivateKeySize   int

	// NewStream returns a StreamCipher keyed by secret, ready to
	// produce keystream at any byte offset.
	NewStream func(secret []byte) (StreamCipher, error)

	// NewMAC returns a keyed HMAC-shaped hash.Hash over secret.
	NewMAC func(secret []byte) hash.Hash
}

// Lookup returns the Options for id, or an UnexpectedValue error if id
// is not a suite this repo implements.
func Lookup(id ID) (*Options, error) {
	switch id {
	case Suite1:
		return &suite1, nil
	default:
		return nil, vcerr.New(vcerr.UnexpectedValue, "suite.Lookup")
	}
}

var suite1 = Options{
	ID:               Suite1,
	SharedSecretSize: 32,
	MACSize:          32,
	NonceSize:        32,
	PublicKeySize:    32,
	PrivateKeySize:   32,
	NewStream:        newChaCha20Stream,
	NewMAC: func(secret []byte) hash.Hash {
		return hmac.New(sha256.New, secret)
	},
}

// KeyPair is an X25519 key-agreement key pair.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// GenerateKeyPair produces a fresh X25519 key pair for suite 1's key
// agreement step.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.GenerateKeyPair", err)
	}
	return &KeyPair{
		PublicKey:  priv.PublicKey().Bytes(),
		PrivateKey: priv.Bytes(),
	}, nil
}

// KeyAgreement performs X25519 ECDH between privateKey and peerPublicKey
// and derives a 32-byte shared secret via HKDF-SHA256, binding in both
// handshake nonces as salt material. This mirrors how the original C
// library folds both parties' nonces into the derived session secret.
func KeyAgreement(privateKey, peerPublicKey, serverNonce, clientNonce []byte) ([]byte, error) {
	priv, err := ecdh.X25519().NewPrivateKey(privateKey)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.KeyAgreement", err)
	}
	pub, err := ecdh.X25519().NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.KeyAgreement", err)
	}
	ecdhSecret, err := priv.ECDH(pub)
	if err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.KeyAgreement", err)
	}

	salt := make([]byte, 0, len(serverNonce)+len(clientNonce))
	salt = append(salt, serverNonce...)
	salt = append(salt, clientNonce...)

	kdf := hkdf.New(sha256.New, ecdhSecret, salt, []byte("vcblockchain session secret"))
	out := make([]byte, 32)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.KeyAgreement", err)
	}
	return out, nil
}

// GeneratePRNGBytes returns n cryptographically random bytes, used for
// handshake nonces and any other caller-visible randomness.
func GeneratePRNGBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, vcerr.Wrap(vcerr.CryptoFailure, "suite.GeneratePRNGBytes", err)
	}
	return buf, nil
}
