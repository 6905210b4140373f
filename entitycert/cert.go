// Package entitycert parses an entity certificate
// byte stream into the UUID and key material a session needs. Fields
// are looked up by a short TLV tag id, the same lookup shape as
// vccert_parser_find_short over VCCERT_FIELD_TYPE_* tags.
package entitycert

import (
	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/secutil"
	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
)

// Tag identifies a short TLV field within a certificate record.
type Tag uint16

// The closed set of tags this parser looks up. Values mirror the
// original library's field ordering (artifact id, then public keys,
// then private keys).
const (
	TagArtifactID           Tag = 0x0008
	TagPublicEncryptionKey  Tag = 0x0010
	TagPublicSigningKey     Tag = 0x0011
	TagPrivateEncryptionKey Tag = 0x0012
	TagPrivateSigningKey    Tag = 0x0013
)

// field is one [tag u16][length u16][value] TLV record.
type field struct {
	tag   Tag
	value []byte
}

// parseFields walks buf as a flat sequence of TLV records.
func parseFields(buf []byte) (map[Tag][]byte, error) {
	const op = "entitycert.parseFields"
	fields := make(map[Tag][]byte)
	off := 0
	for off < len(buf) {
		if off+4 > len(buf) {
			return nil, vcerr.New(vcerr.InvalidArgument, op)
		}
		tag := Tag(uint16(buf[off])<<8 | uint16(buf[off+1]))
		length := int(uint16(buf[off+2])<<8 | uint16(buf[off+3]))
		off += 4
		if off+length > len(buf) {
			return nil, vcerr.New(vcerr.InvalidArgument, op)
		}
		fields[tag] = buf[off : off+length]
		off += length
	}
	return fields, nil
}

func findField(fields map[Tag][]byte, tag Tag, expectedSize int, op string) ([]byte, error) {
	value, ok := fields[tag]
	if !ok {
		return nil, vcerr.New(vcerr.InvalidArgument, op)
	}
	if len(value) != expectedSize {
		return nil, vcerr.New(vcerr.InvalidFieldSize, op)
	}
	return append([]byte{}, value...), nil
}

// PublicCert is the artifact UUID plus public encryption/signing keys
// any entity certificate carries.
type PublicCert struct {
	ArtifactID    uuid.UUID
	PublicEncKey  []byte
	PublicSignKey []byte
}

// DecodePublicCert parses buf as a public entity certificate, using
// opts to fix the expected key sizes.
func DecodePublicCert(buf []byte, opts *suite.Options) (*PublicCert, error) {
	const op = "entitycert.DecodePublicCert"
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	return decodePublicFields(fields, opts, op)
}

func decodePublicFields(fields map[Tag][]byte, opts *suite.Options, op string) (*PublicCert, error) {
	artifactID, err := findField(fields, TagArtifactID, 16, op)
	if err != nil {
		return nil, err
	}
	encKey, err := findField(fields, TagPublicEncryptionKey, opts.PublicKeySize, op)
	if err != nil {
		return nil, err
	}
	signKey, err := findField(fields, TagPublicSigningKey, opts.PublicKeySize, op)
	if err != nil {
		return nil, err
	}

	pub := &PublicCert{PublicEncKey: encKey, PublicSignKey: signKey}
	copy(pub.ArtifactID[:], artifactID)
	return pub, nil
}

// PrivateCert additionally owns the private encryption/signing keys.
// Its public-view accessor returns a borrowed pointer bounded by the
// private certificate's own lifetime.
type PrivateCert struct {
	pub            PublicCert
	privateEncKey  []byte
	privateSignKey []byte
	destroyed      bool
}

// DecodePrivateCert parses buf as a private entity certificate.
func DecodePrivateCert(buf []byte, opts *suite.Options) (*PrivateCert, error) {
	const op = "entitycert.DecodePrivateCert"
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	pub, err := decodePublicFields(fields, opts, op)
	if err != nil {
		return nil, err
	}
	privEncKey, err := findField(fields, TagPrivateEncryptionKey, opts.PrivateKeySize, op)
	if err != nil {
		return nil, err
	}
	privSignKey, err := findField(fields, TagPrivateSigningKey, opts.PrivateKeySize, op)
	if err != nil {
		return nil, err
	}

	return &PrivateCert{
		pub:            *pub,
		privateEncKey:  privEncKey,
		privateSignKey: privSignKey,
	}, nil
}

// PublicCert returns a borrowed view of the embedded public
// certificate. The returned pointer must not be used after Destroy.
func (p *PrivateCert) PublicCert() *PublicCert {
	if p.destroyed {
		return nil
	}
	return &p.pub
}

// PrivateEncryptionKey returns the certificate's private encryption key.
func (p *PrivateCert) PrivateEncryptionKey() []byte {
	if p.destroyed {
		return nil
	}
	return p.privateEncKey
}

// PrivateSigningKey returns the certificate's private signing key.
func (p *PrivateCert) PrivateSigningKey() []byte {
	if p.destroyed {
		return nil
	}
	return p.privateSignKey
}

// Destroy zeroes the certificate's private key material. Idempotent;
// after Destroy, every accessor returns nil.
func (p *PrivateCert) Destroy() {
	if p.destroyed {
		return
	}
	secutil.ZeroAll(p.privateEncKey, p.privateSignKey)
	p.destroyed = true
}

// KeyAgreementPair returns the certificate's encryption key pair as a
// *suite.KeyPair, ready to hand to handshake.NewClient.
func (p *PrivateCert) KeyAgreementPair() *suite.KeyPair {
	if p.destroyed {
		return nil
	}
	return &suite.KeyPair{
		PublicKey:  p.pub.PublicEncKey,
		PrivateKey: p.privateEncKey,
	}
}
