package entitycert

import (
	"bytes"
	"testing"

	"github.com/google/uuid"

	"github.com/velopayments/vcblockchain/suite"
	"github.com/velopayments/vcblockchain/vcerr"
)

func encodeField(buf *bytes.Buffer, tag Tag, value []byte) {
	buf.WriteByte(byte(tag >> 8))
	buf.WriteByte(byte(tag))
	length := len(value)
	buf.WriteByte(byte(length >> 8))
	buf.WriteByte(byte(length))
	buf.Write(value)
}

func buildPublicCertBytes(artifactID uuid.UUID, encKey, signKey []byte) []byte {
	var buf bytes.Buffer
	encodeField(&buf, TagArtifactID, artifactID[:])
	encodeField(&buf, TagPublicEncryptionKey, encKey)
	encodeField(&buf, TagPublicSigningKey, signKey)
	return buf.Bytes()
}

func buildPrivateCertBytes(artifactID uuid.UUID, pubEnc, pubSign, privEnc, privSign []byte) []byte {
	var buf bytes.Buffer
	encodeField(&buf, TagArtifactID, artifactID[:])
	encodeField(&buf, TagPublicEncryptionKey, pubEnc)
	encodeField(&buf, TagPublicSigningKey, pubSign)
	encodeField(&buf, TagPrivateEncryptionKey, privEnc)
	encodeField(&buf, TagPrivateSigningKey, privSign)
	return buf.Bytes()
}

func TestDecodePublicCert(t *testing.T) {
	opts, _ := suite.Lookup(suite.Suite1)
	artifactID := uuid.New()
	encKey := make([]byte, opts.PublicKeySize)
	signKey := make([]byte, opts.PublicKeySize)
	for i := range encKey {
		encKey[i] = byte(i)
		signKey[i] = byte(i + 1)
	}

	raw := buildPublicCertBytes(artifactID, encKey, signKey)
	cert, err := DecodePublicCert(raw, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cert.ArtifactID != artifactID {
		t.Fatalf("expected artifact id %v, got %v", artifactID, cert.ArtifactID)
	}
	if !bytes.Equal(cert.PublicEncKey, encKey) || !bytes.Equal(cert.PublicSignKey, signKey) {
		t.Fatal("key material mismatch")
	}
}

func TestDecodePublicCertMissingField(t *testing.T) {
	opts, _ := suite.Lookup(suite.Suite1)
	var buf bytes.Buffer
	artifactID := uuid.New()
	encodeField(&buf, TagArtifactID, artifactID[:])
	// Missing the public keys.
	_, err := DecodePublicCert(buf.Bytes(), opts)
	if !vcerr.Is(err, vcerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestDecodePublicCertWrongKeySize(t *testing.T) {
	opts, _ := suite.Lookup(suite.Suite1)
	artifactID := uuid.New()
	wrongKey := make([]byte, opts.PublicKeySize-1)
	raw := buildPublicCertBytes(artifactID, wrongKey, wrongKey)
	_, err := DecodePublicCert(raw, opts)
	if !vcerr.Is(err, vcerr.InvalidFieldSize) {
		t.Fatalf("expected InvalidFieldSize, got %v", err)
	}
}

func TestDecodePrivateCertAndPublicView(t *testing.T) {
	opts, _ := suite.Lookup(suite.Suite1)
	artifactID := uuid.New()
	pubEnc := make([]byte, opts.PublicKeySize)
	pubSign := make([]byte, opts.PublicKeySize)
	privEnc := make([]byte, opts.PrivateKeySize)
	privSign := make([]byte, opts.PrivateKeySize)
	for i := range privEnc {
		privEnc[i] = byte(i + 10)
		privSign[i] = byte(i + 20)
	}

	raw := buildPrivateCertBytes(artifactID, pubEnc, pubSign, privEnc, privSign)
	cert, err := DecodePrivateCert(raw, opts)
	if err != nil {
		t.Fatal(err)
	}

	pub := cert.PublicCert()
	if pub.ArtifactID != artifactID {
		t.Fatal("public view artifact id mismatch")
	}
	if !bytes.Equal(cert.PrivateEncryptionKey(), privEnc) {
		t.Fatal("private encryption key mismatch")
	}

	cert.Destroy()
	if cert.PublicCert() != nil {
		t.Fatal("expected nil public view after Destroy")
	}
	if cert.PrivateEncryptionKey() != nil {
		t.Fatal("expected nil private key after Destroy")
	}
}

func TestDecodePrivateCertZeroesOnDestroy(t *testing.T) {
	opts, _ := suite.Lookup(suite.Suite1)
	artifactID := uuid.New()
	pubEnc := make([]byte, opts.PublicKeySize)
	pubSign := make([]byte, opts.PublicKeySize)
	privEnc := make([]byte, opts.PrivateKeySize)
	privSign := make([]byte, opts.PrivateKeySize)
	for i := range privEnc {
		privEnc[i] = 0xAB
		privSign[i] = 0xCD
	}

	raw := buildPrivateCertBytes(artifactID, pubEnc, pubSign, privEnc, privSign)
	cert, err := DecodePrivateCert(raw, opts)
	if err != nil {
		t.Fatal(err)
	}
	key := cert.privateEncKey
	cert.Destroy()
	for _, b := range key {
		if b != 0 {
			t.Fatal("expected private key bytes to be zeroed after Destroy")
		}
	}
}
