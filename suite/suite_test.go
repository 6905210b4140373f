package suite

import (
	"bytes"
	"testing"

	"github.com/velopayments/vcblockchain/vcerr"
)

func TestLookupSuite1(t *testing.T) {
	opts, err := Lookup(Suite1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.SharedSecretSize != 32 || opts.MACSize != 32 || opts.NonceSize != 32 {
		t.Fatalf("unexpected field sizes: %+v", opts)
	}
}

func TestLookupSuite2Unimplemented(t *testing.T) {
	_, err := Lookup(Suite2)
	if !vcerr.Is(err, vcerr.UnexpectedValue) {
		t.Fatalf("expected UnexpectedValue, got %v", err)
	}
}

func TestKeyAgreementRoundTrip(t *testing.T) {
	client, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	server, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	serverNonce, _ := GeneratePRNGBytes(8)
	clientNonce, _ := GeneratePRNGBytes(8)

	secretA, err := KeyAgreement(client.PrivateKey, server.PublicKey, serverNonce, clientNonce)
	if err != nil {
		t.Fatal(err)
	}
	secretB, err := KeyAgreement(server.PrivateKey, client.PublicKey, serverNonce, clientNonce)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(secretA, secretB) {
		t.Fatal("expected both sides to derive the same shared secret")
	}
	if len(secretA) != 32 {
		t.Fatalf("expected 32-byte secret, got %d", len(secretA))
	}
}

func TestStreamCipherSeekMatchesSequential(t *testing.T) {
	opts, _ := Lookup(Suite1)
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}
	stream, err := opts.NewStream(secret)
	if err != nil {
		t.Fatal(err)
	}

	plaintext := make([]byte, 300)
	for i := range plaintext {
		plaintext[i] = byte(i * 7)
	}

	// Encrypt the whole thing in one shot from offset 0.
	whole := make([]byte, len(plaintext))
	if err := stream.XORKeyStreamAt(0, whole, plaintext); err != nil {
		t.Fatal(err)
	}

	// Encrypt it again in two pieces at non-block-aligned offsets and
	// confirm the keystream matches byte-for-byte.
	const split = 137
	partA := make([]byte, split)
	partB := make([]byte, len(plaintext)-split)
	if err := stream.XORKeyStreamAt(0, partA, plaintext[:split]); err != nil {
		t.Fatal(err)
	}
	if err := stream.XORKeyStreamAt(split, partB, plaintext[split:]); err != nil {
		t.Fatal(err)
	}

	reassembled := append(append([]byte{}, partA...), partB...)
	if !bytes.Equal(whole, reassembled) {
		t.Fatal("seeked keystream did not match sequential keystream")
	}
}

func TestStreamCipherDecryptInverse(t *testing.T) {
	opts, _ := Lookup(Suite1)
	secret := make([]byte, 32)
	stream, _ := opts.NewStream(secret)

	plaintext := []byte("the quick brown fox jumps over the lazy dog, many times over")
	ciphertext := make([]byte, len(plaintext))
	if err := stream.XORKeyStreamAt(1024, ciphertext, plaintext); err != nil {
		t.Fatal(err)
	}

	stream2, _ := opts.NewStream(secret)
	recovered := make([]byte, len(ciphertext))
	if err := stream2.XORKeyStreamAt(1024, recovered, ciphertext); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Fatal("decrypting the ciphertext did not recover the plaintext")
	}
}
