package secrets

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewBox_RejectsBadKeys(t *testing.T) {
	cases := []string{
		"",
		"not-hex",
		"abcd",                             // too short
		strings.Repeat("ab", 16),           // 16 bytes
		strings.Repeat("ab", 33),           // 33 bytes
		strings.Repeat("zz", 32),           // right length, not hex
	}
	for _, key := range cases {
		if _, err := NewBox(key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("NewBox(%q): got %v; want ErrInvalidKey", key, err)
		}
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	box, err := NewBox(key)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}

	plain := []byte(`{"partner_id":"p1","sign_key":"s1"}`)
	blob, err := box.Seal(plain)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(blob, []byte("partner_id")) {
		t.Fatalf("sealed blob leaks plaintext")
	}

	got, err := box.Open(blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip = %q; want %q", got, plain)
	}
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key, _ := GenerateKey()
	box, err := NewBox(key)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	a, _ := box.Seal([]byte("same"))
	b, _ := box.Seal([]byte("same"))
	if bytes.Equal(a, b) {
		t.Fatalf("sealing the same plaintext twice produced identical blobs")
	}
}

func TestOpen_RejectsTamperedBlob(t *testing.T) {
	key, _ := GenerateKey()
	box, err := NewBox(key)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	blob, err := box.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	blob[len(blob)-1] ^= 0x01
	if _, err := box.Open(blob); err == nil {
		t.Fatalf("Open accepted a tampered blob")
	}
}

func TestOpen_RejectsShortBlob(t *testing.T) {
	key, _ := GenerateKey()
	box, err := NewBox(key)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	if _, err := box.Open([]byte("short")); !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("Open(short): got %v; want ErrCiphertextTooShort", err)
	}
}

func TestOpen_RejectsWrongKey(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	box1, _ := NewBox(k1)
	box2, _ := NewBox(k2)

	blob, err := box1.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := box2.Open(blob); err == nil {
		t.Fatalf("Open succeeded under a different key")
	}
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("key length = %d hex chars; want 64", len(key))
	}
	if _, err := NewBox(key); err != nil {
		t.Fatalf("generated key rejected by NewBox: %v", err)
	}
}
