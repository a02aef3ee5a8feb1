package services

import (
	"strings"
	"testing"
)

func TestPasswordRoundTrip(t *testing.T) {
	for _, plaintext := range []string{"hunter2", "", "pässwörd with spaces", strings.Repeat("x", 200)} {
		hash, err := HashPassword(plaintext)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", plaintext, err)
		}
		if !VerifyPassword(plaintext, hash) {
			t.Errorf("VerifyPassword(%q, hash) = false, want true", plaintext)
		}
		if VerifyPassword(plaintext+"-wrong", hash) {
			t.Errorf("VerifyPassword with wrong password = true, want false")
		}
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical; salt is not random per call")
	}
}

func TestVerifyPasswordMalformedInput(t *testing.T) {
	malformed := []string{
		"",
		"not-base64",
		"pbkdf2",
		"pbkdf2$$$",
		"pbkdf2$abc$c2FsdA$aGFzaA",    // non-numeric iterations
		"pbkdf2$0$c2FsdA$aGFzaA",      // zero iterations
		"pbkdf2$100000$!!!$aGFzaA",    // invalid salt encoding
		"pbkdf2$100000$c2FsdA$!!!",    // invalid key encoding
		"bcrypt$100000$c2FsdA$aGFzaA", // wrong algorithm tag
	}
	for _, encoded := range malformed {
		if VerifyPassword("anything", encoded) {
			t.Errorf("VerifyPassword(_, %q) = true, want false", encoded)
		}
	}
}
