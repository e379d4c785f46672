package service

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("hunter22", hash) {
		t.Error("correct password must verify")
	}
	if CheckPassword("hunter23", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestPasswordHashesDiffer(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("bcrypt hashes must be salted")
	}
}
