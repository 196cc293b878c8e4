// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Errorf("unexpected hash prefix: %s", hash)
	}

	ok, err := CheckPassword("correct horse", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("correct password was rejected")
	}

	ok, err = CheckPassword("wrong horse", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if ok {
		t.Error("wrong password was accepted")
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPasswordForeignParams(t *testing.T) {
	cheap := Params{Time: 1, Memory: 1024, Threads: 2, KeyLen: 16, SaltLen: 8}
	hash, err := HashWith("legacy", cheap)
	if err != nil {
		t.Fatalf("HashWith: %v", err)
	}

	ok, err := CheckPassword("legacy", hash)
	if err != nil || !ok {
		t.Fatalf("CheckPassword = %v, %v; want true, nil", ok, err)
	}
	if !NeedsRehash(hash) {
		t.Error("hash with non-default params should need rehash")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$a2V5",
	}
	for _, hash := range tests {
		if _, err := CheckPassword("x", hash); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("CheckPassword(%q) error = %v, want ErrInvalidHash", hash, err)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, _ := HashPassword("current")
	if NeedsRehash(hash) {
		t.Error("fresh default hash should not need rehash")
	}
	if !NeedsRehash("not-a-hash") {
		t.Error("malformed hash should need rehash")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Errorf("ValidatePassword(short) = %v", err)
	}
	if err := ValidatePassword("long enough"); err != nil {
		t.Errorf("ValidatePassword(long enough) = %v", err)
	}
}

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		in       string
		email    string
		password string
		wantErr  bool
	}{
		{"admin@example.com:secret", "admin@example.com", "secret", false},
		{"admin@example.com:pa:ss", "admin@example.com", "pa:ss", false},
		{" admin@example.com :secret", "admin@example.com", "secret", false},
		{"admin@example.com", "", "", true},
		{":secret", "", "", true},
		{"admin:secret", "", "", true},
		{"admin@example.com:", "", "", true},
	}
	for _, tt := range tests {
		email, password, err := ParseCredentials(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCredentials(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if email != tt.email || password != tt.password {
			t.Errorf("ParseCredentials(%q) = %q, %q", tt.in, email, password)
		}
	}
}
