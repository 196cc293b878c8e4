// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth hashes and verifies portal account passwords with argon2id.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// MinPasswordLength is the shortest password accepted for new credentials.
const MinPasswordLength = 8

// Params are the argon2id cost parameters encoded into every hash.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams follow the OWASP m=19456, t=2, p=1 profile.
var DefaultParams = Params{
	Time:    2,
	Memory:  19 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

var (
	ErrInvalidHash     = errors.New("invalid password hash")
	ErrPasswordTooWeak = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

type decodedHash struct {
	params Params
	salt   []byte
	key    []byte
}

// decode parses $argon2id$v=19$m=..,t=..,p=..$salt$key.
func decode(encoded string) (decodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decodedHash{}, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return decodedHash{}, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return decodedHash{}, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return decodedHash{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var d decodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.params.Memory, &d.params.Time, &d.params.Threads); err != nil {
		return decodedHash{}, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	d.params.SaltLen = uint32(len(d.salt))
	d.params.KeyLen = uint32(len(d.key))
	return d, nil
}

// HashWith hashes password using p.
func HashWith(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// HashPassword hashes password with DefaultParams.
func HashPassword(password string) (string, error) {
	return HashWith(password, DefaultParams)
}

// CheckPassword reports whether password matches encodedHash. The
// comparison runs in constant time.
func CheckPassword(password, encodedHash string) (bool, error) {
	d, err := decode(encodedHash)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), d.salt, d.params.Time, d.params.Memory, d.params.Threads, d.params.KeyLen)
	return subtle.ConstantTimeCompare(key, d.key) == 1, nil
}

// NeedsRehash reports whether encodedHash was produced with parameters
// other than DefaultParams, or cannot be parsed at all.
func NeedsRehash(encodedHash string) bool {
	d, err := decode(encodedHash)
	if err != nil {
		return true
	}
	return d.params.Memory != DefaultParams.Memory ||
		d.params.Time != DefaultParams.Time ||
		d.params.Threads != DefaultParams.Threads
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

// ParseCredentials splits an "email:password" pair as passed on the
// command line. The password may itself contain colons.
func ParseCredentials(s string) (email, password string, err error) {
	email, password, ok := strings.Cut(s, ":")
	email = strings.TrimSpace(email)
	if !ok || email == "" || password == "" {
		return "", "", errors.New("credentials must be in the form email:password")
	}
	if !strings.Contains(email, "@") {
		return "", "", fmt.Errorf("invalid email %q", email)
	}
	return email, password, nil
}
