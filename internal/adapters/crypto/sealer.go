package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters for deriving the sealing key.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	saltLength    = 16
)

var (
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
	ErrMalformed       = errors.New("sealed content is malformed")
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted content")
)

// Sealer encrypts item content under a passphrase. Each Seal call draws a
// fresh salt and nonce, so sealing the same text twice yields different
// output.
type Sealer struct {
	passphrase []byte
}

// NewSealer returns a Sealer for the given passphrase.
// PRE: passphrase is non-empty
// POST: returns ErrEmptyPassphrase otherwise
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

func (s *Sealer) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, argon2Time, argon2Memory, argon2Threads, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext with XChaCha20-Poly1305.
// POST: returns base64(salt | nonce | ciphertext)
func (s *Sealer) Seal(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
// POST: returns ErrMalformed for undecodable input and ErrWrongPassphrase
// when authentication fails
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrMalformed
	}
	if len(raw) < saltLength+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return "", ErrMalformed
	}
	salt := raw[:saltLength]
	nonce := raw[saltLength : saltLength+chacha20poly1305.NonceSizeX]
	ciphertext := raw[saltLength+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrWrongPassphrase
	}
	return string(plaintext), nil
}
