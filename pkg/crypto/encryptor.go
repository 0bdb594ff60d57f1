package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/age"
)

// Encryptor protects respondent contact details (email, address, socials) at
// rest using age. The identity key comes from configuration; an empty key
// generates a throwaway identity so development setups still work, at the
// cost of losing the ciphertext on restart.
type Encryptor struct {
	identity  *age.X25519Identity
	recipient *age.X25519Recipient
}

func NewEncryptor(key string) (*Encryptor, error) {
	var identity *age.X25519Identity
	var err error

	if key == "" {
		identity, err = age.GenerateX25519Identity()
		if err != nil {
			return nil, fmt.Errorf("generating identity: %w", err)
		}
	} else {
		identity, err = age.ParseX25519Identity(key)
		if err != nil {
			return nil, fmt.Errorf("parsing identity: %w", err)
		}
	}

	return &Encryptor{
		identity:  identity,
		recipient: identity.Recipient(),
	}, nil
}

// GenerateKey generates a new identity key for ENCRYPTION_KEY.
func GenerateKey() (string, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return "", fmt.Errorf("generating identity: %w", err)
	}
	return identity.String(), nil
}

// EncryptString encrypts a string and returns base64-encoded ciphertext.
// Empty strings pass through unchanged so optional fields stay optional.
func (e *Encryptor) EncryptString(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, e.recipient)
	if err != nil {
		return "", fmt.Errorf("creating encryptor: %w", err)
	}
	if _, err := w.Write([]byte(plaintext)); err != nil {
		return "", fmt.Errorf("writing plaintext: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing encryptor: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecryptString decrypts base64-encoded ciphertext produced by EncryptString.
func (e *Encryptor) DecryptString(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(decoded), e.identity)
	if err != nil {
		return "", fmt.Errorf("creating decryptor: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading plaintext: %w", err)
	}

	return string(plaintext), nil
}

// PublicKey returns the recipient side of the identity.
func (e *Encryptor) PublicKey() string {
	return e.recipient.String()
}

// GenerateToken generates a URL-safe random token.
func GenerateToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
