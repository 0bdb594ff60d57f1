package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeExpiry is how long a verification code stays valid.
const CodeExpiry = time.Hour

// GenerateVerifyCode returns a 6-digit code sampled uniformly from
// [100000, 999999].
func GenerateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generating verify code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
