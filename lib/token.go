package lib

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// TokenLength is the length of a signed verification token: the hex digest of
// an HMAC-SHA256 signature.
const TokenLength = 64

// SignToken derives a verification token for an email address. The signed
// message includes the device fingerprint, the issuance timestamp and a random
// nonce, so re-issuing for the same address always yields a fresh token and a
// leaked prior token predicts nothing about future ones.
func SignToken(secret []byte, email, deviceID string, now time.Time) (string, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("%s|%s|%d|%s", email, deviceID, now.Unix(), nonce)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidTokenFormat reports whether a candidate token has the shape of a signed
// token. Cheap pre-check before a store lookup; never a substitute for one.
func ValidTokenFormat(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

func generateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
