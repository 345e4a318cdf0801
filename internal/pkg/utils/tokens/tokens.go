package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ParseToken strips the configured api key prefix from a raw bearer token.
// The second return is false when the prefix does not match.
func ParseToken(raw, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	secret := strings.TrimPrefix(raw, prefix)
	if secret == "" {
		return "", false
	}
	return secret, true
}

// HMAC256Hex keys the secret with the server pepper for database lookup.
func HMAC256Hex(pepper, secret string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}
