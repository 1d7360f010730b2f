package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signature computes the base64 HMAC-SHA256 of body under secret,
// exactly as the platform signs outbound webhook requests. It must be
// fed the raw wire bytes: re-serialized JSON produces a different
// digest than the original body.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// ValidateSignature verifies a signature header value against the raw
// request body using a channel secret. Comparison is constant time.
func ValidateSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Signature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
