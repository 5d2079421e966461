package actionlink

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the HMAC-SHA256 of message with the given secret and returns
// it as unpadded URL-safe base64.
func Sign(message, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature for message and compares it to the given
// one in constant time. It returns false on any decoding error or length
// mismatch and never reports why verification failed.
func Verify(message []byte, signature string, secret []byte) bool {
	got, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	want := mac.Sum(nil)

	return hmac.Equal(want, got)
}
