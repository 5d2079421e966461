package actionlink

import (
	"strings"
	"testing"
)

func TestSignDeterministic(t *testing.T) {
	msg := []byte("the-encoded-payload")
	secret := []byte("secret")

	a := Sign(msg, secret)
	b := Sign(msg, secret)
	if a != b {
		t.Errorf("Sign is not deterministic: %q != %q", a, b)
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("signature is not URL-safe unpadded base64: %q", a)
	}
}

func TestVerify(t *testing.T) {
	msg := []byte("the-encoded-payload")
	secret := []byte("secret")
	sig := Sign(msg, secret)

	tests := []struct {
		name   string
		msg    string
		sig    string
		secret string
		want   bool
	}{
		{"valid", "the-encoded-payload", sig, "secret", true},
		{"wrong message", "other-payload", sig, "secret", false},
		{"wrong secret", "the-encoded-payload", sig, "other", false},
		{"garbage signature", "the-encoded-payload", "!!!", "secret", false},
		{"empty signature", "the-encoded-payload", "", "secret", false},
		{"truncated signature", "the-encoded-payload", sig[:10], "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Verify([]byte(tt.msg), tt.sig, []byte(tt.secret))
			if got != tt.want {
				t.Errorf("Verify = %v, want %v", got, tt.want)
			}
		})
	}
}
