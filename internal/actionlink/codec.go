// Package actionlink implements the signed review-action links embedded in
// notification emails. A link carries its whole payload: nothing is stored
// server-side, so whoever holds a valid link can act on it.
package actionlink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Actions carried by a review link.
const (
	ActionApprove = "approve"
	ActionIssue   = "issue"
)

// Actors identify which internal group a link was issued to.
const (
	ActorAdmin = "admin"
	ActorTown  = "town"
)

// Codec errors. Handlers map these to 400s without exposing which check failed.
var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrDecode           = errors.New("malformed payload")
)

// Payload is the state carried inside a signed action link. It is attacker
// controlled until the signature over its encoded form has been verified.
type Payload struct {
	Actor          string `json:"actor"`
	VeteranName    string `json:"veteranName"`
	SponsorName    string `json:"sponsorName"`
	SponsorEmail   string `json:"sponsorEmail"`
	ContractURL    string `json:"contractUrl"`
	RecipientEmail string `json:"recipientEmail"`
}

// EncodePayload serializes the payload to JSON and encodes it as unpadded
// URL-safe base64.
func EncodePayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodePayload is the inverse of EncodePayload. Input is untrusted; any
// failure is reported as ErrDecode, never a panic.
func DecodePayload(s string) (Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		// Tolerate padded input; email clients occasionally rewrite URLs.
		raw, err = base64.URLEncoding.DecodeString(s)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p, nil
}

// Build formats a review URL carrying the encoded payload and its signature:
// <baseURL>/review?action=...&actor=...&data=...&sig=...
func Build(baseURL, action, actor string, p Payload, secret []byte) (string, error) {
	data, err := EncodePayload(p)
	if err != nil {
		return "", err
	}
	sig := Sign([]byte(data), secret)

	return fmt.Sprintf("%s/review?action=%s&actor=%s&data=%s&sig=%s",
		baseURL,
		url.QueryEscape(action),
		url.QueryEscape(actor),
		url.QueryEscape(data),
		url.QueryEscape(sig),
	), nil
}

// ParseAndVerify validates a set of action-link parameters and returns the
// decoded payload. It is the single trust boundary for the review endpoints:
// both render and dispatch must go through it, independently.
func ParseAndVerify(action, actor, data, sig string, secret []byte) (Payload, error) {
	if action == "" || actor == "" || data == "" || sig == "" {
		return Payload{}, ErrMissingParameter
	}

	if !Verify([]byte(data), sig, secret) {
		return Payload{}, ErrInvalidSignature
	}

	// The signature covers the encoded string, so a decode failure here means
	// a signed-but-garbled payload. Handle it defensively anyway.
	return DecodePayload(data)
}
