package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	HeaderType      = "JWT"
	HeaderAlgorithm = "HS256"
)

// Header is the JOSE header of a token.
type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Service signs and verifies HS256 tokens.
type Service struct {
	signingKey []byte
	leeway     time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLeeway tolerates clock skew when checking exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.leeway = d
		}
	}
}

// WithClock replaces time.Now for temporal checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. The key should be at least 32 random bytes.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{signingKey: signingKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString is New with a string key.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Generate signs claims, which may be any JSON-serialisable value.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(Header{Type: HeaderType, Algorithm: HeaderAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Join(ErrInvalidClaims, err)
	}

	payload := encode(headerJSON) + "." + encode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Parse verifies token and decodes its claims into claims. Claims embedding
// StandardClaims also get exp and nbf checked, honouring WithLeeway.
func (s *Service) Parse(token string, claims any) error {
	parts, err := split(token)
	if err != nil {
		return err
	}

	expected := s.sign(parts[0] + "." + parts[1])
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return ErrInvalidSignature
	}

	header, err := decodeHeader(parts[0])
	if err != nil {
		return err
	}
	if header.Algorithm != HeaderAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	if err := decodeClaims(parts[1], claims); err != nil {
		return err
	}

	switch v := claims.(type) {
	case timeValidator:
		// The destination may be reused; check the timing the token carries.
		var registered StandardClaims
		if err := decodeClaims(parts[1], &registered); err != nil {
			return err
		}
		return registered.validAt(s.now(), s.leeway)
	case interface{ Valid() error }:
		return v.Valid()
	}
	return nil
}

func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return encode(h.Sum(nil))
}

// Decode reads the claims of token without verifying the signature or the
// expiry. It is for clients that only display what a token says (user name,
// expiry countdown); never use it to make authorization decisions.
func Decode(token string, claims any) error {
	parts, err := split(token)
	if err != nil {
		return err
	}
	if _, err := decodeHeader(parts[0]); err != nil {
		return err
	}
	return decodeClaims(parts[1], claims)
}

// DecodeStandard is Decode into StandardClaims.
func DecodeStandard(token string) (StandardClaims, error) {
	var c StandardClaims
	err := Decode(token, &c)
	return c, err
}

// IsExpired reports whether an unverified token has expired. Malformed
// tokens count as expired.
func IsExpired(token string) bool {
	c, err := DecodeStandard(token)
	return err != nil || c.IsExpired()
}

// ExpiresIn returns the time left on an unverified token, or zero for
// malformed tokens and tokens without expiry.
func ExpiresIn(token string) time.Duration {
	c, err := DecodeStandard(token)
	if err != nil {
		return 0
	}
	return c.ExpiresIn()
}

func split(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidToken
	}
	return parts, nil
}

func decodeHeader(seg string) (Header, error) {
	var h Header
	raw, err := decode(seg)
	if err != nil {
		return h, errors.Join(ErrInvalidToken, err)
	}
	if err := json.Unmarshal(raw, &h); err != nil {
		return h, errors.Join(ErrInvalidToken, err)
	}
	return h, nil
}

func decodeClaims(seg string, claims any) error {
	if claims == nil {
		return ErrMissingClaims
	}
	raw, err := decode(seg)
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if err := json.Unmarshal(raw, claims); err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}
	return nil
}

func encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
