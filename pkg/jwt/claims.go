package jwt

import (
	"time"

	"github.com/google/uuid"
)

// StandardClaims holds the registered claims of RFC 7519. Times are Unix
// seconds; zero means unset.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// NewClaims returns claims for subject issued now, expiring after ttl, with a
// random token ID. A ttl of zero leaves the expiry unset.
func NewClaims(subject string, ttl time.Duration) StandardClaims {
	now := time.Now()
	c := StandardClaims{
		ID:       uuid.NewString(),
		Subject:  subject,
		IssuedAt: now.Unix(),
	}
	if ttl > 0 {
		c.ExpiresAt = now.Add(ttl).Unix()
	}
	return c
}

// Valid checks the temporal claims against the current time.
func (c StandardClaims) Valid() error {
	return c.validAt(time.Now(), 0)
}

func (c StandardClaims) validAt(now time.Time, leeway time.Duration) error {
	ts := now.Unix()
	skew := int64(leeway / time.Second)
	if c.ExpiresAt > 0 && ts > c.ExpiresAt+skew {
		return ErrExpiredToken
	}
	if c.NotBefore > 0 && ts < c.NotBefore-skew {
		return ErrTokenNotYetValid
	}
	return nil
}

// IsExpired reports whether the expiry has passed. Claims without an expiry
// never expire.
func (c StandardClaims) IsExpired() bool {
	return c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt
}

// ExpiresIn returns the time left until expiry: negative once expired, zero
// when no expiry is set.
func (c StandardClaims) ExpiresIn() time.Duration {
	if c.ExpiresAt == 0 {
		return 0
	}
	return time.Until(time.Unix(c.ExpiresAt, 0))
}

// Expiry returns the expiry as a time, and false when unset.
func (c StandardClaims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(c.ExpiresAt, 0), true
}

// timeValidator is implemented by StandardClaims and types embedding it.
type timeValidator interface {
	validAt(now time.Time, leeway time.Duration) error
}
