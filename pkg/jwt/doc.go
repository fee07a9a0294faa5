// Package jwt signs and verifies HS256 JSON Web Tokens and reads token claims
// on the client side.
//
// A Service holds the signing key and accepts any JSON-serialisable claims
// type. StandardClaims mirrors the RFC 7519 registered fields; embed it in
// your own claims struct to get exp and nbf checked on Parse.
//
// # Architecture
//
//   - Service: Generate and Parse. Parse checks the signature in constant
//     time, rejects any algorithm other than HS256, then checks exp and nbf.
//   - claims.go: StandardClaims, NewClaims and the expiry helpers.
//   - Decode, DecodeStandard, IsExpired and ExpiresIn: unverified helpers for
//     clients that hold a token without the key.
//   - errors.go: sentinel errors.
//
// # Usage
//
//	svc, err := jwt.NewFromString(secret, jwt.WithLeeway(30*time.Second))
//	if err != nil {
//		return err
//	}
//
//	type sessionClaims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
//
//	token, err := svc.Generate(sessionClaims{
//		StandardClaims: jwt.NewClaims("user-42", time.Hour),
//		Role:           "editor",
//	})
//
//	var claims sessionClaims
//	if err := svc.Parse(token, &claims); err != nil {
//		// invalid, tampered, expired or not yet valid
//	}
//
// The exp and nbf checks use the timing carried by the token, so a claims
// value can be reused across Parse calls.
//
// # Client Side
//
// A mobile app or browser front end usually cannot verify a token, but still
// wants to know when to refresh it:
//
//	if jwt.IsExpired(token) || jwt.ExpiresIn(token) < time.Minute {
//		// refresh
//	}
//
// Malformed tokens count as expired. Never base authorization decisions on
// Decode; it does not check the signature.
//
// # Testing
//
// WithClock fixes the time used by Parse, which keeps expiry tests
// deterministic:
//
//	svc, _ := jwt.New(key, jwt.WithClock(func() time.Time { return fixed }))
//
// # Error Handling
//
// Errors such as ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidSignature
// are sentinel values and can be compared using errors.Is. Decoding failures
// are joined with ErrInvalidToken or ErrInvalidClaims.
package jwt
