// Package actiontoken signs and verifies the short-lived claims embedded in
// emailed action links (password reset, subscription confirmation).
//
// Tokens are stateless: a claim map plus an issuance timestamp, signed with
// a process-wide secret. The lifetime is chosen by the caller at redemption,
// so one codec serves flows with different expiry windows. There is no
// per-token revocation; rotating the secret invalidates everything at once.
package actiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid covers bad encoding, a signature mismatch, or a missing
	// issuance timestamp.
	ErrInvalid = errors.New("action token is invalid")
	// ErrExpired means the signature checked out but the token is older
	// than the allowed window.
	ErrExpired = errors.New("action token has expired")
)

type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

type tokenClaims struct {
	Data map[string]string `json:"data"`
	jwt.RegisteredClaims
}

// Issue serializes the claim map with the current timestamp and signs both
// with HMAC-SHA256, producing a URL-safe string.
func (c *Codec) Issue(claim map[string]string) (string, error) {
	claims := tokenClaims{
		Data: claim,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Redeem verifies the signature (the HMAC comparison inside the jwt library
// is constant-time) and then checks the age of the token against maxAge,
// computed once from the embedded issuance timestamp. Any tampering or
// decode failure yields ErrInvalid; only a genuine signature with an
// out-of-window age yields ErrExpired. IssuedAt is serialized at second
// precision, so the age check runs at the same granularity; a token can
// never expire before its wall-clock age exceeds maxAge.
func (c *Codec) Redeem(token string, maxAge time.Duration) (map[string]string, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.IssuedAt == nil {
		return nil, ErrInvalid
	}
	if c.now().Truncate(time.Second).Sub(claims.IssuedAt.Time) > maxAge {
		return nil, ErrExpired
	}
	return claims.Data, nil
}
