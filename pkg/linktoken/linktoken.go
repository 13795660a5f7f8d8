package linktoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeEnquiry is the purpose claim carried by private enquiry links.
const PurposeEnquiry = "enquiry"

// ErrInvalidToken covers every verification failure. Callers surface a
// generic "invalid or expired" message; no detail is leaked.
var ErrInvalidToken = errors.New("linktoken: invalid or unverifiable token")

type claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Signer issues and verifies opaque signed tokens naming a purpose. Tokens
// are HS256 JWTs signed with the application session secret, the Go
// counterpart of the serializer links the site has always mailed out.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Generate returns a signed token for the given purpose.
func (s *Signer) Generate(purpose string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("linktoken: signing secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and returns the token's purpose.
func (s *Signer) Verify(tokenString string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.Purpose == "" {
		return "", ErrInvalidToken
	}
	return c.Purpose, nil
}
