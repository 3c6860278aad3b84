package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId"`
}

// JWTCodec issues HS256 tokens signed with a shared secret.
type JWTCodec struct {
	secretKey []byte
	validity  time.Duration
	now       Clock
}

func NewJWTCodec(secretKey []byte, validity time.Duration, now Clock) *JWTCodec {
	if now == nil {
		now = time.Now
	}
	return &JWTCodec{secretKey: secretKey, validity: validity, now: now}
}

func (c *JWTCodec) Issue(subjectID int) (string, error) {
	issuedAt := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.validity)),
		},
		UserID: subjectID,
	})

	return token.SignedString(c.secretKey)
}

func (c *JWTCodec) Verify(token string) (int, bool) {
	id, err := c.parse(token)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parse keeps the failure reason for callers that log it.
func (c *JWTCodec) parse(tokenString string) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
