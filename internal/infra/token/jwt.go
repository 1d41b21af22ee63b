package token

import (
	"errors"
	"fmt"
	"time"

	"clothco/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// ログイン後のセッショントークン（HS256）
type JWT struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// DI
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) Issue(p model.Principal, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(j.ttl)

	c := claims{
		Email: p.Email,
		Name:  p.Name,
		Role:  string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse は署名と期限を確かめてPrincipalを返す。
func (j *JWT) Parse(raw string) (model.Principal, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	role := model.Role(c.Role)
	if c.Subject == "" || (role != model.RoleUser && role != model.RoleAdmin) {
		return model.Principal{}, ErrInvalidToken
	}
	return model.Principal{ID: c.Subject, Email: c.Email, Name: c.Name, Role: role}, nil
}
