package auth

import (
	"time"

	"clothco/internal/domain/model"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(p model.Principal, now time.Time) (token string, expiresAt time.Time, err error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// token 形
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type SessionOutput struct {
	User  model.Principal `json:"user"`
	Token AccessToken     `json:"token"`
}

func issueSession(issuer AccessTokenIssuer, p model.Principal, now time.Time) (SessionOutput, error) {
	token, exp, err := issuer.Issue(p, now)
	if err != nil {
		return SessionOutput{}, err
	}
	return SessionOutput{
		User: p,
		Token: AccessToken{
			AccessToken: token,
			ExpiresIn:   int(exp.Sub(now).Seconds()),
		},
	}, nil
}
