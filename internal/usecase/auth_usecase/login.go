package auth

import (
	"context"
	"errors"

	"clothco/internal/domain/model"
	"clothco/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する。デモアカウントを先に見る。
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (SessionOutput, error) {
	if normalizeEmail(in.Email) == "" || in.Password == "" {
		return SessionOutput{}, ErrInvalidCredentials
	}

	if demo, ok := findDemo(in.Email); ok {
		if demo.password != in.Password {
			return SessionOutput{}, ErrInvalidCredentials
		}
		return issueSession(u.issuer, demo.principal, u.clock.Now())
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SessionOutput{}, ErrInvalidCredentials
		}
		return SessionOutput{}, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return SessionOutput{}, ErrInvalidCredentials
	}

	p := model.Principal{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	return issueSession(u.issuer, p, u.clock.Now())
}
