package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"clothco/internal/domain/model"
	"clothco/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

const minPasswordLen = 6

var (
	// 入力が不正
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// RegisterUserUsecaseは会員登録の処理。登録後はそのままログイン状態にする。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   AccessTokenIssuer
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		idGen:    idGen,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (SessionOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return SessionOutput{}, ErrNameRequired
	}
	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return SessionOutput{}, ErrInvalidEmailFormat
	}
	if len(in.Password) < minPasswordLen {
		return SessionOutput{}, ErrPasswordTooShort
	}

	// デモアカウントのemailも使用済み扱い
	if _, ok := findDemo(email); ok {
		return SessionOutput{}, ErrEmailAlreadyExists
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return SessionOutput{}, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           "user-" + u.idGen.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		Role:         model.RoleUser,
		OrderCount:   0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// email重複はunique制約で弾く
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return SessionOutput{}, ErrEmailAlreadyExists
		}
		return SessionOutput{}, err
	}

	p := model.Principal{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	return issueSession(u.issuer, p, now)
}

// メールチェック
func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
