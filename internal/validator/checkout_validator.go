package validator

import (
	"errors"
	"regexp"
	"strings"

	"clothco/internal/usecase"
)

var (
	// 入力が不足
	ErrRequired = errors.New("all fields are required")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidExpiry     = errors.New("invalid expiry date")
	ErrInvalidCvc        = errors.New("invalid cvc")
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cardRe   = regexp.MustCompile(`^[0-9]{12,19}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvcRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// チェックアウトフォームの検証
func (v *checkoutValidator) ValidateCheckout(in usecase.CheckoutInput) error {
	// 必須チェック
	for _, s := range []string{
		in.Name, in.Email, in.Address, in.City, in.PostalCode, in.Country,
		in.CardNumber, in.CardExpiry, in.CardCvc,
	} {
		if strings.TrimSpace(s) == "" {
			return ErrRequired
		}
	}

	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		return ErrInvalidEmail
	}
	if err := validateCard(in.CardNumber, in.CardExpiry); err != nil {
		return err
	}
	if !cvcRe.MatchString(strings.TrimSpace(in.CardCvc)) {
		return ErrInvalidCvc
	}
	return nil
}

// カード保存の検証（CVCは受け取らない）
func (v *checkoutValidator) ValidateCard(holder string, number string, expiry string) error {
	if strings.TrimSpace(holder) == "" || strings.TrimSpace(number) == "" || strings.TrimSpace(expiry) == "" {
		return ErrRequired
	}
	return validateCard(number, expiry)
}

func validateCard(number string, expiry string) error {
	//スペースとハイフンは区切りとして許す
	digits := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
	if !cardRe.MatchString(digits) {
		return ErrInvalidCardNumber
	}
	if !expiryRe.MatchString(strings.TrimSpace(expiry)) {
		return ErrInvalidExpiry
	}
	return nil
}
