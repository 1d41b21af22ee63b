package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"
)

// 保存済みカード（番号は下4桁だけ残す）
type PaymentUsecase struct {
	methods   repo.PaymentMethodRepository
	validator CheckoutValidator
	idGen     IDGenerator
	clock     Clock
}

func NewPaymentUsecase(
	methods repo.PaymentMethodRepository,
	validator CheckoutValidator,
	idGen IDGenerator,
	clock Clock,
) *PaymentUsecase {
	return &PaymentUsecase{
		methods:   methods,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
	}
}

type SavePaymentMethodInput struct {
	CardHolder string
	CardNumber string
	ExpiryDate string
}

func (u *PaymentUsecase) Save(ctx context.Context, userID string, in SavePaymentMethodInput) (model.PaymentMethod, error) {
	if userID == "" {
		return model.PaymentMethod{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateCard(in.CardHolder, in.CardNumber, in.ExpiryDate); err != nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pm := model.PaymentMethod{
		ID:         "card-" + u.idGen.NewID(),
		UserID:     userID,
		CardHolder: strings.TrimSpace(in.CardHolder),
		LastFour:   LastFour(in.CardNumber),
		ExpiryDate: strings.TrimSpace(in.ExpiryDate),
		CreatedAt:  u.clock.Now().UTC(),
	}
	if err := u.methods.Create(ctx, pm); err != nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return pm, nil
}

func (u *PaymentUsecase) List(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	if userID == "" {
		return []model.PaymentMethod{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	methods, err := u.methods.ListByUserID(ctx, userID)
	if err != nil {
		return []model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return methods, nil
}

// 他人のカードは存在しない扱い
func (u *PaymentUsecase) Delete(ctx context.Context, userID string, id string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.methods.DeleteByUser(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
