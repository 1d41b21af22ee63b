package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"
)

// プロフィール画面の中身
type Profile struct {
	ID             string                `json:"id"`
	Email          string                `json:"email"`
	Name           string                `json:"name"`
	Role           model.Role            `json:"role"`
	Demo           bool                  `json:"demo"`
	OrderCount     int64                 `json:"order_count"`
	CreatedAt      *time.Time            `json:"created_at,omitempty"`
	PaymentMethods []model.PaymentMethod `json:"payment_methods"`
}

type ProfileUsecase struct {
	users    repo.UserRepository
	orders   repo.OrderRepository
	payments repo.PaymentMethodRepository
}

func NewProfileUsecase(
	users repo.UserRepository,
	orders repo.OrderRepository,
	payments repo.PaymentMethodRepository,
) *ProfileUsecase {
	return &ProfileUsecase{
		users:    users,
		orders:   orders,
		payments: payments,
	}
}

// Me はログイン中のユーザー情報を返す。
// デモアカウントはDBに居ないので、注文数はemailで数える。
func (u *ProfileUsecase) Me(ctx context.Context, p model.Principal) (Profile, error) {
	if p.ID == "" {
		return Profile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	out := Profile{ID: p.ID, Email: p.Email, Name: p.Name, Role: p.Role}

	user, err := u.users.FindByID(ctx, p.ID)
	switch {
	case err == nil:
		out.Email = user.Email
		out.Name = user.Name
		out.Role = user.Role
		out.OrderCount = user.OrderCount
		created := user.CreatedAt
		out.CreatedAt = &created
	case errors.Is(err, repo.ErrNotFound):
		out.Demo = true
		orders, err := u.orders.ListByEmail(ctx, p.Email)
		if err != nil {
			return Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.OrderCount = int64(len(orders))
	default:
		return Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	methods, err := u.payments.ListByUserID(ctx, p.ID)
	if err != nil {
		return Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.PaymentMethods = methods
	return out, nil
}
