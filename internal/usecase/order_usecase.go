package usecase

import (
	"context"
	"net/http"
	"strings"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"
	basket "clothco/internal/usecase/basket_usecase"
)

// チェックアウトの入力チェックの約束（validatorパッケージが実装）
type CheckoutValidator interface {
	ValidateCheckout(in CheckoutInput) error
	ValidateCard(holder string, number string, expiry string) error
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	store     *basket.Store
	validator CheckoutValidator
	idGen     IDGenerator
	clock     Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	store *basket.Store,
	validator CheckoutValidator,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		store:     store,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
	}
}

// チェックアウトフォーム
type CheckoutInput struct {
	Name       string
	Email      string
	Address    string
	City       string
	PostalCode string
	Country    string
	CardNumber string
	CardExpiry string
	CardCvc    string
}

// PlaceOrder はカートから注文を作り、注文した明細をカートから引く。
// 決済は模擬で、入力が正しければ必ず成功する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in CheckoutInput) (model.Order, error) {
	if err := u.validator.ValidateCheckout(in); err != nil {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap := u.store.Snapshot()
	if len(snap.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "basket empty")
	}

	//スナップショット
	items := make([]model.OrderItem, 0, len(snap.Items))
	for _, l := range snap.Items {
		items = append(items, model.NewOrderItem(l))
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	order := model.Order{
		ID:            "order-" + u.idGen.NewID(),
		CustomerName:  strings.TrimSpace(in.Name),
		CustomerEmail: email,
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       strings.TrimSpace(in.Country),
		CardLastFour:  LastFour(in.CardNumber),
		Items:         items,
		Total:         snap.Total,
		Status:        model.OrderStatusCompleted,
		Date:          u.clock.Now().UTC(),
	}

	//注文保存と注文数の加算は同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Users().IncrementOrderCount(ctx, email); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	//注文した分だけカートから引く（注文中に足された分は残す）
	u.store.Deduct(ctx, snap.Items)
	return order, nil
}

// 管理者用（新しい順）
func (u *OrderUsecase) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orders, err := u.orders.ListByEmail(ctx, email)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// カード番号の下4桁（数字以外は無視）
func LastFour(cardNumber string) string {
	digits := make([]byte, 0, len(cardNumber))
	for i := 0; i < len(cardNumber); i++ {
		if c := cardNumber[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
