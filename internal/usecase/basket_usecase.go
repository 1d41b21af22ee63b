package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repo "clothco/internal/repository"
	basket "clothco/internal/usecase/basket_usecase"
)

// BasketUsecase は /basket の業務ロジック。
// 商品とサイズの確認だけここでして、明細の整合はStoreに任せる。
type BasketUsecase struct {
	store       *basket.Store
	productRepo repo.ProductRepository
}

func NewBasketUsecase(store *basket.Store, productRepo repo.ProductRepository) *BasketUsecase {
	return &BasketUsecase{
		store:       store,
		productRepo: productRepo,
	}
}

type AddBasketItemInput struct {
	ProductID string
	Size      string
	Quantity  int64
}

func (u *BasketUsecase) GetBasket(ctx context.Context) basket.Snapshot {
	return u.store.Snapshot()
}

// カートに追加（同じ商品・サイズは数量加算）
func (u *BasketUsecase) AddItem(ctx context.Context, in AddBasketItemInput) (basket.Snapshot, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return basket.Snapshot{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return basket.Snapshot{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return basket.Snapshot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.HasSize(in.Size) {
		return basket.Snapshot{}, NewHTTPError(http.StatusBadRequest, "invalid size")
	}

	u.store.AddItem(ctx, p, in.Size, in.Quantity)
	return u.store.Snapshot(), nil
}

// 数量変更。0以下は1になる。
func (u *BasketUsecase) UpdateQuantity(ctx context.Context, id string, size string, quantity int64) basket.Snapshot {
	u.store.UpdateQuantity(ctx, id, size, quantity)
	return u.store.Snapshot()
}

// サイズ変更。変更先は明細が持つサイズ一覧の中から。
func (u *BasketUsecase) UpdateSize(ctx context.Context, id string, oldSize string, newSize string) (basket.Snapshot, error) {
	for _, l := range u.store.Items() {
		if l.ID == id && l.Size == oldSize && !l.HasSize(newSize) {
			return basket.Snapshot{}, NewHTTPError(http.StatusBadRequest, "invalid size")
		}
	}

	u.store.UpdateSize(ctx, id, oldSize, newSize)
	return u.store.Snapshot(), nil
}

func (u *BasketUsecase) RemoveItem(ctx context.Context, id string, size string) basket.Snapshot {
	u.store.RemoveItem(ctx, id, size)
	return u.store.Snapshot()
}

func (u *BasketUsecase) Clear(ctx context.Context) basket.Snapshot {
	u.store.Clear(ctx)
	return u.store.Snapshot()
}
