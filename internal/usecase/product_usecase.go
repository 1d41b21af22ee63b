package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	idGen       IDGenerator
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, idGen IDGenerator) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Q        string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

// 商品の作成・更新の入力
type ProductInput struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Image       string
	Category    string
	Sizes       []string
	Color       string
	Stock       int64
	Featured    bool
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", SortFeatured, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	all, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := filterProducts(all, in)
	sortProducts(items, in.Sort)

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

// 名前・説明・カテゴリの部分一致、カテゴリ、価格帯（両端含む）
func filterProducts(all []model.Product, in ListProductsInput) []model.Product {
	q := strings.ToLower(strings.TrimSpace(in.Q))

	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		if in.Category != "" && p.Category != in.Category {
			continue
		}
		if in.MinPrice != nil && p.Price.LessThan(*in.MinPrice) {
			continue
		}
		if in.MaxPrice != nil && p.Price.GreaterThan(*in.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(items []model.Product, sortOption string) {
	switch sortOption {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.GreaterThan(items[j].Price) })
	case SortNameAsc, SortNameDesc:
		// collatorは並行利用できないので毎回作る
		c := collate.New(language.English, collate.IgnoreCase)
		desc := sortOption == SortNameDesc
		sort.SliceStable(items, func(i, j int) bool {
			cmp := c.CompareString(items[i].Name, items[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	default:
		// おすすめを先頭に（それ以外の順は保つ）
		sort.SliceStable(items, func(i, j int) bool { return items[i].Featured && !items[j].Featured })
	}
}

// カテゴリ一覧（重複なし・昇順）
func (u *ProductUsecase) Categories(ctx context.Context) ([]string, error) {
	all, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return []string{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	set := mapset.NewThreadUnsafeSet[string]()
	for _, p := range all {
		set.Add(p.Category)
	}
	out := set.ToSlice()
	sort.Strings(out)
	return out, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 商品が1件も無ければ初期カタログを入れる。入れた件数を返す。
func (u *ProductUsecase) SeedIfEmpty(ctx context.Context, products []model.Product) (int, error) {
	n, err := u.productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for _, p := range products {
		if _, err := u.productRepo.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	p, err := buildProduct(in)
	if err != nil {
		return model.Product{}, err
	}
	if p.ID == "" {
		p.ID = "product-" + u.idGen.NewID()
	}

	created, err := u.productRepo.Create(ctx, p)
	if errors.Is(err, repo.ErrAlreadyExists) {
		return model.Product{}, NewHTTPError(http.StatusConflict, "product already exists")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := buildProduct(in)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = id

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 入力チェック＋サイズの重複除去（順序は保つ）
func buildProduct(in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	sizes := make([]string, 0, len(in.Sizes))
	for _, s := range in.Sizes {
		s = strings.TrimSpace(s)
		if s == "" || !seen.Add(s) {
			continue
		}
		sizes = append(sizes, s)
	}
	if len(sizes) == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "at least one size is required")
	}

	return model.Product{
		ID:          strings.TrimSpace(in.ID),
		Name:        name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Category:    category,
		Sizes:       sizes,
		Color:       strings.TrimSpace(in.Color),
		Stock:       in.Stock,
		Featured:    in.Featured,
	}, nil
}
