package basket_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"clothco/internal/domain/model"
	"clothco/internal/infra/db"
	"clothco/internal/infra/kv"
	"clothco/internal/infra/memory"
	infraRepo "clothco/internal/infra/repository"
	"clothco/internal/repository"
	basket "clothco/internal/usecase/basket_usecase"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// helper
// =====================

type backendFactory func(t *testing.T) repository.BasketRepository

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T) repository.BasketRepository {
			return memory.NewBasketStore()
		},
		"bolt": func(t *testing.T) repository.BasketRepository {
			st, err := kv.Open(filepath.Join(t.TempDir(), "basket.bolt"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })
			return st
		},
		"sql": func(t *testing.T) repository.BasketRepository {
			gormDB, err := db.Open(sqlite.Open(filepath.Join(t.TempDir(), "basket.db")))
			require.NoError(t, err)
			t.Cleanup(func() {
				if sqlDB, err := gormDB.DB(); err == nil {
					_ = sqlDB.Close()
				}
			})
			return infraRepo.NewBasketGormRepository(gormDB)
		},
	}
}

type mode struct {
	name string
	opts []basket.Option
}

func modes() []mode {
	return []mode{
		{name: "sync"},
		{name: "async", opts: []basket.Option{basket.WithAsyncPersist(4)}},
	}
}

// backend×modeの全組み合わせで回す
func eachStore(t *testing.T, fn func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository)) {
	for name, factory := range backends() {
		for _, m := range modes() {
			t.Run(name+"/"+m.name, func(t *testing.T) {
				backend := factory(t)
				newStore := func() *basket.Store {
					s := basket.NewStore(backend, m.opts...)
					t.Cleanup(s.Close)
					return s
				}
				fn(t, newStore, backend)
			})
		}
	}
}

func product(id string, price string, sizes ...string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Category: "tops",
		Sizes:    sizes,
	}
}

type lineView struct {
	ID       string
	Size     string
	Quantity int64
}

func view(lines []model.BasketLine) []lineView {
	out := make([]lineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineView{ID: l.ID, Size: l.Size, Quantity: l.Quantity})
	}
	return out
}

func persisted(t *testing.T, s *basket.Store, backend repository.BasketRepository) []lineView {
	t.Helper()
	require.NoError(t, s.Flush(context.Background()))
	recs, err := backend.GetAll(context.Background())
	require.NoError(t, err)

	lines := make([]model.BasketLine, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, r.Line())
	}
	return view(lines)
}

func assertAggregates(t *testing.T, s *basket.Store) {
	t.Helper()
	var count int64
	sum := decimal.Zero
	for _, l := range s.Items() {
		count += l.Quantity
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}
	assert.Equal(t, count, s.ItemCount())
	assert.True(t, sum.Equal(s.Total()), "total %s != %s", s.Total(), sum)

	snap := s.Snapshot()
	assert.Equal(t, count, snap.ItemCount)
	assert.True(t, sum.Equal(snap.Total))
}

// =====================
// 明細のマージ
// =====================

func TestStore_AddItem_SameKeyMerges(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")

		s.AddItem(ctx, p, "M", 1)
		s.AddItem(ctx, p, "M", 1)

		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, persisted(t, s, backend))
		assertAggregates(t, s)
	})
}

func TestStore_AddItem_DistinctSizesAreDistinctLines(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")

		s.AddItem(ctx, p, "M", 1)
		s.AddItem(ctx, p, "L", 1)

		want := []lineView{{ID: "1", Size: "M", Quantity: 1}, {ID: "1", Size: "L", Quantity: 1}}
		assert.Equal(t, want, view(s.Items()))
		assert.ElementsMatch(t, want, persisted(t, s, backend))
	})
}

func TestStore_AddItem_ClampsQuantity(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		s := newStore()
		s.AddItem(context.Background(), product("1", "10", "M"), "M", -5)

		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, view(s.Items()))
	})
}

// 数量は上限で止まり、負にはならない
func TestStore_AddItem_SaturatesAtMaxQuantity(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")

		s.AddItem(ctx, p, "M", math.MaxInt64)
		s.AddItem(ctx, p, "M", 1)

		want := []lineView{{ID: "1", Size: "M", Quantity: math.MaxInt64}}
		assert.Equal(t, want, view(s.Items()))
		assert.Equal(t, want, persisted(t, s, backend))

		// サイズ変更のマージと個数の合計も同じ
		s.AddItem(ctx, p, "L", 5)
		assert.Equal(t, int64(math.MaxInt64), s.ItemCount())
		s.UpdateSize(ctx, "1", "L", "M")
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: math.MaxInt64}}, view(s.Items()))

		snap := s.Snapshot()
		assert.Equal(t, int64(math.MaxInt64), snap.ItemCount)
		assert.True(t, snap.Total.IsPositive())
	})
}

// 同じIDでサイズに "-" を含んでもキーは別
func TestStore_AddItem_KeyIsCompositeNotString(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()

		s.AddItem(ctx, product("a", "1", "b-c"), "b-c", 1)
		s.AddItem(ctx, product("a-b", "2", "c"), "c", 1)
		s.RemoveItem(ctx, "a-b", "c")

		assert.Equal(t, []lineView{{ID: "a", Size: "b-c", Quantity: 1}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "a", Size: "b-c", Quantity: 1}}, persisted(t, s, backend))
	})
}

// =====================
// 数量・サイズ
// =====================

func TestStore_UpdateQuantity_ZeroBecomesOne(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M")

		s.AddItem(ctx, p, "M", 3)
		s.UpdateQuantity(ctx, "1", "M", 0)

		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, persisted(t, s, backend))

		s.UpdateQuantity(ctx, "1", "M", 7)
		assert.Equal(t, int64(7), s.ItemCount())
		assertAggregates(t, s)

		s.UpdateQuantity(ctx, "1", "M", -5)
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, persisted(t, s, backend))
	})
}

func TestStore_UpdateQuantity_AbsentLineIsNoop(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		s := newStore()
		s.UpdateQuantity(context.Background(), "missing", "M", 4)

		assert.Empty(t, s.Items())
		assert.Empty(t, persisted(t, s, backend))
	})
}

func TestStore_UpdateSize_MergesIntoExisting(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "S", "M", "L")

		s.AddItem(ctx, p, "S", 1)
		s.AddItem(ctx, p, "M", 2)
		s.AddItem(ctx, p, "L", 3)
		s.UpdateSize(ctx, "1", "M", "L")

		want := []lineView{{ID: "1", Size: "S", Quantity: 1}, {ID: "1", Size: "L", Quantity: 5}}
		assert.Equal(t, want, view(s.Items()))
		assert.ElementsMatch(t, want, persisted(t, s, backend))
		assertAggregates(t, s)
	})
}

func TestStore_UpdateSize_RekeysInPlace(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")
		q := product("2", "5", "M")

		s.AddItem(ctx, p, "M", 2)
		s.AddItem(ctx, q, "M", 1)
		s.UpdateSize(ctx, "1", "M", "L")

		want := []lineView{{ID: "1", Size: "L", Quantity: 2}, {ID: "2", Size: "M", Quantity: 1}}
		assert.Equal(t, want, view(s.Items()))
		assert.ElementsMatch(t, want, persisted(t, s, backend))
	})
}

// SQLの保存先は表示順を持つので、サイズを変えても読み直した順が変わらない
func TestStore_UpdateSize_KeepsPositionAfterReload(t *testing.T) {
	for _, m := range modes() {
		t.Run(m.name, func(t *testing.T) {
			ctx := context.Background()
			backend := backends()["sql"](t)
			s := basket.NewStore(backend, m.opts...)
			defer s.Close()

			s.AddItem(ctx, product("1", "10", "M", "L"), "M", 2)
			s.AddItem(ctx, product("2", "5", "M"), "M", 1)
			s.UpdateSize(ctx, "1", "M", "L")
			require.NoError(t, s.Flush(ctx))

			reloaded := basket.NewStore(backend)
			require.NoError(t, reloaded.Load(ctx))
			assert.Equal(t, view(s.Items()), view(reloaded.Items()))

			// 読み直した後に足した明細は末尾
			reloaded.AddItem(ctx, product("3", "1", "S"), "S", 1)
			again := basket.NewStore(backend)
			require.NoError(t, again.Load(ctx))
			assert.Equal(t, []lineView{
				{ID: "1", Size: "L", Quantity: 2},
				{ID: "2", Size: "M", Quantity: 1},
				{ID: "3", Size: "S", Quantity: 1},
			}, view(again.Items()))
		})
	}
}

func TestStore_UpdateSize_Noops(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		s.AddItem(ctx, product("1", "10", "M", "L"), "M", 2)

		s.UpdateSize(ctx, "1", "M", "M")
		s.UpdateSize(ctx, "1", "XL", "L")

		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, persisted(t, s, backend))
	})
}

// =====================
// 削除・全削除
// =====================

func TestStore_RemoveItem(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		s.AddItem(ctx, product("1", "10", "M"), "M", 1)
		s.AddItem(ctx, product("2", "20", "M"), "M", 1)

		s.RemoveItem(ctx, "1", "M")
		s.RemoveItem(ctx, "1", "M")

		assert.Equal(t, []lineView{{ID: "2", Size: "M", Quantity: 1}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "2", Size: "M", Quantity: 1}}, persisted(t, s, backend))
		assertAggregates(t, s)
	})
}

func TestStore_Clear_EmptiesMemoryAndBackend(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		s.AddItem(ctx, product("1", "10", "M"), "M", 1)
		s.AddItem(ctx, product("2", "20", "S", "M"), "S", 4)

		s.Clear(ctx)

		assert.Empty(t, s.Items())
		assert.Equal(t, int64(0), s.ItemCount())
		assert.True(t, s.Total().IsZero())
		assert.Empty(t, persisted(t, s, backend))
	})
}

// 注文した分だけ引き、後から足された分は残す
func TestStore_Deduct(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")

		s.AddItem(ctx, p, "M", 2)
		s.AddItem(ctx, product("2", "5", "S"), "S", 1)
		ordered := s.Items()

		s.AddItem(ctx, p, "M", 1)
		s.AddItem(ctx, p, "L", 3)
		s.Deduct(ctx, ordered)

		want := []lineView{{ID: "1", Size: "M", Quantity: 1}, {ID: "1", Size: "L", Quantity: 3}}
		assert.Equal(t, want, view(s.Items()))
		assert.ElementsMatch(t, want, persisted(t, s, backend))
		assertAggregates(t, s)

		// 既に無い明細は何もしない
		s.Deduct(ctx, ordered)
		assert.Equal(t, []lineView{{ID: "1", Size: "L", Quantity: 3}}, view(s.Items()))
		assert.Equal(t, []lineView{{ID: "1", Size: "L", Quantity: 3}}, persisted(t, s, backend))
	})
}

// =====================
// 再読み込み
// =====================

func TestStore_Load_RoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		for i := 1; i <= 5; i++ {
			id := fmt.Sprint(i)
			s.AddItem(ctx, product(id, "9.99", "S", "M"), "S", int64(i))
		}
		s.AddItem(ctx, product("3", "9.99", "S", "M"), "M", 2)
		s.UpdateQuantity(ctx, "2", "S", 9)
		want := view(s.Items())
		wantTotal := s.Total()
		require.NoError(t, s.Flush(ctx))

		reloaded := newStore()
		require.NoError(t, reloaded.Load(ctx))

		assert.ElementsMatch(t, want, view(reloaded.Items()))
		assert.True(t, wantTotal.Equal(reloaded.Total()))
		assertAggregates(t, reloaded)
	})
}

// 保存されたレコードの商品情報が読み戻せる
func TestStore_Load_KeepsProductFields(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		p := product("1", "49.99", "S", "M", "L")
		p.Description = "soft"
		p.Image = "https://example.com/1.jpg"
		p.Color = "Blue"
		p.Stock = 12
		p.Featured = true

		s := newStore()
		s.AddItem(ctx, p, "L", 1)
		require.NoError(t, s.Flush(ctx))

		reloaded := newStore()
		require.NoError(t, reloaded.Load(ctx))
		items := reloaded.Items()
		require.Len(t, items, 1)

		got := items[0]
		assert.Equal(t, p.Name, got.Name)
		assert.True(t, p.Price.Equal(got.Price))
		assert.Equal(t, p.Description, got.Description)
		assert.Equal(t, p.Image, got.Image)
		assert.Equal(t, p.Category, got.Category)
		assert.Equal(t, p.Sizes, got.Sizes)
		assert.Equal(t, p.Color, got.Color)
		assert.Equal(t, p.Stock, got.Stock)
		assert.True(t, got.Featured)
	})
}

// 壊れたデータ（数量0・重複キー）は読み込み時に直す
func TestStore_Load_RepairsRecords(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			backend := factory(t)

			rec := model.NewBasketRecord(model.BasketLine{Product: product("1", "10", "M"), Quantity: 0, Size: "M"})
			require.NoError(t, backend.Put(ctx, rec))

			s := basket.NewStore(backend)
			require.NoError(t, s.Load(ctx))
			assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, view(s.Items()))
		})
	}
}

// =====================
// シナリオ
// =====================

func TestStore_Scenario(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "10", "M", "L")

		assert.Empty(t, s.Items())

		s.AddItem(ctx, p, "M", 1)
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 1}}, view(s.Items()))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(10)))

		s.AddItem(ctx, p, "M", 1)
		assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, view(s.Items()))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(20)))

		s.UpdateSize(ctx, "1", "M", "L")
		assert.Equal(t, []lineView{{ID: "1", Size: "L", Quantity: 2}}, view(s.Items()))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(20)))
		assert.Equal(t, []lineView{{ID: "1", Size: "L", Quantity: 2}}, persisted(t, s, backend))

		s.RemoveItem(ctx, "1", "L")
		assert.Empty(t, s.Items())
		assert.True(t, s.Total().IsZero())
		assert.Empty(t, persisted(t, s, backend))
	})
}

// =====================
// 並行
// =====================

// 並行に足しても、メモリと保存先が同じ値に落ち着く
func TestStore_ConcurrentMutationsPersistInOrder(t *testing.T) {
	eachStore(t, func(t *testing.T, newStore func() *basket.Store, backend repository.BasketRepository) {
		ctx := context.Background()
		s := newStore()
		p := product("1", "1.50", "M", "L")

		const workers = 8
		const perWorker = 10

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					s.AddItem(ctx, p, "M", 1)
					_ = s.Snapshot()
				}
			}()
		}
		wg.Wait()

		want := []lineView{{ID: "1", Size: "M", Quantity: workers * perWorker}}
		assert.Equal(t, want, view(s.Items()))
		assert.Equal(t, want, persisted(t, s, backend))
		assertAggregates(t, s)
	})
}

// =====================
// 保存失敗
// =====================

type BasketRepoMock struct{ mock.Mock }

func (m *BasketRepoMock) GetAll(ctx context.Context) ([]model.BasketRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]model.BasketRecord)
	return recs, args.Error(1)
}

func (m *BasketRepoMock) Put(ctx context.Context, rec model.BasketRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *BasketRepoMock) Delete(ctx context.Context, key model.LineKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *BasketRepoMock) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ repository.BasketRepository = (*BasketRepoMock)(nil)

type spyLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *spyLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *spyLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

// 保存に失敗してもメモリの状態は残り、ログにだけ出る
func TestStore_PersistFailureIsLoggedNotSurfaced(t *testing.T) {
	for _, m := range modes() {
		t.Run(m.name, func(t *testing.T) {
			ctx := context.Background()
			boom := errors.New("disk full")

			repo := new(BasketRepoMock)
			repo.On("Put", mock.Anything, mock.Anything).Return(boom)
			repo.On("Delete", mock.Anything, mock.Anything).Return(boom)
			repo.On("Clear", mock.Anything).Return(boom)

			logger := &spyLogger{}
			s := basket.NewStore(repo, append(m.opts, basket.WithLogger(logger))...)
			defer s.Close()

			p := product("1", "10", "M", "L")
			s.AddItem(ctx, p, "M", 2)
			s.UpdateSize(ctx, "1", "M", "L")
			s.UpdateQuantity(ctx, "1", "L", 3)

			assert.Equal(t, []lineView{{ID: "1", Size: "L", Quantity: 3}}, view(s.Items()))
			assert.True(t, s.Total().Equal(decimal.NewFromInt(30)))

			s.Clear(ctx)
			assert.Empty(t, s.Items())

			require.NoError(t, s.Flush(ctx))
			msgs := logger.messages()
			// put, put+delete, put, clear
			assert.Len(t, msgs, 5)
			for _, msg := range msgs {
				assert.Contains(t, msg, "disk full")
			}
			repo.AssertNumberOfCalls(t, "Put", 3)
			repo.AssertNumberOfCalls(t, "Delete", 1)
			repo.AssertNumberOfCalls(t, "Clear", 1)
		})
	}
}

// 読み込み済みのカートは、再読み込みに失敗しても消えない
func TestStore_Load_FailureKeepsCurrentLines(t *testing.T) {
	rec := model.NewBasketRecord(model.BasketLine{Product: product("1", "10", "M"), Quantity: 2, Size: "M"})
	repo := new(BasketRepoMock)
	repo.On("GetAll", mock.Anything).Return([]model.BasketRecord{rec}, nil).Once()
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("unreadable")).Once()

	logger := &spyLogger{}
	s := basket.NewStore(repo, basket.WithLogger(logger))
	require.NoError(t, s.Load(context.Background()))

	assert.Error(t, s.Load(context.Background()))
	assert.Equal(t, []lineView{{ID: "1", Size: "M", Quantity: 2}}, view(s.Items()))
	assert.Len(t, logger.messages(), 1)
}

func TestStore_Load_FailureKeepsEmptyAndLogs(t *testing.T) {
	repo := new(BasketRepoMock)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("unreadable"))

	logger := &spyLogger{}
	s := basket.NewStore(repo, basket.WithLogger(logger))

	err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, s.Items())
	assert.Len(t, logger.messages(), 1)
}

// =====================
// 終了
// =====================

func TestStore_Close_DrainsQueue(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBasketStore()
	s := basket.NewStore(backend, basket.WithAsyncPersist(1))

	for i := 0; i < 20; i++ {
		s.AddItem(ctx, product(fmt.Sprint(i), "1", "M"), "M", 1)
	}
	s.Close()

	recs, err := backend.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 20)

	// 閉じた後の変更はメモリにだけ入る
	s.AddItem(ctx, product("late", "1", "M"), "M", 1)
	assert.Len(t, s.Items(), 21)
	assert.NoError(t, s.Flush(ctx))
}
