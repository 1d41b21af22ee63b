package basket

import (
	"context"
	"math"
	"sync"
	"time"

	"clothco/internal/domain/model"
	"clothco/internal/repository"

	"github.com/shopspring/decimal"
)

// 保存失敗を流す先。gommonのlog.Logger（echoのLogger）がそのまま入る。
type Logger interface {
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}

// Store はカートの正本をメモリに持ち、変更ごとに保存先へ書き出す。
//
// 変更はまずメモリに反映され（楽観的更新）、保存は後から行われる。
// 保存に失敗してもログに出すだけで、メモリ側は巻き戻さない。
type Store struct {
	mu      sync.RWMutex
	lines   []model.BasketLine
	lastPos int64

	repo   repository.BasketRepository
	writer writer
	logger Logger
}

type Option func(*Store)

func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// 保存を1本のワーカーに順番に流す（呼び出し側は保存を待たない）
func WithAsyncPersist(queueSize int) Option {
	return func(s *Store) {
		s.writer = newQueuedWriter(s.repo, s.logf, queueSize)
	}
}

// DI
func NewStore(repo repository.BasketRepository, opts ...Option) *Store {
	s := &Store{
		lines:  []model.BasketLine{},
		repo:   repo,
		logger: nopLogger{},
	}
	s.writer = newInlineWriter(repo, s.logf)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) logf(format string, args ...interface{}) {
	s.logger.Errorf(format, args...)
}

// Load は保存先からカートを読み直す（ページ再読み込み相当）。
// 失敗したら今の中身をそのまま残す（起動直後なら空）。
func (s *Store) Load(ctx context.Context) error {
	if err := s.writer.flush(ctx); err != nil {
		return err
	}

	recs, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logf("basket: load: %v", err)
		return err
	}

	lines := make([]model.BasketLine, 0, len(recs))
	seen := make(map[model.LineKey]int, len(recs))
	var lastPos int64
	for _, rec := range recs {
		l := rec.Line()
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		lastPos = max(lastPos, l.Position)
		// 壊れたデータで同じキーが2つあったら数量をまとめる
		if i, ok := seen[l.Key()]; ok {
			lines[i].Quantity = addQuantity(lines[i].Quantity, l.Quantity)
			continue
		}
		seen[l.Key()] = len(lines)
		lines = append(lines, l)
	}

	s.mu.Lock()
	s.lines = lines
	s.lastPos = max(s.lastPos, lastPos)
	s.mu.Unlock()
	return nil
}

// AddItem は同じ商品・サイズなら数量を足し、無ければ明細を追加する。
func (s *Store) AddItem(ctx context.Context, p model.Product, size string, quantity int64) {
	quantity = clamp(quantity)

	s.mu.Lock()
	var line model.BasketLine
	if i := s.indexOf(model.LineKey{ProductID: p.ID, Size: size}); i >= 0 {
		s.lines[i].Quantity = addQuantity(s.lines[i].Quantity, quantity)
		line = s.lines[i]
	} else {
		line = model.BasketLine{Product: p, Quantity: quantity, Size: size, Position: s.nextPositionLocked()}
		line.Sizes = append([]string(nil), p.Sizes...)
		s.lines = append(s.lines, line)
	}
	s.submitLocked(ctx, putOp(line))
}

// RemoveItem は該当明細を消す。無ければ何もしない。
func (s *Store) RemoveItem(ctx context.Context, id string, size string) {
	key := model.LineKey{ProductID: id, Size: size}

	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.submitLocked(ctx, deleteOp(key))
}

// UpdateQuantity は数量を変える。0以下は1にする（削除はしない）。
func (s *Store) UpdateQuantity(ctx context.Context, id string, size string, quantity int64) {
	quantity = clamp(quantity)

	s.mu.Lock()
	i := s.indexOf(model.LineKey{ProductID: id, Size: size})
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines[i].Quantity = quantity
	s.submitLocked(ctx, putOp(s.lines[i]))
}

// UpdateSize は明細のサイズを変える。
// 変更先に既に明細があれば数量を合算して1行にまとめる。
func (s *Store) UpdateSize(ctx context.Context, id string, oldSize string, newSize string) {
	if oldSize == newSize {
		return
	}
	oldKey := model.LineKey{ProductID: id, Size: oldSize}
	newKey := model.LineKey{ProductID: id, Size: newSize}

	s.mu.Lock()
	oi := s.indexOf(oldKey)
	if oi < 0 {
		s.mu.Unlock()
		return
	}

	var merged model.BasketLine
	if ni := s.indexOf(newKey); ni >= 0 {
		s.lines[ni].Quantity = addQuantity(s.lines[ni].Quantity, s.lines[oi].Quantity)
		merged = s.lines[ni]
		s.lines = append(s.lines[:oi], s.lines[oi+1:]...)
	} else {
		// 表示位置はそのまま（Positionも引き継ぐ）
		s.lines[oi].Size = newSize
		merged = s.lines[oi]
	}
	s.submitLocked(ctx, putOp(merged), deleteOp(oldKey))
}

// Clear はメモリと保存先を一緒に空にする。
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = []model.BasketLine{}
	s.submitLocked(ctx, clearOp())
}

// Deduct は注文した明細の分だけカートから引く。
// 注文の途中で足された数量や明細はカートに残る。
func (s *Store) Deduct(ctx context.Context, ordered []model.BasketLine) {
	s.mu.Lock()
	ops := make([]op, 0, len(ordered))
	for _, o := range ordered {
		key := o.Key()
		i := s.indexOf(key)
		if i < 0 {
			continue
		}
		if s.lines[i].Quantity > o.Quantity {
			s.lines[i].Quantity -= o.Quantity
			ops = append(ops, putOp(s.lines[i]))
			continue
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		ops = append(ops, deleteOp(key))
	}
	if len(ops) == 0 {
		s.mu.Unlock()
		return
	}
	s.submitLocked(ctx, ops...)
}

// Flush はここまでに出した保存が全部終わるまで待つ。
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close はキューを出し切ってから止める（セッション終了時）。
func (s *Store) Close() {
	s.writer.close()
}

// 現在の明細（コピー）
func (s *Store) Items() []model.BasketLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLines(s.lines)
}

func (s *Store) ItemCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCount(s.lines)
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return total(s.lines)
}

// 明細・個数・合計を同じ時点で取る
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSnapshot(s.lines)
}

// s.mu を持った状態で呼ぶ。保存順をここで確定させてからロックを外す。
func (s *Store) submitLocked(ctx context.Context, ops ...op) {
	wait := s.writer.submit(ctx, ops)
	s.mu.Unlock()
	wait()
}

func (s *Store) indexOf(key model.LineKey) int {
	for i, l := range s.lines {
		if l.ID == key.ProductID && l.Size == key.Size {
			return i
		}
	}
	return -1
}

// 新しい明細の表示順。読み込んだ明細より必ず後ろになる。
func (s *Store) nextPositionLocked() int64 {
	p := time.Now().UnixNano()
	if p <= s.lastPos {
		p = s.lastPos + 1
	}
	s.lastPos = p
	return p
}

// 数量の加算は上限で止める（どちらも1以上）
func addQuantity(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func clamp(q int64) int64 {
	if q < 1 {
		return 1
	}
	return q
}

func copyLines(lines []model.BasketLine) []model.BasketLine {
	out := make([]model.BasketLine, len(lines))
	for i, l := range lines {
		l.Sizes = append([]string(nil), l.Sizes...)
		out[i] = l
	}
	return out
}
