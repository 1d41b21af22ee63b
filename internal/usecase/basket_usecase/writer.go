package basket

import (
	"context"
	"sync"

	"clothco/internal/domain/model"
	"clothco/internal/repository"
)

type opKind int

const (
	opPut opKind = iota
	opDelete
	opClear
)

func (k opKind) String() string {
	switch k {
	case opPut:
		return "put"
	case opDelete:
		return "delete"
	default:
		return "clear"
	}
}

// 保存先への1回分の書き込み
type op struct {
	kind opKind
	rec  model.BasketRecord
	key  model.LineKey
}

func putOp(l model.BasketLine) op {
	return op{kind: opPut, rec: model.NewBasketRecord(l), key: l.Key()}
}

func deleteOp(key model.LineKey) op {
	return op{kind: opDelete, key: key}
}

func clearOp() op {
	return op{kind: opClear}
}

// 失敗はログだけ。残りの書き込みは続ける（どれもキー単位で冪等）。
func apply(ctx context.Context, repo repository.BasketRepository, logf func(string, ...interface{}), ops []op) {
	for _, o := range ops {
		var err error
		switch o.kind {
		case opPut:
			err = repo.Put(ctx, o.rec)
		case opDelete:
			err = repo.Delete(ctx, o.key)
		case opClear:
			err = repo.Clear(ctx)
		}
		if err != nil {
			if o.kind == opClear {
				logf("basket: %s: %v", o.kind, err)
				continue
			}
			logf("basket: %s %s: %v", o.kind, o.key, err)
		}
	}
}

type writer interface {
	// Store.mu を持ったまま呼ばれる。返した関数はロックを外した後に呼ばれる。
	submit(ctx context.Context, ops []op) (wait func())
	flush(ctx context.Context) error
	close()
}

// 呼び出し側で保存まで待つ。書き込み同士は変更順に直列。
type inlineWriter struct {
	mu   sync.Mutex
	repo repository.BasketRepository
	logf func(string, ...interface{})
}

func newInlineWriter(repo repository.BasketRepository, logf func(string, ...interface{})) *inlineWriter {
	return &inlineWriter{repo: repo, logf: logf}
}

func (w *inlineWriter) submit(ctx context.Context, ops []op) func() {
	w.mu.Lock()
	return func() {
		defer w.mu.Unlock()
		apply(ctx, w.repo, w.logf, ops)
	}
}

func (w *inlineWriter) flush(ctx context.Context) error {
	// 実行中の書き込みが終わるのを待つだけ
	w.mu.Lock()
	defer w.mu.Unlock()
	return ctx.Err()
}

func (w *inlineWriter) close() {}

type request struct {
	ctx context.Context
	ops []op
	ack chan struct{}
}

// 1本のワーカーがFIFOで保存する。呼び出し側は待たない。
type queuedWriter struct {
	mu     sync.Mutex
	closed bool
	ch     chan request
	done   chan struct{}

	repo repository.BasketRepository
	logf func(string, ...interface{})
}

func newQueuedWriter(repo repository.BasketRepository, logf func(string, ...interface{}), size int) *queuedWriter {
	if size < 1 {
		size = 1
	}
	w := &queuedWriter{
		ch:   make(chan request, size),
		done: make(chan struct{}),
		repo: repo,
		logf: logf,
	}
	go w.run()
	return w
}

func (w *queuedWriter) run() {
	defer close(w.done)
	for req := range w.ch {
		if req.ack != nil {
			close(req.ack)
			continue
		}
		apply(req.ctx, w.repo, w.logf, req.ops)
	}
}

func (w *queuedWriter) submit(ctx context.Context, ops []op) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logf("basket: write queue closed, dropped %d write(s)", len(ops))
		return func() {}
	}
	// リクエストのキャンセルで保存を止めない
	w.ch <- request{ctx: context.WithoutCancel(ctx), ops: ops}
	return func() {}
}

func (w *queuedWriter) flush(ctx context.Context) error {
	ack := make(chan struct{})

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	select {
	case w.ch <- request{ack: ack}:
	case <-ctx.Done():
		w.mu.Unlock()
		return ctx.Err()
	}
	w.mu.Unlock()

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *queuedWriter) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	w.mu.Unlock()
	<-w.done
}
