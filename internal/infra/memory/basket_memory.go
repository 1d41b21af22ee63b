// Package memory はプロセス内だけで持つ保存先（テスト・お試し用）。
package memory

import (
	"context"
	"sync"

	"clothco/internal/domain/model"
)

// 追加順を覚えるだけのフラットなカート保存先
type BasketStore struct {
	mu   sync.Mutex
	recs []model.BasketRecord
}

func NewBasketStore() *BasketStore {
	return &BasketStore{}
}

func (s *BasketStore) GetAll(ctx context.Context) ([]model.BasketRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.BasketRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *BasketStore) Put(ctx context.Context, rec model.BasketRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.LineKey = rec.Key().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].Key() == rec.Key() {
			s.recs[i] = rec
			return nil
		}
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *BasketStore) Delete(ctx context.Context, key model.LineKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].Key() == key {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *BasketStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.recs = nil
	s.mu.Unlock()
	return nil
}
