// Package kv はBoltDBの1キーにカート全体をJSON配列で置く保存先。
// 読んで・直して・丸ごと書き戻す。
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"clothco/internal/domain/model"

	"go.etcd.io/bbolt"
)

const (
	storefrontBucket = "storefront"
	basketKey        = "basket"
)

type BasketBoltStore struct {
	db *bbolt.DB
}

// pathにBoltDBを開く（無ければ作る）
func Open(path string) (*BasketBoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(storefrontBucket)); err != nil {
			return fmt.Errorf("create storefront bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BasketBoltStore{db: db}, nil
}

func (s *BasketBoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BasketBoltStore) GetAll(ctx context.Context) ([]model.BasketRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var recs []model.BasketRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(storefrontBucket))
		if b == nil {
			return fmt.Errorf("storefront bucket is missing")
		}
		var err error
		recs, err = decode(b.Get([]byte(basketKey)))
		return err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// 同じキーは上書き、無ければ末尾に追加
func (s *BasketBoltStore) Put(ctx context.Context, rec model.BasketRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	rec.LineKey = rec.Key().String()

	return s.rewrite(func(recs []model.BasketRecord) []model.BasketRecord {
		for i := range recs {
			if recs[i].Key() == rec.Key() {
				recs[i] = rec
				return recs
			}
		}
		return append(recs, rec)
	})
}

func (s *BasketBoltStore) Delete(ctx context.Context, key model.LineKey) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	return s.rewrite(func(recs []model.BasketRecord) []model.BasketRecord {
		out := recs[:0]
		for _, r := range recs {
			if r.Key() != key {
				out = append(out, r)
			}
		}
		return out
	})
}

func (s *BasketBoltStore) Clear(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(storefrontBucket))
		if b == nil {
			return fmt.Errorf("storefront bucket is missing")
		}
		return b.Delete([]byte(basketKey))
	})
}

func (s *BasketBoltStore) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// 配列を読み出してfnで直し、同じトランザクションで書き戻す
func (s *BasketBoltStore) rewrite(fn func([]model.BasketRecord) []model.BasketRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(storefrontBucket))
		if b == nil {
			return fmt.Errorf("storefront bucket is missing")
		}
		recs, err := decode(b.Get([]byte(basketKey)))
		if err != nil {
			return err
		}
		payload, err := json.Marshal(fn(recs))
		if err != nil {
			return fmt.Errorf("marshal basket: %w", err)
		}
		return b.Put([]byte(basketKey), payload)
	})
}

func decode(payload []byte) ([]model.BasketRecord, error) {
	recs := []model.BasketRecord{}
	if payload == nil {
		return recs, nil
	}
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, fmt.Errorf("unmarshal basket: %w", err)
	}
	return recs, nil
}
