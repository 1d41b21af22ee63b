// Package app はcmd/api と cmd/clothctl の共通の組み立て。
package app

import (
	"context"
	"fmt"
	"strings"

	"clothco/internal/config"
	"clothco/internal/infra/db"
	"clothco/internal/infra/kv"
	"clothco/internal/infra/memory"
	infraRepo "clothco/internal/infra/repository"
	"clothco/internal/repository"
	basket "clothco/internal/usecase/basket_usecase"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// LOG_LEVEL からgommonのロガーを作る
func NewLogger(prefix string, level string) *log.Logger {
	l := log.New(prefix)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(ParseLevel(level))
	return l
}

func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Session はDBとカートの正本をまとめて持つ
type Session struct {
	DB    *gorm.DB
	Store *basket.Store

	closers []func() error
}

// Open はDBを開き、設定に応じた保存先でカートを読み込む。
// 読み込みに失敗しても空のカートで続ける。
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Session, error) {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{DB: gormDB}
	s.closers = append(s.closers, func() error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	backend, closeBackend, err := openBasketRepository(cfg, gormDB)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if closeBackend != nil {
		s.closers = append(s.closers, closeBackend)
	}

	opts := []basket.Option{basket.WithLogger(logger)}
	if cfg.BasketPersist == config.PersistAsync {
		opts = append(opts, basket.WithAsyncPersist(cfg.BasketQueueSize))
	}
	s.Store = basket.NewStore(backend, opts...)

	if err := s.Store.Load(ctx); err != nil {
		logger.Warnf("basket: starting empty: %v", err)
	}
	return s, nil
}

func openBasketRepository(cfg config.Config, gormDB *gorm.DB) (repository.BasketRepository, func() error, error) {
	switch cfg.BasketBackend {
	case config.BasketBackendSQL:
		return infraRepo.NewBasketGormRepository(gormDB), nil, nil
	case config.BasketBackendBolt:
		st, err := kv.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case config.BasketBackendMemory:
		return memory.NewBasketStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown basket backend %q", cfg.BasketBackend)
	}
}

// Close は保存待ちを出し切ってから閉じる
func (s *Session) Close() error {
	if s.Store != nil {
		s.Store.Close()
	}
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
