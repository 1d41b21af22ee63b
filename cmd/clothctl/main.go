package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"clothco/internal/app"
	"clothco/internal/config"
	"clothco/internal/infra/ids"
	infraRepo "clothco/internal/infra/repository"
	"clothco/internal/usecase"
)

type CLI struct {
	Backend  string `help:"Basket backend (sql, bolt, memory)." env:"BASKET_BACKEND" placeholder:"BACKEND"`
	LogLevel string `help:"Log level." env:"LOG_LEVEL" default:"warn"`

	Basket  basketCmd  `cmd:"" help:"Inspect and edit the persisted basket."`
	Catalog catalogCmd `cmd:"" help:"Catalog commands."`
}

var cli CLI

func main() {
	_ = godotenv.Load()

	kctx := kong.Parse(&cli,
		kong.Name("clothctl"),
		kong.Description("Command line access to the clothing store basket and catalog."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)
	if cli.Backend != "" {
		cfg.BasketBackend = cli.Backend
	}
	// CLIは終了前に必ず保存を待つ
	cfg.BasketPersist = config.PersistSync
	kctx.FatalIfErrorf(cfg.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.NewLogger("clothctl", cli.LogLevel)
	sess, err := app.Open(ctx, cfg, logger)
	kctx.FatalIfErrorf(err)
	defer sess.Close()

	productRepo := infraRepo.NewProductGormRepository(sess.DB)
	productUC := usecase.NewProductUsecase(productRepo, ids.UUIDGenerator{})
	basketUC := usecase.NewBasketUsecase(sess.Store, productRepo)

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	kctx.Bind(productUC, basketUC)

	err = kctx.Run()
	if err != nil {
		_ = sess.Close()
	}
	kctx.FatalIfErrorf(err)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
