package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clothco/internal/app"
	"clothco/internal/config"
	"clothco/internal/handler"
	"clothco/internal/infra/ids"
	infraRepo "clothco/internal/infra/repository"
	"clothco/internal/infra/seed"
	"clothco/internal/infra/token"
	"clothco/internal/server"
	"clothco/internal/usecase"
	auth "clothco/internal/usecase/auth_usecase"
	"clothco/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := app.NewLogger("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続とカートの読み込み
	sess, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open session: %v", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Errorf("close session: %v", err)
		}
	}()

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(sess.DB)
	orderRepo := infraRepo.NewOrderGormRepository(sess.DB)
	userRepo := infraRepo.NewUserGormRepository(sess.DB)
	paymentRepo := infraRepo.NewPaymentMethodGormRepository(sess.DB)
	messageRepo := infraRepo.NewMessageGormRepository(sess.DB)
	txm := infraRepo.NewTxManagerGorm(sess.DB)

	//usecaseに渡す部品
	idGen := ids.UUIDGenerator{}
	clock := ids.SystemClock{}
	jwt := token.NewJWT(cfg.JWTSecret, cfg.SessionTTL)
	checkoutValidator := validator.NewCheckoutValidator()

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, idGen)
	basketUC := usecase.NewBasketUsecase(sess.Store, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, sess.Store, checkoutValidator, idGen, clock)
	paymentUC := usecase.NewPaymentUsecase(paymentRepo, checkoutValidator, idGen, clock)
	profileUC := usecase.NewProfileUsecase(userRepo, orderRepo, paymentRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, idGen, clock)
	registerUC := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(12), jwt, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), jwt, clock)

	if cfg.SeedCatalog {
		products, err := seed.Products()
		if err != nil {
			logger.Fatalf("seed: %v", err)
		}
		n, err := productUC.SeedIfEmpty(ctx, products)
		if err != nil {
			logger.Fatalf("seed: %v", err)
		}
		if n > 0 {
			logger.Infof("seeded %d products", n)
		}
	}

	//Handler生成
	e := server.New(logger, server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Basket:       handler.NewBasketHandler(basketUC),
		Order:        handler.NewOrderHandler(orderUC),
		Auth:         handler.NewAuthHandler(registerUC, loginUC),
		Profile:      handler.NewProfileHandler(profileUC, paymentUC),
		Message:      handler.NewMessageHandler(messageUC),
	}, jwt)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Infof("listening on %s (basket backend=%s persist=%s)", addr, cfg.BasketBackend, cfg.BasketPersist)
	if err := server.Start(ctx, e, addr); err != nil {
		logger.Errorf("server: %v", err)
	}
}
