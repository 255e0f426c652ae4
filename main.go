package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/auth"
	"github.com/umalmyha/customer-registry/internal/cache"
	"github.com/umalmyha/customer-registry/internal/config"
	"github.com/umalmyha/customer-registry/internal/country"
	"github.com/umalmyha/customer-registry/internal/handlers"
	"github.com/umalmyha/customer-registry/internal/infra"
	"github.com/umalmyha/customer-registry/internal/repository"
	"github.com/umalmyha/customer-registry/internal/service"
	"github.com/umalmyha/customer-registry/internal/validation"
	"github.com/umalmyha/customer-registry/pkg/db/transactor"
)

const defaultConnectTimeout = 5 * time.Second

// @title                      Customer Registry API
// @version                    1.0
// @description                Customer records enriched with country demonyms
// @host                       localhost:3000
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	logger, err := infra.Logger(cfg.LogCfg)
	if err != nil {
		logrus.Fatal(err)
	}

	connCtx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	pgPool, err := infra.Postgresql(connCtx, cfg.PostgresCfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer pgPool.Close()

	mongoClient, err := infra.Mongodb(connCtx, cfg.MongoCfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Errorf("failed to disconnect from mongo - %v", err)
		}
	}()

	redisClient, err := infra.Redis(connCtx, cfg.RedisCfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer redisClient.Close()

	mongoDB := mongoClient.Database(cfg.MongoCfg.Database)
	if err := repository.EnsureMongoCustomerIndexes(connCtx, mongoDB); err != nil {
		logger.Fatal(err)
	}

	// Country lookup
	countrySource := country.NewCachedSource(
		country.NewRestCountriesSource(cfg.CountryCfg.BaseURL, cfg.CountryCfg.Timeout),
		cache.NewRedisCountryCache(redisClient, cfg.CountryCfg.TimeToLive),
	)
	lookup := country.NewLookup(countrySource)

	// Validation
	validate, trans, err := validation.EnglishTranslator()
	if err != nil {
		logger.Fatal(err)
	}

	if err := validation.RegisterCountryRules(validate, trans, lookup); err != nil {
		logger.Fatal(err)
	}
	echoValidator := validation.Echo(validate, trans)

	// Auth
	jwtCfg := cfg.AuthCfg.JwtCfg
	jwtIssuer := auth.NewJwtIssuer(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	jwtValidator := auth.NewJwtValidator(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.PublicKey)

	// Transactors
	pgTrx := transactor.NewPgxTransactor(pgPool)
	pgExecutor := transactor.NewPgxWithinTransactionExecutor(pgPool)

	// Repositories
	userRepo := repository.NewPostgresUserRepository(pgExecutor)
	pgCustRepo := repository.NewPostgresCustomerRepository(pgExecutor)
	mongoCustRepo := repository.NewMongoCustomerRepository(mongoDB)

	// Caches, stores assign ids independently
	custCacheV1 := cache.NewRedisCustomerCache(redisClient, "v1", cfg.CustomerCfg.CacheTTL)
	custCacheV2 := cache.NewRedisCustomerCache(redisClient, "v2", cfg.CustomerCfg.CacheTTL)

	// Services
	authSvc := service.NewAuthService(jwtIssuer, pgTrx, userRepo)
	custSvcV1 := service.NewCustomerService(pgTrx, pgCustRepo, custCacheV1, lookup, cfg.CustomerCfg.DeleteMode)
	custSvcV2 := service.NewCustomerService(transactor.NewNopTransactor(), mongoCustRepo, custCacheV2, lookup, cfg.CustomerCfg.DeleteMode)

	e := infra.Router(echoValidator, jwtValidator, infra.HTTPHandlers{
		Auth:        handlers.NewAuthHTTPHandler(authSvc),
		CustomersV1: handlers.NewCustomerHTTPHandler(custSvcV1),
		CustomersV2: handlers.NewCustomerHTTPHandler(custSvcV2),
	}, logger)

	grpcSrv := infra.GrpcServer(
		jwtValidator,
		handlers.NewCustomerGrpcHandler(custSvcV1, echoValidator),
		handlers.NewAuthGrpcHandler(authSvc, echoValidator),
		logger,
	)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GrpcCfg.Port))
	if err != nil {
		logger.Fatalf("failed to listen grpc port %d - %v", cfg.GrpcCfg.Port, err)
	}

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 2)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		errorCh <- e.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	go func() {
		errorCh <- grpcSrv.Serve(lis)
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutdown signal has been sent, stopping the servers...")
		grpcSrv.GracefulStop()
		if err := e.Shutdown(ctx); err != nil {
			logger.Errorf("failed to stop server gracefully - %v", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("shutting down the servers, unexpected error occurred - %v", err)
		}
		grpcSrv.Stop()
		_ = e.Close()
	}
}
