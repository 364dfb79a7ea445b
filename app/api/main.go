package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/database/mongoclient"
	"github.com/openlot/goapi/base/log"
	bValidator "github.com/openlot/goapi/base/validator"
	"github.com/openlot/goapi/domain"
	mmiddleware "github.com/openlot/goapi/middleware"
	"github.com/openlot/goapi/service/bank"
	"github.com/openlot/goapi/service/query"
	"github.com/openlot/goapi/service/registry"
	auction_delivery "github.com/openlot/goapi/stores/auction/delivery/http"
	auction_repository "github.com/openlot/goapi/stores/auction/repository"
	auction_usecase "github.com/openlot/goapi/stores/auction/usecase"
	event_delivery "github.com/openlot/goapi/stores/event/delivery/http"
	event_repository "github.com/openlot/goapi/stores/event/repository"
	hc_delivery "github.com/openlot/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/openlot/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/openlot/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/openlot/goapi/stores/listing/delivery/http"
	listing_repository "github.com/openlot/goapi/stores/listing/repository"
	listing_usecase "github.com/openlot/goapi/stores/listing/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	httpTimeout := viper.GetDuration("http.timeout")

	registryClient := registry.NewClient(&registry.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("registry.endpoint"),
		Apikey:     viper.GetString("registry.apikey"),
	})
	bankClient := bank.NewClient(&bank.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("bank.endpoint"),
		Apikey:     viper.GetString("bank.apikey"),
	})

	platformFee := domain.FromMicroPercent(viper.GetUint64("platform.feeMicroPct"))
	feeBeneficiary := domain.Address(viper.GetString("platform.feeBeneficiary"))
	escrowAccount := domain.Address(viper.GetString("platform.escrowAccount"))

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	tokenStateRepo := auction_repository.NewTokenStateRepo(q)
	listingRepo := listing_repository.NewListingRepo(q)
	eventRepo := event_repository.NewEventRepo(q)

	hc := hc_usecase.New(hcRepo)
	auctionUseCase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		TokenStateRepo: tokenStateRepo,
		EventRepo:      eventRepo,
		Registry:       registryClient,
		Rail:           bankClient,
		PlatformFee:    platformFee,
		FeeBeneficiary: feeBeneficiary,
		EscrowAccount:  escrowAccount,
	})
	listingUseCase := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:    listingRepo,
		EventRepo:      eventRepo,
		Registry:       registryClient,
		Rail:           bankClient,
		PlatformFee:    platformFee,
		FeeBeneficiary: feeBeneficiary,
		EscrowAccount:  escrowAccount,
	})

	hc_delivery.New(e, hc)
	auction_delivery.New(e, auctionUseCase)
	listing_delivery.New(e, listingUseCase)
	event_delivery.New(e, eventRepo)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
