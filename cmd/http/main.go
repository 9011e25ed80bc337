package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"personas-web/internal/app/config"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/delivery/http/controllers"
	"personas-web/internal/app/delivery/http/middlewares"
	"personas-web/internal/app/delivery/http/routers"
	"personas-web/internal/app/delivery/http/views"
	"personas-web/internal/app/drivers/database"
	"personas-web/internal/app/drivers/logger"
	corePersonas "personas-web/internal/app/services/core/personas"
	"personas-web/internal/app/services/graphql"
	"personas-web/internal/app/services/personas"
	"personas-web/internal/app/services/shared/locker"
	"personas-web/internal/app/services/shared/memstore"
	"personas-web/internal/app/services/shared/redis"
	"personas-web/internal/app/services/shared/session"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location
	log.Printf("Successfully set time base to %s", internalConfig.App.Timezone)

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting personas-web",
		zap.String("build_version", Version),
		zap.String("build_tag", Tag),
		zap.String("graphql_endpoint", internalConfig.GraphQL.Endpoint),
		zap.String("store_driver", driverConfig.Store.Driver),
	)

	store, storeClose := newKeyValueStore(driverConfig)

	chiRouter := chi.NewRouter()
	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
		StoreClose:     storeClose,
	}

	err = bootstrapingTheApp(bootstrap, store)
	if err != nil {
		log.Fatalf("Error while bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Printf("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while shutting down the app: %v", err)
	}

	log.Println("Server exiting")
}

// newKeyValueStore backs the response cache, the sessions and the locks.
// Every instance behind a load balancer must share the redis driver.
func newKeyValueStore(driverConfig *config.DriverConfig) (contracts.RedisRepository, func() error) {
	switch driverConfig.Store.Driver {
	case config.StoreDriverRedis:
		client := database.NewRedisClient(driverConfig)
		log.Printf("Successfully connected to redis at %s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port)
		return redis.NewRedisRepository(client), client.Close
	case config.StoreDriverMemory:
		store := memstore.NewStore(time.Minute)
		return store, store.Close
	default:
		log.Fatalf("Unknown store driver: %s", driverConfig.Store.Driver)
		return nil, nil
	}
}

func bootstrapingTheApp(bootstrap config.Bootstrap, store contracts.RedisRepository) error {
	// Shared
	sessionService := session.NewSessionService(
		store,
		time.Duration(bootstrap.InternalConfig.App.SessionExpiredTimeInHours)*time.Hour,
		bootstrap.Logger,
	)
	lockerService := locker.NewLockService(store, bootstrap.Logger)

	// GraphQL
	responseCache := graphql.NewResponseCache(store, bootstrap.Logger)
	graphqlClient := graphql.NewGraphQLClient(
		graphql.NewClientConfig(bootstrap.InternalConfig),
		responseCache,
		bootstrap.Logger,
	)

	// Persona
	personaGraphQLClient := personas.NewPersonaGraphQLClient(graphqlClient, bootstrap.Logger)
	personaUsecase := corePersonas.NewPersonaUsecase(
		personaGraphQLClient,
		sessionService,
		lockerService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("views: %w", err)
	}
	personaController := controllers.NewPersonaController(bootstrap.Logger, personaUsecase, renderer, bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, personaController)
	return nil
}
