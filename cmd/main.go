package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/config"
	"github.com/aps-extract/extract-service/internal/handler"
	"github.com/aps-extract/extract-service/internal/mq"
	"github.com/aps-extract/extract-service/internal/repository"
	"github.com/aps-extract/extract-service/internal/repository/memory"
	"github.com/aps-extract/extract-service/internal/repository/postgres"
	"github.com/aps-extract/extract-service/internal/repository/redisrepo"
	"github.com/aps-extract/extract-service/internal/server"
	"github.com/aps-extract/extract-service/internal/service"
	"github.com/aps-extract/extract-service/internal/ws"
	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("error initializing config: %s", err.Error())
	}

	if err := initEnv(); err != nil {
		logger.Sugar().Fatalf("error initializing env: %s", err.Error())
	}

	apsConfig := &config.APSConfig{
		ClientID:     os.Getenv("APS_CLIENT_ID"),
		ClientSecret: os.Getenv("APS_CLIENT_SECRET"),
		CallbackURL:  os.Getenv("APS_CALLBACK_URL"),
	}
	if apsConfig.ClientID == "" || apsConfig.ClientSecret == "" || apsConfig.CallbackURL == "" {
		logger.Fatal("missing required environment variables APS_CLIENT_ID, APS_CLIENT_SECRET or APS_CALLBACK_URL")
	}

	dbConfig := &config.DBConfig{
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Host: os.Getenv("DB_HOST"),
		Port: os.Getenv("DB_PORT"),
		DBName: os.Getenv("DB_NAME"),
		SSLMode: os.Getenv("DB_SSLMODE"),
	}
	db, err := postgres.NewPgPool(context.Background(), dbConfig)
	if err != nil {
		logger.Sugar().Fatalf("error connecting to postgresql: %s", err.Error())
	}
	defer func ()  {
		db.Close()
	}()

	sessions, rdb := newSessionStore(logger)
	if rdb != nil {
		defer func ()  {
			if err := rdb.Close(); err != nil {
				logger.Sugar().Fatalf("error occured on redis db connection close: %s", err.Error())
			}
		}()
	}

	var queue *mq.Conn
	err = backoff.Retry(func() error {
		queue, err = mq.New(os.Getenv("RABBITMQ_URI"))
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		logger.Sugar().Fatalf("error connecting to rabbitmq: %s", err.Error())
	}
	defer func ()  {
		if err := queue.Close(); err != nil {
			logger.Sugar().Fatalf("error occured on rabbitmq connection close: %s", err.Error())
		}
	}()

	authenticator := aps.NewAuthenticator(apsConfig.ClientID, apsConfig.ClientSecret, apsConfig.CallbackURL)
	apsClient := aps.NewClient(viper.GetString("aps.baseURL"))
	hub := ws.NewHub(logger)

	repo := repository.New(sessions, db)
	services := service.New(logger, repo, queue, apsClient, hub)
	handlers := handler.New(services, authenticator, hub)

	services.StartAllWorkers(context.Background())

	srv := server.New()
	serverConfig := &config.ServerConfig{
		Port: viper.GetString("app.port"),
		Handler: handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout: time.Second * 10,
		WriteTimeout: time.Second * 10,
	}
	go func ()  {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Fatalf("error running server: %s", err.Error())
		}
	}()

	logger.Info("Extract Server Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Extract Server Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Sugar().Fatalf("error shutting down server: %s", err.Error())
	}
}

// newSessionStore picks the result-store driver. Redis is the deployment
// default; the in-process store exists for single-node setups and tests.
func newSessionStore(logger *zap.Logger) (repository.SessionStore, *redis.Client) {
	if viper.GetString("store.driver") == "memory" {
		return memory.NewSessionRepo(), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	if err := backoff.Retry(func() error {
		return rdb.Ping(context.Background()).Err()
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
		logger.Sugar().Fatalf("error connecting to redis: %s", err.Error())
	}

	return redisrepo.NewSessionRepo(rdb), rdb
}

func initConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func initEnv() error {
	return godotenv.Load()
}
