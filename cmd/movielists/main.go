package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"movielists/internal/config"
	"movielists/internal/logger"
	"movielists/internal/mongo"
	"movielists/internal/mysql"
	"movielists/internal/routing"
	"movielists/pkg/list"
	"movielists/pkg/session"
	"movielists/pkg/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logger.Load(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, mongoDB, err := mongo.LoadDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer mongoClient.Disconnect(context.Background())

	userRepo := user.NewMongoRepo(mongoDB)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	sessions, closeSessions := loadSessions(cfg)
	defer closeSessions()

	r := routing.NewRouter(routing.Deps{
		Users:    user.NewService(userRepo, sessions),
		Lists:    list.NewService(list.NewMongoRepo(mongoDB, user.Collection)),
		Sessions: sessions,
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.SessionTTL,
		Logger:   logger,
	})

	if err := routing.StartServer(ctx, cfg.HTTPAddr, r, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadSessions(cfg *config.Config) (session.Repository, func()) {
	if cfg.SessionStore == config.StoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Cannot connect to redis: ", err)
		}
		return session.NewRedisRepo(client, cfg.SessionTTL), func() { client.Close() }
	}

	db, err := mysql.LoadDB(cfg.MySQLDSN)
	if err != nil {
		log.Fatal(err)
	}
	return session.NewMySQLSessionRepo(db, cfg.SessionTTL), func() { db.Close() }
}
