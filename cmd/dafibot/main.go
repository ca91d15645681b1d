package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"dafi.es/dafibot/internal/bot"
	"dafi.es/dafibot/internal/config"
	"dafi.es/dafibot/internal/election"
	"dafi.es/dafibot/internal/logger"
	"dafi.es/dafibot/internal/persistence"
	"dafi.es/dafibot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg := logger.NewLogger(cfg.LogLevel)
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			lg.Error("failed to init sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			lg = logger.NewLoggerWithSentry(cfg.LogLevel)
		}
	}

	lg.Info("config loaded",
		"db_driver", cfg.DBDriver,
		"main_group", cfg.MainGroupID,
		"mongo", cfg.MongoURI != "",
	)

	db, err := storage.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		lg.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		lg.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	lg.Info("database initialized")

	var flags persistence.Store = persistence.NewSQLStore(db.DB())
	if cfg.MongoURI != "" {
		mdb, err := persistence.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			lg.Error("failed to connect to mongo", "error", err)
			os.Exit(1)
		}
		defer mdb.Client().Disconnect(context.Background())

		flags, err = persistence.NewMongoStore(mdb)
		if err != nil {
			lg.Error("failed to create mongo store", "error", err)
			os.Exit(1)
		}
	}

	if cfg.MainGroupID == 0 {
		lg.Warn("DAFI_MAIN_GROUP not set, nomination requests will be refused")
	}

	elections := election.NewService(
		election.NewPeriod(flags),
		storage.NewUserRepository(db),
		storage.NewGroupRepository(db),
		cfg.MainGroupID,
	)

	if err := bot.InitTemplates(); err != nil {
		lg.Error("failed to init templates", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg.TelegramToken, elections, lg)
	if err != nil {
		lg.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterCommands()

	// signal.Notify requires the channel to be buffered
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		lg.Info("shutting down")
		b.Stop()
	}()

	b.Start()
}
