package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/Spok95/progbase-bot/internal/app"
	"github.com/Spok95/progbase-bot/internal/bot"
	"github.com/Spok95/progbase-bot/internal/catapi"
	"github.com/Spok95/progbase-bot/internal/config"
	"github.com/Spok95/progbase-bot/internal/db"
	"github.com/Spok95/progbase-bot/internal/jobs"
	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/observability"
	"github.com/Spok95/progbase-bot/internal/tg"
)

var release = "dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()
	sl := lg.Sugar

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		sl.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		sl.Fatalw("db connect failed", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		sl.Fatalw("migrations failed", "err", err)
	}
	store := db.NewStore(database)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sl.Fatalw("telegram init failed", "err", err)
	}
	api.Debug = cfg.Debug
	sl.Infow("bot started", "username", api.Self.UserName, "env", cfg.Env)

	app.StartHTTP(ctx, cfg.HTTPAddr, store)

	lf := links.New(cfg.ProgbaseURL)
	notifier := app.NewNotifier(api, store, lf, lg, cfg.NotifyBatch)
	jobs.New(ctx, lg).Every(cfg.NotifyInterval, "commit_notify", notifier.Run)

	router := bot.NewRouter(store, catapi.New(cfg.CatAPIURL), lf, lg)
	adapter := tg.NewAdapter(api, router, lg)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.PollTimeout
	updates := api.GetUpdatesChan(u)

	sl.Info("Module loaded. Now you can use your bot")
	adapter.Run(ctx, updates)

	api.StopReceivingUpdates()
	sl.Info("bot stopped")
}
