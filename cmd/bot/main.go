package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinArena/internal/championship"
	"CoinArena/internal/config"
	"CoinArena/internal/jackpot"
	"CoinArena/internal/ledger"
	"CoinArena/internal/market"
	"CoinArena/internal/notifier"
	"CoinArena/internal/recorder"
	"CoinArena/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoinArena starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init ledger
	lgr, err := ledger.New(cfg.Storage.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init ledger: %v", err)
	}

	// Init announcer: Telegram when configured, otherwise the log
	var tn *notifier.TelegramNotifier
	var announcer notifier.Announcer
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(ctx, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		announcer = tn
	} else {
		log.Println("[WARN] Telegram not configured, announcing to log only")
		announcer = notifier.NewLogAnnouncer()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// One random source per component: rand.Rand is not safe for concurrent
	// use, and these run on separate goroutines.
	seed := time.Now().UnixNano()

	// Init jackpot pool
	jp := jackpot.New(lgr, announcer, rec, rand.New(rand.NewSource(seed)), config.Duration(cfg.Jackpot.SettleDelay))
	defer jp.Stop()

	// Init crypto market
	mkt := market.New(lgr, rand.New(rand.NewSource(seed+1)))

	// Init championship engine
	champ := championship.New(lgr, announcer, rec, rand.New(rand.NewSource(seed+2)), championship.Config{
		AdvanceInterval:   config.Duration(cfg.Championship.AdvanceInterval),
		SeasonLength:      config.Duration(cfg.Championship.SeasonLength),
		RestartDelay:      config.Duration(cfg.Championship.RestartDelay),
		NarrationInterval: config.Duration(cfg.Championship.NarrationInterval),
	}, nil)
	go champ.Run(ctx)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, lgr, mkt, jp, champ, announcer)
	if err := sched.RegisterAll(cfg.Schedule.MarketCron, cfg.Schedule.StandingsCron, cfg.Schedule.StatsCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling for the display commands
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	log.Println("[INFO] CoinArena is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CoinArena stopped")
}
