package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jchen-way/DraftOptimizer/config"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/jchen-way/DraftOptimizer/db"
	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/jchen-way/DraftOptimizer/web"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logrus.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.Database.ConnString, clock)
	if err != nil {
		logrus.Fatalf("cannot connect to DB: %v", err)
	}

	locker, closeLocker := newLocker(cfg.Redis)
	defer closeLocker()

	ctrl, err := controller.New(clock, db, locker, cfg.Valuation, cfg.League)
	if err != nil {
		logrus.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(cfg.Server.Port, ctrl, web.Options{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logrus.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, cfg.Server.ShutdownTimeout+time.Second); err != nil {
			logrus.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logrus.Info("server shutdown")
}

// newLocker uses redis when an address is configured so that several server
// processes can share a database.
func newLocker(cfg config.RedisConfig) (lock.Locker, func()) {
	if cfg.Addr == "" {
		logrus.Warn("REDIS_ADDR is not set, league locks are held in memory")
		return lock.NewMemoryLocker(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("cannot connect to redis at %s: %v", cfg.Addr, err)
	}

	logrus.WithField("addr", cfg.Addr).Info("using redis for league locks")
	return lock.NewRedisLocker(client, cfg.LockTTL), func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("error closing redis client")
		}
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
