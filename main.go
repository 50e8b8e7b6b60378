package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/whisperchain/whisperchain/src/config"
	"github.com/whisperchain/whisperchain/src/database"
	"github.com/whisperchain/whisperchain/src/identity"
	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/server"
	"github.com/whisperchain/whisperchain/src/whisper"
)

var log = logging.Log

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, toml, json or env)")
	dataDir := flag.String("path", "", "path to the whisperchain data folder")
	host := flag.String("host", "", "host to bind the wall to")
	port := flag.String("port", "", "port for the wall")
	store := flag.String("store", "", "store backend: sqlite, redis or memory")
	latency := flag.Bool("simulate-latency", false, "pause like a real chain and IPFS would")
	debug := flag.Bool("debug", false, "turn on debug mode")
	flag.Parse()

	logging.Setup()
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Println("error: " + err.Error())
		os.Exit(1)
	}
	// flags win over the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.DataDir = *dataDir
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "store":
			cfg.Store = *store
		case "simulate-latency":
			cfg.SimulateLatency = *latency
		case "debug":
			logging.Debug(*debug)
			cfg.LogLevel = logging.Log.Level.String()
		}
	})
	if err = cfg.Check(); err != nil {
		fmt.Println("error: " + err.Error())
		os.Exit(1)
	}

	err = Run(cfg)
	if err != nil {
		fmt.Println("error: " + err.Error())
		os.Exit(1)
	}
}

// Run opens the store and serves the wall until interrupted.
func Run(cfg *config.Config) (err error) {
	if err = logging.SetLevel(cfg.LogLevel); err != nil {
		return
	}

	store, err := openStore(cfg)
	if err != nil {
		return
	}
	defer store.Close()

	ids := identity.Provider{
		WalletAddress:   cfg.WalletAddress,
		SimulateLatency: cfg.SimulateLatency,
	}
	whispers := whisper.New(store, ids)
	whispers.SimulateLatency = cfg.SimulateLatency

	s := server.New(whispers, ids, cfg.RateLimit)
	if cfg.LogLevel == "debug" {
		err = s.SetLogLevel("debug")
	} else {
		err = s.SetLogLevel("info")
	}
	if err != nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx, cfg.Addr())
}

func openStore(cfg *config.Config) (database.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using the memory store, whispers are lost on exit")
		return database.NewMemory(), nil
	case config.StoreRedis:
		r := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err := r.Ping(context.Background()); err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "redis at %s", cfg.RedisAddr)
		}
		log.Infof("using redis at %s", cfg.RedisAddr)
		return r, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, errors.Wrap(err, "data folder")
		}
		log.Infof("database location: %s", cfg.DatabasePath())
		return database.Setup(cfg.DatabasePath()), nil
	}
}
