package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"linkdex"
	"linkdex/server"
	"linkdex/snapshot"
)

func main() {
	var conf server.Config
	flag.IntVar(&conf.Port, "port", envInt("LINKDEX_PORT", 8000), "listen port")
	flag.StringVar(&conf.SnapshotPath, "snapshot",
		envStr("LINKDEX_SNAPSHOT", "data/linkdex.ldx"),
		"snapshot file path (empty disables persistence)")
	flag.DurationVar(&conf.SaveInterval, "save-interval", 30*time.Second,
		"periodic snapshot interval")
	flag.Parse()

	store := linkdex.NewStore()

	if conf.SnapshotPath != "" {
		if err := os.MkdirAll(filepath.Dir(conf.SnapshotPath), 0o755); err != nil {
			log.Fatal(err)
		}

		entries, counts, err := snapshot.Load(conf.SnapshotPath)
		switch {
		case err == nil:
			store.Restore(entries, counts)
			log.Printf("loaded %d entries from %s", len(entries), conf.SnapshotPath)
		case os.IsNotExist(err):
			log.Printf("no snapshot at %s, starting empty", conf.SnapshotPath)
		default:
			log.Fatalf("load snapshot: %v", err)
		}
	}

	srv := server.New(store, store, conf)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("received %v, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on :%d", conf.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
