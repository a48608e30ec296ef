// Command monitor is a stand-in tab monitor for running the overlay without a
// browser. It tracks registered tabs, offers idle ones as fruit over
// websocket and "discards" a tab when its fruit is sliced.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/memory-ninja/logging"
)

func main() {
	port := flag.Int("port", 8787, "HTTP listen port")
	idle := flag.Duration("idle", 15*time.Minute, "Unused time after which a tab counts as idle")
	interval := flag.Duration("interval", time.Minute, "Idle check interval")
	minTabs := flag.Int("min-tabs", 5, "Tabs that must be open before any is offered")
	perCheck := flag.Int("per-check", 2, "Fruits offered per check at most")
	demoTabs := flag.Int("demo-tabs", 0, "Register this many already idle tabs at start")
	logLevel := flag.String("log", "info", "Log level")
	flag.Parse()

	log := logging.Component(logging.Console(*logLevel), "monitor")

	reg := NewRegistry(time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
	for i := 1; i <= *demoTabs; i++ {
		reg.Register(fmt.Sprintf("Demo tab %d", i), fmt.Sprintf("https://example.com/%d", i), *idle+time.Minute)
	}

	opts := CheckOptions{
		Threshold: *idle,
		MinTabs:   *minTabs,
		PerCheck:  *perCheck,
		Spread:    200 * time.Millisecond,
	}
	hub := NewHub(reg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hub.CheckLoop(ctx, *interval, opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           NewMux(reg, hub, opts, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", srv.Addr).Dur("idle", *idle).Dur("interval", *interval).Msg("starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
