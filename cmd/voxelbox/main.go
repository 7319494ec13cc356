package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"runtime"
	"time"

	"voxelbox/internal/config"
	"voxelbox/internal/game"
	"voxelbox/internal/graphics"
	"voxelbox/internal/input/keyboard"
	"voxelbox/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: $"+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.Apply(cfg)

	if cfg.Metrics.Addr != "" {
		srv := startMetrics(cfg.Metrics.Addr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("init glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}

	session, err := game.NewSession(context.Background(), cfg)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	defer session.Close()

	fbw, fbh := window.GetFramebufferSize()
	r, err := graphics.NewRenderer(session.Render, fbw, fbh)
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	defer r.Dispose()

	kb := keyboard.New()
	kb.Attach(window)

	loop := newGameLoop(window, r, session, kb)
	if cfg.Player.Touch {
		loop.touch = attachTouchEmulation(window, kb)
	}
	setupWindowHandlers(window, loop)

	log.Printf("voxelbox started: mode=%s touch=%v", session.Player.GameMode, cfg.Player.Touch)
	loop.Run()
}

func startMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(profiling.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("metrics available at %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	return srv
}
