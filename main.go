package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/config"
	"github.com/VigyanSetu/WS-Frontend/internal/session"
	"github.com/VigyanSetu/WS-Frontend/internal/vault"
	"github.com/VigyanSetu/WS-Frontend/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		cfg, err = config.LoadFile(cfg, path)
		if err != nil {
			log.Fatal("Failed to load config file: ", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	store, err := vault.Open(cfg.VaultPath, cfg.VaultKeyPath)
	if err != nil {
		log.Fatal("Failed to open vault: ", err)
	}

	client := api.NewClient(cfg.BackendURL, store, cfg.RequestTimeout)
	sessions := session.New(client, store, cfg.RefreshInterval)
	client.OnAuthExpired(func() {
		// A failed refresh means the stored token is dead; drop the
		// in-memory session so the guard sends the next view to login.
		sessions.Logout()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions.Start(ctx)
	defer sessions.Stop()

	handler := web.NewHandler(client, sessions)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Printf("Portal listening on http://%s (backend %s)", cfg.ListenAddr, cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}
}
