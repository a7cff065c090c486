package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tilecaster/internal/config"
	"tilecaster/internal/game"
	"tilecaster/internal/server"
	"tilecaster/internal/telemetry"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(context.Background())
		if err != nil {
			log.Fatalf("Telemetry setup failed: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("Telemetry shutdown: %v", err)
			}
		}()
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	w, err := game.LoadWorld(cfg.MapPath, cfg.AtlasPath, cfg.TileSize, cfg.TileCount)
	if err != nil {
		log.Fatalf("Failed to load room: %v", err)
	}

	gameLoop := game.NewGameLoop(w, cfg.LoopConfig())
	go gameLoop.Run()
	defer gameLoop.Stop()

	view := server.ViewOptions{Width: cfg.ScreenWidth, Height: cfg.ScreenHeight, FOV: cfg.FOV}

	if cfg.HTTPAddr != "" {
		api := server.NewHTTPServer(gameLoop, view).WithCORS(cfg.CORSOrigins)
		go func() {
			if err := api.ListenAndServe(cfg.HTTPAddr); err != nil {
				log.Printf("HTTP server error: %v", err)
			}
		}()
	}

	sshServer := server.NewSSHServer(cfg.SSHAddr, cfg.HostKey, gameLoop, view)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		sshServer.Close()
	}()

	log.Printf("Starting tilecaster on %s (connect with: ssh -p %s YourName@localhost)", cfg.SSHAddr, port(cfg.SSHAddr))
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func port(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
