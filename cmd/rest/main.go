package main

import (
	"context"
	"log"

	"bestill-chatbot-be/internal/bootstrap"
	"bestill-chatbot-be/internal/config"
	"bestill-chatbot-be/internal/server"
	"bestill-chatbot-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.TracingEnabled, cfg.App.OtlpEndpoint)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer func() {
		if container.NatsPub != nil {
			container.NatsPub.Close()
		}
		if container.NatsSub != nil {
			container.NatsSub.Close()
		}
		_ = container.Logger.Sync()
	}()

	// 4. Start Background Services
	if container.AuditService != nil {
		go func() {
			if err := container.AuditService.Consume(); err != nil {
				log.Printf("Background Audit Consumer Error: %v", err)
			}
		}()
	}

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
