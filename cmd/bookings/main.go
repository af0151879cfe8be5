package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/MichaelBawol/EK-BOOKING/internal/handlers"
	"github.com/MichaelBawol/EK-BOOKING/internal/notifier"
	"github.com/MichaelBawol/EK-BOOKING/internal/repository"
	"github.com/MichaelBawol/EK-BOOKING/internal/service"
	"github.com/MichaelBawol/EK-BOOKING/pkg/config"
	"github.com/MichaelBawol/EK-BOOKING/pkg/mq"
	"github.com/MichaelBawol/EK-BOOKING/pkg/obs"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	shutdown, err := obs.InitTracer(context.Background(), "ek-bookings", cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Printf("[obs] tracing disabled: %v", err)
	}
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	repo := repository.NewBookingRepo(cfg.KVRestURL, cfg.KVRestToken)
	if !repo.Configured() {
		log.Println("[kv] no store configured; bookings will not be persisted")
	}

	mailer := notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.FromEmail, cfg.AdminEmail)
	if !cfg.SMTPConfigured() {
		log.Println("[mail] no relay configured; notifications are off")
	}

	var pub *mq.Publisher
	if cfg.RabbitURL != "" {
		pub, err = mq.NewPublisher(cfg.RabbitURL, mq.Exchange)
		if err != nil {
			// the broker is optional; run without events rather than crash-loop
			log.Printf("[mq] broker unavailable, events disabled: %v", err)
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	svc := service.NewBookingSvc(repo, mailer, pub)
	r := handlers.NewRouter(svc, cfg.AdminToken)

	log.Println("ek-bookings on", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
